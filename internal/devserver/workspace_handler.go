package devserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/skyfn/skyfn-console/internal/domain"
)

// WorkspaceHandler serves the /workspaces endpoints
type WorkspaceHandler struct {
	workspaces domain.WorkspaceService
}

// NewWorkspaceHandler creates a WorkspaceHandler
func NewWorkspaceHandler(workspaces domain.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces}
}

// List handles GET /workspaces/
func (h *WorkspaceHandler) List(c echo.Context) error {
	workspaces, err := h.workspaces.List(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list workspaces")
		return internalError(c, "Failed to list workspaces")
	}
	return c.JSON(http.StatusOK, map[string]any{"workspaces": workspaces})
}

// Get handles GET /workspaces/:id
func (h *WorkspaceHandler) Get(c echo.Context) error {
	ws, err := h.workspaces.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if domain.IsNotFound(err) {
			return notFound(c, "Workspace not found")
		}
		return internalError(c, "Failed to load workspace")
	}
	return c.JSON(http.StatusOK, ws)
}

// Create handles POST /workspaces/
func (h *WorkspaceHandler) Create(c echo.Context) error {
	var payload domain.WorkspaceCreate
	if err := c.Bind(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if payload.Name == "" {
		return validationError(c, []domain.ErrorDetail{
			{Loc: []any{"body", "name"}, Msg: "field required", Type: "value_error.missing"},
		})
	}

	ws, err := h.workspaces.Create(c.Request().Context(), payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create workspace")
		return internalError(c, "Failed to create workspace")
	}
	return c.JSON(http.StatusCreated, ws)
}

// Update handles PUT /workspaces/:id
func (h *WorkspaceHandler) Update(c echo.Context) error {
	var payload domain.WorkspaceUpdate
	if err := c.Bind(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	ws, err := h.workspaces.Update(c.Request().Context(), c.Param("id"), payload)
	if err != nil {
		if domain.IsNotFound(err) {
			return notFound(c, "Workspace not found")
		}
		return internalError(c, "Failed to update workspace")
	}
	return c.JSON(http.StatusOK, ws)
}

// Delete handles DELETE /workspaces/:id
func (h *WorkspaceHandler) Delete(c echo.Context) error {
	if err := h.workspaces.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if domain.IsNotFound(err) {
			return notFound(c, "Workspace not found")
		}
		return internalError(c, "Failed to delete workspace")
	}
	return c.NoContent(http.StatusNoContent)
}

// GenerateAuthKey handles POST /workspaces/:id/auth-keys
func (h *WorkspaceHandler) GenerateAuthKey(c echo.Context) error {
	var payload struct {
		ExpiresHours int `json:"expires_hours"`
	}
	if err := c.Bind(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	key, err := h.workspaces.GenerateAuthKey(c.Request().Context(), c.Param("id"), payload.ExpiresHours)
	if err != nil {
		if domain.IsNotFound(err) {
			return notFound(c, "Workspace not found")
		}
		return internalError(c, "Failed to generate auth key")
	}
	return c.JSON(http.StatusCreated, key)
}

// Metrics handles GET /workspaces/:id/metrics. The snapshot is wrapped
// under "metrics", one of the envelope variants the production backend
// emits.
func (h *WorkspaceHandler) Metrics(c echo.Context) error {
	metrics, err := h.workspaces.Metrics(c.Request().Context(), c.Param("id"))
	if err != nil {
		if domain.IsNotFound(err) {
			return notFound(c, "Workspace not found")
		}
		return internalError(c, "Failed to load metrics")
	}
	return c.JSON(http.StatusOK, map[string]any{"metrics": metrics})
}

// Functions handles GET /workspaces/:id/functions
func (h *WorkspaceHandler) Functions(c echo.Context) error {
	functions, err := h.workspaces.Functions(c.Request().Context(), c.Param("id"))
	if err != nil {
		if domain.IsNotFound(err) {
			return notFound(c, "Workspace not found")
		}
		return internalError(c, "Failed to list functions")
	}
	if functions == nil {
		functions = []domain.Function{}
	}
	return c.JSON(http.StatusOK, map[string]any{"functions": functions})
}
