package devserver

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/skyfn/skyfn-console/internal/domain"
)

// FunctionHandler serves the /functions endpoints
type FunctionHandler struct {
	functions domain.FunctionService
	jobs      domain.JobService
	publisher EventPublisher
}

// NewFunctionHandler creates a FunctionHandler
func NewFunctionHandler(functions domain.FunctionService, jobs domain.JobService, publisher EventPublisher) *FunctionHandler {
	return &FunctionHandler{functions: functions, jobs: jobs, publisher: publisher}
}

// List handles GET /functions/
func (h *FunctionHandler) List(c echo.Context) error {
	functions, err := h.functions.List(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list functions")
		return internalError(c, "Failed to list functions")
	}
	return c.JSON(http.StatusOK, map[string]any{"functions": functions})
}

// Get handles GET /functions/:id
func (h *FunctionHandler) Get(c echo.Context) error {
	fn, err := h.functions.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if domain.IsNotFound(err) {
			return notFound(c, "Function not found")
		}
		return internalError(c, "Failed to load function")
	}
	return c.JSON(http.StatusOK, fn)
}

// Create handles POST /functions/
func (h *FunctionHandler) Create(c echo.Context) error {
	var payload domain.FunctionCreate
	if err := c.Bind(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var detail []domain.ErrorDetail
	if payload.Name == "" {
		detail = append(detail, domain.ErrorDetail{Loc: []any{"body", "name"}, Msg: "field required", Type: "value_error.missing"})
	}
	if payload.Runtime == "" {
		detail = append(detail, domain.ErrorDetail{Loc: []any{"body", "runtime"}, Msg: "field required", Type: "value_error.missing"})
	}
	if payload.WorkspaceID == "" {
		detail = append(detail, domain.ErrorDetail{Loc: []any{"body", "workspace_id"}, Msg: "field required", Type: "value_error.missing"})
	}
	if detail != nil {
		return validationError(c, detail)
	}

	fn, err := h.functions.Create(c.Request().Context(), payload)
	if err != nil {
		log.Error().Err(err).Str("name", payload.Name).Msg("Failed to create function")
		return internalError(c, "Failed to create function")
	}
	return c.JSON(http.StatusCreated, fn)
}

// Update handles PUT /functions/:id
func (h *FunctionHandler) Update(c echo.Context) error {
	var payload domain.FunctionUpdate
	if err := c.Bind(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	fn, err := h.functions.Update(c.Request().Context(), c.Param("id"), payload)
	if err != nil {
		if domain.IsNotFound(err) {
			return notFound(c, "Function not found")
		}
		return internalError(c, "Failed to update function")
	}
	return c.JSON(http.StatusOK, fn)
}

// Delete handles DELETE /functions/:id
func (h *FunctionHandler) Delete(c echo.Context) error {
	if err := h.functions.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if domain.IsNotFound(err) {
			return notFound(c, "Function not found")
		}
		return internalError(c, "Failed to delete function")
	}
	return c.NoContent(http.StatusNoContent)
}

// Deploy handles POST /functions/:id/deploy
func (h *FunctionHandler) Deploy(c echo.Context) error {
	var payload domain.DeployRequest
	if err := c.Bind(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	result, err := h.functions.Deploy(c.Request().Context(), c.Param("id"), &payload)
	if err != nil {
		if domain.IsNotFound(err) {
			return notFound(c, "Function not found")
		}
		return internalError(c, "Deployment failed")
	}
	return c.JSON(http.StatusOK, result)
}

// Invoke handles POST /functions/:id/invoke with an arbitrary JSON payload.
// The resulting job is broadcast to the workspace's event stream.
func (h *FunctionHandler) Invoke(c echo.Context) error {
	functionID := c.Param("id")

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(c, "Failed to read request body")
	}
	payload := json.RawMessage(body)

	fn, err := h.functions.Get(c.Request().Context(), functionID)
	if err != nil {
		if domain.IsNotFound(err) {
			return notFound(c, "Function not found")
		}
		return internalError(c, "Failed to load function")
	}

	result, err := h.functions.Invoke(c.Request().Context(), functionID, payload)
	if err != nil {
		return internalError(c, "Invocation failed")
	}

	if result.JobID != "" {
		if job, err := h.jobs.Get(c.Request().Context(), result.JobID); err == nil {
			h.publisher.Publish(fn.WorkspaceID, JobCreated(job))
		}
	}

	return c.JSON(http.StatusOK, result)
}

// Jobs handles GET /functions/:id/jobs
func (h *FunctionHandler) Jobs(c echo.Context) error {
	list, err := h.functions.Jobs(c.Request().Context(), c.Param("id"))
	if err != nil {
		if domain.IsNotFound(err) {
			return notFound(c, "Function not found")
		}
		return internalError(c, "Failed to list jobs")
	}
	if list.Jobs == nil {
		list.Jobs = []domain.Job{}
	}
	return c.JSON(http.StatusOK, list)
}

// Metrics handles GET /functions/:id/metrics
func (h *FunctionHandler) Metrics(c echo.Context) error {
	metrics, err := h.functions.Metrics(c.Request().Context(), c.Param("id"))
	if err != nil {
		if domain.IsNotFound(err) {
			return notFound(c, "Function not found")
		}
		return internalError(c, "Failed to load metrics")
	}
	return c.JSON(http.StatusOK, metrics)
}
