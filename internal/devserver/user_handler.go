package devserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/skyfn/skyfn-console/internal/domain"
)

// UserHandler serves the /users endpoints
type UserHandler struct {
	users    domain.UserService
	registry *TokenRegistry
}

// NewUserHandler creates a UserHandler
func NewUserHandler(users domain.UserService, registry *TokenRegistry) *UserHandler {
	return &UserHandler{users: users, registry: registry}
}

// Register handles POST /users/register
func (h *UserHandler) Register(c echo.Context) error {
	var payload domain.UserCreate
	if err := c.Bind(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var detail []domain.ErrorDetail
	if payload.Username == "" {
		detail = append(detail, domain.ErrorDetail{Loc: []any{"body", "username"}, Msg: "field required", Type: "value_error.missing"})
	}
	if payload.Password == "" {
		detail = append(detail, domain.ErrorDetail{Loc: []any{"body", "password"}, Msg: "field required", Type: "value_error.missing"})
	}
	if detail != nil {
		return validationError(c, detail)
	}

	user, err := h.users.Register(c.Request().Context(), payload)
	if err != nil {
		log.Error().Err(err).Str("username", payload.Username).Msg("Registration failed")
		return internalError(c, "Registration failed")
	}
	return c.JSON(http.StatusCreated, user)
}

// Login handles POST /users/login. A fresh opaque token is minted per
// successful login.
func (h *UserHandler) Login(c echo.Context) error {
	var payload domain.UserLogin
	if err := c.Bind(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if _, err := h.users.Login(c.Request().Context(), payload); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return unauthorized(c, "Invalid credentials")
		}
		return internalError(c, "Login failed")
	}

	token := h.registry.Mint(payload.Username)
	return c.JSON(http.StatusOK, domain.Token{AccessToken: token, TokenType: "bearer"})
}

// Me handles GET /users/me
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.users.CurrentUser(c.Request().Context())
	if err != nil {
		return notFound(c, "User not found")
	}
	return c.JSON(http.StatusOK, user)
}
