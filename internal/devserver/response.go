// Package devserver is a local demo backend: the canonical REST surface of
// the platform served over the in-process mock services, so the real client
// can be exercised end to end without the hosted platform. List responses
// are wrapped in the resource-plural envelope the production backend uses,
// which keeps the client's normalizer on its real code path.
package devserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skyfn/skyfn-console/internal/domain"
)

// errorBody is the uniform error envelope: {message, status, code?, errors?, detail?}
type errorBody struct {
	Message string               `json:"message"`
	Status  int                  `json:"status"`
	Code    string               `json:"code,omitempty"`
	Errors  map[string][]string  `json:"errors,omitempty"`
	Detail  []domain.ErrorDetail `json:"detail,omitempty"`
}

func newErrorResponse(c echo.Context, status int, message, code string) error {
	return c.JSON(status, errorBody{Message: message, Status: status, Code: code})
}

func notFound(c echo.Context, message string) error {
	return newErrorResponse(c, http.StatusNotFound, message, "NOT_FOUND")
}

func badRequest(c echo.Context, message string) error {
	return newErrorResponse(c, http.StatusBadRequest, message, "BAD_REQUEST")
}

func unauthorized(c echo.Context, message string) error {
	return newErrorResponse(c, http.StatusUnauthorized, message, "UNAUTHORIZED")
}

func internalError(c echo.Context, message string) error {
	return newErrorResponse(c, http.StatusInternalServerError, message, "INTERNAL")
}

func tooManyRequests(c echo.Context) error {
	return newErrorResponse(c, http.StatusTooManyRequests, "Rate limit exceeded", "RATE_LIMITED")
}

func validationError(c echo.Context, detail []domain.ErrorDetail) error {
	return c.JSON(http.StatusUnprocessableEntity, errorBody{
		Message: "Validation failed",
		Status:  http.StatusUnprocessableEntity,
		Code:    "VALIDATION",
		Detail:  detail,
	})
}
