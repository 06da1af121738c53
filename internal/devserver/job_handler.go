package devserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skyfn/skyfn-console/internal/domain"
)

// JobHandler serves the /jobs endpoints
type JobHandler struct {
	jobs domain.JobService
}

// NewJobHandler creates a JobHandler
func NewJobHandler(jobs domain.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// Get handles GET /jobs/:id
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.jobs.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if domain.IsNotFound(err) {
			return notFound(c, "Job not found")
		}
		return internalError(c, "Failed to load job")
	}
	return c.JSON(http.StatusOK, job)
}
