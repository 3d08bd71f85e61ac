package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentboard/jobboard/internal/core/domain"
	"github.com/talentboard/jobboard/internal/core/ports"
)

// JobHandler serves the public job listing.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// List returns active, unexpired postings ordered by expiry.
//
// @Summary      List open jobs
// @Tags         jobs
// @Produce      json
// @Param        q         query     string  false  "Case-insensitive search over title and description"
// @Param        type      query     string  false  "Exact job type"
// @Param        extended  query     bool    false  "Also search company and location"
// @Success      200       {object}  jobListResponse
// @Failure      400       {object}  errorResponse
// @Router       /v1/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	var filter domain.JobFilter
	err := echo.QueryParamsBinder(c).
		String("q", &filter.Search).
		String("type", &filter.Type).
		Bool("extended", &filter.Extended).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	jobs, err := h.service.ListPublic(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return c.JSON(http.StatusOK, jobListResponse{Jobs: jobs, Total: len(jobs)})
}

// Get returns a single open posting.
//
// @Summary      Get an open job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  domain.Job
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.GetPublic(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}
