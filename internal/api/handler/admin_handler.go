package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/talentboard/jobboard/internal/api/metrics"
	"github.com/talentboard/jobboard/internal/core/domain"
	"github.com/talentboard/jobboard/internal/core/ports"
)

// AdminJobHandler serves posting management. Every write goes through
// JobService, which re-checks the caller's role.
type AdminJobHandler struct {
	service ports.JobService
}

func NewAdminJobHandler(service ports.JobService) *AdminJobHandler {
	return &AdminJobHandler{service: service}
}

// List returns every posting regardless of status.
//
// @Summary      List all jobs
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  jobListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/jobs [get]
func (h *AdminJobHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	jobs, err := h.service.ListAll(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return c.JSON(http.StatusOK, jobListResponse{Jobs: jobs, Total: len(jobs)})
}

// Create publishes a new posting.
//
// @Summary      Create a job
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      jobRequest  true  "Job posting"
// @Success      201   {object}  domain.Job
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/jobs [post]
func (h *AdminJobHandler) Create(c echo.Context) error {
	session, draft, err := h.sessionAndDraft(c)
	if err != nil {
		return err
	}

	job, err := h.service.Create(c.Request().Context(), session.UserID, draft)
	if err != nil {
		return err
	}
	metrics.JobWritesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, job)
}

// Update replaces the writable fields of a posting.
//
// @Summary      Update a job
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string      true  "Job id"
// @Param        body  body      jobRequest  true  "Job posting"
// @Success      200   {object}  domain.Job
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/jobs/{id} [put]
func (h *AdminJobHandler) Update(c echo.Context) error {
	session, draft, err := h.sessionAndDraft(c)
	if err != nil {
		return err
	}

	job, err := h.service.Update(c.Request().Context(), session.UserID, c.Param("id"), draft)
	if err != nil {
		return err
	}
	metrics.JobWritesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, job)
}

// Delete removes a posting.
//
// @Summary      Delete a job
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Job id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/jobs/{id} [delete]
func (h *AdminJobHandler) Delete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), session.UserID, c.Param("id")); err != nil {
		return err
	}
	metrics.JobWritesTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// DeleteJob is the delete endpoint used by the dashboard. Checks run in a
// fixed order: jobId (400), session (401), admin role (403), store (500).
// Deleting an id that no longer exists succeeds.
//
// @Summary      Delete a job by body id
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        Authorization  header    string            true  "Bearer token"
// @Param        body           body      deleteJobRequest  true  "Job to delete"
// @Success      200            {object}  successResponse
// @Failure      400            {object}  errorResponse
// @Failure      401            {object}  errorResponse
// @Failure      403            {object}  errorResponse
// @Failure      405            {object}  errorResponse
// @Failure      500            {object}  errorResponse
// @Router       /api/delete-job [post]
func (h *AdminJobHandler) DeleteJob(c echo.Context) error {
	var req deleteJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return h.deleteConfirmed(c, req.JobID)
}

// DeleteByPath has the same contract as DeleteJob with the id in the path.
//
// @Summary      Delete a job by path id
// @Tags         admin
// @Produce      json
// @Param        Authorization  header    string  true  "Bearer token"
// @Param        id             path      string  true  "Job id"
// @Success      200            {object}  successResponse
// @Failure      401            {object}  errorResponse
// @Failure      403            {object}  errorResponse
// @Failure      500            {object}  errorResponse
// @Router       /api/jobs/{id} [delete]
func (h *AdminJobHandler) DeleteByPath(c echo.Context) error {
	return h.deleteConfirmed(c, c.Param("id"))
}

// GetAny returns a posting in any status.
//
// @Summary      Get any job
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  domain.Job
// @Failure      404  {object}  errorResponse
// @Router       /api/jobs/{id} [get]
func (h *AdminJobHandler) GetAny(c echo.Context) error {
	job, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

func (h *AdminJobHandler) deleteConfirmed(c echo.Context, jobID string) error {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "jobId is required")
	}
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	err = h.service.Delete(c.Request().Context(), session.UserID, jobID)
	switch {
	case errors.Is(err, domain.ErrJobNotFound):
	case err != nil:
		return err
	default:
		metrics.JobWritesTotal.WithLabelValues("delete").Inc()
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (h *AdminJobHandler) sessionAndDraft(c echo.Context) (*domain.Session, domain.JobDraft, error) {
	session, err := ctxSession(c)
	if err != nil {
		return nil, domain.JobDraft{}, err
	}

	var req jobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return nil, domain.JobDraft{}, err
	}
	draft, err := toJobDraft(req)
	if err != nil {
		return nil, domain.JobDraft{}, err
	}
	return session, draft, nil
}
