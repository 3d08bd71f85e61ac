package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentboard/jobboard/internal/api/metrics"
	"github.com/talentboard/jobboard/internal/core/domain"
	"github.com/talentboard/jobboard/internal/core/ports"
)

type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Submit applies the caller to a job.
//
// @Summary      Apply to a job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Job id"
// @Param        body  body      applicationRequest  true  "Cover letter"
// @Success      201   {object}  domain.Application
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/jobs/{id}/applications [post]
func (h *ApplicationHandler) Submit(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req applicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	app, err := h.service.Submit(c.Request().Context(), c.Param("id"), session.UserID, req.CoverLetter)
	if err != nil {
		return err
	}
	metrics.ApplicationsSubmittedTotal.Inc()
	return c.JSON(http.StatusCreated, app)
}

// ListMine returns the caller's applications joined with their jobs.
//
// @Summary      List own applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  applicationListResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/applications [get]
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	views, err := h.service.ListMine(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}
	if views == nil {
		views = []domain.ApplicationView{}
	}
	return c.JSON(http.StatusOK, applicationListResponse{Applications: views})
}

// SetStatus moves an application to a review state.
//
// @Summary      Review an application
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Application id"
// @Param        body  body      applicationStatusRequest  true  "New status"
// @Success      200   {object}  domain.Application
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/applications/{id} [patch]
func (h *ApplicationHandler) SetStatus(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req applicationStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	app, err := h.service.SetStatus(c.Request().Context(), session.UserID, c.Param("id"), domain.ApplicationStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}
