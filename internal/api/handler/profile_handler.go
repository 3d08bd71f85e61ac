package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/talentboard/jobboard/internal/api/metrics"
	"github.com/talentboard/jobboard/internal/core/domain"
	"github.com/talentboard/jobboard/internal/core/ports"
	"github.com/talentboard/jobboard/internal/core/service"
)

type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Me summarises who the caller is and where the client should send them.
//
// @Summary      Current user summary
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	st, err := h.service.Get(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}

	resp := meResponse{
		UserID:     session.UserID,
		Email:      session.Email,
		Complete:   st.Complete,
		Completion: st.Completion,
		Missing:    st.Missing,
		Landing:    domain.ResolveLanding(session, st.Complete),
	}
	if st.Profile != nil {
		resp.Role = st.Profile.Role
		resp.IsAdmin = st.Profile.IsAdmin()
	}
	return c.JSON(http.StatusOK, resp)
}

// Get returns the caller's profile with its completeness.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	st, err := h.service.Get(c.Request().Context(), session.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(st))
}

// Save upserts the caller's profile and re-evaluates completeness.
//
// @Summary      Save own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Profile attributes"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/profile [put]
func (h *ProfileHandler) Save(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	st, err := h.service.Save(c.Request().Context(), session.UserID, toProfileInput(req))
	if err != nil {
		return err
	}
	metrics.ProfileSavesTotal.WithLabelValues(strconv.FormatBool(st.Complete)).Inc()
	return c.JSON(http.StatusOK, toProfileResponse(st))
}

// Evaluate reports completeness for an unsaved draft.
//
// @Summary      Evaluate profile draft
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Draft profile"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/profile/completeness [post]
func (h *ProfileHandler) Evaluate(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	st := h.service.Evaluate(toProfileInput(req))
	return c.JSON(http.StatusOK, toProfileResponse(st))
}

// UploadAvatar stores an image and points the profile at it.
//
// @Summary      Upload avatar
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image up to 2 MiB"
// @Success      201   {object}  avatarResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/profile/avatar [post]
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fh.Size > service.MaxAvatarSize {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "avatar must be between 1 byte and 2 MiB")
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer f.Close()

	url, err := h.service.UploadAvatar(c.Request().Context(), session.UserID, ports.AvatarUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Content:     f,
	})
	if err != nil {
		return err
	}
	metrics.AvatarUploadsTotal.Inc()
	return c.JSON(http.StatusCreated, avatarResponse{AvatarURL: url})
}
