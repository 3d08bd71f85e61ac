package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentboard/jobboard/internal/api/metrics"
	"github.com/talentboard/jobboard/internal/core/domain"
	"github.com/talentboard/jobboard/internal/core/ports"
)

type AuthHandler struct {
	authService    ports.AuthService
	profileService ports.ProfileService
}

func NewAuthHandler(authService ports.AuthService, profileService ports.ProfileService) *AuthHandler {
	return &AuthHandler{authService: authService, profileService: profileService}
}

// SignUp creates a new account with an empty candidate profile.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Email and password"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req credentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.SignUp(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "error").Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("signup", "ok").Inc()

	return c.JSON(http.StatusCreated, authResponse{
		Token:     res.Token,
		ExpiresAt: res.Session.ExpiresAt,
		User:      res.User,
		Landing:   domain.ResolveLanding(res.Session, false),
	})
}

// SignIn authenticates a user and returns a bearer token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Email and password"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	ctx := c.Request().Context()
	res, err := h.authService.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signin", "error").Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("signin", "ok").Inc()

	st, err := h.profileService.Get(ctx, res.User.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Token:     res.Token,
		ExpiresAt: res.Session.ExpiresAt,
		User:      res.User,
		Landing:   domain.ResolveLanding(res.Session, st.Complete),
	})
}

// SignOut revokes the caller's token.
//
// @Summary      Sign out
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.authService.SignOut(c.Request().Context(), *session); err != nil {
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("signout", "ok").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Session returns the caller's current session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Session
// @Failure      401  {object}  errorResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, session)
}
