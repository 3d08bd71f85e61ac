package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentboard/jobboard/internal/api/middleware"
	"github.com/talentboard/jobboard/internal/core/domain"
)

// ctxSession returns the session placed on the context by the Auth
// middleware, or a 401 when the request carries none.
func ctxSession(c echo.Context) (*domain.Session, error) {
	s, _ := c.Get(middleware.SessionKey).(*domain.Session)
	if s == nil || s.UserID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return s, nil
}

// bindAndValidate decodes the body into req and runs struct validation.
// Malformed bodies are 400 and failed validation is 422.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
