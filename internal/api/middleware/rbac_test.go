package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/talentboard/jobboard/internal/core/domain"
)

type stubRoles map[string]domain.Role

func (s stubRoles) RoleOf(_ context.Context, userID string) (domain.Role, error) {
	r, ok := s[userID]
	if !ok {
		return "", domain.ErrProfileNotFound
	}
	return r, nil
}

func rbacContext(userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(SessionKey, &domain.Session{UserID: userID})
	}
	return c, rec
}

func TestRBAC_Allows(t *testing.T) {
	c, rec := rbacContext("boss")

	called := false
	mw := RBAC(stubRoles{"boss": domain.RoleAdmin}, domain.RoleAdmin)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	roles := stubRoles{"cand": domain.RoleCandidate}
	for _, user := range []string{"cand", "no-profile"} {
		c, rec := rbacContext(user)

		handler := RBAC(roles, domain.RoleAdmin)(func(c echo.Context) error {
			t.Fatalf("should not reach next handler")
			return nil
		})

		_ = handler(c)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("%s: expected 403, got %d", user, rec.Code)
		}
	}
}

func TestRBAC_RequiresSession(t *testing.T) {
	c, _ := rbacContext("")

	handler := RBAC(stubRoles{}, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
