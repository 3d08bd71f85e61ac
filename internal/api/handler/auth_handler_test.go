package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/talentboard/jobboard/internal/api/middleware"
	"github.com/talentboard/jobboard/internal/core/domain"
	"github.com/talentboard/jobboard/internal/core/ports"
)

type stubAuthService struct {
	signUpFn  func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	signInFn  func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	signOutFn func(ctx context.Context, session domain.Session) error
}

func (s *stubAuthService) SignUp(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.signUpFn(ctx, email, password)
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.signInFn(ctx, email, password)
}

func (s *stubAuthService) SignOut(ctx context.Context, session domain.Session) error {
	return s.signOutFn(ctx, session)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrUnauthorized
}

type stubProfileService struct {
	getFn      func(ctx context.Context, userID string) (*ports.ProfileStatus, error)
	saveFn     func(ctx context.Context, userID string, in ports.ProfileInput) (*ports.ProfileStatus, error)
	evaluateFn func(in ports.ProfileInput) *ports.ProfileStatus
	uploadFn   func(ctx context.Context, userID string, up ports.AvatarUpload) (string, error)
}

func (s *stubProfileService) Get(ctx context.Context, userID string) (*ports.ProfileStatus, error) {
	return s.getFn(ctx, userID)
}

func (s *stubProfileService) Save(ctx context.Context, userID string, in ports.ProfileInput) (*ports.ProfileStatus, error) {
	return s.saveFn(ctx, userID, in)
}

func (s *stubProfileService) Evaluate(in ports.ProfileInput) *ports.ProfileStatus {
	return s.evaluateFn(in)
}

func (s *stubProfileService) RoleOf(ctx context.Context, userID string) (domain.Role, error) {
	st, err := s.getFn(ctx, userID)
	if err != nil {
		return "", err
	}
	if st.Profile == nil {
		return "", domain.ErrProfileNotFound
	}
	return st.Profile.Role, nil
}

func (s *stubProfileService) UploadAvatar(ctx context.Context, userID string, up ports.AvatarUpload) (string, error) {
	return s.uploadFn(ctx, userID, up)
}

func newTestContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withSession(c echo.Context, userID string) {
	c.Set(middleware.SessionKey, &domain.Session{
		UserID:    userID,
		Email:     userID + "@example.com",
		TokenID:   "jti-" + userID,
		ExpiresAt: time.Now().Add(time.Hour),
	})
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTP error %d, got %v", code, err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d (%v)", code, he.Code, he.Message)
	}
}

func authResult(id, email string) *ports.AuthResult {
	return &ports.AuthResult{
		Token:   "token-" + id,
		User:    &domain.User{ID: id, Email: email},
		Session: &domain.Session{UserID: id, Email: email, TokenID: "jti", ExpiresAt: time.Now().Add(time.Hour)},
	}
}

func TestAuthHandler_SignUp_Success(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(_ context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return authResult("u1", email), nil
		},
	}
	h := NewAuthHandler(stub, &stubProfileService{})

	c, rec := newTestContext(http.MethodPost, "/auth/signup", strings.NewReader(`{"email":"alice@example.com","password":"secret1"}`))
	if err := h.SignUp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token-u1" {
		t.Fatalf("unexpected token: %v", resp["token"])
	}
	if resp["landing"] != string(domain.LandingProfile) {
		t.Fatalf("a fresh account must land on the profile editor, got %v", resp["landing"])
	}
	user, _ := resp["user"].(map[string]any)
	if _, ok := user["PasswordHash"]; ok {
		t.Fatalf("password hash must not be serialised")
	}
}

func TestAuthHandler_SignUp_Validation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubProfileService{})

	c, _ := newTestContext(http.MethodPost, "/auth/signup", strings.NewReader(`{"email":"nope","password":"123"}`))
	expectHTTPError(t, h.SignUp(c), http.StatusUnprocessableEntity)

	c, _ = newTestContext(http.MethodPost, "/auth/signup", strings.NewReader(`{"email":`))
	expectHTTPError(t, h.SignUp(c), http.StatusBadRequest)
}

func TestAuthHandler_SignUp_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(context.Context, string, string) (*ports.AuthResult, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub, &stubProfileService{})

	c, _ := newTestContext(http.MethodPost, "/auth/signup", strings.NewReader(`{"email":"bob@example.com","password":"secret1"}`))
	if err := h.SignUp(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_SignIn_LandingFollowsCompleteness(t *testing.T) {
	cases := []struct {
		name     string
		complete bool
		want     domain.Landing
	}{
		{"incomplete profile", false, domain.LandingProfile},
		{"complete profile", true, domain.LandingJobs},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &stubAuthService{
				signInFn: func(_ context.Context, email, _ string) (*ports.AuthResult, error) {
					return authResult("u1", email), nil
				},
			}
			profiles := &stubProfileService{
				getFn: func(_ context.Context, userID string) (*ports.ProfileStatus, error) {
					if userID != "u1" {
						t.Fatalf("unexpected user id %s", userID)
					}
					return &ports.ProfileStatus{Profile: &domain.Profile{UserID: userID}, Complete: tc.complete}, nil
				},
			}
			h := NewAuthHandler(auth, profiles)

			c, rec := newTestContext(http.MethodPost, "/auth/signin", strings.NewReader(`{"email":"carol@example.com","password":"pw"}`))
			if err := h.SignIn(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			var resp authResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Landing != tc.want {
				t.Fatalf("expected landing %s, got %s", tc.want, resp.Landing)
			}
		})
	}
}

func TestAuthHandler_SignIn_InvalidCredentials(t *testing.T) {
	auth := &stubAuthService{
		signInFn: func(context.Context, string, string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(auth, &stubProfileService{})

	c, _ := newTestContext(http.MethodPost, "/auth/signin", strings.NewReader(`{"email":"x@example.com","password":"bad"}`))
	if err := h.SignIn(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_SignOut(t *testing.T) {
	var revoked string
	auth := &stubAuthService{
		signOutFn: func(_ context.Context, s domain.Session) error {
			revoked = s.TokenID
			return nil
		},
	}
	h := NewAuthHandler(auth, &stubProfileService{})

	c, rec := newTestContext(http.MethodPost, "/auth/signout", nil)
	withSession(c, "u1")
	if err := h.SignOut(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if revoked != "jti-u1" {
		t.Fatalf("expected session token to be revoked, got %q", revoked)
	}

	c, _ = newTestContext(http.MethodPost, "/auth/signout", nil)
	expectHTTPError(t, h.SignOut(c), http.StatusUnauthorized)
}

func TestAuthHandler_Session(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubProfileService{})

	c, rec := newTestContext(http.MethodGet, "/auth/session", nil)
	withSession(c, "u7")
	if err := h.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var s domain.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if s.UserID != "u7" || s.TokenID != "" {
		t.Fatalf("unexpected session payload: %+v", s)
	}
}
