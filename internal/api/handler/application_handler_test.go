package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/talentboard/jobboard/internal/core/domain"
)

type stubApplicationService struct {
	submitFn    func(ctx context.Context, jobID, userID, coverLetter string) (*domain.Application, error)
	listMineFn  func(ctx context.Context, userID string) ([]domain.ApplicationView, error)
	setStatusFn func(ctx context.Context, actorID, id string, status domain.ApplicationStatus) (*domain.Application, error)
}

func (s *stubApplicationService) Submit(ctx context.Context, jobID, userID, coverLetter string) (*domain.Application, error) {
	return s.submitFn(ctx, jobID, userID, coverLetter)
}

func (s *stubApplicationService) ListMine(ctx context.Context, userID string) ([]domain.ApplicationView, error) {
	return s.listMineFn(ctx, userID)
}

func (s *stubApplicationService) SetStatus(ctx context.Context, actorID, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	return s.setStatusFn(ctx, actorID, id, status)
}

func TestApplicationHandler_Submit(t *testing.T) {
	stub := &stubApplicationService{
		submitFn: func(_ context.Context, jobID, userID, coverLetter string) (*domain.Application, error) {
			if jobID != "j1" || userID != "u1" || coverLetter != "Hire me" {
				t.Fatalf("unexpected args: %s %s %q", jobID, userID, coverLetter)
			}
			return &domain.Application{ID: "a1", JobID: jobID, UserID: userID, Status: domain.ApplicationPending}, nil
		},
	}
	h := NewApplicationHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/v1/jobs/j1/applications", strings.NewReader(`{"cover_letter":"Hire me"}`))
	c.SetParamNames("id")
	c.SetParamValues("j1")
	withSession(c, "u1")
	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"pending"`) {
		t.Fatalf("expected pending status, got %s", rec.Body.String())
	}
}

func TestApplicationHandler_Submit_Duplicate(t *testing.T) {
	stub := &stubApplicationService{
		submitFn: func(context.Context, string, string, string) (*domain.Application, error) {
			return nil, domain.ErrAlreadyApplied
		},
	}
	h := NewApplicationHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/v1/jobs/j1/applications", strings.NewReader(`{}`))
	c.SetParamNames("id")
	c.SetParamValues("j1")
	withSession(c, "u1")
	if err := h.Submit(c); !errors.Is(err, domain.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestApplicationHandler_Submit_CoverLetterTooLong(t *testing.T) {
	h := NewApplicationHandler(&stubApplicationService{})

	body := `{"cover_letter":"` + strings.Repeat("x", 5001) + `"}`
	c, _ := newTestContext(http.MethodPost, "/v1/jobs/j1/applications", strings.NewReader(body))
	withSession(c, "u1")
	expectHTTPError(t, h.Submit(c), http.StatusUnprocessableEntity)
}

func TestApplicationHandler_ListMine(t *testing.T) {
	stub := &stubApplicationService{
		listMineFn: func(_ context.Context, userID string) ([]domain.ApplicationView, error) {
			return []domain.ApplicationView{{
				Application: domain.Application{ID: "a1", JobID: "j1", UserID: userID},
				JobTitle:    "Go Developer",
			}}, nil
		},
	}
	h := NewApplicationHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/v1/applications", nil)
	withSession(c, "u1")
	if err := h.ListMine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp applicationListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Applications) != 1 || resp.Applications[0].JobTitle != "Go Developer" {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
}

func TestApplicationHandler_ListMine_Empty(t *testing.T) {
	stub := &stubApplicationService{
		listMineFn: func(context.Context, string) ([]domain.ApplicationView, error) { return nil, nil },
	}
	h := NewApplicationHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/v1/applications", nil)
	withSession(c, "u1")
	if err := h.ListMine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"applications":[]`) {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestApplicationHandler_SetStatus(t *testing.T) {
	stub := &stubApplicationService{
		setStatusFn: func(_ context.Context, actorID, id string, status domain.ApplicationStatus) (*domain.Application, error) {
			if actorID != "admin" || id != "a1" || status != domain.ApplicationAccepted {
				t.Fatalf("unexpected args: %s %s %s", actorID, id, status)
			}
			return &domain.Application{ID: id, Status: status}, nil
		},
	}
	h := NewApplicationHandler(stub)

	c, rec := newTestContext(http.MethodPatch, "/v1/admin/applications/a1", strings.NewReader(`{"status":"accepted"}`))
	c.SetParamNames("id")
	c.SetParamValues("a1")
	withSession(c, "admin")
	if err := h.SetStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newTestContext(http.MethodPatch, "/v1/admin/applications/a1", strings.NewReader(`{"status":"hired"}`))
	withSession(c, "admin")
	expectHTTPError(t, h.SetStatus(c), http.StatusUnprocessableEntity)
}
