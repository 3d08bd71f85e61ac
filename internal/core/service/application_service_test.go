package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentboard/jobboard/internal/core/domain"
	"github.com/talentboard/jobboard/internal/core/ports"
)

type stubApplicationRepo struct {
	apps      map[string]*domain.Application
	jobs      *stubJobRepo
	deleteErr error
}

func newStubApplicationRepo(jobs *stubJobRepo) *stubApplicationRepo {
	return &stubApplicationRepo{apps: make(map[string]*domain.Application), jobs: jobs}
}

func (r *stubApplicationRepo) Create(_ context.Context, a *domain.Application) error {
	for _, existing := range r.apps {
		if existing.JobID == a.JobID && existing.UserID == a.UserID {
			return domain.ErrAlreadyApplied
		}
	}
	clone := *a
	r.apps[a.ID] = &clone
	return nil
}

func (r *stubApplicationRepo) FindByID(_ context.Context, id string) (*domain.Application, error) {
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubApplicationRepo) ListByUser(_ context.Context, userID string) ([]domain.ApplicationView, error) {
	var out []domain.ApplicationView
	for _, a := range r.apps {
		if a.UserID != userID {
			continue
		}
		v := domain.ApplicationView{Application: *a}
		if j, ok := r.jobs.jobs[a.JobID]; ok {
			v.JobTitle = j.Title
			v.JobCompany = j.Company
			v.JobLocation = j.Location
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *stubApplicationRepo) UpdateStatus(_ context.Context, id string, status domain.ApplicationStatus) error {
	a, ok := r.apps[id]
	if !ok {
		return domain.ErrApplicationNotFound
	}
	a.Status = status
	return nil
}

func (r *stubApplicationRepo) DeleteByJob(_ context.Context, jobID string) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	var n int64
	for id, a := range r.apps {
		if a.JobID == jobID {
			delete(r.apps, id)
			n++
		}
	}
	return n, nil
}

func newTestApplicationService() (ports.ApplicationService, *stubApplicationRepo) {
	jobs := newStubJobRepo(domain.Job{ID: "j1", Title: "Go Engineer", Company: "Acme", Location: "Remote", Status: domain.JobStatusActive})
	apps := newStubApplicationRepo(jobs)
	svc := NewApplicationService(apps, jobs, NewAdminPolicy(adminProfiles()), zerolog.Nop())
	svc.(*applicationService).now = func() time.Time { return testNow }
	return svc, apps
}

// A candidate with a complete profile applies and sees the application listed.
func TestApplicationService_Submit_AndListMine(t *testing.T) {
	svc, _ := newTestApplicationService()

	app, err := svc.Submit(context.Background(), "j1", "cand", "Hello")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if app.Status != domain.ApplicationPending || app.CoverLetter != "Hello" {
		t.Fatalf("unexpected application: %+v", app)
	}
	if !app.CreatedAt.Equal(testNow) {
		t.Fatalf("unexpected created_at: %v", app.CreatedAt)
	}

	views, err := svc.ListMine(context.Background(), "cand")
	if err != nil {
		t.Fatalf("ListMine returned error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected one application, got %d", len(views))
	}
	if views[0].JobTitle != "Go Engineer" || views[0].Status != domain.ApplicationPending {
		t.Fatalf("unexpected view: %+v", views[0])
	}
}

func TestApplicationService_Submit_Duplicate(t *testing.T) {
	svc, apps := newTestApplicationService()

	if _, err := svc.Submit(context.Background(), "j1", "cand", ""); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := svc.Submit(context.Background(), "j1", "cand", "again"); !errors.Is(err, domain.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
	if len(apps.apps) != 1 {
		t.Fatalf("expected a single stored application, got %d", len(apps.apps))
	}
}

func TestApplicationService_Submit_Validation(t *testing.T) {
	svc, _ := newTestApplicationService()

	if _, err := svc.Submit(context.Background(), "j1", "", "x"); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Submit(context.Background(), "", "cand", "x"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing job, got %v", err)
	}
	if _, err := svc.Submit(context.Background(), "j1", "cand", strings.Repeat("a", maxCoverLetterRunes+1)); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for long cover letter, got %v", err)
	}
	if _, err := svc.Submit(context.Background(), "nope", "cand", "x"); err != domain.ErrJobNotFound {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestApplicationService_SetStatus(t *testing.T) {
	svc, _ := newTestApplicationService()

	app, err := svc.Submit(context.Background(), "j1", "cand", "")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := svc.SetStatus(context.Background(), "cand", app.ID, domain.ApplicationAccepted); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for candidate, got %v", err)
	}
	if _, err := svc.SetStatus(context.Background(), "admin", app.ID, "hired"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown status, got %v", err)
	}

	updated, err := svc.SetStatus(context.Background(), "admin", app.ID, domain.ApplicationAccepted)
	if err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}
	if updated.Status != domain.ApplicationAccepted {
		t.Fatalf("expected accepted, got %s", updated.Status)
	}

	if _, err := svc.SetStatus(context.Background(), "admin", "missing", domain.ApplicationRejected); err != domain.ErrApplicationNotFound {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestApplicationService_ListMine_RequiresUser(t *testing.T) {
	svc, _ := newTestApplicationService()

	if _, err := svc.ListMine(context.Background(), ""); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
