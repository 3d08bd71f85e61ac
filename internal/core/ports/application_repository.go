package ports

import (
	"context"

	"github.com/talentboard/jobboard/internal/core/domain"
)

// ApplicationRepository defines persistence for job applications.
type ApplicationRepository interface {
	// Create returns domain.ErrAlreadyApplied when the user already applied to the job.
	Create(ctx context.Context, a *domain.Application) error
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	// ListByUser returns the user's applications joined with their job, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.ApplicationView, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error
	// DeleteByJob removes every application to a job and reports how many went.
	DeleteByJob(ctx context.Context, jobID string) (int64, error)
}
