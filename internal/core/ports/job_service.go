package ports

import (
	"context"

	"github.com/talentboard/jobboard/internal/core/domain"
)

// JobService defines use-case operations for postings. Write operations take
// the acting user's id and enforce the admin policy themselves.
type JobService interface {
	ListPublic(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error)
	GetPublic(ctx context.Context, id string) (*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	ListAll(ctx context.Context, actorID string) ([]domain.Job, error)
	Create(ctx context.Context, actorID string, draft domain.JobDraft) (*domain.Job, error)
	Update(ctx context.Context, actorID, id string, draft domain.JobDraft) (*domain.Job, error)
	Delete(ctx context.Context, actorID, id string) error
}
