package ports

import (
	"context"
	"time"

	"github.com/talentboard/jobboard/internal/core/domain"
)

// JobQuery is the server-side predicate for listing jobs.
type JobQuery struct {
	Status domain.JobStatus // empty = any status
	// ListedAt, when non-zero, keeps only jobs without expiry or expiring at or after it.
	ListedAt      time.Time
	OrderByExpiry bool // expires_at ascending; otherwise created_at descending
}

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	List(ctx context.Context, q JobQuery) ([]domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	Create(ctx context.Context, j *domain.Job) error
	// Update replaces the stored job with the same ID; domain.ErrJobNotFound if absent.
	Update(ctx context.Context, j *domain.Job) error
	// Delete removes by id; domain.ErrJobNotFound if absent.
	Delete(ctx context.Context, id string) error
}
