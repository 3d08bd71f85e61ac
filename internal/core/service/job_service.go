package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/talentboard/jobboard/internal/core/domain"
	"github.com/talentboard/jobboard/internal/core/ports"
	"github.com/talentboard/jobboard/pkg/logger"
)

// JobEventPublisher abstracts the asynchronous lifecycle queue.
type JobEventPublisher interface {
	Enqueue(event ports.JobEvent)
}

type JobService struct {
	repo   ports.JobRepository
	policy *AdminPolicy
	events JobEventPublisher
	logger zerolog.Logger
	now    func() time.Time
}

func NewJobService(repo ports.JobRepository, policy *AdminPolicy, events JobEventPublisher, logger zerolog.Logger) *JobService {
	return &JobService{repo: repo, policy: policy, events: events, logger: logger, now: time.Now}
}

// ListPublic returns active, unexpired postings ordered by expiry, narrowed by filter.
func (s *JobService) ListPublic(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	jobs, err := s.repo.List(ctx, ports.JobQuery{
		Status:        domain.JobStatusActive,
		ListedAt:      s.now().UTC(),
		OrderByExpiry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return domain.FilterJobs(jobs, filter), nil
}

// GetPublic returns a posting only while it is publicly listed.
func (s *JobService) GetPublic(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !job.Listed(s.now().UTC()) {
		return nil, domain.ErrJobNotFound
	}
	return job, nil
}

// Get returns a posting regardless of status.
func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	return s.repo.FindByID(ctx, id)
}

// ListAll returns every posting for the admin dashboard.
func (s *JobService) ListAll(ctx context.Context, actorID string) ([]domain.Job, error) {
	if err := s.policy.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	jobs, err := s.repo.List(ctx, ports.JobQuery{OrderByExpiry: true})
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (s *JobService) Create(ctx context.Context, actorID string, draft domain.JobDraft) (*domain.Job, error) {
	now := s.now().UTC()
	draft = draft.Normalize()
	if err := draft.Validate(now); err != nil {
		return nil, err
	}
	if err := s.policy.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	job := &domain.Job{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	draft.Apply(job)

	if err := s.repo.Create(ctx, job); err != nil {
		l := logger.FromContext(ctx, s.logger)
		l.Error().Err(err).Msg("failed to create job")
		return nil, fmt.Errorf("create job: %w", err)
	}

	l := logger.FromContext(ctx, s.logger)

	l.Info().Str("job_id", job.ID).Str("actor", actorID).Msg("job created")
	return job, nil
}

// Update overwrites the posting's writable fields. Concurrent edits are last-write-wins.
func (s *JobService) Update(ctx context.Context, actorID, id string, draft domain.JobDraft) (*domain.Job, error) {
	now := s.now().UTC()
	draft = draft.Normalize()
	if err := draft.Validate(now); err != nil {
		return nil, err
	}
	if err := s.policy.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	draft.Apply(job)
	job.UpdatedAt = now

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}

	l := logger.FromContext(ctx, s.logger)

	l.Info().Str("job_id", id).Str("actor", actorID).Str("status", string(job.Status)).Msg("job updated")
	return job, nil
}

// Delete removes the posting and schedules cleanup of its applications.
func (s *JobService) Delete(ctx context.Context, actorID, id string) error {
	if err := s.policy.RequireAdmin(ctx, actorID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}

	if s.events != nil {
		s.events.Enqueue(ports.JobEvent{JobID: id, Kind: ports.JobDeleted, OccurredAt: s.now().UTC()})
	}
	l := logger.FromContext(ctx, s.logger)
	l.Info().Str("job_id", id).Str("actor", actorID).Msg("job deleted")
	return nil
}
