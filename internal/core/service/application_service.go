package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/talentboard/jobboard/internal/core/domain"
	"github.com/talentboard/jobboard/internal/core/ports"
)

const maxCoverLetterRunes = 5000

type applicationService struct {
	apps   ports.ApplicationRepository
	jobs   ports.JobRepository
	policy *AdminPolicy
	log    zerolog.Logger
	now    func() time.Time
}

// NewApplicationService returns an ApplicationService implementation.
func NewApplicationService(
	apps ports.ApplicationRepository,
	jobs ports.JobRepository,
	policy *AdminPolicy,
	log zerolog.Logger,
) ports.ApplicationService {
	return &applicationService{apps: apps, jobs: jobs, policy: policy, log: log, now: time.Now}
}

// Submit records one application. A user may apply to a given job only once.
func (s *applicationService) Submit(ctx context.Context, jobID, userID, coverLetter string) (*domain.Application, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if jobID == "" {
		return nil, fmt.Errorf("%w: job id is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(coverLetter) > maxCoverLetterRunes {
		return nil, fmt.Errorf("%w: cover letter must be at most %d characters", domain.ErrValidation, maxCoverLetterRunes)
	}

	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		return nil, err
	}

	app := &domain.Application{
		ID:          uuid.NewString(),
		JobID:       jobID,
		UserID:      userID,
		CoverLetter: coverLetter,
		Status:      domain.ApplicationPending,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("submit application: %w", err)
	}

	s.log.Info().Str("application_id", app.ID).Str("job_id", jobID).Str("user_id", userID).Msg("application submitted")
	return app, nil
}

func (s *applicationService) ListMine(ctx context.Context, userID string) ([]domain.ApplicationView, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	views, err := s.apps.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return views, nil
}

// SetStatus lets an admin move an application between review states.
func (s *applicationService) SetStatus(ctx context.Context, actorID, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status must be one of: pending, accepted, rejected", domain.ErrValidation)
	}
	if err := s.policy.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if err := s.apps.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.apps.FindByID(ctx, id)
}
