package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/talentboard/jobboard/internal/core/ports"
)

type jobEventService struct {
	apps ports.ApplicationRepository
	log  zerolog.Logger
}

// NewJobEventService returns the handler for job lifecycle events.
func NewJobEventService(apps ports.ApplicationRepository, log zerolog.Logger) ports.JobEventService {
	return &jobEventService{apps: apps, log: log}
}

// Process applies the side effects of a lifecycle event.
func (s *jobEventService) Process(ctx context.Context, ev ports.JobEvent) error {
	switch ev.Kind {
	case ports.JobDeleted:
		n, err := s.apps.DeleteByJob(ctx, ev.JobID)
		if err != nil {
			return fmt.Errorf("process %s: %w", ev.Kind, err)
		}
		s.log.Info().Str("job_id", ev.JobID).Int64("applications_removed", n).Msg("job applications cleaned up")
		return nil
	default:
		return fmt.Errorf("process event: unknown kind %q", ev.Kind)
	}
}
