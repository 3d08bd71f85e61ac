package ports

import (
	"context"

	"github.com/talentboard/jobboard/internal/core/domain"
)

type ApplicationService interface {
	Submit(ctx context.Context, jobID, userID, coverLetter string) (*domain.Application, error)
	ListMine(ctx context.Context, userID string) ([]domain.ApplicationView, error)
	SetStatus(ctx context.Context, actorID, id string, status domain.ApplicationStatus) (*domain.Application, error)
}
