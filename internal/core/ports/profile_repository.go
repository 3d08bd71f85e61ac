package ports

import (
	"context"

	"github.com/talentboard/jobboard/internal/core/domain"
)

// ProfileRepository reads and writes the single profile owned by a user.
type ProfileRepository interface {
	// FindByUserID returns domain.ErrProfileNotFound when the user has no profile.
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	// Upsert writes p keyed by p.UserID, creating it when absent.
	Upsert(ctx context.Context, p *domain.Profile) error
}
