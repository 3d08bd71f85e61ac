package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/talentboard/jobboard/internal/core/domain"
	"github.com/talentboard/jobboard/internal/core/ports"
)

// AdminPolicy is the row-level rule guarding writes to jobs and application
// review: the caller's profile must carry the admin role. It always reads the
// role from the store, never from the caller.
type AdminPolicy struct {
	profiles ports.ProfileRepository
}

func NewAdminPolicy(profiles ports.ProfileRepository) *AdminPolicy {
	return &AdminPolicy{profiles: profiles}
}

// RequireAdmin returns domain.ErrUnauthorized without an actor and
// domain.ErrForbidden when the actor is not an admin.
func (p *AdminPolicy) RequireAdmin(ctx context.Context, actorID string) error {
	if actorID == "" {
		return domain.ErrUnauthorized
	}
	profile, err := p.profiles.FindByUserID(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return domain.ErrForbidden
		}
		return fmt.Errorf("admin policy: %w", err)
	}
	if !profile.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}
