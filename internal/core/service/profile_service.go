package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentboard/jobboard/internal/core/domain"
	"github.com/talentboard/jobboard/internal/core/ports"
)

// MaxAvatarSize caps avatar uploads at 2 MiB.
const MaxAvatarSize = 2 << 20

type profileService struct {
	repo     ports.ProfileRepository
	storage  ports.AvatarStorage
	required domain.RequiredFields
	log      zerolog.Logger
	now      func() time.Time
}

// NewProfileService returns a ProfileService that evaluates completeness
// against the given required-field set.
func NewProfileService(
	repo ports.ProfileRepository,
	storage ports.AvatarStorage,
	required domain.RequiredFields,
	log zerolog.Logger,
) ports.ProfileService {
	return &profileService{
		repo:     repo,
		storage:  storage,
		required: required,
		log:      log,
		now:      time.Now,
	}
}

// Get loads the user's profile. A user without one gets a nil profile that is
// missing every required field.
func (s *profileService) Get(ctx context.Context, userID string) (*ports.ProfileStatus, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return s.status(nil), nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return s.status(p), nil
}

// Save upserts the profile and persists the freshly evaluated completeness.
func (s *profileService) Save(ctx context.Context, userID string, in ports.ProfileInput) (*ports.ProfileStatus, error) {
	existing, err := s.repo.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	now := s.now().UTC()
	p := &domain.Profile{UserID: userID, Role: domain.RoleCandidate, CreatedAt: now}
	if existing != nil {
		p.Role = existing.Role
		p.CreatedAt = existing.CreatedAt
	}

	role, err := resolveRole(p.Role, in.Role)
	if err != nil {
		return nil, err
	}

	applyInput(p, in)
	p.Role = role
	p.UpdatedAt = now
	p.IsComplete = s.required.IsComplete(p)

	if err := s.repo.Upsert(ctx, p); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to save profile")
		return nil, fmt.Errorf("save profile: %w", err)
	}

	st := s.status(p)
	s.log.Info().
		Str("user_id", userID).
		Bool("complete", st.Complete).
		Strs("missing", st.Missing).
		Msg("profile saved")
	return st, nil
}

// Evaluate runs the completeness check over an unsaved draft.
func (s *profileService) Evaluate(in ports.ProfileInput) *ports.ProfileStatus {
	p := &domain.Profile{Role: domain.NormalizeRole(strings.TrimSpace(in.Role))}
	applyInput(p, in)
	return s.status(p)
}

func (s *profileService) RoleOf(ctx context.Context, userID string) (domain.Role, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return p.Role, nil
}

// UploadAvatar stores the image and points the profile at its public URL.
func (s *profileService) UploadAvatar(ctx context.Context, userID string, up ports.AvatarUpload) (string, error) {
	if !strings.HasPrefix(up.ContentType, "image/") {
		return "", fmt.Errorf("%w: avatar must be an image", domain.ErrValidation)
	}
	if up.Size <= 0 || up.Size > MaxAvatarSize {
		return "", fmt.Errorf("%w: avatar must be between 1 byte and 2 MiB", domain.ErrValidation)
	}

	now := s.now().UTC()
	name := fmt.Sprintf("%s-%d%s", userID, now.UnixNano(), strings.ToLower(path.Ext(up.Filename)))
	url, err := s.storage.Upload(ctx, name, up.ContentType, up.Content)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	p, err := s.repo.FindByUserID(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		p = &domain.Profile{UserID: userID, Role: domain.RoleCandidate, CreatedAt: now}
	case err != nil:
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	p.AvatarURL = url
	p.UpdatedAt = now
	p.IsComplete = s.required.IsComplete(p)
	if err := s.repo.Upsert(ctx, p); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	s.log.Info().Str("user_id", userID).Str("path", name).Msg("avatar uploaded")
	return url, nil
}

func (s *profileService) status(p *domain.Profile) *ports.ProfileStatus {
	missing := s.required.Missing(p)
	if p != nil {
		p.IsComplete = len(missing) == 0
	}
	return &ports.ProfileStatus{
		Profile:    p,
		Missing:    missing,
		Complete:   len(missing) == 0,
		Completion: s.required.Completion(p),
	}
}

// resolveRole decides the role a save may set. An empty request keeps the
// current role, and only an existing admin may hold the admin role.
func resolveRole(current domain.Role, requested string) (domain.Role, error) {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return current, nil
	}
	role := domain.NormalizeRole(requested)
	if !role.Valid() {
		return "", fmt.Errorf("%w: role must be one of: candidate, recruiter, client, admin", domain.ErrValidation)
	}
	if role == domain.RoleAdmin && current != domain.RoleAdmin {
		return "", domain.ErrForbidden
	}
	return role, nil
}

// applyInput copies the submitted values as is. Completeness follows what the
// user typed, so a list with any entry counts as present.
func applyInput(p *domain.Profile, in ports.ProfileInput) {
	p.FirstName = in.FirstName
	p.LastName = in.LastName
	p.Email = in.Email
	p.Phone = in.Phone
	p.Country = in.Country
	p.City = in.City
	p.Address = in.Address
	p.Bio = in.Bio
	p.Company = in.Company
	p.Position = in.Position
	p.Skills = listOrEmpty(in.Skills)
	p.Languages = listOrEmpty(in.Languages)
	p.AvatarURL = in.AvatarURL
	p.PortfolioURL = in.PortfolioURL
	p.LinkedInURL = in.LinkedInURL
	p.GitHubURL = in.GitHubURL
	p.TwitterURL = in.TwitterURL
	p.InstagramURL = in.InstagramURL
	p.WebsiteURL = in.WebsiteURL
}

func listOrEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
