package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentboard/jobboard/internal/core/domain"
	"github.com/talentboard/jobboard/internal/core/ports"
)

const minPasswordLength = 6

// AuthService implements sign-up, sign-in, sign-out and token verification.
type AuthService struct {
	users       ports.AuthRepository
	profiles    ports.ProfileRepository
	sessions    ports.SessionStore
	required    domain.RequiredFields
	adminEmails map[string]struct{}
	jwtSecret   string
	tokenTTL    time.Duration
	log         zerolog.Logger
	now         func() time.Time
}

// AuthOptions groups the tunables of AuthService.
type AuthOptions struct {
	JWTSecret string
	TokenTTL  time.Duration
	// AdminEmails receive the admin role on sign-up.
	AdminEmails    []string
	RequiredFields domain.RequiredFields
}

func NewAuthService(
	users ports.AuthRepository,
	profiles ports.ProfileRepository,
	sessions ports.SessionStore,
	opts AuthOptions,
	log zerolog.Logger,
) *AuthService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	admins := make(map[string]struct{}, len(opts.AdminEmails))
	for _, e := range opts.AdminEmails {
		admins[normalizeEmail(e)] = struct{}{}
	}
	return &AuthService{
		users:       users,
		profiles:    profiles,
		sessions:    sessions,
		required:    opts.RequiredFields,
		adminEmails: admins,
		jwtSecret:   opts.JWTSecret,
		tokenTTL:    opts.TokenTTL,
		log:         log,
		now:         time.Now,
	}
}

// SignUp creates the identity record plus an initial, incomplete profile.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: email must be a valid address", domain.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	role := domain.RoleCandidate
	if _, ok := s.adminEmails[email]; ok {
		role = domain.RoleAdmin
	}
	profile := &domain.Profile{
		UserID:    user.ID,
		Email:     email,
		Role:      role,
		Skills:    []string{},
		Languages: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	profile.IsComplete = s.required.IsComplete(profile)
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to create initial profile")
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("user signed up")
	return s.issue(user)
}

// SignIn checks the password and returns a fresh token. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(user)
}

// SignOut revokes the session's token for the rest of its lifetime.
func (s *AuthService) SignOut(ctx context.Context, session domain.Session) error {
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 || session.TokenID == "" || s.sessions == nil {
		return nil
	}
	if err := s.sessions.Revoke(ctx, session.TokenID, ttl); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	s.log.Info().Str("user_id", session.UserID).Msg("user signed out")
	return nil
}

// Authenticate parses and verifies a bearer token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthorized
	}

	sub, _ := claims.GetSubject()
	jti, _ := claims["jti"].(string)
	email, _ := claims["email"].(string)
	exp, _ := claims.GetExpirationTime()
	if sub == "" || jti == "" || exp == nil {
		return nil, domain.ErrUnauthorized
	}

	if s.sessions != nil {
		revoked, err := s.sessions.IsRevoked(ctx, jti)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, domain.ErrUnauthorized
		}
	}

	return &domain.Session{
		UserID:    sub,
		Email:     email,
		TokenID:   jti,
		ExpiresAt: exp.Time.UTC(),
	}, nil
}

func (s *AuthService) issue(user *domain.User) (*ports.AuthResult, error) {
	now := s.now()
	session := &domain.Session{
		UserID:    user.ID,
		Email:     user.Email,
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(s.tokenTTL).UTC().Truncate(time.Second),
	}

	claims := jwt.MapClaims{
		"sub":   session.UserID,
		"email": session.Email,
		"jti":   session.TokenID,
		"iat":   now.Unix(),
		"exp":   session.ExpiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{Token: token, User: user, Session: session}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
