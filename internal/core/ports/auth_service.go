package ports

import (
	"context"

	"github.com/talentboard/jobboard/internal/core/domain"
)

// AuthResult is returned by sign-up and sign-in.
type AuthResult struct {
	Token   string
	User    *domain.User
	Session *domain.Session
}

type AuthService interface {
	SignUp(ctx context.Context, email, password string) (*AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	SignOut(ctx context.Context, session domain.Session) error
	// Authenticate verifies a bearer token and returns the session it carries.
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
}
