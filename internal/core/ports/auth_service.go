package ports

import (
	"context"

	"github.com/bizboard/backoffice/internal/core/domain"
)

// RegisterInput carries everything needed to create an account.
type RegisterInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Role       string
	Department string
}

// AuthService implements the session lifecycle: credentials in, token pair
// out, refresh rotation, revocation.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, domain.TokenPair, error)
	Login(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
