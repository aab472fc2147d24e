package ports

import (
	"context"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

// AuthService implements registration and login use cases.
type AuthService interface {
	// Register creates a new account with the default "user" role and
	// returns it. Duplicate emails yield domain.ErrEmailTaken.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login verifies the credentials and returns a signed bearer token
	// alongside the user. Unknown emails yield domain.ErrUserNotFound,
	// wrong passwords domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
