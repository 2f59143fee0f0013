package ports

import (
	"context"

	"github.com/healthhabits/habit-tracker/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Authenticate returns a signed session token and the user's id.
	Authenticate(ctx context.Context, username, password string) (string, string, error)
}
