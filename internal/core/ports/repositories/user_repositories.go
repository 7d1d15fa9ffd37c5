package repositories

import (
	"context"

	"github.com/opentreso/treasury_app/internal/core/domain"
)

// UserWithCredentials carries the password hash alongside the domain user for
// the authentication flow. It never leaves the service layer.
type UserWithCredentials struct {
	domain.User
	PasswordHash string
}

// UserRepository defines persistence operations for application users.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User, passwordHash string) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*UserWithCredentials, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	// MarkUserDeleted soft-deletes a user; their past entries keep the actor id.
	MarkUserDeleted(ctx context.Context, userID string, deletedBy string) error
}
