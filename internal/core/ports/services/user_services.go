package services

import (
	"context"

	"github.com/opentreso/treasury_app/internal/core/domain"
	"github.com/opentreso/treasury_app/internal/dto"
)

// UserSvcFacade manages staff users.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, actorID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, actorID string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string, actorID string) error

	// VerifyCredentials checks an email/password pair and returns the user on
	// success. Used by the token service.
	VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error)
}

// TokenSvcFacade issues access tokens for authenticated users.
type TokenSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
