package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
	"github.com/opentreso/treasury_app/internal/dto"
	"github.com/opentreso/treasury_app/internal/utils"
)

// TokenServiceConfig carries the signing parameters for issued access tokens.
type TokenServiceConfig struct {
	Secret         string
	ExpiryDuration time.Duration
	Issuer         string
}

type tokenService struct {
	BaseService
	cfg     TokenServiceConfig
	userSvc portssvc.UserSvcFacade
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg TokenServiceConfig, userSvc portssvc.UserSvcFacade) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, userSvc: userSvc}
}

// Ensure tokenService implements the portssvc.TokenSvcFacade interface
var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

func (s *tokenService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userSvc.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := utils.GenerateJWT(user.UserID, s.cfg.Secret, s.cfg.ExpiryDuration, s.cfg.Issuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	}, nil
}
