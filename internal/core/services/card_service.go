package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/opentreso/treasury_app/internal/apperrors"
	"github.com/opentreso/treasury_app/internal/core/domain"
	portsrepo "github.com/opentreso/treasury_app/internal/core/ports/repositories"
	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
	"github.com/opentreso/treasury_app/internal/dto"
)

type cardService struct {
	BaseService
	cardRepo portsrepo.CardRepository
}

// NewCardService creates a new CardService.
func NewCardService(cardRepo portsrepo.CardRepository) portssvc.CardSvcFacade {
	return &cardService{cardRepo: cardRepo}
}

// Ensure cardService implements the portssvc.CardSvcFacade interface
var _ portssvc.CardSvcFacade = (*cardService)(nil)

func (s *cardService) CreateCard(ctx context.Context, req dto.CreateCardRequest, actorID string) (*domain.Card, error) {
	initialBalance, err := decimal.NewFromString(req.InitialBalance)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid initial balance %q", apperrors.ErrInvalidAmount, req.InitialBalance)
	}
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", apperrors.ErrInvalidAmount)
	}

	now := time.Now().UTC()
	card := domain.Card{
		CardID:         uuid.NewString(),
		Name:           req.Name,
		InitialBalance: initialBalance.Round(2),
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.cardRepo.SaveCard(ctx, card); err != nil {
		s.LogError(ctx, err, "Failed to save card", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save card: %w", err)
	}

	s.LogInfo(ctx, "Card created", slog.String("card_id", card.CardID))
	return &card, nil
}

func (s *cardService) GetCardByID(ctx context.Context, cardID string) (*domain.Card, error) {
	card, err := s.cardRepo.FindCardByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("card %s: %w", cardID, err)
	}
	return card, nil
}

func (s *cardService) ListCards(ctx context.Context, includeInactive bool) ([]domain.Card, error) {
	cards, err := s.cardRepo.ListCards(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

func (s *cardService) DeactivateCard(ctx context.Context, cardID string, actorID string) error {
	if err := s.cardRepo.SetCardActive(ctx, cardID, false, actorID); err != nil {
		return fmt.Errorf("failed to deactivate card %s: %w", cardID, err)
	}
	s.LogInfo(ctx, "Card deactivated", slog.String("card_id", cardID))
	return nil
}
