package services

import (
	"context"

	"github.com/opentreso/treasury_app/internal/core/domain"
	"github.com/opentreso/treasury_app/internal/dto"
)

// CheckSvcFacade is the instrument lifecycle state machine. Every transition
// appends an immutable move; settlement additionally books the linked ledger
// entry in the same database transaction.
type CheckSvcFacade interface {
	// ReceiveCheck registers a customer check into the safe (status IN_SAFE).
	ReceiveCheck(ctx context.Context, req dto.ReceiveCheckRequest, actorID string) (*domain.Check, error)

	// IssueCheck registers a check the organization writes (status ISSUED).
	IssueCheck(ctx context.Context, req dto.IssueCheckRequest, actorID string) (*domain.Check, error)

	// EndorseCheck hands an IN_SAFE check to a supplier (status ENDORSED).
	EndorseCheck(ctx context.Context, checkID string, req dto.EndorseCheckRequest, actorID string) (*domain.Check, error)

	// SettleCheck marks a check PAID and creates the check-settlement entry.
	// A check already PAID fails with apperrors.ErrAlreadyPaid.
	SettleCheck(ctx context.Context, checkID string, req dto.SettleCheckRequest, actorID string) (*domain.Check, *domain.Entry, error)

	GetCheckByID(ctx context.Context, checkID string) (*domain.Check, error)
	ListChecks(ctx context.Context, params dto.ListChecksParams) ([]domain.Check, *string, error)
}
