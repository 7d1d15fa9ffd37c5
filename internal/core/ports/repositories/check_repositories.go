package repositories

import (
	"context"

	"github.com/opentreso/treasury_app/internal/core/domain"
)

// CheckReader defines read operations for checks and their moves.
type CheckReader interface {
	// FindCheckByID retrieves a check with its attachment populated.
	FindCheckByID(ctx context.Context, checkID string) (*domain.Check, error)

	// FindCheckBySerial retrieves a check by its unique serial number.
	FindCheckBySerial(ctx context.Context, serialNumber string) (*domain.Check, error)

	// ListChecks retrieves a token-paginated list of checks, optionally filtered
	// by status, newest first.
	ListChecks(ctx context.Context, status *domain.CheckStatus, limit int, nextToken *string) ([]domain.Check, *string, error)

	// FindMovesByCheckID retrieves the append-only move log of a check in
	// chronological order.
	FindMovesByCheckID(ctx context.Context, checkID string) ([]domain.CheckMove, error)
}

// CheckWriter defines write operations for checks. Every method that touches
// more than one row runs inside a single database transaction.
type CheckWriter interface {
	// CreateCheck persists a new check, its initial move and optional attachment.
	CreateCheck(ctx context.Context, check domain.Check, move domain.CheckMove, attachment *domain.Attachment) error

	// TransitionCheck moves a check from one status to another, appending the
	// move, guarded by a conditional update on the prior status. It returns
	// apperrors.ErrInvalidTransition when the check is no longer in from.
	TransitionCheck(ctx context.Context, checkID string, from, to domain.CheckStatus, move domain.CheckMove) error

	// SettleCheck atomically marks a check PAID, inserts the check-settlement
	// ledger entry and appends the payment move. The status update is guarded
	// by the prior status the caller observed; a concurrent loser gets
	// apperrors.ErrAlreadyPaid and writes nothing. Returns the settlement
	// entry with its sequence number.
	SettleCheck(ctx context.Context, checkID string, from domain.CheckStatus, entry domain.Entry, move domain.CheckMove) (*domain.Entry, error)
}

// CheckRepositoryFacade combines all check repository interfaces.
type CheckRepositoryFacade interface {
	CheckReader
	CheckWriter
}
