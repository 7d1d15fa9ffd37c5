package repositories

import (
	"context"
	"time"

	"github.com/opentreso/treasury_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines the read-only aggregation queries behind the
// balance and report services. It never writes ledger entries; its only write
// is the optional balance snapshot checkpoint.
type ReportingRepository interface {
	// FoldBankEntries returns the signed sum (inflow minus outflow) of bank
	// entries for one account, restricted to entries recorded after the given
	// time when it is non-nil. The second result is the recorded-at of the
	// newest entry folded, nil when the fold covered no entries.
	FoldBankEntries(ctx context.Context, bankAccountID string, recordedAfter *time.Time) (decimal.Decimal, *time.Time, error)

	// FoldCashEntries returns the signed sum of all cash entries, organization
	// wide, restricted to entries recorded after the given time when non-nil.
	// The second result is the recorded-at of the newest entry folded.
	FoldCashEntries(ctx context.Context, recordedAfter *time.Time) (decimal.Decimal, *time.Time, error)

	// CheckExposure returns count and sum of IN_SAFE checks held against
	// customer contacts.
	CheckExposure(ctx context.Context) (domain.CheckExposure, error)

	// ListEntriesByEffectiveWindow returns entries whose effective date falls in
	// [from, to], ordered by (effective date asc, recorded at asc). The running
	// balance column downstream is a prefix sum over this exact order.
	ListEntriesByEffectiveWindow(ctx context.Context, from, to time.Time) ([]domain.Entry, error)

	// ListLedgerRows returns the same ordered window with bank account, card and
	// contact names resolved. Tags are attached separately by the service.
	ListLedgerRows(ctx context.Context, from, to time.Time) ([]domain.LedgerReportRow, error)

	// LatestSnapshot returns the most recent balance snapshot for a bank account
	// (nil bankAccountID selects the cash snapshot), or ErrNotFound.
	LatestSnapshot(ctx context.Context, bankAccountID *string) (*domain.BalanceSnapshot, error)

	// SaveSnapshot persists a balance checkpoint.
	SaveSnapshot(ctx context.Context, snapshot domain.BalanceSnapshot) error
}
