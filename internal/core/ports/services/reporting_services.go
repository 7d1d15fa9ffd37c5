package services

import (
	"context"
	"time"

	"github.com/opentreso/treasury_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingSvcFacade is the balance and report aggregator. It never writes
// ledger entries; balances are recomputed on every read so they cannot drift
// from the log.
type ReportingSvcFacade interface {
	// BankAccountBalance recomputes one account's balance: initial balance plus
	// the signed fold of its bank entries (via the latest snapshot when one
	// exists).
	BankAccountBalance(ctx context.Context, bankAccountID string) (decimal.Decimal, error)

	// CashBalance recomputes the organization-wide cash balance.
	CashBalance(ctx context.Context) (decimal.Decimal, error)

	// CheckExposure returns the "checks awaiting collection" figure.
	CheckExposure(ctx context.Context) (domain.CheckExposure, error)

	// DayBook builds the ordered window report with running balances.
	DayBook(ctx context.Context, from, to time.Time) (*domain.DayBookReport, error)

	// LedgerReport builds the full report with tags and resolved names.
	LedgerReport(ctx context.Context, from, to time.Time) (*domain.LedgerReport, error)

	// CreateBalanceSnapshot checkpoints the current balance of a bank account
	// (nil selects cash) as a read optimization.
	CreateBalanceSnapshot(ctx context.Context, bankAccountID *string, actorID string) (*domain.BalanceSnapshot, error)
}
