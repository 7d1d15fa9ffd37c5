package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/opentreso/treasury_app/internal/apperrors"
	"github.com/opentreso/treasury_app/internal/core/domain"
	portsrepo "github.com/opentreso/treasury_app/internal/core/ports/repositories"
	portssvc "github.com/opentreso/treasury_app/internal/core/ports/services"
)

// reportingService is the balance and report aggregator. Balances are folded
// from the entry log on every read; the snapshot table only shortens the fold,
// it never replaces it as the source of truth.
type reportingService struct {
	BaseService
	reportingRepo   portsrepo.ReportingRepository
	bankAccountRepo portsrepo.BankAccountRepository
	tagRepo         portsrepo.TagRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(
	reportingRepo portsrepo.ReportingRepository,
	bankAccountRepo portsrepo.BankAccountRepository,
	tagRepo portsrepo.TagRepository,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo:   reportingRepo,
		bankAccountRepo: bankAccountRepo,
		tagRepo:         tagRepo,
	}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// balanceAt recomputes the balance for one scope: a bank account, or the
// organization-wide cash position when bankAccountID is nil. The returned
// watermark is the recorded-at of the newest entry folded; when nothing was
// folded it falls back to the base snapshot's AsOf.
func (s *reportingService) balanceAt(ctx context.Context, bankAccountID *string) (decimal.Decimal, time.Time, error) {
	base := decimal.Zero
	if bankAccountID != nil {
		account, err := s.bankAccountRepo.FindBankAccountByID(ctx, *bankAccountID)
		if err != nil {
			return decimal.Zero, time.Time{}, fmt.Errorf("bank account %s: %w", *bankAccountID, err)
		}
		base = account.InitialBalance
	}

	var asOf time.Time
	var recordedAfter *time.Time
	snapshot, err := s.reportingRepo.LatestSnapshot(ctx, bankAccountID)
	switch {
	case err == nil:
		base = snapshot.Balance
		asOf = snapshot.AsOf
		recordedAfter = &snapshot.AsOf
	case errors.Is(err, apperrors.ErrNotFound):
		// No checkpoint yet, fold the whole log.
	default:
		return decimal.Zero, time.Time{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var delta decimal.Decimal
	var latest *time.Time
	if bankAccountID != nil {
		delta, latest, err = s.reportingRepo.FoldBankEntries(ctx, *bankAccountID, recordedAfter)
	} else {
		delta, latest, err = s.reportingRepo.FoldCashEntries(ctx, recordedAfter)
	}
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("failed to fold entries: %w", err)
	}
	if latest != nil {
		asOf = *latest
	}
	return base.Add(delta), asOf, nil
}

// BankAccountBalance recomputes one account balance: initial balance plus the
// signed fold of its bank entries. When a snapshot exists the fold is
// restricted to entries recorded after it.
func (s *reportingService) BankAccountBalance(ctx context.Context, bankAccountID string) (decimal.Decimal, error) {
	balance, _, err := s.balanceAt(ctx, &bankAccountID)
	return balance, err
}

// CashBalance recomputes the organization-wide cash balance from all cash
// entries.
func (s *reportingService) CashBalance(ctx context.Context) (decimal.Decimal, error) {
	balance, _, err := s.balanceAt(ctx, nil)
	return balance, err
}

// CheckExposure returns the count and total of customer checks still in the
// safe.
func (s *reportingService) CheckExposure(ctx context.Context) (domain.CheckExposure, error) {
	exposure, err := s.reportingRepo.CheckExposure(ctx)
	if err != nil {
		return domain.CheckExposure{}, fmt.Errorf("failed to compute check exposure: %w", err)
	}
	return exposure, nil
}

func validateWindow(from, to time.Time) error {
	if to.Before(from) {
		return fmt.Errorf("%w: report window end precedes start", apperrors.ErrValidation)
	}
	return nil
}

// sumTotals folds signed amounts into the window totals. The closing balance
// equals the running balance of the last row by construction.
func sumTotals(inflow, outflow decimal.Decimal) domain.ReportTotals {
	net := inflow.Sub(outflow)
	return domain.ReportTotals{
		Inflow:         inflow,
		Outflow:        outflow,
		Net:            net,
		ClosingBalance: net,
	}
}

// DayBook builds the ordered window report. Rows come back from the repository
// already ordered by (effective date, recorded at); the running balance is a
// prefix sum over that order, starting at zero.
func (s *reportingService) DayBook(ctx context.Context, from, to time.Time) (*domain.DayBookReport, error) {
	if err := validateWindow(from, to); err != nil {
		return nil, err
	}
	entries, err := s.reportingRepo.ListEntriesByEffectiveWindow(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for day book: %w", err)
	}

	rows := make([]domain.DayBookRow, 0, len(entries))
	running := decimal.Zero
	inflow := decimal.Zero
	outflow := decimal.Zero
	for i := range entries {
		e := &entries[i]
		running = running.Add(e.SignedAmount())
		if e.Direction == domain.Inflow {
			inflow = inflow.Add(e.Amount)
		} else {
			outflow = outflow.Add(e.Amount)
		}
		rows = append(rows, domain.DayBookRow{
			EntryID:        e.EntryID,
			SequenceNo:     e.SequenceNo,
			Method:         e.Method,
			OperationKind:  e.OperationKind,
			Direction:      e.Direction,
			Amount:         e.Amount,
			EffectiveDate:  e.EffectiveDate,
			RecordedAt:     e.RecordedAt,
			Description:    e.Description,
			RunningBalance: running,
		})
	}

	return &domain.DayBookReport{
		Period: domain.ReportPeriod{From: from, To: to},
		Rows:   rows,
		Totals: sumTotals(inflow, outflow),
	}, nil
}

// LedgerReport builds the full report: same ordering and prefix-sum rule as
// the day book, plus resolved reference names and attached tags.
func (s *reportingService) LedgerReport(ctx context.Context, from, to time.Time) (*domain.LedgerReport, error) {
	if err := validateWindow(from, to); err != nil {
		return nil, err
	}
	rows, err := s.reportingRepo.ListLedgerRows(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger rows: %w", err)
	}

	entryIDs := make([]string, len(rows))
	for i := range rows {
		entryIDs[i] = rows[i].EntryID
	}
	tagsByEntry := map[string][]domain.Tag{}
	if len(entryIDs) > 0 {
		tagsByEntry, err = s.tagRepo.FindTagsByEntryIDs(ctx, entryIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tags for ledger report: %w", err)
		}
	}

	running := decimal.Zero
	inflow := decimal.Zero
	outflow := decimal.Zero
	for i := range rows {
		row := &rows[i]
		signed := row.Amount
		if row.Direction == domain.Outflow {
			signed = signed.Neg()
			outflow = outflow.Add(row.Amount)
		} else {
			inflow = inflow.Add(row.Amount)
		}
		running = running.Add(signed)
		row.RunningBalance = running
		row.Tags = tagsByEntry[row.EntryID]
	}

	return &domain.LedgerReport{
		Period: domain.ReportPeriod{From: from, To: to},
		Rows:   rows,
		Totals: sumTotals(inflow, outflow),
	}, nil
}

// CreateBalanceSnapshot checkpoints the current balance so later reads fold a
// shorter window. AsOf is the recorded-at of the newest entry the checkpoint
// folded, so an entry committing concurrently is either inside the snapshot
// and skipped by later folds, or outside and folded again, never both.
func (s *reportingService) CreateBalanceSnapshot(ctx context.Context, bankAccountID *string, actorID string) (*domain.BalanceSnapshot, error) {
	balance, asOf, err := s.balanceAt(ctx, bankAccountID)
	if err != nil {
		return nil, err
	}

	snapshot := domain.BalanceSnapshot{
		SnapshotID:    uuid.NewString(),
		BankAccountID: bankAccountID,
		Balance:       balance,
		AsOf:          asOf,
		CreatedAt:     time.Now().UTC(),
		CreatedBy:     actorID,
	}
	if err := s.reportingRepo.SaveSnapshot(ctx, snapshot); err != nil {
		s.LogError(ctx, err, "Failed to save balance snapshot")
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.LogInfo(ctx, "Balance snapshot created",
		slog.String("snapshot_id", snapshot.SnapshotID),
		slog.String("balance", balance.String()))
	return &snapshot, nil
}
