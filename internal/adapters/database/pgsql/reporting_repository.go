package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/opentreso/treasury_app/internal/apperrors"
	"github.com/opentreso/treasury_app/internal/core/domain"
	portsrepo "github.com/opentreso/treasury_app/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// NewReportingRepository creates a new repository for balance and report
// aggregation queries.
func NewReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// FoldBankEntries returns the signed sum of bank entries for one account and
// the recorded-at of the newest entry folded.
func (r *PgxReportingRepository) FoldBankEntries(ctx context.Context, bankAccountID string, recordedAfter *time.Time) (decimal.Decimal, *time.Time, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN direction = 'IN' THEN amount ELSE -amount END), 0), MAX(recorded_at)
		FROM entries
		WHERE method = 'BANK' AND bank_account_id = $1
	`
	args := []any{bankAccountID}
	if recordedAfter != nil {
		query += ` AND recorded_at > $2`
		args = append(args, *recordedAfter)
	}

	var sum decimal.Decimal
	var latest *time.Time
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&sum, &latest); err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to fold bank entries for account %s: %w", bankAccountID, err)
	}
	return sum, latest, nil
}

// FoldCashEntries returns the signed sum of all cash entries and the
// recorded-at of the newest entry folded.
func (r *PgxReportingRepository) FoldCashEntries(ctx context.Context, recordedAfter *time.Time) (decimal.Decimal, *time.Time, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN direction = 'IN' THEN amount ELSE -amount END), 0), MAX(recorded_at)
		FROM entries
		WHERE method = 'CASH'
	`
	args := []any{}
	if recordedAfter != nil {
		query += ` AND recorded_at > $1`
		args = append(args, *recordedAfter)
	}

	var sum decimal.Decimal
	var latest *time.Time
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&sum, &latest); err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to fold cash entries: %w", err)
	}
	return sum, latest, nil
}

// CheckExposure returns count and sum of customer checks still held in the
// safe.
func (r *PgxReportingRepository) CheckExposure(ctx context.Context) (domain.CheckExposure, error) {
	var exposure domain.CheckExposure
	err := r.Pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(c.amount), 0)
		FROM checks c
		JOIN contacts ct ON ct.contact_id = c.contact_id
		WHERE c.status = $1 AND ct.type = $2;
	`, string(domain.CheckInSafe), string(domain.ContactCustomer)).Scan(&exposure.Count, &exposure.Total)
	if err != nil {
		return domain.CheckExposure{}, fmt.Errorf("failed to compute check exposure: %w", err)
	}
	return exposure, nil
}

// ListEntriesByEffectiveWindow returns the report window ordered by
// (effective_date, recorded_at). The running balance downstream is a prefix
// sum over this exact order.
func (r *PgxReportingRepository) ListEntriesByEffectiveWindow(ctx context.Context, from, to time.Time) ([]domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE effective_date >= $1 AND effective_date <= $2
		ORDER BY effective_date, recorded_at;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for report window: %w", err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entry rows: %w", err)
	}
	return entries, nil
}

// ListLedgerRows returns the same ordered window with reference names
// resolved. Tags are attached by the service in a separate batch query.
func (r *PgxReportingRepository) ListLedgerRows(ctx context.Context, from, to time.Time) ([]domain.LedgerReportRow, error) {
	query := `
		SELECT e.entry_id, e.sequence_no, e.method, e.operation_kind, e.direction, e.amount,
		       e.effective_date, e.recorded_at, e.description, e.category,
		       ba.name, c.name, ct.name
		FROM entries e
		LEFT JOIN bank_accounts ba ON ba.bank_account_id = e.bank_account_id
		LEFT JOIN cards c ON c.card_id = e.card_id
		LEFT JOIN contacts ct ON ct.contact_id = e.contact_id
		WHERE e.effective_date >= $1 AND e.effective_date <= $2
		ORDER BY e.effective_date, e.recorded_at;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger rows: %w", err)
	}
	defer rows.Close()

	result := []domain.LedgerReportRow{}
	for rows.Next() {
		var row domain.LedgerReportRow
		var category, bankAccountName, cardName, contactName *string
		err := rows.Scan(
			&row.EntryID,
			&row.SequenceNo,
			&row.Method,
			&row.OperationKind,
			&row.Direction,
			&row.Amount,
			&row.EffectiveDate,
			&row.RecordedAt,
			&row.Description,
			&category,
			&bankAccountName,
			&cardName,
			&contactName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		if category != nil {
			row.Category = domain.Category(*category)
		}
		if bankAccountName != nil {
			row.BankAccountName = *bankAccountName
		}
		if cardName != nil {
			row.CardName = *cardName
		}
		if contactName != nil {
			row.ContactName = *contactName
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger rows: %w", err)
	}
	return result, nil
}

// LatestSnapshot returns the most recent balance snapshot for a bank account,
// or the cash snapshot when bankAccountID is nil.
func (r *PgxReportingRepository) LatestSnapshot(ctx context.Context, bankAccountID *string) (*domain.BalanceSnapshot, error) {
	query := `
		SELECT snapshot_id, bank_account_id, balance, as_of, created_at, created_by
		FROM balance_snapshots
		WHERE bank_account_id IS NOT DISTINCT FROM $1
		ORDER BY as_of DESC, created_at DESC
		LIMIT 1;
	`
	var s domain.BalanceSnapshot
	err := r.Pool.QueryRow(ctx, query, bankAccountID).Scan(
		&s.SnapshotID,
		&s.BankAccountID,
		&s.Balance,
		&s.AsOf,
		&s.CreatedAt,
		&s.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest snapshot: %w", err)
	}
	return &s, nil
}

// SaveSnapshot persists a balance checkpoint.
func (r *PgxReportingRepository) SaveSnapshot(ctx context.Context, snapshot domain.BalanceSnapshot) error {
	query := `
		INSERT INTO balance_snapshots (snapshot_id, bank_account_id, balance, as_of, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		snapshot.SnapshotID,
		snapshot.BankAccountID,
		snapshot.Balance,
		snapshot.AsOf,
		snapshot.CreatedAt,
		snapshot.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", snapshot.SnapshotID, err)
	}
	return nil
}
