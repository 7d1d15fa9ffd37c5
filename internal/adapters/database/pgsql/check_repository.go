package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opentreso/treasury_app/internal/apperrors"
	"github.com/opentreso/treasury_app/internal/core/domain"
	portsrepo "github.com/opentreso/treasury_app/internal/core/ports/repositories"
	"github.com/opentreso/treasury_app/internal/utils/pagination"
)

type PgxCheckRepository struct {
	BaseRepository
}

// NewCheckRepository creates a new repository for check lifecycle data.
func NewCheckRepository(pool *pgxpool.Pool) portsrepo.CheckRepositoryFacade {
	return &PgxCheckRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCheckRepository implements portsrepo.CheckRepositoryFacade
var _ portsrepo.CheckRepositoryFacade = (*PgxCheckRepository)(nil)

const checkColumns = `
	check_id, serial_number, bank_name, amount, due_date, status,
	contact_id, issuer_label, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCheck(row pgx.Row) (*domain.Check, error) {
	var c domain.Check
	err := row.Scan(
		&c.CheckID,
		&c.SerialNumber,
		&c.BankName,
		&c.Amount,
		&c.DueDate,
		&c.Status,
		&c.ContactID,
		&c.IssuerLabel,
		&c.Notes,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func insertMoveTx(ctx context.Context, tx pgx.Tx, m domain.CheckMove) error {
	query := `
		INSERT INTO check_moves (move_id, check_id, action, entry_id, note, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	if _, err := tx.Exec(ctx, query, m.MoveID, m.CheckID, string(m.Action), m.EntryID, m.Note, m.ActorID, m.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert move for check %s: %w", m.CheckID, err)
	}
	return nil
}

// CreateCheck persists a new check, its initial move and optional attachment
// in one transaction.
func (r *PgxCheckRepository) CreateCheck(ctx context.Context, check domain.Check, move domain.CheckMove, attachment *domain.Attachment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO checks (` + checkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
		check.CheckID,
		check.SerialNumber,
		check.BankName,
		check.Amount,
		check.DueDate,
		string(check.Status),
		check.ContactID,
		check.IssuerLabel,
		check.Notes,
		check.CreatedAt,
		check.CreatedBy,
		check.LastUpdatedAt,
		check.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: serial number %q", apperrors.ErrDuplicate, check.SerialNumber)
		}
		return fmt.Errorf("failed to insert check %s: %w", check.CheckID, err)
	}

	if err := insertMoveTx(ctx, tx, move); err != nil {
		return err
	}
	if attachment != nil {
		attQuery := `
			INSERT INTO attachments (attachment_id, check_id, storage_path, file_name, mime_type, size_bytes, created_at, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`
		_, err := tx.Exec(ctx, attQuery,
			attachment.AttachmentID, check.CheckID, attachment.StoragePath, attachment.FileName,
			attachment.MimeType, attachment.SizeBytes, attachment.CreatedAt, attachment.CreatedBy)
		if err != nil {
			return fmt.Errorf("failed to insert attachment for check %s: %w", check.CheckID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// TransitionCheck moves a check between statuses with a conditional update on
// the prior status, appending the move in the same transaction.
func (r *PgxCheckRepository) TransitionCheck(ctx context.Context, checkID string, from, to domain.CheckStatus, move domain.CheckMove) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE checks
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE check_id = $4 AND status = $5;
	`, string(to), move.CreatedAt, move.ActorID, checkID, string(from))
	if err != nil {
		return fmt.Errorf("failed to transition check %s: %w", checkID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: check %s is not %s", apperrors.ErrInvalidTransition, checkID, from)
	}

	if err := insertMoveTx(ctx, tx, move); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SettleCheck atomically marks a check PAID, inserts the settlement entry and
// appends the payment move. The update is conditional on the status the
// caller observed, so any concurrent transition makes the settlement lose
// with ErrAlreadyPaid and write nothing.
func (r *PgxCheckRepository) SettleCheck(ctx context.Context, checkID string, from domain.CheckStatus, entry domain.Entry, move domain.CheckMove) (*domain.Entry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE checks
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE check_id = $4 AND status = $5;
	`, string(domain.CheckPaid), move.CreatedAt, move.ActorID, checkID, string(from))
	if err != nil {
		return nil, fmt.Errorf("failed to mark check %s paid: %w", checkID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: check %s", apperrors.ErrAlreadyPaid, checkID)
	}

	entry.RecordedAt = move.CreatedAt
	entry.SequenceNo, err = nextSequenceNoTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := insertEntryTx(ctx, tx, &entry); err != nil {
		return nil, err
	}
	if err := insertMoveTx(ctx, tx, move); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindCheckByID retrieves a check with its attachment populated.
func (r *PgxCheckRepository) FindCheckByID(ctx context.Context, checkID string) (*domain.Check, error) {
	query := `SELECT ` + checkColumns + ` FROM checks WHERE check_id = $1;`
	check, err := scanCheck(r.Pool.QueryRow(ctx, query, checkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find check %s: %w", checkID, err)
	}
	if err := r.attachAttachment(ctx, check); err != nil {
		return nil, err
	}
	return check, nil
}

// FindCheckBySerial retrieves a check by its unique serial number.
func (r *PgxCheckRepository) FindCheckBySerial(ctx context.Context, serialNumber string) (*domain.Check, error) {
	query := `SELECT ` + checkColumns + ` FROM checks WHERE serial_number = $1;`
	check, err := scanCheck(r.Pool.QueryRow(ctx, query, serialNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find check by serial %s: %w", serialNumber, err)
	}
	if err := r.attachAttachment(ctx, check); err != nil {
		return nil, err
	}
	return check, nil
}

func (r *PgxCheckRepository) attachAttachment(ctx context.Context, check *domain.Check) error {
	var a domain.Attachment
	err := r.Pool.QueryRow(ctx, `
		SELECT attachment_id, storage_path, file_name, mime_type, size_bytes, created_at, created_by
		FROM attachments
		WHERE check_id = $1
		ORDER BY created_at
		LIMIT 1;
	`, check.CheckID).Scan(&a.AttachmentID, &a.StoragePath, &a.FileName, &a.MimeType, &a.SizeBytes, &a.CreatedAt, &a.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to query attachment for check %s: %w", check.CheckID, err)
	}
	check.Attachment = &a
	return nil
}

// ListChecks retrieves a token-paginated list of checks, newest first,
// optionally filtered by status.
func (r *PgxCheckRepository) ListChecks(ctx context.Context, status *domain.CheckStatus, limit int, nextToken *string) ([]domain.Check, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + checkColumns + ` FROM checks WHERE 1=1`
	args := []any{}
	if status != nil {
		args = append(args, string(*status))
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if nextToken != nil {
		cursor, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, cursor)
		query += fmt.Sprintf(` AND created_at < $%d`, len(args))
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query checks: %w", err)
	}
	defer rows.Close()

	checks := []domain.Check{}
	for rows.Next() {
		check, err := scanCheck(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan check row: %w", err)
		}
		checks = append(checks, *check)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read check rows: %w", err)
	}

	var token *string
	if len(checks) > limit {
		checks = checks[:limit]
		t := pagination.EncodeDateBasedToken(checks[len(checks)-1].CreatedAt)
		token = &t
	}
	return checks, token, nil
}

// FindMovesByCheckID retrieves the move log of a check in chronological order.
func (r *PgxCheckRepository) FindMovesByCheckID(ctx context.Context, checkID string) ([]domain.CheckMove, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT move_id, check_id, action, entry_id, note, actor_id, created_at
		FROM check_moves
		WHERE check_id = $1
		ORDER BY created_at;
	`, checkID)
	if err != nil {
		return nil, fmt.Errorf("failed to query moves for check %s: %w", checkID, err)
	}
	defer rows.Close()

	moves := []domain.CheckMove{}
	for rows.Next() {
		var m domain.CheckMove
		if err := rows.Scan(&m.MoveID, &m.CheckID, &m.Action, &m.EntryID, &m.Note, &m.ActorID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan move row for check %s: %w", checkID, err)
		}
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read move rows for check %s: %w", checkID, err)
	}
	return moves, nil
}
