package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/opentreso/treasury_app/internal/apperrors"
	"github.com/opentreso/treasury_app/internal/core/domain"
	portsrepo "github.com/opentreso/treasury_app/internal/core/ports/repositories"
	"github.com/opentreso/treasury_app/internal/utils/pagination"
)

type PgxEntryRepository struct {
	BaseRepository
}

// NewEntryRepository creates a new repository for ledger entry data.
func NewEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryWithTx
var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

const entryColumns = `
	entry_id, sequence_no, method, operation_kind, direction, amount, currency_code,
	effective_date, recorded_at, description, category,
	bank_account_id, card_id, contact_id, check_id,
	pos_gross, pos_commission, pos_net, pos_effective_rate, metadata,
	created_at, created_by, last_updated_at, last_updated_by`

// scanEntry reads one entry row in entryColumns order.
func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var e domain.Entry
	var category *string
	var posGross, posCommission, posNet, posRate *decimal.Decimal
	err := row.Scan(
		&e.EntryID,
		&e.SequenceNo,
		&e.Method,
		&e.OperationKind,
		&e.Direction,
		&e.Amount,
		&e.CurrencyCode,
		&e.EffectiveDate,
		&e.RecordedAt,
		&e.Description,
		&category,
		&e.BankAccountID,
		&e.CardID,
		&e.ContactID,
		&e.CheckID,
		&posGross,
		&posCommission,
		&posNet,
		&posRate,
		&e.Metadata,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if category != nil {
		e.Category = domain.Category(*category)
	}
	if posGross != nil && posCommission != nil && posNet != nil && posRate != nil {
		e.Pos = &domain.PosDetails{
			Gross:         *posGross,
			Commission:    *posCommission,
			Net:           *posNet,
			EffectiveRate: *posRate,
		}
	}
	return &e, nil
}

// insertEntryTx inserts one entry row inside the given transaction. The
// sequence number and recorded-at must already be assigned.
func insertEntryTx(ctx context.Context, tx pgx.Tx, e *domain.Entry) error {
	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	var category *string
	if e.Category != "" {
		c := string(e.Category)
		category = &c
	}
	var posGross, posCommission, posNet, posRate *decimal.Decimal
	if e.Pos != nil {
		posGross = &e.Pos.Gross
		posCommission = &e.Pos.Commission
		posNet = &e.Pos.Net
		posRate = &e.Pos.EffectiveRate
	}
	_, err := tx.Exec(ctx, query,
		e.EntryID,
		e.SequenceNo,
		e.Method,
		e.OperationKind,
		e.Direction,
		e.Amount,
		e.CurrencyCode,
		e.EffectiveDate,
		e.RecordedAt,
		e.Description,
		category,
		e.BankAccountID,
		e.CardID,
		e.ContactID,
		e.CheckID,
		posGross,
		posCommission,
		posNet,
		posRate,
		e.Metadata,
		e.CreatedAt,
		e.CreatedBy,
		e.LastUpdatedAt,
		e.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry %s: %w", e.EntryID, err)
	}
	return nil
}

// nextSequenceNoTx assigns the next ledger sequence number inside the
// transaction, so concurrent creations never collide.
func nextSequenceNoTx(ctx context.Context, tx pgx.Tx) (int64, error) {
	var seq int64
	if err := tx.QueryRow(ctx, `SELECT nextval('entry_sequence');`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to assign sequence number: %w", err)
	}
	return seq, nil
}

// insertAttachmentsTx inserts attachment rows linked to one entry.
func insertAttachmentsTx(ctx context.Context, tx pgx.Tx, entryID string, attachments []domain.Attachment) error {
	if len(attachments) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO attachments (attachment_id, entry_id, storage_path, file_name, mime_type, size_bytes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, a := range attachments {
		batch.Queue(query, a.AttachmentID, entryID, a.StoragePath, a.FileName, a.MimeType, a.SizeBytes, a.CreatedAt, a.CreatedBy)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert attachments for entry %s: %w", entryID, err)
	}
	return nil
}

// CreateEntry persists an entry, its tag links and attachment rows in one
// database transaction. A non-nil commissionEntry is inserted in the same
// transaction with its own sequence number.
func (r *PgxEntryRepository) CreateEntry(ctx context.Context, entry domain.Entry, tagIDs []string, attachments []domain.Attachment, commissionEntry *domain.Entry) (*domain.Entry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()
	entry.RecordedAt = now
	entry.SequenceNo, err = nextSequenceNoTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := insertEntryTx(ctx, tx, &entry); err != nil {
		return nil, err
	}

	if len(tagIDs) > 0 {
		batch := &pgx.Batch{}
		for _, tagID := range tagIDs {
			batch.Queue(`INSERT INTO entry_tags (entry_id, tag_id) VALUES ($1, $2);`, entry.EntryID, tagID)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return nil, fmt.Errorf("failed to link tags for entry %s: %w", entry.EntryID, err)
		}
	}
	if err := insertAttachmentsTx(ctx, tx, entry.EntryID, attachments); err != nil {
		return nil, err
	}

	if commissionEntry != nil {
		commissionEntry.RecordedAt = now
		commissionEntry.SequenceNo, err = nextSequenceNoTx(ctx, tx)
		if err != nil {
			return nil, err
		}
		if err := insertEntryTx(ctx, tx, commissionEntry); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	entry.Attachments = attachments
	return &entry, nil
}

// FindEntryByID retrieves one entry with its tags and attachments populated.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_id = $1;`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	tagRows, err := r.Pool.Query(ctx, `
		SELECT t.tag_id, t.name, t.color, t.created_at, t.created_by
		FROM tags t
		JOIN entry_tags et ON et.tag_id = t.tag_id
		WHERE et.entry_id = $1
		ORDER BY t.name;
	`, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags for entry %s: %w", entryID, err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var t domain.Tag
		if err := tagRows.Scan(&t.TagID, &t.Name, &t.Color, &t.CreatedAt, &t.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan tag row for entry %s: %w", entryID, err)
		}
		entry.Tags = append(entry.Tags, t)
	}
	if err := tagRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tag rows for entry %s: %w", entryID, err)
	}

	attRows, err := r.Pool.Query(ctx, `
		SELECT attachment_id, storage_path, file_name, mime_type, size_bytes, created_at, created_by
		FROM attachments
		WHERE entry_id = $1
		ORDER BY created_at;
	`, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachments for entry %s: %w", entryID, err)
	}
	defer attRows.Close()
	for attRows.Next() {
		var a domain.Attachment
		if err := attRows.Scan(&a.AttachmentID, &a.StoragePath, &a.FileName, &a.MimeType, &a.SizeBytes, &a.CreatedAt, &a.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan attachment row for entry %s: %w", entryID, err)
		}
		entry.Attachments = append(entry.Attachments, a)
	}
	if err := attRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attachment rows for entry %s: %w", entryID, err)
	}

	return entry, nil
}

// ListEntries retrieves a filtered page of entries ordered by
// (effective_date, recorded_at), with a cursor token for the next page.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, params portsrepo.ListEntriesParams) ([]domain.Entry, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + entryColumns + ` FROM entries WHERE 1=1`
	args := []any{}
	argN := 0
	addArg := func(v any) string {
		argN++
		args = append(args, v)
		return "$" + strconv.Itoa(argN)
	}

	if params.From != nil {
		query += ` AND effective_date >= ` + addArg(*params.From)
	}
	if params.To != nil {
		query += ` AND effective_date <= ` + addArg(*params.To)
	}
	if params.Method != nil {
		query += ` AND method = ` + addArg(string(*params.Method))
	}
	if params.BankAccountID != nil {
		query += ` AND bank_account_id = ` + addArg(*params.BankAccountID)
	}
	if params.NextToken != nil {
		cursorDate, cursorRecorded, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (effective_date, recorded_at) > (` + addArg(cursorDate) + `, ` + addArg(cursorRecorded) + `)`
	}
	// Fetch one extra row to detect whether another page exists.
	query += ` ORDER BY effective_date, recorded_at LIMIT ` + addArg(limit+1) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read entry rows: %w", err)
	}

	var nextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.EffectiveDate, last.RecordedAt)
		nextToken = &token
	}
	return entries, nextToken, nil
}

// DeleteEntry hard-deletes one entry and its tag and attachment links,
// returning the deleted row.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID string) (*domain.Entry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM entry_tags WHERE entry_id = $1;`, entryID); err != nil {
		return nil, fmt.Errorf("failed to delete tag links for entry %s: %w", entryID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM attachments WHERE entry_id = $1;`, entryID); err != nil {
		return nil, fmt.Errorf("failed to delete attachments for entry %s: %w", entryID, err)
	}

	query := `DELETE FROM entries WHERE entry_id = $1 RETURNING ` + entryColumns + `;`
	entry, err := scanEntry(tx.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return entry, nil
}
