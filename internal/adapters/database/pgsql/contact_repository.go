package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opentreso/treasury_app/internal/apperrors"
	"github.com/opentreso/treasury_app/internal/core/domain"
	portsrepo "github.com/opentreso/treasury_app/internal/core/ports/repositories"
)

type PgxContactRepository struct {
	BaseRepository
}

// NewContactRepository creates a new repository for counterparty data.
func NewContactRepository(pool *pgxpool.Pool) portsrepo.ContactRepository {
	return &PgxContactRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxContactRepository implements portsrepo.ContactRepository
var _ portsrepo.ContactRepository = (*PgxContactRepository)(nil)

const contactColumns = `
	contact_id, name, type, phone, email, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(
		&c.ContactID,
		&c.Name,
		&c.Type,
		&c.Phone,
		&c.Email,
		&c.IsActive,
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

func (r *PgxContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		contact.ContactID,
		contact.Name,
		string(contact.Type),
		contact.Phone,
		contact.Email,
		contact.IsActive,
		contact.CreatedAt,
		contact.CreatedBy,
		contact.LastUpdatedAt,
		contact.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save contact %s: %w", contact.ContactID, err)
	}
	return nil
}

func (r *PgxContactRepository) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE contact_id = $1;`
	contact, err := scanContact(r.Pool.QueryRow(ctx, query, contactID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contact %s: %w", contactID, err)
	}
	return contact, nil
}

func (r *PgxContactRepository) ListContacts(ctx context.Context, contactType *domain.ContactType, includeInactive bool) ([]domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE 1=1`
	args := []any{}
	if contactType != nil {
		args = append(args, string(*contactType))
		query += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	if !includeInactive {
		query += ` AND is_active`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	contacts := []domain.Contact{}
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		contacts = append(contacts, *contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contact rows: %w", err)
	}
	return contacts, nil
}

func (r *PgxContactRepository) SetContactActive(ctx context.Context, contactID string, active bool, updatedBy string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE contacts
		SET is_active = $1, last_updated_at = $2, last_updated_by = $3
		WHERE contact_id = $4;
	`, active, time.Now().UTC(), updatedBy, contactID)
	if err != nil {
		return fmt.Errorf("failed to update contact %s: %w", contactID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
