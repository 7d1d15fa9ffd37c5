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

type PgxCardRepository struct {
	BaseRepository
}

// NewCardRepository creates a new repository for card data.
func NewCardRepository(pool *pgxpool.Pool) portsrepo.CardRepository {
	return &PgxCardRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCardRepository implements portsrepo.CardRepository
var _ portsrepo.CardRepository = (*PgxCardRepository)(nil)

const cardColumns = `
	card_id, name, initial_balance, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCard(row pgx.Row) (*domain.Card, error) {
	var c domain.Card
	err := row.Scan(
		&c.CardID,
		&c.Name,
		&c.InitialBalance,
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

func (r *PgxCardRepository) SaveCard(ctx context.Context, card domain.Card) error {
	query := `
		INSERT INTO cards (` + cardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		card.CardID,
		card.Name,
		card.InitialBalance,
		card.IsActive,
		card.CreatedAt,
		card.CreatedBy,
		card.LastUpdatedAt,
		card.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save card %s: %w", card.CardID, err)
	}
	return nil
}

func (r *PgxCardRepository) FindCardByID(ctx context.Context, cardID string) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE card_id = $1;`
	card, err := scanCard(r.Pool.QueryRow(ctx, query, cardID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find card %s: %w", cardID, err)
	}
	return card, nil
}

func (r *PgxCardRepository) ListCards(ctx context.Context, includeInactive bool) ([]domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards`
	if !includeInactive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	cards := []domain.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read card rows: %w", err)
	}
	return cards, nil
}

func (r *PgxCardRepository) SetCardActive(ctx context.Context, cardID string, active bool, updatedBy string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE cards
		SET is_active = $1, last_updated_at = $2, last_updated_by = $3
		WHERE card_id = $4;
	`, active, time.Now().UTC(), updatedBy, cardID)
	if err != nil {
		return fmt.Errorf("failed to update card %s: %w", cardID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
