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
)

const pgUniqueViolation = "23505"

type PgxTagRepository struct {
	BaseRepository
}

// NewTagRepository creates a new repository for entry tag data.
func NewTagRepository(pool *pgxpool.Pool) portsrepo.TagRepository {
	return &PgxTagRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTagRepository implements portsrepo.TagRepository
var _ portsrepo.TagRepository = (*PgxTagRepository)(nil)

func (r *PgxTagRepository) SaveTag(ctx context.Context, tag domain.Tag) error {
	query := `
		INSERT INTO tags (tag_id, name, color, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query, tag.TagID, tag.Name, tag.Color, tag.CreatedAt, tag.CreatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: tag name %q", apperrors.ErrDuplicate, tag.Name)
		}
		return fmt.Errorf("failed to save tag %s: %w", tag.TagID, err)
	}
	return nil
}

func (r *PgxTagRepository) FindTagByID(ctx context.Context, tagID string) (*domain.Tag, error) {
	var t domain.Tag
	err := r.Pool.QueryRow(ctx, `
		SELECT tag_id, name, color, created_at, created_by FROM tags WHERE tag_id = $1;
	`, tagID).Scan(&t.TagID, &t.Name, &t.Color, &t.CreatedAt, &t.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tag %s: %w", tagID, err)
	}
	return &t, nil
}

func (r *PgxTagRepository) FindTagsByIDs(ctx context.Context, tagIDs []string) (map[string]domain.Tag, error) {
	tags := map[string]domain.Tag{}
	if len(tagIDs) == 0 {
		return tags, nil
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT tag_id, name, color, created_at, created_by FROM tags WHERE tag_id = ANY($1);
	`, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.TagID, &t.Name, &t.Color, &t.CreatedAt, &t.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags[t.TagID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tag rows: %w", err)
	}
	return tags, nil
}

// FindTagsByEntryIDs retrieves attached tags for a batch of entries in one
// query, keyed by entry id.
func (r *PgxTagRepository) FindTagsByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.Tag, error) {
	tagsByEntry := map[string][]domain.Tag{}
	if len(entryIDs) == 0 {
		return tagsByEntry, nil
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT et.entry_id, t.tag_id, t.name, t.color, t.created_at, t.created_by
		FROM entry_tags et
		JOIN tags t ON t.tag_id = et.tag_id
		WHERE et.entry_id = ANY($1)
		ORDER BY t.name;
	`, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags by entry ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entryID string
		var t domain.Tag
		if err := rows.Scan(&entryID, &t.TagID, &t.Name, &t.Color, &t.CreatedAt, &t.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan entry tag row: %w", err)
		}
		tagsByEntry[entryID] = append(tagsByEntry[entryID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entry tag rows: %w", err)
	}
	return tagsByEntry, nil
}

func (r *PgxTagRepository) ListTags(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT tag_id, name, color, created_at, created_by FROM tags ORDER BY name;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.TagID, &t.Name, &t.Color, &t.CreatedAt, &t.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tag rows: %w", err)
	}
	return tags, nil
}
