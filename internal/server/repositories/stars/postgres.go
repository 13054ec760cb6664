// Package stars provides the PostgreSQL-backed store accessor for star rows.
package stars

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkov/pinboard/internal/common"
	"github.com/avolkov/pinboard/internal/dbx"
	"github.com/avolkov/pinboard/internal/server/models"
)

// PostgresRepository implements star storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const starColumns = `id, user_id, document_id, collection_id, "index", created_at, updated_at`

func scanStar(row interface{ Scan(...any) error }) (*models.Star, error) {
	var (
		star         models.Star
		documentID   sql.NullString
		collectionID sql.NullString
		index        sql.NullString
	)
	if err := row.Scan(&star.ID, &star.UserID, &documentID, &collectionID,
		&index, &star.CreatedAt, &star.UpdatedAt); err != nil {
		return nil, err
	}
	star.DocumentID = documentID.String
	star.CollectionID = collectionID.String
	star.Index = index.String
	return &star, nil
}

// Create relies on the partial unique indexes over (user_id, document_id)
// and (user_id, collection_id): a concurrent duplicate turns the insert into
// a no-op instead of a constraint failure surfacing to the caller.
func (r *PostgresRepository) Create(ctx context.Context, star *models.Star) (bool, error) {
	query := `
		INSERT INTO stars (id, user_id, document_id, collection_id, "index")
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		star.ID, star.UserID, dbx.NullString(star.DocumentID),
		dbx.NullString(star.CollectionID), dbx.NullString(star.Index),
	).Scan(&star.CreatedAt, &star.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

func (r *PostgresRepository) FindByTarget(ctx context.Context, userID, documentID, collectionID string) (*models.Star, error) {
	query := `
		SELECT ` + starColumns + ` FROM stars
		WHERE user_id = $1
		  AND document_id IS NOT DISTINCT FROM $2
		  AND collection_id IS NOT DISTINCT FROM $3
	`
	star, err := scanStar(r.db.QueryRowContext(ctx, query, userID,
		dbx.NullString(documentID), dbx.NullString(collectionID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return star, nil
}

func (r *PostgresRepository) FirstInScope(ctx context.Context, userID string) (*models.Star, error) {
	query := `
		SELECT ` + starColumns + ` FROM stars
		WHERE user_id = $1
		ORDER BY "index" ASC NULLS LAST, updated_at ASC
		LIMIT 1
	`
	star, err := scanStar(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return star, nil
}

// AllByUser orders by the referenced document's updated_at, newest first.
// Collection stars and stars of deleted documents sort after those, by the
// star's own creation time.
func (r *PostgresRepository) AllByUser(ctx context.Context, userID string) ([]*models.Star, error) {
	query := `
		SELECT s.id, s.user_id, s.document_id, s.collection_id, s."index", s.created_at, s.updated_at
		FROM stars s
		LEFT JOIN documents d ON d.id = s.document_id
		WHERE s.user_id = $1
		ORDER BY d.updated_at DESC NULLS LAST, s.created_at DESC
	`
	return r.queryStars(ctx, query, userID)
}

func (r *PostgresRepository) OrderedByIndex(ctx context.Context, userID string) ([]*models.Star, error) {
	query := `
		SELECT ` + starColumns + ` FROM stars
		WHERE user_id = $1
		ORDER BY "index" ASC NULLS LAST, updated_at ASC
	`
	return r.queryStars(ctx, query, userID)
}

func (r *PostgresRepository) queryStars(ctx context.Context, query string, args ...any) ([]*models.Star, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Star
	for rows.Next() {
		star, err := scanStar(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, star)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) AssignIndex(ctx context.Context, id, index string) error {
	query := `UPDATE stars SET "index" = $2 WHERE id = $1 AND "index" IS NULL`
	if _, err := r.db.ExecContext(ctx, query, id, index); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetIndex(ctx context.Context, id, index string) error {
	query := `UPDATE stars SET "index" = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, index); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
