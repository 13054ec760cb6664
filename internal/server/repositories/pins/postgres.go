// Package pins provides the PostgreSQL-backed store accessor for pin rows.
//
// The "index" column is created with COLLATE "C", so every ORDER BY "index"
// below compares byte-wise regardless of the database locale.
package pins

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkov/pinboard/internal/common"
	"github.com/avolkov/pinboard/internal/dbx"
	"github.com/avolkov/pinboard/internal/server/models"
)

// PostgresRepository implements pin storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const pinColumns = `id, team_id, collection_id, document_id, "index", created_by_id, created_at, updated_at`

func scanPin(row interface{ Scan(...any) error }) (*models.Pin, error) {
	var (
		pin          models.Pin
		collectionID sql.NullString
		index        sql.NullString
	)
	if err := row.Scan(&pin.ID, &pin.TeamID, &collectionID, &pin.DocumentID,
		&index, &pin.CreatedByID, &pin.CreatedAt, &pin.UpdatedAt); err != nil {
		return nil, err
	}
	pin.CollectionID = collectionID.String
	pin.Index = index.String
	return &pin, nil
}

func (r *PostgresRepository) Create(ctx context.Context, pin *models.Pin) (*models.Pin, error) {
	query := `
		INSERT INTO pins (id, team_id, collection_id, document_id, "index", created_by_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		pin.ID, pin.TeamID, dbx.NullString(pin.CollectionID), pin.DocumentID,
		dbx.NullString(pin.Index), pin.CreatedByID,
	).Scan(&pin.CreatedAt, &pin.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return pin, nil
}

func (r *PostgresRepository) CountInScope(ctx context.Context, teamID, collectionID string) (int64, error) {
	query := `
		SELECT COUNT(*) FROM pins
		WHERE team_id = $1 AND collection_id IS NOT DISTINCT FROM $2
	`
	var n int64
	err := r.db.QueryRowContext(ctx, query, teamID, dbx.NullString(collectionID)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) LastInScope(ctx context.Context, teamID, collectionID string) (*models.Pin, error) {
	query := `
		SELECT ` + pinColumns + ` FROM pins
		WHERE team_id = $1 AND collection_id IS NOT DISTINCT FROM $2
		ORDER BY "index" DESC NULLS LAST, updated_at DESC
		LIMIT 1
	`
	pin, err := scanPin(r.db.QueryRowContext(ctx, query, teamID, dbx.NullString(collectionID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return pin, nil
}

func (r *PostgresRepository) AllInScope(ctx context.Context, teamID, collectionID string) ([]*models.Pin, error) {
	query := `
		SELECT ` + pinColumns + ` FROM pins
		WHERE team_id = $1 AND collection_id IS NOT DISTINCT FROM $2
		ORDER BY "index" ASC NULLS LAST, updated_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, teamID, dbx.NullString(collectionID))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Pin
	for rows.Next() {
		pin, err := scanPin(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, pin)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) SetIndex(ctx context.Context, id, index string) error {
	query := `UPDATE pins SET "index" = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, index); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// LockScope takes a transaction-scoped advisory lock on the scope key, so
// the cap check and the edge lookup cannot race with a concurrent creation
// in the same scope. Released automatically at commit/rollback.
func (r *PostgresRepository) LockScope(ctx context.Context, teamID, collectionID string) error {
	query := `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`
	if _, err := r.db.ExecContext(ctx, query, "pins/"+teamID+"/"+collectionID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
