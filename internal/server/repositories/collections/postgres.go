// Package collections provides the PostgreSQL-backed store accessor for
// collection rows.
package collections

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkov/pinboard/internal/common"
	"github.com/avolkov/pinboard/internal/dbx"
	"github.com/avolkov/pinboard/internal/server/models"
)

// PostgresRepository implements collection storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const collectionColumns = `id, team_id, name, "index", created_at, updated_at`

func scanCollection(row interface{ Scan(...any) error }) (*models.Collection, error) {
	var (
		c     models.Collection
		index sql.NullString
	)
	if err := row.Scan(&c.ID, &c.TeamID, &c.Name, &index, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Index = index.String
	return &c, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections WHERE id = $1`
	c, err := scanCollection(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) AllByTeam(ctx context.Context, teamID string) ([]*models.Collection, error) {
	query := `
		SELECT ` + collectionColumns + ` FROM collections
		WHERE team_id = $1
		ORDER BY "index" ASC NULLS LAST, updated_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) AssignIndex(ctx context.Context, id, index string) error {
	query := `UPDATE collections SET "index" = $2 WHERE id = $1 AND "index" IS NULL`
	if _, err := r.db.ExecContext(ctx, query, id, index); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetIndex(ctx context.Context, id, index string) error {
	query := `UPDATE collections SET "index" = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, index); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
