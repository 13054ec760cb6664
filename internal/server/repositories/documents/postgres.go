// Package documents provides read access to the documents table.
package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkov/pinboard/internal/common"
	"github.com/avolkov/pinboard/internal/dbx"
	"github.com/avolkov/pinboard/internal/server/models"
)

// PostgresRepository implements document reads over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Document, error) {
	query := `SELECT id, team_id, title, created_at, updated_at FROM documents WHERE id = $1`

	var (
		doc    models.Document
		teamID sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID, &teamID, &doc.Title, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	doc.TeamID = teamID.String
	return &doc, nil
}
