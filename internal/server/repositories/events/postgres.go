// Package events provides the PostgreSQL-backed audit event log.
package events

import (
	"context"
	"fmt"

	"github.com/avolkov/pinboard/internal/dbx"
	"github.com/avolkov/pinboard/internal/server/models"
)

// PostgresRepository implements the audit log over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (id, name, model_id, team_id, user_id, actor_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Name, dbx.NullString(event.ModelID),
		dbx.NullString(event.TeamID), dbx.NullString(event.UserID),
		dbx.NullString(event.ActorID))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
