package documents

import (
	"context"

	"github.com/avolkov/pinboard/internal/server/models"
)

// Repository reads the documents referenced by pins and stars. This service
// never writes documents; it only needs existence checks and recency.
type Repository interface {
	// Get returns one document or common.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Document, error)
}
