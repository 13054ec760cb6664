package events

import (
	"context"

	"github.com/avolkov/pinboard/internal/server/models"
)

// Repository is the append-only audit log. Append runs in the same
// transaction as the entity creation it records.
type Repository interface {
	Append(ctx context.Context, event *models.Event) error
}
