package collections

import (
	"context"

	"github.com/avolkov/pinboard/internal/server/models"
)

// Repository is the scoped store accessor for collections. A scope is one
// team. Collections are read whole-scope only: backfill re-sorts them in
// memory by natural name order, rebalance consumes the visible order as is.
type Repository interface {
	// Get returns one collection or common.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Collection, error)

	// AllByTeam returns every collection of the team in its visible order
	// (index byte-wise with unassigned rows last, then updated_at).
	AllByTeam(ctx context.Context, teamID string) ([]*models.Collection, error)

	// AssignIndex sets a collection's index only if it is still
	// unassigned, and leaves updated_at untouched. Used by backfill.
	AssignIndex(ctx context.Context, id, index string) error

	// SetIndex rewrites a collection's index unconditionally. Used by
	// rebalancing only.
	SetIndex(ctx context.Context, id, index string) error
}
