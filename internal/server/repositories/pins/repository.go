package pins

import (
	"context"

	"github.com/avolkov/pinboard/internal/server/models"
)

// Repository is the scoped store accessor for pins. A scope is one
// (teamID, collectionID) pair; an empty collectionID means "pinned to home".
type Repository interface {
	// Create inserts the pin and fills in its timestamps.
	Create(ctx context.Context, pin *models.Pin) (*models.Pin, error)

	// CountInScope returns the number of pins in the scope, used for the
	// per-scope cap check.
	CountInScope(ctx context.Context, teamID, collectionID string) (int64, error)

	// LastInScope returns the pin with the highest index in the scope,
	// ties broken by updated_at. Returns common.ErrNotFound on an empty
	// scope.
	LastInScope(ctx context.Context, teamID, collectionID string) (*models.Pin, error)

	// AllInScope returns every pin in the scope in its visible order
	// (index byte-wise, then updated_at).
	AllInScope(ctx context.Context, teamID, collectionID string) ([]*models.Pin, error)

	// SetIndex rewrites a pin's index without touching updated_at. Used by
	// rebalancing only.
	SetIndex(ctx context.Context, id, index string) error

	// LockScope serializes writers of one scope for the duration of the
	// surrounding transaction.
	LockScope(ctx context.Context, teamID, collectionID string) error
}
