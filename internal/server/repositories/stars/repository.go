package stars

import (
	"context"

	"github.com/avolkov/pinboard/internal/server/models"
)

// Repository is the scoped store accessor for stars. A scope is one user;
// each star targets exactly one document or collection.
type Repository interface {
	// Create inserts the star. When a star for the same (user, target)
	// already exists the insert is a no-op and created is false; the
	// caller resolves the duplicate with FindByTarget.
	Create(ctx context.Context, star *models.Star) (created bool, err error)

	// FindByTarget returns the user's star for the given document or
	// collection, or common.ErrNotFound.
	FindByTarget(ctx context.Context, userID, documentID, collectionID string) (*models.Star, error)

	// FirstInScope returns the star with the lowest index for the user,
	// ties broken by updated_at. Returns common.ErrNotFound on an empty
	// scope.
	FirstInScope(ctx context.Context, userID string) (*models.Star, error)

	// AllByUser returns every star of the user ordered by the referenced
	// document's recency, the deterministic secondary criterion backfill
	// sorts by.
	AllByUser(ctx context.Context, userID string) ([]*models.Star, error)

	// OrderedByIndex returns every star of the user in its visible order.
	OrderedByIndex(ctx context.Context, userID string) ([]*models.Star, error)

	// AssignIndex sets a star's index only if it is still unassigned, and
	// leaves updated_at untouched. Used by backfill.
	AssignIndex(ctx context.Context, id, index string) error

	// SetIndex rewrites a star's index unconditionally. Used by
	// rebalancing only.
	SetIndex(ctx context.Context, id, index string) error
}
