// Package ordering is the scope-agnostic core of the fractional ordering
// engine. Pins, stars and collections all order their rows the same way: an
// "index" key per row, compared byte-wise, with new keys synthesized between
// neighbors. This package computes those keys; the entity repositories own
// reading and writing them.
package ordering

import (
	"fmt"

	"github.com/avolkov/pinboard/internal/fracindex"
)

// Placement says at which edge of a scope a new row is inserted.
type Placement int

const (
	// PlaceLast appends after the scope's current last row (pin semantics).
	PlaceLast Placement = iota
	// PlaceFirst prepends before the scope's current first row (star semantics).
	PlaceFirst
)

// Row pairs an entity id with its current index key. An empty Key means the
// row predates the ordering scheme and still needs one.
type Row struct {
	ID  string
	Key string
}

// NextKey computes the index for a new row placed at the given edge. edge is
// the current first or last key of the scope, or "" when the scope is empty.
func NextKey(edge string, at Placement) (string, error) {
	switch at {
	case PlaceLast:
		return fracindex.KeyBetween(edge, "")
	case PlaceFirst:
		return fracindex.KeyBetween("", edge)
	}
	return "", fmt.Errorf("unknown placement %d", at)
}

// Plan computes keys for every row that lacks one. rows must already be in
// the order the scope should read back; rows that have a key keep it and act
// as anchors for the unkeyed rows around them. The walk always appends after
// the running previous key, never between, because later rows have not been
// placed yet.
//
// Plan does no I/O. On a fully keyed input it returns an empty map, which is
// what makes backfill idempotent.
func Plan(rows []Row) (map[string]string, error) {
	assigned := make(map[string]string)
	prev := ""
	for _, r := range rows {
		key := r.Key
		if key == "" {
			next, err := fracindex.KeyBetween(prev, "")
			if err != nil {
				return nil, fmt.Errorf("key after %q: %w", prev, err)
			}
			assigned[r.ID] = next
			key = next
		}
		prev = key
	}
	return assigned, nil
}

// Spread returns n evenly spaced short keys for renumbering a whole scope.
func Spread(n int) ([]string, error) {
	return fracindex.NKeysBetween("", "", n)
}
