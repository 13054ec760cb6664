package models

import "time"

// Collection is a named group of documents owned by a team. Collections of
// one team are ordered by Index; rows predating the ordering scheme carry an
// empty Index until backfilled.
type Collection struct {
	ID        string
	TeamID    string
	Name      string
	Index     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
