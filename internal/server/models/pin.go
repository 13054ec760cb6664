package models

import "time"

// PinMaxPerScope is the default cap on pins within one ordering scope
// (a team's home, or one collection). Enforced at creation time only.
const PinMaxPerScope = 8

// Pin is a document pinned to a team's home (CollectionID empty) or to a
// collection. Pins within one (TeamID, CollectionID) scope are totally
// ordered by Index under byte-order comparison, ties broken by UpdatedAt.
//
// Index is the fractional index key; "" means unassigned.
type Pin struct {
	ID           string
	TeamID       string
	CollectionID string
	DocumentID   string
	Index        string
	CreatedByID  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
