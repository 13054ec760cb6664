package models

import "time"

// Star marks a document or a collection as a favorite of one user. Exactly
// one of DocumentID/CollectionID is set. Stars of one user form a single
// ordering scope; Index is the fractional index key, "" means unassigned.
type Star struct {
	ID           string
	UserID       string
	DocumentID   string
	CollectionID string
	Index        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
