package models

import "time"

// Document is the minimal shape of a document this service needs: identity
// for existence checks and UpdatedAt for star backfill recency ordering.
type Document struct {
	ID        string
	TeamID    string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
