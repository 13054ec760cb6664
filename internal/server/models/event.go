package models

import "time"

// Audit event names emitted by the creator commands.
const (
	EventPinCreate  = "pins.create"
	EventStarCreate = "stars.create"
)

// Event is one append-only audit log record. It is written in the same
// transaction as the entity it references; backfill and rebalance never
// emit events.
type Event struct {
	ID        string
	Name      string
	ModelID   string
	TeamID    string
	UserID    string
	ActorID   string
	CreatedAt time.Time
}
