package repomanager

import (
	"context"
	"database/sql"

	"github.com/avolkov/pinboard/internal/dbx"
	"github.com/avolkov/pinboard/internal/server/repositories/collections"
	"github.com/avolkov/pinboard/internal/server/repositories/documents"
	"github.com/avolkov/pinboard/internal/server/repositories/events"
	"github.com/avolkov/pinboard/internal/server/repositories/pins"
	"github.com/avolkov/pinboard/internal/server/repositories/stars"
)

// RepositoryManager vends repositories bound to a DBTX, so a service can run
// several of them against the same transaction handle.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Pins(db dbx.DBTX) pins.Repository
	Stars(db dbx.DBTX) stars.Repository
	Collections(db dbx.DBTX) collections.Repository
	Documents(db dbx.DBTX) documents.Repository
	Events(db dbx.DBTX) events.Repository
}
