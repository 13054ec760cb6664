package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avolkov/pinboard/internal/server/repositories/collections"
	"github.com/avolkov/pinboard/internal/server/repositories/documents"
	"github.com/avolkov/pinboard/internal/server/repositories/events"
	"github.com/avolkov/pinboard/internal/server/repositories/pins"
	"github.com/avolkov/pinboard/internal/server/repositories/stars"
	"github.com/pressly/goose/v3"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNewPostgresRepositoryManager_ReturnsInterface(t *testing.T) {
	m := NewPostgresRepositoryManager()
	var _ RepositoryManager = m
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := &PostgresRepositoryManager{}

	if p := m.Pins(db); p == nil {
		t.Fatal("Pins() nil")
	}
	if s := m.Stars(db); s == nil {
		t.Fatal("Stars() nil")
	}
	if c := m.Collections(db); c == nil {
		t.Fatal("Collections() nil")
	}
	if d := m.Documents(db); d == nil {
		t.Fatal("Documents() nil")
	}
	if e := m.Events(db); e == nil {
		t.Fatal("Events() nil")
	}

	var _ pins.Repository = m.Pins(db)
	var _ stars.Repository = m.Stars(db)
	var _ collections.Repository = m.Collections(db)
	var _ documents.Repository = m.Documents(db)
	var _ events.Repository = m.Events(db)
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}
