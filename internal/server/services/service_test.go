package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avolkov/pinboard/internal/common"
	"github.com/avolkov/pinboard/internal/dbx"
	"github.com/avolkov/pinboard/internal/logging"
	collectionsrepo "github.com/avolkov/pinboard/internal/server/repositories/collections"
	documentsrepo "github.com/avolkov/pinboard/internal/server/repositories/documents"
	eventsrepo "github.com/avolkov/pinboard/internal/server/repositories/events"
	pinsrepo "github.com/avolkov/pinboard/internal/server/repositories/pins"
	"github.com/avolkov/pinboard/internal/server/repositories/repomanager"
	starsrepo "github.com/avolkov/pinboard/internal/server/repositories/stars"

	"github.com/avolkov/pinboard/internal/server/models"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func noopLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// --- fakes ---

type fakePinsRepo struct {
	lockedScopes []string
	count        int64
	countErr     error
	last         *models.Pin
	lastErr      error
	all          []*models.Pin
	created      []*models.Pin
	createErr    error
	setIndexes   map[string]string
}

func (f *fakePinsRepo) Create(ctx context.Context, pin *models.Pin) (*models.Pin, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, pin)
	return pin, nil
}

func (f *fakePinsRepo) CountInScope(ctx context.Context, teamID, collectionID string) (int64, error) {
	return f.count, f.countErr
}

func (f *fakePinsRepo) LastInScope(ctx context.Context, teamID, collectionID string) (*models.Pin, error) {
	if f.lastErr != nil {
		return nil, f.lastErr
	}
	if f.last == nil {
		return nil, common.ErrNotFound
	}
	return f.last, nil
}

func (f *fakePinsRepo) AllInScope(ctx context.Context, teamID, collectionID string) ([]*models.Pin, error) {
	return f.all, nil
}

func (f *fakePinsRepo) SetIndex(ctx context.Context, id, index string) error {
	if f.setIndexes == nil {
		f.setIndexes = make(map[string]string)
	}
	f.setIndexes[id] = index
	return nil
}

func (f *fakePinsRepo) LockScope(ctx context.Context, teamID, collectionID string) error {
	f.lockedScopes = append(f.lockedScopes, teamID+"/"+collectionID)
	return nil
}

type fakeStarsRepo struct {
	findOut  *models.Star
	findErr  error
	refind   *models.Star
	first    *models.Star
	firstErr error
	allUser  []*models.Star
	ordered  []*models.Star

	insert    bool
	created   []*models.Star
	createErr error

	assigned   map[string]string
	setIndexes map[string]string

	finds int
}

func (f *fakeStarsRepo) Create(ctx context.Context, star *models.Star) (bool, error) {
	if f.createErr != nil {
		return false, f.createErr
	}
	if !f.insert {
		return false, nil
	}
	f.created = append(f.created, star)
	return true, nil
}

func (f *fakeStarsRepo) FindByTarget(ctx context.Context, userID, documentID, collectionID string) (*models.Star, error) {
	f.finds++
	if f.finds > 1 && f.refind != nil {
		return f.refind, nil
	}
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.findOut == nil {
		return nil, common.ErrNotFound
	}
	return f.findOut, nil
}

func (f *fakeStarsRepo) FirstInScope(ctx context.Context, userID string) (*models.Star, error) {
	if f.firstErr != nil {
		return nil, f.firstErr
	}
	if f.first == nil {
		return nil, common.ErrNotFound
	}
	return f.first, nil
}

func (f *fakeStarsRepo) AllByUser(ctx context.Context, userID string) ([]*models.Star, error) {
	return f.allUser, nil
}

func (f *fakeStarsRepo) OrderedByIndex(ctx context.Context, userID string) ([]*models.Star, error) {
	return f.ordered, nil
}

func (f *fakeStarsRepo) AssignIndex(ctx context.Context, id, index string) error {
	if f.assigned == nil {
		f.assigned = make(map[string]string)
	}
	f.assigned[id] = index
	return nil
}

func (f *fakeStarsRepo) SetIndex(ctx context.Context, id, index string) error {
	if f.setIndexes == nil {
		f.setIndexes = make(map[string]string)
	}
	f.setIndexes[id] = index
	return nil
}

type fakeCollectionsRepo struct {
	getOut *models.Collection
	getErr error
	all    []*models.Collection
	allErr error

	assigned   map[string]string
	setIndexes map[string]string
}

func (f *fakeCollectionsRepo) Get(ctx context.Context, id string) (*models.Collection, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getOut == nil {
		return nil, common.ErrNotFound
	}
	return f.getOut, nil
}

func (f *fakeCollectionsRepo) AllByTeam(ctx context.Context, teamID string) ([]*models.Collection, error) {
	return f.all, f.allErr
}

func (f *fakeCollectionsRepo) AssignIndex(ctx context.Context, id, index string) error {
	if f.assigned == nil {
		f.assigned = make(map[string]string)
	}
	f.assigned[id] = index
	return nil
}

func (f *fakeCollectionsRepo) SetIndex(ctx context.Context, id, index string) error {
	if f.setIndexes == nil {
		f.setIndexes = make(map[string]string)
	}
	f.setIndexes[id] = index
	return nil
}

type fakeDocumentsRepo struct {
	getOut *models.Document
	getErr error
}

func (f *fakeDocumentsRepo) Get(ctx context.Context, id string) (*models.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getOut == nil {
		return nil, common.ErrNotFound
	}
	return f.getOut, nil
}

type fakeEventsRepo struct {
	appended  []*models.Event
	appendErr error
}

func (f *fakeEventsRepo) Append(ctx context.Context, event *models.Event) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, event)
	return nil
}

type fakeRepoManager struct {
	p *fakePinsRepo
	s *fakeStarsRepo
	c *fakeCollectionsRepo
	d *fakeDocumentsRepo
	e *fakeEventsRepo
}

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error        { return nil }
func (m *fakeRepoManager) Pins(db dbx.DBTX) pinsrepo.Repository               { return m.p }
func (m *fakeRepoManager) Stars(db dbx.DBTX) starsrepo.Repository             { return m.s }
func (m *fakeRepoManager) Collections(db dbx.DBTX) collectionsrepo.Repository { return m.c }
func (m *fakeRepoManager) Documents(db dbx.DBTX) documentsrepo.Repository     { return m.d }
func (m *fakeRepoManager) Events(db dbx.DBTX) eventsrepo.Repository           { return m.e }
