package services

import (
	"context"
	"database/sql"
	"sort"

	"github.com/avolkov/pinboard/internal/dbx"
	"github.com/avolkov/pinboard/internal/logging"
	"github.com/avolkov/pinboard/internal/server/metrics"
	"github.com/avolkov/pinboard/internal/server/ordering"
	"github.com/avolkov/pinboard/internal/server/repositories/repomanager"
	"github.com/maruel/natural"
)

// BackfillService assigns indexes to rows that predate the ordering scheme.
// All new keys for a scope are computed in memory first, then persisted in
// one transaction, so the returned map always matches the stored state.
// Backfill writes are silent: no audit events, updated_at untouched, and a
// row that already has an index is never rewritten.
type BackfillService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	logger logging.Logger
}

// NewBackfillService constructs a BackfillService.
func NewBackfillService(db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger) *BackfillService {
	return &BackfillService{db: db, rm: rm, logger: logger}
}

// CollectionOrder guarantees every collection of the team has an index and
// returns the complete id to index mapping for the scope. Rows lacking an
// index are slotted by natural name order, computed over the entire scope so
// they land correctly relative to already-indexed neighbors. Running it again
// on a fully indexed team performs no writes.
func (s *BackfillService) CollectionOrder(ctx context.Context, teamID string) (map[string]string, error) {
	result := make(map[string]string)
	assignedCount := 0

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Collections(tx)

		all, err := repo.AllByTeam(ctx, teamID)
		if err != nil {
			return err
		}

		sorted := append(all[:0:0], all...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return natural.Less(sorted[i].Name, sorted[j].Name)
		})

		rows := make([]ordering.Row, len(sorted))
		for i, c := range sorted {
			rows[i] = ordering.Row{ID: c.ID, Key: c.Index}
		}
		assigned, err := ordering.Plan(rows)
		if err != nil {
			return err
		}

		for id, key := range assigned {
			if err := repo.AssignIndex(ctx, id, key); err != nil {
				return err
			}
		}

		for _, c := range all {
			if key, ok := assigned[c.ID]; ok {
				result[c.ID] = key
			} else {
				result[c.ID] = c.Index
			}
		}
		assignedCount = len(assigned)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if assignedCount > 0 {
		metrics.BackfilledRows.WithLabelValues("collections").Add(float64(assignedCount))
		s.logger.Info(ctx, "collection order backfilled",
			"team_id", teamID, "assigned", assignedCount)
	}
	return result, nil
}

// StarOrder guarantees every star of the user has an index and returns the
// complete id to index mapping. Rows lacking an index are slotted by the
// referenced document's recency, newest first.
func (s *BackfillService) StarOrder(ctx context.Context, userID string) (map[string]string, error) {
	result := make(map[string]string)
	assignedCount := 0

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Stars(tx)

		// AllByUser already applies the secondary criterion.
		all, err := repo.AllByUser(ctx, userID)
		if err != nil {
			return err
		}

		rows := make([]ordering.Row, len(all))
		for i, star := range all {
			rows[i] = ordering.Row{ID: star.ID, Key: star.Index}
		}
		assigned, err := ordering.Plan(rows)
		if err != nil {
			return err
		}

		for id, key := range assigned {
			if err := repo.AssignIndex(ctx, id, key); err != nil {
				return err
			}
		}

		for _, star := range all {
			if key, ok := assigned[star.ID]; ok {
				result[star.ID] = key
			} else {
				result[star.ID] = star.Index
			}
		}
		assignedCount = len(assigned)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if assignedCount > 0 {
		metrics.BackfilledRows.WithLabelValues("stars").Add(float64(assignedCount))
		s.logger.Info(ctx, "star order backfilled",
			"user_id", userID, "assigned", assignedCount)
	}
	return result, nil
}
