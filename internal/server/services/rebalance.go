package services

import (
	"context"
	"database/sql"

	"github.com/avolkov/pinboard/internal/dbx"
	"github.com/avolkov/pinboard/internal/logging"
	"github.com/avolkov/pinboard/internal/server/metrics"
	"github.com/avolkov/pinboard/internal/server/ordering"
	"github.com/avolkov/pinboard/internal/server/repositories/repomanager"
)

// RebalanceService renumbers a scope with evenly spaced short keys. Repeated
// fine-grained insertion at the same spot makes index keys grow; rebalancing
// resets them without changing the visible order. It is a maintenance
// operation invoked by an operator, never on the request path: it rewrites
// assigned indexes, which creator commands and backfill never do.
type RebalanceService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	logger logging.Logger
}

// NewRebalanceService constructs a RebalanceService.
func NewRebalanceService(db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger) *RebalanceService {
	return &RebalanceService{db: db, rm: rm, logger: logger}
}

// Pins renumbers one pin scope. The scope's advisory lock is held for the
// duration so concurrent creations cannot interleave with the rewrite.
func (s *RebalanceService) Pins(ctx context.Context, teamID, collectionID string) (map[string]string, error) {
	result := make(map[string]string)
	changed := 0

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Pins(tx)
		if err := repo.LockScope(ctx, teamID, collectionID); err != nil {
			return err
		}

		all, err := repo.AllInScope(ctx, teamID, collectionID)
		if err != nil {
			return err
		}
		keys, err := ordering.Spread(len(all))
		if err != nil {
			return err
		}
		for i, pin := range all {
			result[pin.ID] = keys[i]
			if pin.Index == keys[i] {
				continue
			}
			if err := repo.SetIndex(ctx, pin.ID, keys[i]); err != nil {
				return err
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed > 0 {
		metrics.RebalancedRows.WithLabelValues("pins").Add(float64(changed))
		s.logger.Info(ctx, "pins rebalanced",
			"team_id", teamID, "collection_id", collectionID, "changed", changed)
	}
	return result, nil
}

// Collections renumbers a team's collection order.
func (s *RebalanceService) Collections(ctx context.Context, teamID string) (map[string]string, error) {
	result := make(map[string]string)
	changed := 0

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Collections(tx)

		all, err := repo.AllByTeam(ctx, teamID)
		if err != nil {
			return err
		}
		keys, err := ordering.Spread(len(all))
		if err != nil {
			return err
		}
		for i, c := range all {
			result[c.ID] = keys[i]
			if c.Index == keys[i] {
				continue
			}
			if err := repo.SetIndex(ctx, c.ID, keys[i]); err != nil {
				return err
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed > 0 {
		metrics.RebalancedRows.WithLabelValues("collections").Add(float64(changed))
		s.logger.Info(ctx, "collections rebalanced", "team_id", teamID, "changed", changed)
	}
	return result, nil
}

// Stars renumbers a user's star order.
func (s *RebalanceService) Stars(ctx context.Context, userID string) (map[string]string, error) {
	result := make(map[string]string)
	changed := 0

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Stars(tx)

		all, err := repo.OrderedByIndex(ctx, userID)
		if err != nil {
			return err
		}
		keys, err := ordering.Spread(len(all))
		if err != nil {
			return err
		}
		for i, star := range all {
			result[star.ID] = keys[i]
			if star.Index == keys[i] {
				continue
			}
			if err := repo.SetIndex(ctx, star.ID, keys[i]); err != nil {
				return err
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed > 0 {
		metrics.RebalancedRows.WithLabelValues("stars").Add(float64(changed))
		s.logger.Info(ctx, "stars rebalanced", "user_id", userID, "changed", changed)
	}
	return result, nil
}
