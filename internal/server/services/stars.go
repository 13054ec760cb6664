package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkov/pinboard/internal/common"
	"github.com/avolkov/pinboard/internal/dbx"
	"github.com/avolkov/pinboard/internal/fracindex"
	"github.com/avolkov/pinboard/internal/logging"
	"github.com/avolkov/pinboard/internal/server/metrics"
	"github.com/avolkov/pinboard/internal/server/models"
	"github.com/avolkov/pinboard/internal/server/ordering"
	"github.com/avolkov/pinboard/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// StarService creates stars with a correctly ordered index. Unlike pins,
// stars prepend at the start of the user's order, carry no cap, and creation
// is find-or-create: starring the same target twice returns the same star.
type StarService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	logger logging.Logger
}

// NewStarService constructs a StarService.
func NewStarService(db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger) *StarService {
	return &StarService{db: db, rm: rm, logger: logger}
}

// CreateStarInput names the arguments of StarService.Create. Exactly one of
// DocumentID/CollectionID must be set.
type CreateStarInput struct {
	UserID       string
	DocumentID   string
	CollectionID string
	Index        string
}

// Create returns the user's star for the target, creating it at the front of
// the user's order when none exists. A duplicate request or a concurrent
// duplicate insert resolves to the existing star; no second row and no
// second audit event are produced.
func (s *StarService) Create(ctx context.Context, in CreateStarInput) (*models.Star, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", common.ErrValidation)
	}
	if (in.DocumentID == "") == (in.CollectionID == "") {
		return nil, fmt.Errorf("%w: exactly one of document or collection must be starred", common.ErrValidation)
	}
	if in.Index != "" {
		if err := fracindex.Validate(in.Index); err != nil {
			return nil, fmt.Errorf("%w: malformed index %q", common.ErrValidation, in.Index)
		}
	}

	var (
		star    *models.Star
		created bool
	)
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		starRepo := s.rm.Stars(tx)

		if in.DocumentID != "" {
			if _, err := s.rm.Documents(tx).Get(ctx, in.DocumentID); err != nil {
				return fmt.Errorf("document %s: %w", in.DocumentID, err)
			}
		} else {
			if _, err := s.rm.Collections(tx).Get(ctx, in.CollectionID); err != nil {
				return fmt.Errorf("collection %s: %w", in.CollectionID, err)
			}
		}

		existing, err := starRepo.FindByTarget(ctx, in.UserID, in.DocumentID, in.CollectionID)
		if err == nil {
			star = existing
			return nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}

		index := in.Index
		if index == "" {
			edge := ""
			first, err := starRepo.FirstInScope(ctx, in.UserID)
			if err != nil && !errors.Is(err, common.ErrNotFound) {
				return err
			}
			if first != nil {
				edge = first.Index
			}
			if index, err = ordering.NextKey(edge, ordering.PlaceFirst); err != nil {
				return err
			}
		}

		candidate := &models.Star{
			ID:           uuid.NewString(),
			UserID:       in.UserID,
			DocumentID:   in.DocumentID,
			CollectionID: in.CollectionID,
			Index:        index,
		}
		inserted, err := starRepo.Create(ctx, candidate)
		if err != nil {
			return err
		}
		if !inserted {
			// Lost a race against a concurrent identical request; the
			// winner's row is the result.
			if star, err = starRepo.FindByTarget(ctx, in.UserID, in.DocumentID, in.CollectionID); err != nil {
				return err
			}
			return nil
		}

		star = candidate
		created = true
		return s.rm.Events(tx).Append(ctx, &models.Event{
			ID:      uuid.NewString(),
			Name:    models.EventStarCreate,
			ModelID: star.ID,
			UserID:  in.UserID,
			ActorID: in.UserID,
		})
	})
	if err != nil {
		return nil, err
	}

	if created {
		metrics.StarsCreated.Inc()
		s.logger.Info(ctx, "star created",
			"star_id", star.ID, "user_id", in.UserID,
			"document_id", in.DocumentID, "collection_id", in.CollectionID,
			"index", star.Index)
	} else {
		metrics.StarsDeduplicated.Inc()
	}
	return star, nil
}
