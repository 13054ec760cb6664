// Package services implements the transactional ordering commands: pin and
// star creation, index backfill and index rebalancing. Each command computes
// its neighbor lookups and writes inside a single dbx.WithTx transaction.
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
	"github.com/avolkov/pinboard/internal/server/config"
	"github.com/avolkov/pinboard/internal/server/metrics"
	"github.com/avolkov/pinboard/internal/server/models"
	"github.com/avolkov/pinboard/internal/server/ordering"
	"github.com/avolkov/pinboard/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// PinService creates pins with a correctly ordered index.
type PinService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	config *config.Config
	logger logging.Logger
}

// NewPinService constructs a PinService.
func NewPinService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *PinService {
	return &PinService{db: db, rm: rm, config: cfg, logger: logger}
}

// CreatePinInput names the arguments of PinService.Create. An empty
// CollectionID pins to the team's home. Index may pre-supply an explicit
// position; when empty the pin is appended at the end of the scope.
type CreatePinInput struct {
	ActorID      string
	TeamID       string
	DocumentID   string
	CollectionID string
	Index        string
}

// Create atomically creates one pin: it serializes the scope with an
// advisory lock, verifies the target exists, enforces the per-scope cap,
// computes the append index from the scope's current last pin, inserts the
// row and appends the audit event. Nothing is persisted on any failure.
func (s *PinService) Create(ctx context.Context, in CreatePinInput) (*models.Pin, error) {
	if in.DocumentID == "" {
		return nil, fmt.Errorf("%w: document id is required", common.ErrValidation)
	}
	if in.TeamID == "" {
		return nil, fmt.Errorf("%w: team id is required", common.ErrValidation)
	}
	if in.Index != "" {
		if err := fracindex.Validate(in.Index); err != nil {
			return nil, fmt.Errorf("%w: malformed index %q", common.ErrValidation, in.Index)
		}
	}

	var pin *models.Pin
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		pinRepo := s.rm.Pins(tx)

		// The lock covers the cap check and the edge lookup; without it two
		// concurrent creations in one scope could both pass the check.
		if err := pinRepo.LockScope(ctx, in.TeamID, in.CollectionID); err != nil {
			return err
		}

		if _, err := s.rm.Documents(tx).Get(ctx, in.DocumentID); err != nil {
			return fmt.Errorf("document %s: %w", in.DocumentID, err)
		}
		if in.CollectionID != "" {
			collection, err := s.rm.Collections(tx).Get(ctx, in.CollectionID)
			if err != nil {
				return fmt.Errorf("collection %s: %w", in.CollectionID, err)
			}
			if collection.TeamID != in.TeamID {
				return fmt.Errorf("collection %s: %w", in.CollectionID, common.ErrNotFound)
			}
		}

		count, err := pinRepo.CountInScope(ctx, in.TeamID, in.CollectionID)
		if err != nil {
			return err
		}
		if count >= int64(s.config.MaxPinsPerScope) {
			metrics.CapRejections.Inc()
			return fmt.Errorf("cannot pin more than %d documents: %w",
				s.config.MaxPinsPerScope, common.ErrValidation)
		}

		index := in.Index
		if index == "" {
			edge := ""
			last, err := pinRepo.LastInScope(ctx, in.TeamID, in.CollectionID)
			if err != nil && !errors.Is(err, common.ErrNotFound) {
				return err
			}
			if last != nil {
				edge = last.Index
			}
			if index, err = ordering.NextKey(edge, ordering.PlaceLast); err != nil {
				return err
			}
		}

		pin = &models.Pin{
			ID:           uuid.NewString(),
			TeamID:       in.TeamID,
			CollectionID: in.CollectionID,
			DocumentID:   in.DocumentID,
			Index:        index,
			CreatedByID:  in.ActorID,
		}
		if _, err := pinRepo.Create(ctx, pin); err != nil {
			return err
		}

		return s.rm.Events(tx).Append(ctx, &models.Event{
			ID:      uuid.NewString(),
			Name:    models.EventPinCreate,
			ModelID: pin.ID,
			TeamID:  in.TeamID,
			ActorID: in.ActorID,
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.PinsCreated.Inc()
	s.logger.Info(ctx, "pin created",
		"pin_id", pin.ID, "team_id", in.TeamID, "collection_id", in.CollectionID,
		"document_id", in.DocumentID, "index", pin.Index)
	return pin, nil
}
