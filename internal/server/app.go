// Package server wires configuration, logging, the database and the ordering
// services into the operational command-line application. The application is
// one-shot: it runs a single maintenance command (migrations, backfill or
// rebalance) under a deadline and exits.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/avolkov/pinboard/internal/logging"
	"github.com/avolkov/pinboard/internal/server/config"
	"github.com/avolkov/pinboard/internal/server/repositories/repomanager"
	"github.com/avolkov/pinboard/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	rm        repomanager.RepositoryManager
	backfill  *services.BackfillService
	rebalance *services.RebalanceService
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		rm:        rm,
		backfill:  services.NewBackfillService(db, rm, logger),
		rebalance: services.NewRebalanceService(db, rm, logger),
	}, nil
}

// Close releases the database connection pool.
func (app *App) Close() error {
	return app.db.Close()
}

// Run executes one command. The first argument selects the command, the rest
// are its identifiers:
//
//	migrate
//	backfill-collections <team-id>
//	backfill-stars <user-id>
//	rebalance-pins <team-id> [collection-id]
//	rebalance-collections <team-id>
//	rebalance-stars <user-id>
func (app *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command given")
	}

	ctx, cancel := context.WithTimeout(ctx, app.config.CommandTimeout)
	defer cancel()

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "migrate":
		if err := app.rm.RunMigrations(ctx, app.db); err != nil {
			return fmt.Errorf("migrations error: %w", err)
		}
		app.logger.Info(ctx, "migrations applied")
		return nil

	case "backfill-collections":
		if len(rest) != 1 {
			return fmt.Errorf("usage: backfill-collections <team-id>")
		}
		order, err := app.backfill.CollectionOrder(ctx, rest[0])
		if err != nil {
			return err
		}
		app.logger.Info(ctx, "collection order complete", "team_id", rest[0], "rows", len(order))
		return nil

	case "backfill-stars":
		if len(rest) != 1 {
			return fmt.Errorf("usage: backfill-stars <user-id>")
		}
		order, err := app.backfill.StarOrder(ctx, rest[0])
		if err != nil {
			return err
		}
		app.logger.Info(ctx, "star order complete", "user_id", rest[0], "rows", len(order))
		return nil

	case "rebalance-pins":
		if len(rest) < 1 || len(rest) > 2 {
			return fmt.Errorf("usage: rebalance-pins <team-id> [collection-id]")
		}
		collectionID := ""
		if len(rest) == 2 {
			collectionID = rest[1]
		}
		order, err := app.rebalance.Pins(ctx, rest[0], collectionID)
		if err != nil {
			return err
		}
		app.logger.Info(ctx, "pin rebalance complete",
			"team_id", rest[0], "collection_id", collectionID, "rows", len(order))
		return nil

	case "rebalance-collections":
		if len(rest) != 1 {
			return fmt.Errorf("usage: rebalance-collections <team-id>")
		}
		order, err := app.rebalance.Collections(ctx, rest[0])
		if err != nil {
			return err
		}
		app.logger.Info(ctx, "collection rebalance complete", "team_id", rest[0], "rows", len(order))
		return nil

	case "rebalance-stars":
		if len(rest) != 1 {
			return fmt.Errorf("usage: rebalance-stars <user-id>")
		}
		order, err := app.rebalance.Stars(ctx, rest[0])
		if err != nil {
			return err
		}
		app.logger.Info(ctx, "star rebalance complete", "user_id", rest[0], "rows", len(order))
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
