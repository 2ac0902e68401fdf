package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasksum-api/internal/config"
	"github.com/phrazzld/tasksum-api/internal/platform/postgres"
	"github.com/phrazzld/tasksum-api/internal/service"
	"github.com/phrazzld/tasksum-api/internal/store"
	"github.com/phrazzld/tasksum-api/internal/summary"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	taskStore   store.TaskStore
	summarizer  summary.Summarizer
	taskService service.TaskService
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	summarizer, err := newSummarizer(ctx, cfg.Summarizer, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize summarizer: %w", err)
	}

	return assembleApplication(cfg, logger, db, postgres.NewPostgresTaskStore(db, logger), summarizer)
}

// assembleApplication wires the service layer over an existing store and summarizer.
func assembleApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	taskStore store.TaskStore,
	summarizer summary.Summarizer,
) (*application, error) {
	taskService, err := service.NewTaskService(taskStore, summarizer, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		taskStore:   taskStore,
		summarizer:  summarizer,
		taskService: taskService,
	}, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
