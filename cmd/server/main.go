// Package main implements the entry point for the tasksum API server, a
// CRUD service over tasks whose descriptions are summarized by an external
// language model.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/tasksum-api/internal/config"
	"github.com/phrazzld/tasksum-api/internal/platform/logger"
	"github.com/phrazzld/tasksum-api/internal/redact"
)

// options holds the command line flags.
type options struct {
	migrateCmd  string
	migrateOnly bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&opts.migrateCmd, "migrate", "",
		"run a migration command before serving: up, down, status, version, reset")
	fs.BoolVar(&opts.migrateOnly, "migrate-only", false,
		"exit after running the -migrate command")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.migrateOnly && opts.migrateCmd == "" {
		return options{}, fmt.Errorf("-migrate-only requires -migrate")
	}
	return opts, nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("server exited with error", "error", redact.Error(err))
		os.Exit(1)
	}
}

// run wires the application together and blocks until shutdown.
func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"summarizer_provider", cfg.Summarizer.Provider,
		"summarizer_model", cfg.Summarizer.ModelName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	if opts.migrateCmd != "" {
		if err := handleMigrations(ctx, db, opts.migrateCmd, log); err != nil {
			_ = db.Close()
			return err
		}
		if opts.migrateOnly {
			return db.Close()
		}
	}

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
