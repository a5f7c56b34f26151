// Package main implements the entry point for the course API server, which
// manages the course catalog, enrollments, subtopic progress, and search.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/coursekit/course-api/internal/config"
	"github.com/coursekit/course-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// run wires the application together: configuration, logging, database,
// migrations, catalog seeding, and finally the HTTP server.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	ctx := context.Background()

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := app.seedCatalog(ctx); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	return app.Run(ctx)
}
