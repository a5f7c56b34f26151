package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/coursekit/course-api/internal/config"
	"github.com/coursekit/course-api/internal/platform/postgres"
	"github.com/coursekit/course-api/internal/seed"
	"github.com/coursekit/course-api/internal/service"
	"github.com/coursekit/course-api/internal/service/auth"
	"github.com/coursekit/course-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore       store.UserStore
	catalogStore    store.CatalogStore
	enrollmentStore store.EnrollmentStore
	progressStore   store.ProgressStore

	// Service interfaces
	jwtService        auth.JWTService
	passwordHasher    auth.PasswordHasher
	passwordVerifier  auth.PasswordVerifier
	courseService     service.CourseService
	enrollmentService service.EnrollmentService
	progressService   service.ProgressService
	searchService     service.SearchService

	// Catalog seeding
	seedLoader *seed.Loader
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password hashing
	app.passwordHasher = auth.NewBcryptHasher(bcrypt.DefaultCost)
	app.passwordVerifier = auth.NewBcryptVerifier()

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.catalogStore = postgres.NewPostgresCatalogStore(db, logger)
	app.enrollmentStore = postgres.NewPostgresEnrollmentStore(db, logger)
	app.progressStore = postgres.NewPostgresProgressStore(db, logger)

	// Initialize services
	app.courseService = service.NewCourseService(app.catalogStore, logger)
	app.enrollmentService = service.NewEnrollmentService(
		app.enrollmentStore,
		app.progressStore,
		app.catalogStore,
		logger,
	)
	app.progressService = service.NewProgressService(
		app.progressStore,
		app.enrollmentStore,
		app.catalogStore,
		logger,
	)
	app.searchService = service.NewSearchService(app.catalogStore, logger)

	app.seedLoader = seed.NewLoader(app.catalogStore, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// seedCatalog populates an empty catalog from the configured fixture.
func (app *application) seedCatalog(ctx context.Context) error {
	return app.seedLoader.Load(ctx, app.config.Seed.CoursesPath)
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
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
