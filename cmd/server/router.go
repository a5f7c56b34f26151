package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/coursekit/course-api/internal/api"
	apiMiddleware "github.com/coursekit/course-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	courseHandler := api.NewCourseHandler(app.courseService)
	enrollmentHandler := api.NewEnrollmentHandler(app.enrollmentService)
	subtopicHandler := api.NewSubtopicHandler(app.progressService)
	searchHandler := api.NewSearchHandler(app.searchService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Catalog endpoints (public)
		r.Get("/courses", courseHandler.ListCourses)
		r.Get("/courses/{courseID}", courseHandler.GetCourse)
		r.Get("/search", searchHandler.Search)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/courses/{courseID}/enroll", enrollmentHandler.Enroll)
			r.Get("/enrollments/{enrollmentID}/progress", enrollmentHandler.GetProgress)
			r.Post("/subtopics/{subtopicID}/complete", subtopicHandler.MarkComplete)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
