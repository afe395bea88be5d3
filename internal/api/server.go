// Package api provides the HTTP API server and handlers for PageKeep.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pagekeep/pagekeep-server/internal/auth"
	apperrors "github.com/pagekeep/pagekeep-server/internal/errors"
	"github.com/pagekeep/pagekeep-server/internal/http/response"
	"github.com/pagekeep/pagekeep-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	tokens          *auth.TokenService
	authService     *service.AuthService
	bookService     *service.BookService
	progressService *service.ProgressService
	noteService     *service.NoteService
	lookupService   *service.LookupService
	router          *chi.Mux
	logger          *slog.Logger
	corsOrigin      string
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	tokens *auth.TokenService,
	authService *service.AuthService,
	bookService *service.BookService,
	progressService *service.ProgressService,
	noteService *service.NoteService,
	lookupService *service.LookupService,
	corsOrigin string,
	logger *slog.Logger,
) *Server {
	s := &Server{
		tokens:          tokens,
		authService:     authService,
		bookService:     bookService,
		progressService: progressService,
		noteService:     noteService,
		lookupService:   lookupService,
		router:          chi.NewRouter(),
		logger:          logger,
		corsOrigin:      corsOrigin,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check (public).
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api", func(r chi.Router) {
		// Auth endpoints.
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/logout", s.handleLogout)
				r.Get("/me", s.handleCurrentUser)
				r.Post("/refresh", s.handleRefresh)
			})
		})

		// Books (require auth).
		r.Route("/books", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListBooks)
			r.Post("/", s.handleCreateBook)
			r.Get("/search", s.handleCatalogSearch)
			r.Get("/lookup-by-isbn/{isbn}", s.handleLookupByISBN)
			r.Get("/stats", s.handleBookStats)
			r.Get("/{id}", s.handleGetBook)
			r.Put("/{id}", s.handleUpdateBook)
			r.Delete("/{id}", s.handleDeleteBook)
			r.Put("/{id}/progress", s.handleUpdateProgress)
			r.Get("/{id}/progress-history", s.handleProgressHistory)
			r.Get("/{id}/notes", s.handleListNotes)
			r.Post("/{id}/notes", s.handleCreateNote)
		})

		// Notes (require auth).
		r.Route("/notes", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/{id}", s.handleGetNote)
			r.Put("/{id}", s.handleUpdateNote)
			r.Delete("/{id}", s.handleDeleteNote)
		})
	})

	// Unmatched routes get the JSON envelope, not chi's plain-text 404.
	s.router.NotFound(s.handleNotFound)
	s.router.MethodNotAllowed(s.handleNotFound)
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "ok",
	}, s.logger)
}

// handleNotFound returns the standard envelope for unmatched routes.
func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	response.Error(w, apperrors.CodeNotFound, "endpoint not found", s.logger)
}
