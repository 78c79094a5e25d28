package server

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/slizer98/api-rest-go/internal/app"
	"github.com/slizer98/api-rest-go/internal/config"
	"github.com/slizer98/api-rest-go/internal/handlers"
	"github.com/slizer98/api-rest-go/internal/logger"
)

// New creates the chi router with middleware, the usuarios API and the static
// file server wired together.
func New(cfg *config.Config, a *app.App, static fs.FS, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// ── Middleware ───────────────────────────────────────────
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if cfg.IsDevelopment() {
		r.Use(logger.RequestLogger(log))
	}
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// ── Routes ──────────────────────────────────────────────
	handlers.FileServer(r, "/", static)
	r.Get("/", handlers.Hello)

	usersH := handlers.NewUserHandler(a, log)
	r.Route("/api/usuarios", usersH.Routes)

	return r
}
