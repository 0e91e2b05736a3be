// Package api exposes each analysis phase as a plain data-in/data-out HTTP
// operation, plus CRUD over stored token records. All pipeline work happens
// in the pkg packages; handlers only translate between the wire envelope
// and phase results.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/tokenscope/internal/storage"
)

// Config holds API-level settings.
type Config struct {
	// DefaultSecret is used by the encoder endpoint when the request omits
	// an explicit secret.
	DefaultSecret string `env:"SECRET_KEY" envDefault:"secret"`
}

// TokenStore is the persistence surface the API consumes. Satisfied by
// *storage.Repository; faked in tests.
type TokenStore interface {
	List(ctx context.Context) ([]storage.Record, error)
	Get(ctx context.Context, id string) (storage.Record, error)
	Create(ctx context.Context, record storage.Record) (storage.Record, error)
	Delete(ctx context.Context, id string) error
}

// Handler bundles the API dependencies.
type Handler struct {
	log     *slog.Logger
	store   TokenStore
	dbCheck func(context.Context) error
	cfg     Config
}

// New assembles the router. store and dbCheck may be nil when persistence
// is disabled; the /jwts endpoints then respond 503.
func New(log *slog.Logger, store TokenStore, dbCheck func(context.Context) error, cfg Config) http.Handler {
	h := &Handler{log: log, store: store, dbCheck: dbCheck, cfg: cfg}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(allowCORS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)

		r.Route("/analyze", func(r chi.Router) {
			r.Get("/lexical/{token}", h.analyzeLexical)
			r.Post("/decoder", h.decodeSegments)
			r.Post("/syntax", h.analyzeSyntax)
			r.Post("/semantic", h.analyzeSemantic)
			r.Post("/encoder", h.encodeToken)
			r.Post("/crypto-verification", h.verifySignature)
		})

		r.Route("/jwts", func(r chi.Router) {
			r.Get("/", h.listTokens)
			r.Post("/", h.createToken)
			r.Delete("/{id}", h.deleteToken)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "healthy", "message": "API is running"}

	if h.dbCheck != nil {
		if err := h.dbCheck(r.Context()); err != nil {
			status["status"] = "degraded"
			status["message"] = "database is unreachable"
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
	}

	writeJSON(w, http.StatusOK, status)
}
