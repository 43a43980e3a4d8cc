// Package httpapi exposes the analysis pipeline over HTTP. Every record
// endpoint is owner-scoped: the caller identifies itself with the
// X-Owner-Token header, and records of other owners are indistinguishable
// from missing ones.
package httpapi

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mfaulds/driftline/internal/contract"
)

// OwnerHeader carries the opaque, pre-validated owner identity.
const OwnerHeader = "X-Owner-Token"

// maxUploadSize bounds the accepted CSV upload body.
const maxUploadSize = 32 * 1024 * 1024 // 32MB

// Server wires the pipeline dependencies into an HTTP handler.
type Server struct {
	cfg    *contract.Config
	scorer contract.Scorer
	store  contract.RecordStore
}

// NewServer creates a Server around the given scorer and store.
func NewServer(cfg *contract.Config, sc contract.Scorer, store contract.RecordStore) *Server {
	return &Server{cfg: cfg, scorer: sc, store: store}
}

// Router builds the chi router with middleware and all record routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", OwnerHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/records", func(r chi.Router) {
		r.Post("/", s.handleUpload)
		r.Get("/", s.handleList)
		r.Get("/{recordID}/download", s.handleDownload)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("OK"))
}

// ListenAndServe starts the HTTP server on the configured listen address and
// blocks until it fails or the process exits.
func (s *Server) ListenAndServe() error {
	fmt.Fprintf(os.Stderr, "Serving record API on %s\n", s.cfg.ListenAddr)
	return http.ListenAndServe(s.cfg.ListenAddr, s.Router())
}
