package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"garage-reconciliation/internal/usecase"
)

// NewRouter creates the Chi router with all API routes mounted.
func NewRouter(reconciler *usecase.ReconciliationUseCase, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h := &Handlers{
		reconciler: reconciler,
		logger:     logger,
	}

	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/reconcile", h.Reconcile)
		r.Post("/expected-dates", h.ExpectedDates)
	})

	return r
}
