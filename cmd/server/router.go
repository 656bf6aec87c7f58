package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Brendennago/Syntagma/internal/api"
	apiMiddleware "github.com/Brendennago/Syntagma/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	vocabHandler := api.NewVocabHandler(app.vocabService, app.logger)
	sessionHandler := api.NewSessionHandler(app.sessionService, app.logger)
	passageHandler := api.NewPassageHandler(app.passageService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/vocabulary", func(r chi.Router) {
			r.Get("/", vocabHandler.List)
			r.Post("/pass", vocabHandler.Pass)
			r.Post("/lookup", vocabHandler.Lookup)
			r.Post("/lookup/undo", vocabHandler.UndoLookup)
			r.Post("/bulk", vocabHandler.Bulk)
			r.Post("/reset", vocabHandler.Reset)
			r.Post("/import", vocabHandler.Import)
		})

		r.Get("/session", sessionHandler.Load)
		r.Put("/session", sessionHandler.Save)

		r.Post("/passage/generate", passageHandler.Generate)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
