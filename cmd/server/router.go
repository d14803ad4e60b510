package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tetherhq/tether-api/internal/api"
	apiMiddleware "github.com/tetherhq/tether-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	sessionHandler := api.NewSessionHandler(app.controller, app.registry, app.logger)
	artifactHandler := api.NewArtifactHandler(app.artifactStore, app.logger)
	promptHandler := api.NewPromptHandler(app.promptStore, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Session lifecycle
		r.Post("/sessions", sessionHandler.Create)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", sessionHandler.Get)
			r.Delete("/", sessionHandler.Exit)
			r.Post("/preparation/complete", sessionHandler.CompletePreparation)
			r.Post("/shuffle", sessionHandler.Shuffle)
			r.Post("/response/text", sessionHandler.ChooseText)
			r.Post("/recording/start", sessionHandler.StartRecording)
			r.Post("/recording/chunks", sessionHandler.AppendChunk)
			r.Post("/recording/stop", sessionHandler.StopRecording)
			r.Post("/save", sessionHandler.Save)
			r.Post("/stay", sessionHandler.Stay)
			r.Post("/advance", sessionHandler.Advance)
		})

		// Artifact history
		r.Get("/artifacts", artifactHandler.List)
		r.Get("/artifacts/{id}", artifactHandler.Get)
		r.Get("/artifacts/{id}/media", artifactHandler.GetMedia)

		// Prompt library
		r.Get("/prompts", promptHandler.List)
		r.Post("/prompts", promptHandler.Create)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
