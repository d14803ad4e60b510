package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/tetherhq/tether-api/internal/capture"
	"github.com/tetherhq/tether-api/internal/config"
	"github.com/tetherhq/tether-api/internal/domain"
	"github.com/tetherhq/tether-api/internal/events"
	"github.com/tetherhq/tether-api/internal/platform/postgres"
	"github.com/tetherhq/tether-api/internal/service/session"
	"github.com/tetherhq/tether-api/internal/store"

	// Registers the pgx stdlib driver under the "pgx" name.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	artifactStore store.ArtifactStore
	promptStore   store.PromptStore

	controller *session.Controller
	registry   *session.Registry
}

// newApplication wires all application components from the loaded
// configuration. The caller owns the returned application and must call
// cleanup when done.
func newApplication(cfg *config.Config, log *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	artifactStore := postgres.NewPostgresArtifactStore(db, log)
	promptStore := postgres.NewPostgresPromptStore(db, log)

	emitter := events.NewInMemoryEventEmitter(log)
	emitter.RegisterHandler(&savedEventLogger{logger: log})

	thresholds := session.ThresholdTable{
		domain.PhasePreparation: cfg.Session.PreparationGoal,
		domain.PhasePeak:        cfg.Session.PeakGoal,
		domain.PhaseIntegration: cfg.Session.IntegrationGoal,
	}

	controller := session.NewController(
		session.NewSelector(),
		capture.NewLoopbackDevice(),
		artifactStore,
		promptStore,
		emitter,
		thresholds,
		log,
	)

	return &application{
		config:        cfg,
		logger:        log,
		db:            db,
		artifactStore: artifactStore,
		promptStore:   promptStore,
		controller:    controller,
		registry:      session.NewRegistry(),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}

// setupDatabase establishes a connection to the database and configures the
// connection pool.
func setupDatabase(cfg *config.Config, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established")
	return db, nil
}

// savedEventLogger is an event handler that records saved artifacts in the
// application log, giving operators a durable audit trail of submissions.
type savedEventLogger struct {
	logger *slog.Logger
}

// HandleEvent implements events.EventHandler.
func (h *savedEventLogger) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.TypeArtifactSaved {
		return nil
	}

	var payload session.ArtifactSavedPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	h.logger.Info("artifact saved",
		"event_id", event.ID,
		"artifact_id", payload.ArtifactID,
		"session_id", payload.SessionID,
		"template", payload.Template,
		"phase", payload.Phase,
		"media_type", payload.MediaType)
	return nil
}
