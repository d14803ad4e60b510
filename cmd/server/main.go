// Package main implements the entry point for the Tether API server, which
// runs guided session flows for couples and persists the artifacts they
// produce.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/tetherhq/tether-api/internal/config"
	"github.com/tetherhq/tether-api/internal/platform/logger"
	"github.com/tetherhq/tether-api/internal/platform/postgres"
)

func main() {
	migrate := flag.Bool("migrate", false, "apply pending database migrations and exit")
	migrateStatus := flag.Bool("migrate-status", false, "print database migration status and exit")
	flag.Parse()

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if *migrate || *migrateStatus {
		defer app.cleanup()
		if err := runMigrationCommand(app, *migrate); err != nil {
			app.logger.Error("migration command failed", "error", err)
			app.cleanup()
			log.Fatalf("migration command failed: %v", err)
		}
		return
	}

	// Migrations run on every startup; already-applied versions are skipped.
	if err := postgres.RunMigrations(app.db); err != nil {
		app.logger.Error("failed to apply migrations", "error", err)
		app.cleanup()
		log.Fatalf("failed to apply migrations: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging and wires the
// application components.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	logg.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	return newApplication(cfg, logg)
}

// runMigrationCommand executes the requested migration subcommand.
func runMigrationCommand(app *application, apply bool) error {
	if apply {
		return postgres.RunMigrations(app.db)
	}
	return postgres.MigrationStatus(app.db)
}
