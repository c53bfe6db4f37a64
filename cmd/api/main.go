// Package main is the entry point for the bookstore catalog API server.
// It wires together configuration, the database connection, the catalog
// service, and the HTTP router.
package main

import (
	"log/slog"
	"os"

	"github.com/pagebound/bookstore-api/internal/catalog"
	"github.com/pagebound/bookstore-api/internal/config"
	"github.com/pagebound/bookstore-api/internal/data"
	"github.com/pagebound/bookstore-api/internal/db"
	"github.com/pagebound/bookstore-api/internal/validator"
)

// appVersion is the current version of the API, shown in logs.
const appVersion = "1.0.0"

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config  *config.Config   // Server configuration loaded from env/file
	logger  *slog.Logger     // Structured logger that writes to stdout
	catalog *catalog.Service // Validation pipeline + store orchestration
}

// main is the application entry point.
// It loads configuration, opens the database, runs migrations, wires up
// dependencies, and starts the HTTP server with graceful shutdown.
func main() {
	// Create a structured logger that writes human-readable text to stdout.
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	// Open and verify the database connection pool.
	pool, err := db.Open(cfg.DB.DSN)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer pool.Close() // Close the pool cleanly when main() returns.

	logger.Info("database connection pool established")

	// Bring the schema up to date before accepting any requests.
	if err := db.Migrate(pool); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	// Build the configured validation strategies once; they are immutable
	// and shared by every request.
	rules := data.Rules{
		Quality: validator.NewTextQuality(
			cfg.Validation.MinTextLength,
			cfg.Validation.ConsonantClusterLength,
		),
		Image: validator.NewImageRef(
			cfg.Validation.ImageExtensions,
			cfg.Validation.TrustedImageHosts,
		),
		MinTitleLength:       cfg.Validation.MinTitleLength,
		MinDescriptionLength: cfg.Validation.MinDescriptionLength,
	}

	// Bundle all shared dependencies into a single struct.
	app := &applicationDependencies{
		config:  cfg,
		logger:  logger,
		catalog: catalog.New(data.NewPostgresStore(pool), rules),
	}

	logger.Info("starting application", "version", appVersion)

	if err := app.serve(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
