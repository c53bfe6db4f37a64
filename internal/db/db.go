// Package db owns the PostgreSQL connection pool and the embedded schema
// migrations.
package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	_ "github.com/lib/pq" // Register the PostgreSQL driver with database/sql.
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open opens a PostgreSQL connection pool for the given DSN, then pings
// it with a 5-second timeout to confirm the database is reachable.
func Open(dsn string) (*sqlx.DB, error) {
	// sqlx.Open only validates the DSN format; it does not connect yet.
	pool, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// PingContext performs a real round-trip to verify reachability.
	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

// Migrate runs all pending goose migrations from the embedded files.
// It must be called before the HTTP server starts accepting requests.
func Migrate(pool *sqlx.DB) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("sub migrations fs: %w", err)
	}

	goose.SetBaseFS(sub)
	defer goose.SetBaseFS(nil)

	if err := goose.Up(pool.DB, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
