// Package database owns the postgres pool behind the session store and the
// schema migrations for its sessions table.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/simple-lms-api/internal/config"
)

const connectTimeout = 5 * time.Second

// DB is the session store's connection pool
type DB struct {
	*sql.DB
	log zerolog.Logger
}

// Open creates the pool, applies the configured limits and waits for the
// server to answer within connectTimeout.
func Open(ctx context.Context, cfg *config.DatabaseConfig, log zerolog.Logger) (*DB, error) {
	pool, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.MaxLifetime)

	db := &DB{
		DB:  pool,
		log: log.With().Str("component", "session_db").Logger(),
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("reach session database %s/%s: %w", cfg.Host, cfg.Name, err)
	}

	db.log.Info().
		Str("db_host", cfg.Host).
		Str("db_name", cfg.Name).
		Int("max_open_conns", cfg.MaxOpenConns).
		Msg("Session database ready")

	return db, nil
}

// Migrate brings the sessions schema up to the newest version found in dir
func (db *DB) Migrate(dir string) error {
	source, err := migrationSource(dir)
	if err != nil {
		return err
	}

	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("load migrations from %s: %w", source, err)
	}

	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		db.log.Debug().Str("source", source).Msg("Sessions schema already current")
	case err != nil:
		return fmt.Errorf("apply session migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("sessions schema left dirty at version %d", version)
	}

	db.log.Info().Uint("schema_version", version).Msg("Sessions schema migrated")
	return nil
}

// Ping reports whether the pool can still reach postgres
func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}

// migrationSource turns a migrations directory into a file:// source URL
func migrationSource(dir string) (string, error) {
	if dir == "" {
		return "", errors.New("migrations directory not configured")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve migrations directory: %w", err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}
