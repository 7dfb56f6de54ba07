package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/simple-lms-api/internal/database"
)

// PostgresPersister stores the session as a row of the sessions table
type PostgresPersister struct {
	db  *database.DB
	key string
}

// NewPostgresPersister creates a PostgresPersister
func NewPostgresPersister(db *database.DB, key string) *PostgresPersister {
	return &PostgresPersister{db: db, key: key}
}

func (p *PostgresPersister) Load(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT payload FROM sessions WHERE key = $1`, p.key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return payload, nil
}

func (p *PostgresPersister) Save(ctx context.Context, data []byte) error {
	query := `
		INSERT INTO sessions (key, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := p.db.ExecContext(ctx, query, p.key, string(data), time.Now()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (p *PostgresPersister) Clear(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM sessions WHERE key = $1`, p.key); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Ping checks the database connection
func (p *PostgresPersister) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}
