package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/matan1995el-lgtm/aliexpres/internal/config"
)

// PostgresStore persists collection documents in a single table of JSONB
// rows, one row per collection key.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore establishes a PostgreSQL connection using the provided
// configuration. It applies a small retry strategy to handle transient
// bootstrapping issues (e.g., DB container starting up).
func NewPostgresStore(cfg *config.DatabaseConfig) (*PostgresStore, error) {
	if cfg == nil {
		return nil, errors.New("nil database config")
	}

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(cfg.User), url.QueryEscape(cfg.Password), cfg.Host, cfg.Port, cfg.Name, cfg.SSLMode,
	)

	// Retry policy: up to 5 attempts, exponential backoff starting at 500ms.
	const (
		maxAttempts = 5
		baseDelay   = 500 * time.Millisecond
	)

	var db *sqlx.DB
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, lastErr = sqlx.Open("postgres", dsn)
		if lastErr != nil {
			sleepWithBackoff(attempt, baseDelay)
			continue
		}

		setPool(db.DB)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		lastErr = db.PingContext(ctx)
		cancel()
		if lastErr == nil {
			return &PostgresStore{db: db}, nil
		}

		_ = db.Close()
		sleepWithBackoff(attempt, baseDelay)
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxAttempts, lastErr)
}

// DB exposes the underlying handle for migrations.
func (s *PostgresStore) DB() *sql.DB {
	return s.db.DB
}

// Get retrieves a document by key.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT doc FROM collections WHERE key = $1`
	var doc []byte
	if err := s.db.GetContext(ctx, &doc, q, key); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Put upserts a document under key.
func (s *PostgresStore) Put(ctx context.Context, key string, value []byte) error {
	const q = `
        INSERT INTO collections (key, doc, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE SET
            doc = EXCLUDED.doc,
            updated_at = NOW()`
	_, err := s.db.ExecContext(ctx, q, key, value)
	return err
}

// Delete removes a key.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM collections WHERE key = $1`
	_, err := s.db.ExecContext(ctx, q, key)
	return err
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// setPool configures the connection pool for the database.
func setPool(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
}

// sleepWithBackoff sleeps for an exponentially increasing duration.
func sleepWithBackoff(attempt int, base time.Duration) {
	d := base << (attempt - 1)
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	time.Sleep(d)
}
