// Package storage is the durable key-value adapter backing the store. State
// lives in a local SQLite database, one JSON document per key; the schema is
// applied with embedded migrations on open.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/meltforce/repbook/internal/store"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps the SQLite handle and the key the app state is stored under.
type DB struct {
	db       *sql.DB
	stateKey string
}

// Compile-time check: *DB satisfies the store's persistence contract.
var _ store.Persister = (*DB)(nil)

// Open opens (or creates) the state database at path and applies pending
// migrations. The parent directory is created if needed.
func Open(path, stateKey string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging state db: %w", err)
	}

	if err := runMigrations(path); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db: db, stateKey: stateKey}, nil
}

// Close closes the database handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// runMigrations applies all pending migrations from the embedded directory.
func runMigrations(path string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+path)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// SaveState upserts the serialized state under the configured key.
func (d *DB) SaveState(ctx context.Context, state store.PersistedState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		d.stateKey, string(data))
	if err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}

// LoadState reads the state stored under the configured key. Returns
// (nil, nil) when nothing has been saved yet.
func (d *DB) LoadState(ctx context.Context) (*store.PersistedState, error) {
	var raw string
	err := d.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, d.stateKey,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}

	var state store.PersistedState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("decoding state: %w", err)
	}
	return &state, nil
}
