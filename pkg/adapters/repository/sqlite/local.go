package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/wadjakorntonsri/landing-console/pkg/core/domain"
	"github.com/wadjakorntonsri/landing-console/pkg/ports"
)

// LocalStateKey is the fixed key the configuration blob lives under
const LocalStateKey = "landing-console-config"

// LocalStore keeps the whole configuration as one JSON blob in an embedded
// database, the server-side stand-in for browser local storage.
type LocalStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewLocalStore(dbURL string, logger *slog.Logger) (*LocalStore, error) {
	db, err := Open(dbURL)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	err = migrate(context.Background(), db, []string{`
	CREATE TABLE IF NOT EXISTS local_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &LocalStore{db: db, logger: logger}, nil
}

func (s *LocalStore) Read(ctx context.Context) domain.Configuration {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM local_state WHERE key = ?`, LocalStateKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return domain.DefaultConfiguration()
	}
	if err != nil {
		s.logger.Error("local cache read failed", "error", err)
		return domain.DefaultConfiguration()
	}

	var cfg domain.Configuration
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		s.logger.Error("local cache holds malformed configuration", "error", err)
		return domain.DefaultConfiguration()
	}
	return cfg
}

func (s *LocalStore) Write(ctx context.Context, cfg domain.Configuration) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return s.PutRaw(ctx, string(data))
}

// Raw returns the stored blob untouched, for diagnostics and tests
func (s *LocalStore) Raw(ctx context.Context) (string, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM local_state WHERE key = ?`, LocalStateKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return raw, err
}

// PutRaw stores a blob without validation. Used to simulate corrupted state.
func (s *LocalStore) PutRaw(ctx context.Context, raw string) error {
	query := `INSERT INTO local_state (key, value, updated_at) VALUES (?, ?, ?)
			  ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	_, err := s.db.ExecContext(ctx, query, LocalStateKey, raw, time.Now().UTC().Format(timeLayout))
	return err
}

func (s *LocalStore) Close() error {
	return s.db.Close()
}

// Ensure interface compliance
var _ ports.LocalCache = (*LocalStore)(nil)
