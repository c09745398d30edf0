package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wadjakorntonsri/landing-console/pkg/core/domain"
	"github.com/wadjakorntonsri/landing-console/pkg/ports"
)

const (
	shareCodeLength   = 6
	shareCodeAttempts = 5
	shareCodeCharset  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// RemoteRepository talks to the hosted row store (Turso), or to a plain
// SQLite file when the URL is local.
type RemoteRepository struct {
	db      *sql.DB
	newCode func() (string, error)
}

func NewRemoteRepository(dbURL string) (*RemoteRepository, error) {
	db, err := Open(dbURL)
	if err != nil {
		return nil, err
	}

	err = migrate(context.Background(), db, []string{
		`CREATE TABLE IF NOT EXISTS global_configs (
			config_id TEXT PRIMARY KEY,
			configuration TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS configurations (
			id TEXT PRIMARY KEY,
			share_code TEXT NOT NULL UNIQUE,
			configuration TEXT NOT NULL,
			description TEXT,
			access_count INTEGER DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_configurations_share_code ON configurations(share_code)`,
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &RemoteRepository{db: db, newCode: generateShareCode}, nil
}

func (r *RemoteRepository) FetchByKey(ctx context.Context, key string) (*domain.Configuration, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT configuration FROM global_configs WHERE config_id = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg domain.Configuration
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("decoding remote configuration: %w", err)
	}
	return &cfg, nil
}

func (r *RemoteRepository) Upsert(ctx context.Context, key string, cfg domain.Configuration) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	query := `INSERT INTO global_configs (config_id, configuration, updated_at) VALUES (?, ?, ?)
			  ON CONFLICT(config_id) DO UPDATE SET configuration = excluded.configuration, updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query, key, string(data), time.Now().UTC().Format(timeLayout))
	return err
}

// Ping reports whether the primary table is reachable
func (r *RemoteRepository) Ping(ctx context.Context) bool {
	rows, err := r.db.QueryContext(ctx, `SELECT config_id FROM global_configs LIMIT 1`)
	if err != nil {
		return false
	}
	defer rows.Close()
	return rows.Err() == nil
}

// UploadSnapshot stores cfg under a fresh share code. A code that collides
// with an existing one is rejected by the UNIQUE constraint and redrawn.
func (r *RemoteRepository) UploadSnapshot(ctx context.Context, cfg domain.Configuration, description string) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	now := time.Now().UTC().Format(timeLayout)

	query := `INSERT INTO configurations (id, share_code, configuration, description, access_count, created_at, updated_at)
			  VALUES (?, ?, ?, ?, 0, ?, ?)`

	for attempt := 0; attempt < shareCodeAttempts; attempt++ {
		code, err := r.newCode()
		if err != nil {
			return "", err
		}

		_, err = r.db.ExecContext(ctx, query, uuid.NewString(), code, string(data), description, now, now)
		if err == nil {
			return code, nil
		}
		if !isUniqueViolation(err) {
			return "", err
		}
	}
	return "", errors.New("could not allocate a unique share code")
}

func (r *RemoteRepository) LookupSnapshot(ctx context.Context, code string) (*domain.Snapshot, error) {
	query := `SELECT id, share_code, configuration, description, access_count, created_at, updated_at
			  FROM configurations WHERE share_code = ?`

	var s domain.Snapshot
	var raw string
	var description sql.NullString
	var createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx, query, normalizeShareCode(code)).Scan(
		&s.ID, &s.ShareCode, &raw, &description, &s.AccessCount, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", domain.ErrSnapshotNotFound, normalizeShareCode(code))
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(raw), &s.Configuration); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	s.Description = description.String
	s.CreatedAt = parseTime(createdAt)
	s.UpdatedAt = parseTime(updatedAt)
	return &s, nil
}

// DownloadSnapshot looks the code up case-insensitively and counts the access
func (r *RemoteRepository) DownloadSnapshot(ctx context.Context, code string) (*domain.Snapshot, error) {
	s, err := r.LookupSnapshot(ctx, code)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	query := `UPDATE configurations SET access_count = access_count + 1, updated_at = ? WHERE share_code = ?`
	if _, err := r.db.ExecContext(ctx, query, now.Format(timeLayout), s.ShareCode); err != nil {
		return nil, err
	}
	s.AccessCount++
	s.UpdatedAt = now
	return s, nil
}

func (r *RemoteRepository) Close() error {
	return r.db.Close()
}

func normalizeShareCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func isUniqueViolation(err error) bool {
	return strings.Contains(strings.ToUpper(err.Error()), "UNIQUE")
}

func generateShareCode() (string, error) {
	b := make([]byte, shareCodeLength)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(shareCodeCharset))))
		if err != nil {
			return "", err
		}
		b[i] = shareCodeCharset[num.Int64()]
	}
	return string(b), nil
}

// Ensure interface compliance
var _ ports.RemoteStore = (*RemoteRepository)(nil)
