package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wadjakorntonsri/landing-console/pkg/core/domain"
)

var errOffline = errors.New("remote offline")

type memLocal struct {
	mu  sync.Mutex
	cfg *domain.Configuration
	err error
}

func (m *memLocal) Read(ctx context.Context) domain.Configuration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cfg == nil {
		return domain.DefaultConfiguration()
	}
	return m.cfg.Clone()
}

func (m *memLocal) Write(ctx context.Context, cfg domain.Configuration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	c := cfg.Clone()
	m.cfg = &c
	return nil
}

type memRemote struct {
	mu        sync.Mutex
	configs   map[string]domain.Configuration
	snapshots map[string]*domain.Snapshot
	fetchErr  error
	upsertErr error
	fetches   int
	upserts   int
	codes     int

	// block, when set, holds FetchByKey until it is closed
	block   chan struct{}
	started chan struct{}
}

func newMemRemote() *memRemote {
	return &memRemote{
		configs:   map[string]domain.Configuration{},
		snapshots: map[string]*domain.Snapshot{},
	}
}

func (m *memRemote) FetchByKey(ctx context.Context, key string) (*domain.Configuration, error) {
	m.mu.Lock()
	m.fetches++
	block, started := m.block, m.started
	m.mu.Unlock()

	if block != nil {
		close(started)
		<-block
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	cfg, ok := m.configs[key]
	if !ok {
		return nil, nil
	}
	c := cfg.Clone()
	return &c, nil
}

func (m *memRemote) Upsert(ctx context.Context, key string, cfg domain.Configuration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.configs[key] = cfg.Clone()
	return nil
}

func (m *memRemote) Ping(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchErr == nil
}

func (m *memRemote) UploadSnapshot(ctx context.Context, cfg domain.Configuration, description string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return "", m.upsertErr
	}
	m.codes++
	code := fmt.Sprintf("CODE%02d", m.codes)
	m.snapshots[code] = &domain.Snapshot{ShareCode: code, Configuration: cfg.Clone(), Description: description}
	return code, nil
}

func (m *memRemote) DownloadSnapshot(ctx context.Context, code string) (*domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.snapshots[strings.ToUpper(code)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSnapshotNotFound, code)
	}
	s.AccessCount++
	out := *s
	return &out, nil
}

func (m *memRemote) LookupSnapshot(ctx context.Context, code string) (*domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.snapshots[strings.ToUpper(code)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSnapshotNotFound, code)
	}
	out := *s
	return &out, nil
}

func (m *memRemote) stored(key string) (domain.Configuration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg, ok := m.configs[key]
	return cfg, ok
}

func (m *memRemote) counts() (fetches, upserts int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetches, m.upserts
}

type fixedColors struct{ color string }

func (f fixedColors) Extract(ctx context.Context, source string) string   { return f.color }
func (f fixedColors) AccentFor(ctx context.Context, source string) string { return f.color }

// clock is a manually advanced time source
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
