package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/wadjakorntonsri/landing-console/pkg/core/domain"
	"github.com/wadjakorntonsri/landing-console/pkg/observe"
	"github.com/wadjakorntonsri/landing-console/pkg/ports"
)

const (
	StateIdle      = "idle"
	StateLoading   = "loading"
	StateSyncing   = "syncing"
	StateLocalOnly = "local_only"
)

var allStates = []string{StateIdle, StateLoading, StateSyncing, StateLocalOnly}

type SyncOptions struct {
	ConfigID       string
	ThrottleWindow time.Duration
	SyncInterval   time.Duration
	Now            func() time.Time
	Logger         *slog.Logger
}

func DefaultSyncOptions() SyncOptions {
	return SyncOptions{
		ConfigID:       domain.DefaultConfigID,
		ThrottleWindow: 5 * time.Second,
		SyncInterval:   30 * time.Second,
	}
}

// SyncService keeps the local cache and the optional remote store in step.
// Local always wins on save; remote wins on a successful fetch. There is no
// conflict resolution, the last upsert wins.
type SyncService struct {
	local  ports.LocalCache
	remote ports.RemoteStore // nil means local-only
	opts   SyncOptions
	logger *slog.Logger

	mu       sync.Mutex
	state    string
	inFlight bool
	lastSync time.Time
	cron     *cron.Cron
}

// NewSyncService wires the tiers. Pass a nil remote to run local-only.
func NewSyncService(local ports.LocalCache, remote ports.RemoteStore, opts SyncOptions) *SyncService {
	def := DefaultSyncOptions()
	if opts.ConfigID == "" {
		opts.ConfigID = def.ConfigID
	}
	if opts.ThrottleWindow <= 0 {
		opts.ThrottleWindow = def.ThrottleWindow
	}
	if opts.SyncInterval <= 0 {
		opts.SyncInterval = def.SyncInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &SyncService{
		local:  local,
		remote: remote,
		opts:   opts,
		logger: opts.Logger.With("component", "sync"),
	}
	if remote == nil {
		s.setState(StateLocalOnly)
	} else {
		s.setState(StateIdle)
	}
	return s
}

func (s *SyncService) RemoteAvailable() bool {
	return s.remote != nil
}

func (s *SyncService) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// GetConfig returns the freshest configuration it can get cheaply. Remote is
// consulted at most once per throttle window and never by two callers at once;
// everyone else gets the local copy.
func (s *SyncService) GetConfig(ctx context.Context) domain.Configuration {
	if s.remote == nil {
		return s.LocalConfig(ctx)
	}

	s.mu.Lock()
	now := s.opts.Now()
	if s.inFlight || (!s.lastSync.IsZero() && now.Sub(s.lastSync) < s.opts.ThrottleWindow) {
		s.mu.Unlock()
		observe.RemoteFetches.WithLabelValues("throttled").Inc()
		return s.LocalConfig(ctx)
	}
	s.inFlight = true
	s.setStateLocked(StateLoading)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.lastSync = s.opts.Now()
		s.setStateLocked(StateIdle)
		s.mu.Unlock()
	}()

	cfg, err := s.remote.FetchByKey(ctx, s.opts.ConfigID)
	if err != nil {
		observe.RemoteFetches.WithLabelValues("error").Inc()
		// No seeding here: defaults pushed over a flaky link would clobber the
		// remote row and the local edits with it.
		s.logger.Warn("remote fetch failed, serving local copy", "error", err)
		return s.LocalConfig(ctx)
	}
	if cfg == nil {
		observe.RemoteFetches.WithLabelValues("not_found").Inc()
		s.logger.Info("no remote configuration yet, seeding defaults", "config_id", s.opts.ConfigID)
		def := domain.DefaultConfiguration()
		s.SaveConfig(ctx, def)
		return def
	}

	observe.RemoteFetches.WithLabelValues("found").Inc()
	s.writeLocal(ctx, *cfg)
	s.reportViolations(*cfg)
	return *cfg
}

// LocalConfig reads the local tier only
func (s *SyncService) LocalConfig(ctx context.Context) domain.Configuration {
	cfg := s.local.Read(ctx)
	s.reportViolations(cfg)
	return cfg
}

// SaveConfig writes local first so the change is visible even if the remote
// call is slow or fails. Failures are reported in the result, never returned.
func (s *SyncService) SaveConfig(ctx context.Context, cfg domain.Configuration) ports.SaveResult {
	var res ports.SaveResult
	if err := s.writeLocal(ctx, cfg); err != nil {
		res.LocalErr = err
	}
	if s.remote == nil {
		return res
	}

	res.RemoteAttempted = true
	s.setState(StateSyncing)
	defer s.settle()

	if err := s.remote.Upsert(ctx, s.opts.ConfigID, cfg); err != nil {
		observe.RemoteUpserts.WithLabelValues("error").Inc()
		s.logger.Warn("remote save failed, change kept locally", "error", err)
		res.RemoteErr = err
		return res
	}
	observe.RemoteUpserts.WithLabelValues("ok").Inc()
	s.logger.Debug("configuration saved to remote", "config_id", s.opts.ConfigID)
	return res
}

func (s *SyncService) ResetConfig(ctx context.Context) ports.SaveResult {
	return s.SaveConfig(ctx, domain.DefaultConfiguration())
}

// ForceSync drops the throttle stamp and refreshes from remote
func (s *SyncService) ForceSync(ctx context.Context) domain.Configuration {
	s.mu.Lock()
	s.lastSync = time.Time{}
	s.mu.Unlock()
	return s.GetConfig(ctx)
}

func (s *SyncService) TestConnection(ctx context.Context) bool {
	if s.remote == nil {
		return false
	}
	return s.remote.Ping(ctx)
}

// StartAutoSync refreshes from remote every SyncInterval until Stop. It is a
// no-op when running local-only or when auto-sync is already running.
func (s *SyncService) StartAutoSync(ctx context.Context) error {
	if s.remote == nil {
		return nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc("@every "+s.opts.SyncInterval.String(), func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("auto-sync panicked", "panic", r)
			}
		}()
		s.GetConfig(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduling auto-sync: %w", err)
	}

	s.mu.Lock()
	if s.cron != nil {
		s.mu.Unlock()
		return nil
	}
	s.cron = c
	s.mu.Unlock()

	c.Start()
	s.logger.Info("auto-sync started", "interval", s.opts.SyncInterval.String())
	return nil
}

func (s *SyncService) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c == nil {
		return
	}
	<-c.Stop().Done()
	s.logger.Info("auto-sync stopped")
}

// ExportConfig renders the current configuration as pretty-printed JSON
func (s *SyncService) ExportConfig(ctx context.Context) (string, error) {
	data, err := json.MarshalIndent(s.GetConfig(ctx), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ImportConfig replaces the whole configuration with data. No field-level merge.
func (s *SyncService) ImportConfig(ctx context.Context, data string) error {
	var cfg domain.Configuration
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		s.logger.Warn("import rejected", "error", err)
		return fmt.Errorf("%w: parsing configuration: %v", domain.ErrInvalidValue, err)
	}
	s.reportViolations(cfg)
	if res := s.SaveConfig(ctx, cfg); !res.OK() {
		return fmt.Errorf("saving imported configuration: %w", res.RemoteErr)
	}
	return nil
}

func (s *SyncService) writeLocal(ctx context.Context, cfg domain.Configuration) error {
	if err := s.local.Write(ctx, cfg); err != nil {
		observe.LocalWriteFailures.Inc()
		s.logger.Error("local cache write failed", "error", err)
		return err
	}
	return nil
}

func (s *SyncService) reportViolations(cfg domain.Configuration) {
	for _, err := range cfg.Categories.Violations(cfg.SiteLimits) {
		s.logger.Warn("configuration breaks category rules", "error", err)
	}
}

// settle returns to idle unless a fetch is still running
func (s *SyncService) settle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		s.setStateLocked(StateLoading)
		return
	}
	s.setStateLocked(StateIdle)
}

func (s *SyncService) setState(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setStateLocked(state)
}

func (s *SyncService) setStateLocked(state string) {
	s.state = state
	for _, st := range allStates {
		v := 0.0
		if st == state {
			v = 1
		}
		observe.SyncState.WithLabelValues(st).Set(v)
	}
}

var _ ports.ConfigService = (*SyncService)(nil)
