// Package rediscache provides a Local Cache backed by Redis, for deployments
// where several console instances share one cache.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wadjakorntonsri/landing-console/pkg/core/domain"
	"github.com/wadjakorntonsri/landing-console/pkg/ports"
)

const stateKey = "landing-console-config"

// Options configures the Redis-backed cache
type Options struct {
	URL            string
	Prefix         string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

func DefaultOptions() Options {
	return Options{
		Prefix:         "landing:",
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    3 * time.Second,
		WriteTimeout:   3 * time.Second,
	}
}

type LocalStore struct {
	client *redis.Client
	key    string
	logger *slog.Logger
}

func NewLocalStore(opts Options, logger *slog.Logger) (*LocalStore, error) {
	if opts.URL == "" {
		return nil, errors.New("redis URL is required")
	}
	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}
	if opts.ConnectTimeout > 0 {
		redisOpts.DialTimeout = opts.ConnectTimeout
	}
	if opts.ReadTimeout > 0 {
		redisOpts.ReadTimeout = opts.ReadTimeout
	}
	if opts.WriteTimeout > 0 {
		redisOpts.WriteTimeout = opts.WriteTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LocalStore{
		client: redis.NewClient(redisOpts),
		key:    opts.Prefix + stateKey,
		logger: logger,
	}, nil
}

// Ping checks connectivity; the store still works degraded without it
func (s *LocalStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *LocalStore) Read(ctx context.Context) domain.Configuration {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.DefaultConfiguration()
	}
	if err != nil {
		s.logger.Error("local cache read failed", "backend", "redis", "error", err)
		return domain.DefaultConfiguration()
	}

	var cfg domain.Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		s.logger.Error("local cache holds malformed configuration", "backend", "redis", "error", err)
		return domain.DefaultConfiguration()
	}
	return cfg
}

func (s *LocalStore) Write(ctx context.Context, cfg domain.Configuration) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, data, 0).Err()
}

func (s *LocalStore) Close() error {
	return s.client.Close()
}

var _ ports.LocalCache = (*LocalStore)(nil)
