package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Placeholders shipped in .env.example. Leaving either in place keeps the
// console in local-only mode.
const (
	PlaceholderRemoteURL   = "libsql://example.turso.io"
	PlaceholderRemoteToken = "your-auth-token"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	AppEnv   string `env:"APP_ENV" envDefault:"local"`
	BaseURL  string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Storage
	LocalDatabaseURL  string `env:"LOCAL_DATABASE_URL" envDefault:"file:console.sqlite"`
	RemoteDatabaseURL string `env:"REMOTE_DATABASE_URL" envDefault:"libsql://example.turso.io"`
	RemoteAuthToken   string `env:"REMOTE_AUTH_TOKEN" envDefault:"your-auth-token"`
	ConfigID          string `env:"CONFIG_ID" envDefault:"landing-console-main-config"`
	RedisURL          string `env:"REDIS_URL"`
	RedisPrefix       string `env:"REDIS_PREFIX" envDefault:"landing:"`

	// Sync
	SyncInterval   time.Duration `env:"SYNC_INTERVAL" envDefault:"30s"`
	ThrottleWindow time.Duration `env:"SYNC_THROTTLE" envDefault:"5s"`

	// Auth
	AdminUsername      string   `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword      string   `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	JWTSecret          string   `env:"JWT_SECRET" envDefault:"secret"`
	GoogleClientID     string   `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string   `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string   `env:"GOOGLE_REDIRECT_URL" envDefault:"http://localhost:8080/auth/google/callback"`
	AllowedEmails      []string `env:"ALLOWED_EMAILS" envSeparator:","`
	FrontendURL        string   `env:"FRONTEND_URL" envDefault:"http://localhost:8080/admin"`

	// Addresses or CIDR ranges of reverse proxies whose X-Forwarded-For is honoured
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

func Load() (*Config, error) {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	for i, e := range cfg.AllowedEmails {
		cfg.AllowedEmails[i] = strings.TrimSpace(e)
	}
	for i, p := range cfg.TrustedProxies {
		cfg.TrustedProxies[i] = strings.TrimSpace(p)
	}
	return cfg, nil
}

// RemoteAvailable is the only switch for cloud sync: both connection values
// must be set and differ from the shipped placeholders.
func (c Config) RemoteAvailable() bool {
	return c.RemoteDatabaseURL != "" && c.RemoteAuthToken != "" &&
		c.RemoteDatabaseURL != PlaceholderRemoteURL && c.RemoteAuthToken != PlaceholderRemoteToken
}

func (c Config) GoogleAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}
