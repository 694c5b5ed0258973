package config

import (
	"Perkdraft/services/rewards"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config is read from the environment (and .env through godotenv in main)
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	Prod     bool   `env:"PROD" envDefault:"false"`
	UseHTTPS bool   `env:"USE_HTTPS" envDefault:"false"`
	CertFile string `env:"TLS_CERT_FILE"`
	KeyFile  string `env:"TLS_KEY_FILE"`

	SessionStore string `env:"SESSION_STORE" envDefault:"memory"`
	RedisURL     string `env:"REDIS_URL" envDefault:"localhost:6379"`
	RedisDB      int    `env:"REDIS_DB" envDefault:"0"`

	CatalogPath string `env:"CATALOG_PATH" envDefault:"data/perks.json"`

	SessionTTL          time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	PackCodeTTL         time.Duration `env:"PACK_CODE_TTL" envDefault:"720h"`
	MemorySweepInterval time.Duration `env:"MEMORY_SWEEP_INTERVAL" envDefault:"10m"`

	CookieKey      string   `env:"KEY" envDefault:"perkdraft-dev-key"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	ArchiveResults  bool           `env:"ARCHIVE_RESULTS" envDefault:"false"`
	MigratePostgres bool           `env:"MIGRATE_POSTGRES" envDefault:"false"`
	VerbosePostgres bool           `env:"VERBOSE_POSTGRES" envDefault:"false"`
	Postgres        PostgresConfig `envPrefix:"POSTGRES_"`

	Luck LuckConfig
}

type PostgresConfig struct {
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	Database string `env:"DATABASE"`
}

type LuckConfig struct {
	Variance          float64 `env:"LUCK_VARIANCE" envDefault:"0.22"`
	MinMultiplier     float64 `env:"LUCK_MIN_MULTIPLIER" envDefault:"0.5"`
	MaxMultiplier     float64 `env:"LUCK_MAX_MULTIPLIER" envDefault:"2.0"`
	Tolerance         float64 `env:"LUCK_TOLERANCE" envDefault:"0.3"`
	AttemptMultiplier int     `env:"LUCK_ATTEMPT_MULTIPLIER" envDefault:"10"`
}

// Load parses the process environment
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFromMap parses the given variables instead of the process environment
func LoadFromMap(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	switch c.SessionStore {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("SESSION_STORE must be %q or %q, got %q", StoreMemory, StoreRedis, c.SessionStore)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.PackCodeTTL <= c.SessionTTL {
		return fmt.Errorf("PACK_CODE_TTL (%s) must be longer than SESSION_TTL (%s)", c.PackCodeTTL, c.SessionTTL)
	}
	if c.SessionStore == StoreMemory && c.MemorySweepInterval <= 0 {
		return fmt.Errorf("MEMORY_SWEEP_INTERVAL must be positive")
	}
	if c.UseHTTPS && (c.CertFile == "" || c.KeyFile == "") {
		return fmt.Errorf("USE_HTTPS requires TLS_CERT_FILE and TLS_KEY_FILE")
	}
	if err := c.LuckPolicy().Validate(); err != nil {
		return fmt.Errorf("luck settings: %w", err)
	}
	return nil
}

// LuckPolicy converts the luck settings for the allocator
func (c *Config) LuckPolicy() rewards.LuckPolicy {
	return rewards.LuckPolicy{
		Variance:          c.Luck.Variance,
		MinMultiplier:     c.Luck.MinMultiplier,
		MaxMultiplier:     c.Luck.MaxMultiplier,
		Tolerance:         c.Luck.Tolerance,
		AttemptMultiplier: c.Luck.AttemptMultiplier,
	}
}

// AllowedOrigin is the single origin handed to socket.io
func (c *Config) AllowedOrigin() string {
	if len(c.AllowedOrigins) == 0 {
		return "*"
	}
	return c.AllowedOrigins[0]
}
