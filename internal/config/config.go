package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelRaw string `env:"LOG_LEVEL" envDefault:"info"`
	LogLevel    slog.Level

	RedisURL      string        `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	StateTTL      time.Duration `env:"STATE_TTL" envDefault:"0s"`
	PlayerLockTTL time.Duration `env:"PLAYER_LOCK_TTL" envDefault:"30s"`

	CatalogPath string `env:"CATALOG_PATH" envDefault:"data/reference_data.json"`

	FreedLeadersToWin         int `env:"FREED_LEADERS_TO_WIN" envDefault:"25"`
	DefaultMinionEnergyLevel  int `env:"DEFAULT_MINION_ENERGY_LEVEL" envDefault:"60"`
	DefaultGeneralEnergyLevel int `env:"DEFAULT_GENERAL_ENERGY_LEVEL" envDefault:"120"`

	// RNGSeed makes draws reproducible. Zero seeds from crypto/rand.
	RNGSeed uint64 `env:"RNG_SEED" envDefault:"0"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables instead of the
// process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelRaw)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.CatalogPath == "" {
		errs = append(errs, errors.New("CATALOG_PATH must not be empty"))
	}
	if c.StateTTL < 0 {
		errs = append(errs, errors.New("STATE_TTL must not be negative"))
	}
	if c.PlayerLockTTL <= 0 {
		errs = append(errs, errors.New("PLAYER_LOCK_TTL must be positive"))
	}
	if c.FreedLeadersToWin <= 0 {
		errs = append(errs, errors.New("FREED_LEADERS_TO_WIN must be positive"))
	}
	if c.DefaultMinionEnergyLevel <= 0 || c.DefaultGeneralEnergyLevel <= 0 {
		errs = append(errs, errors.New("opponent energy levels must be positive"))
	}
	return errors.Join(errs...)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
