package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, time.Duration(0), cfg.StateTTL)
	assert.Equal(t, 30*time.Second, cfg.PlayerLockTTL)
	assert.Equal(t, "data/reference_data.json", cfg.CatalogPath)
	assert.Equal(t, 25, cfg.FreedLeadersToWin)
	assert.Equal(t, 60, cfg.DefaultMinionEnergyLevel)
	assert.Equal(t, 120, cfg.DefaultGeneralEnergyLevel)
	assert.Equal(t, uint64(0), cfg.RNGSeed)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"PORT":                         "9000",
		"ENVIRONMENT":                  "production",
		"LOG_LEVEL":                    "WARNING",
		"REDIS_URL":                    "redis://cache:6380/2",
		"STATE_TTL":                    "720h",
		"PLAYER_LOCK_TTL":              "5s",
		"CATALOG_PATH":                 "/etc/zoinkies/catalog.yaml",
		"FREED_LEADERS_TO_WIN":         "3",
		"DEFAULT_MINION_ENERGY_LEVEL":  "10",
		"DEFAULT_GENERAL_ENERGY_LEVEL": "20",
		"RNG_SEED":                     "42",
	})
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, "redis://cache:6380/2", cfg.RedisURL)
	assert.Equal(t, 720*time.Hour, cfg.StateTTL)
	assert.Equal(t, 5*time.Second, cfg.PlayerLockTTL)
	assert.Equal(t, "/etc/zoinkies/catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, 3, cfg.FreedLeadersToWin)
	assert.Equal(t, 10, cfg.DefaultMinionEnergyLevel)
	assert.Equal(t, 20, cfg.DefaultGeneralEnergyLevel)
	assert.Equal(t, uint64(42), cfg.RNGSeed)
}

func TestLoad_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		want    string
	}{
		{name: "bad duration", environ: map[string]string{"STATE_TTL": "forever"}, want: "parse env"},
		{name: "bad int", environ: map[string]string{"FREED_LEADERS_TO_WIN": "many"}, want: "parse env"},
		{name: "zero win threshold", environ: map[string]string{"FREED_LEADERS_TO_WIN": "0"}, want: "FREED_LEADERS_TO_WIN"},
		{name: "zero lock ttl", environ: map[string]string{"PLAYER_LOCK_TTL": "0s"}, want: "PLAYER_LOCK_TTL"},
		{name: "negative state ttl", environ: map[string]string{"STATE_TTL": "-1s"}, want: "STATE_TTL"},
		{name: "zero energy", environ: map[string]string{"DEFAULT_MINION_ENERGY_LEVEL": "0"}, want: "energy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(tt.environ)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLogLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("chatty"))
}
