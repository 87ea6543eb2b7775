package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/zoinkies/pkg/state"
	"github.com/jwebster45206/zoinkies/pkg/storage"
	"github.com/redis/go-redis/v9"
)

// DefaultPlayerLockTTL bounds how long a crashed request can hold a player.
const DefaultPlayerLockTTL = 30 * time.Second

// releaseLockScript deletes the lock only if we still own it.
var releaseLockScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// RedisStorage implements storage.Storage with one JSON value per player
// world and per player profile.
type RedisStorage struct {
	client   *redis.Client
	logger   *slog.Logger
	stateTTL time.Duration
	lockTTL  time.Duration
}

// Ensure RedisStorage implements Storage interface
var _ storage.Storage = (*RedisStorage)(nil)

// Options tunes key expiry. A zero StateTTL keeps state forever.
type Options struct {
	StateTTL time.Duration
	LockTTL  time.Duration
}

// NewRedisStorage creates a Redis storage instance. redisURL may be a
// redis:// URL or a bare host:port.
func NewRedisStorage(redisURL string, opts Options, logger *slog.Logger) (*RedisStorage, error) {
	var opt *redis.Options
	if strings.Contains(redisURL, "://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		opt = parsed
	} else {
		opt = &redis.Options{Addr: redisURL}
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = DefaultPlayerLockTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStorage{
		client:   redis.NewClient(opt),
		logger:   logger,
		stateTTL: opts.StateTTL,
		lockTTL:  opts.LockTTL,
	}, nil
}

func worldKey(playerID string) string  { return "world:" + playerID }
func playerKey(playerID string) string { return "player:" + playerID }
func lockKey(playerID string) string   { return "player-lock:" + playerID }

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context, maxRetries int, retryDelay time.Duration) error {
	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func getJSON[T any](ctx context.Context, r *RedisStorage, key string) (*T, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to load key", "key", key, "error", err)
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		r.logger.Error("Failed to unmarshal key", "key", key, "error", err)
		return nil, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return &v, nil
}

func (r *RedisStorage) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, data, r.stateTTL).Err(); err != nil {
		r.logger.Error("Failed to save key", "key", key, "error", err)
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// World operations

func (r *RedisStorage) GetWorld(ctx context.Context, playerID string) (*state.WorldState, error) {
	return getJSON[state.WorldState](ctx, r, worldKey(playerID))
}

func (r *RedisStorage) SetWorld(ctx context.Context, playerID string, ws *state.WorldState) error {
	if ws == nil {
		return errors.New("world cannot be nil")
	}
	return r.setJSON(ctx, worldKey(playerID), ws)
}

// Player operations

func (r *RedisStorage) GetPlayer(ctx context.Context, playerID string) (*state.PlayerState, error) {
	return getJSON[state.PlayerState](ctx, r, playerKey(playerID))
}

func (r *RedisStorage) SetPlayer(ctx context.Context, playerID string, ps *state.PlayerState) error {
	if ps == nil {
		return errors.New("player cannot be nil")
	}
	return r.setJSON(ctx, playerKey(playerID), ps)
}

// AcquirePlayerLock takes the player's lock or fails with
// storage.ErrPlayerLocked. The returned release only deletes the lock while
// this holder still owns it, so an expired and re-acquired lock is safe.
func (r *RedisStorage) AcquirePlayerLock(ctx context.Context, playerID string) (func(), error) {
	key := lockKey(playerID)
	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, key, token, r.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock for player %s: %w", playerID, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrPlayerLocked, playerID)
	}

	release := func() {
		// The request context may already be cancelled.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseLockScript.Run(ctx, r.client, []string{key}, token).Err(); err != nil {
			r.logger.Error("Failed to release player lock", "error", err, "player_id", playerID)
		}
	}
	return release, nil
}
