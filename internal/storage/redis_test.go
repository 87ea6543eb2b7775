package storage

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jwebster45206/zoinkies/pkg/state"
	"github.com/jwebster45206/zoinkies/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, opts Options) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	rs, err := NewRedisStorage("redis://"+mr.Addr(), opts, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rs.Close() })
	return rs, mr
}

func TestNewRedisStorage_Addresses(t *testing.T) {
	mr := miniredis.RunT(t)

	rs, err := NewRedisStorage(mr.Addr(), Options{}, nil)
	require.NoError(t, err)
	defer rs.Close()
	assert.NoError(t, rs.Ping(context.Background()))

	_, err = NewRedisStorage("redis://localhost:6379/notadb", Options{}, nil)
	assert.Error(t, err)
}

func TestRedisStorage_World(t *testing.T) {
	rs, mr := setupTestRedis(t, Options{})
	ctx := context.Background()

	got, err := rs.GetWorld(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got, "missing world is not an error")

	respawnAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	world := state.NewWorldState()
	world.Add(&state.SpawnLocation{ID: "loc", ObjectTypeID: state.Chest, RespawnTime: &respawnAt, Respawns: true})
	require.NoError(t, rs.SetWorld(ctx, "p1", world))
	assert.True(t, mr.Exists("world:p1"))

	got, err = rs.GetWorld(ctx, "p1")
	require.NoError(t, err)
	loc, err := got.Location("loc")
	require.NoError(t, err)
	assert.True(t, loc.RespawnTime.Equal(respawnAt))
	assert.False(t, loc.Active)

	assert.Error(t, rs.SetWorld(ctx, "p1", nil))
}

func TestRedisStorage_Player(t *testing.T) {
	rs, mr := setupTestRedis(t, Options{})
	ctx := context.Background()

	got, err := rs.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, rs.SetPlayer(ctx, "p1", state.NewPlayerState("Ada")))
	assert.True(t, mr.Exists("player:p1"))

	got, err = rs.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, 1, got.Quantity(state.Weapon1))
}

func TestRedisStorage_CorruptValue(t *testing.T) {
	rs, mr := setupTestRedis(t, Options{})
	require.NoError(t, mr.Set("player:p1", "{not json"))

	_, err := rs.GetPlayer(context.Background(), "p1")
	assert.ErrorContains(t, err, "failed to unmarshal")
}

func TestRedisStorage_StateTTL(t *testing.T) {
	rs, mr := setupTestRedis(t, Options{StateTTL: time.Hour})
	ctx := context.Background()

	require.NoError(t, rs.SetPlayer(ctx, "p1", state.NewPlayerState("")))
	assert.Equal(t, time.Hour, mr.TTL("player:p1"))

	mr.FastForward(2 * time.Hour)
	got, err := rs.GetPlayer(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStorage_NoTTLByDefault(t *testing.T) {
	rs, mr := setupTestRedis(t, Options{})
	require.NoError(t, rs.SetWorld(context.Background(), "p1", state.NewWorldState()))
	assert.Equal(t, time.Duration(0), mr.TTL("world:p1"))
}

func TestRedisStorage_PlayerLock(t *testing.T) {
	rs, mr := setupTestRedis(t, Options{LockTTL: 10 * time.Second})
	ctx := context.Background()

	release, err := rs.AcquirePlayerLock(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, mr.Exists("player-lock:p1"))
	assert.Equal(t, 10*time.Second, mr.TTL("player-lock:p1"))

	_, err = rs.AcquirePlayerLock(ctx, "p1")
	assert.ErrorIs(t, err, storage.ErrPlayerLocked)

	other, err := rs.AcquirePlayerLock(ctx, "p2")
	require.NoError(t, err, "locks are per player")
	other()

	release()
	assert.False(t, mr.Exists("player-lock:p1"))

	again, err := rs.AcquirePlayerLock(ctx, "p1")
	require.NoError(t, err)
	again()
}

func TestRedisStorage_ReleaseKeepsForeignLock(t *testing.T) {
	rs, mr := setupTestRedis(t, Options{LockTTL: time.Second})
	ctx := context.Background()

	release, err := rs.AcquirePlayerLock(ctx, "p1")
	require.NoError(t, err)

	// The lock expires and another request takes it.
	mr.FastForward(2 * time.Second)
	second, err := rs.AcquirePlayerLock(ctx, "p1")
	require.NoError(t, err)

	release()
	assert.True(t, mr.Exists("player-lock:p1"), "stale holder must not delete the new lock")

	second()
	assert.False(t, mr.Exists("player-lock:p1"))
}

func TestRedisStorage_WaitForConnection(t *testing.T) {
	rs, mr := setupTestRedis(t, Options{})
	require.NoError(t, rs.WaitForConnection(context.Background(), 3, time.Millisecond))

	mr.Close()
	err := rs.WaitForConnection(context.Background(), 2, time.Millisecond)
	assert.ErrorContains(t, err, "did not become available")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = rs.WaitForConnection(ctx, 5, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}
