package storage

import (
	"context"
	"errors"

	"github.com/jwebster45206/zoinkies/pkg/state"
)

// ErrPlayerLocked is returned by AcquirePlayerLock when another request
// already holds the player's lock.
var ErrPlayerLocked = errors.New("player is locked by another request")

// WorldStore persists the per-player world.
// GetWorld returns nil, nil when the player has no world yet.
type WorldStore interface {
	GetWorld(ctx context.Context, playerID string) (*state.WorldState, error)
	SetWorld(ctx context.Context, playerID string, ws *state.WorldState) error
}

// PlayerStore persists the per-player profile and inventory.
// GetPlayer returns nil, nil when the player does not exist.
type PlayerStore interface {
	GetPlayer(ctx context.Context, playerID string) (*state.PlayerState, error)
	SetPlayer(ctx context.Context, playerID string, ps *state.PlayerState) error
}

// PlayerLocker serializes resolutions for one player. The release func is
// safe to call more than once.
type PlayerLocker interface {
	AcquirePlayerLock(ctx context.Context, playerID string) (release func(), err error)
}

// Storage defines a unified interface for all storage operations
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	WorldStore
	PlayerStore
	PlayerLocker
}
