// Package game resolves player interactions with world locations: battle
// setup and outcome, chests and energy stations. It reads and writes player
// and world state through the storage collaborators and never holds state of
// its own between calls.
//
// Every operation checks all of its preconditions before applying any
// mutation, so a failed call leaves both stores untouched (except for a
// lazy respawn, which is persisted as soon as it is observed).
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/zoinkies/pkg/catalog"
	"github.com/jwebster45206/zoinkies/pkg/random"
	"github.com/jwebster45206/zoinkies/pkg/respawn"
	"github.com/jwebster45206/zoinkies/pkg/spawn"
	"github.com/jwebster45206/zoinkies/pkg/state"
	"github.com/jwebster45206/zoinkies/pkg/storage"
)

var (
	// ErrInsufficientResources is returned when the player lacks the keys
	// needed to unlock a tower or chest.
	ErrInsufficientResources = errors.New("not enough resources")

	// ErrInvalidBattleTarget is returned for battles against anything other
	// than a minion or a tower.
	ErrInvalidBattleTarget = errors.New("battles can only be started against minions and towers")

	// ErrInvalidTarget is returned when a chest or energy station operation
	// is applied to another object type.
	ErrInvalidTarget = errors.New("location does not support this action")

	// ErrPlayerNotFound is returned when the player store has no state for
	// the player.
	ErrPlayerNotFound = errors.New("player not found")
)

const DefaultFreedLeadersToWin = 25

// Tuning holds the battle constants that are not part of the reference
// catalog.
type Tuning struct {
	MinionEnergyLevel  int
	GeneralEnergyLevel int
}

// DefaultTuning is used when no tuning option is given.
var DefaultTuning = Tuning{
	MinionEnergyLevel:  60,
	GeneralEnergyLevel: 120,
}

// References resolves reference items by id.
type References interface {
	Require(id string) (catalog.ReferenceItem, error)
}

// Resolver is the battle and reward resolver.
type Resolver struct {
	worlds  storage.WorldStore
	players storage.PlayerStore
	refs    References
	rng     random.Source

	respawn   *respawn.Controller
	generator *spawn.Generator

	now               func() time.Time
	freedLeadersToWin int
	tuning            Tuning
	logger            *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithFreedLeadersToWin sets the number of freed leaders that wins the game.
func WithFreedLeadersToWin(n int) Option {
	return func(r *Resolver) { r.freedLeadersToWin = n }
}

// WithTuning sets the battle constants.
func WithTuning(t Tuning) Option {
	return func(r *Resolver) { r.tuning = t }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// NewResolver wires a resolver from its collaborators.
func NewResolver(worlds storage.WorldStore, players storage.PlayerStore, refs References, rng random.Source, opts ...Option) *Resolver {
	r := &Resolver{
		worlds:            worlds,
		players:           players,
		refs:              refs,
		rng:               rng,
		now:               time.Now,
		freedLeadersToWin: DefaultFreedLeadersToWin,
		tuning:            DefaultTuning,
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.respawn = respawn.NewController(worlds, refs, r.now, r.logger)
	r.generator = spawn.NewGenerator(rng)
	return r
}

func (r *Resolver) loadWorld(ctx context.Context, playerID string) (*state.WorldState, error) {
	world, err := r.worlds.GetWorld(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load world for player %s: %w", playerID, err)
	}
	return world, nil
}

func (r *Resolver) loadPlayer(ctx context.Context, playerID string) (*state.PlayerState, error) {
	player, err := r.players.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load player %s: %w", playerID, err)
	}
	if player == nil {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	return player, nil
}

func (r *Resolver) saveWorld(ctx context.Context, playerID string, world *state.WorldState) error {
	if err := r.worlds.SetWorld(ctx, playerID, world); err != nil {
		return fmt.Errorf("failed to save world for player %s: %w", playerID, err)
	}
	return nil
}

func (r *Resolver) savePlayer(ctx context.Context, playerID string, player *state.PlayerState) error {
	if err := r.players.SetPlayer(ctx, playerID, player); err != nil {
		return fmt.Errorf("failed to save player %s: %w", playerID, err)
	}
	return nil
}

// locate returns the object type at locationID without evaluating respawn.
func (r *Resolver) locate(ctx context.Context, playerID, locationID string) (*state.SpawnLocation, error) {
	world, err := r.loadWorld(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return world.Location(locationID)
}
