// Package respawn decides whether a world location can be used and moves it
// between the Available, Recovering and Unavailable states.
//
// Recovery is evaluated lazily: nothing runs on a timer. A location whose
// respawn time has passed becomes available again the next time it is
// accessed, and the change is persisted before the access returns.
package respawn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/zoinkies/pkg/catalog"
	"github.com/jwebster45206/zoinkies/pkg/state"
	"github.com/jwebster45206/zoinkies/pkg/storage"
)

var (
	// ErrStillRecovering is returned while a location's respawn time is in
	// the future.
	ErrStillRecovering = errors.New("location is still respawning")

	// ErrInvalidRespawnState marks corrupt persisted state: a respawn-capable
	// location that is inactive without a respawn time.
	ErrInvalidRespawnState = errors.New("inactive location has no respawn time")

	// ErrUnavailable is returned for a location that was consumed and never
	// respawns, such as a defeated tower.
	ErrUnavailable = errors.New("location is permanently unavailable")
)

// References resolves reference items by id.
type References interface {
	Require(id string) (catalog.ReferenceItem, error)
}

// Controller evaluates and applies respawn transitions.
type Controller struct {
	worlds storage.WorldStore
	refs   References
	now    func() time.Time
	logger *slog.Logger
}

// NewController creates a controller. A nil clock means time.Now, a nil
// logger means slog.Default().
func NewController(worlds storage.WorldStore, refs References, now func() time.Time, logger *slog.Logger) *Controller {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{worlds: worlds, refs: refs, now: now, logger: logger}
}

// EnsureAvailable loads the player's world and checks that the location can
// be used now. A location whose respawn time has passed is reactivated and
// the world is persisted once. The returned world reflects that change and
// must be used by the caller for any further mutation.
func (c *Controller) EnsureAvailable(ctx context.Context, playerID, locationID string) (*state.WorldState, *state.SpawnLocation, error) {
	world, err := c.worlds.GetWorld(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load world for player %s: %w", playerID, err)
	}
	loc, err := world.Location(locationID)
	if err != nil {
		return nil, nil, err
	}
	if loc.Active {
		return world, loc, nil
	}

	if loc.RespawnTime == nil {
		if !loc.Respawns {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnavailable, locationID)
		}
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidRespawnState, locationID)
	}

	now := c.now()
	if loc.RespawnTime.After(now) {
		return nil, nil, fmt.Errorf("%w: %s until %s", ErrStillRecovering, locationID, loc.RespawnTime.UTC().Format(time.RFC3339))
	}

	loc.Active = true
	loc.RespawnTime = nil
	if err := c.worlds.SetWorld(ctx, playerID, world); err != nil {
		return nil, nil, fmt.Errorf("failed to save world for player %s: %w", playerID, err)
	}
	c.logger.Debug("Location respawned", "player_id", playerID, "location_id", locationID)
	return world, loc, nil
}

// Recover applies the Available → Recovering transition to loc in memory
// using the reference item of its object type. Without a respawn duration
// the location becomes permanently unavailable instead.
func (c *Controller) Recover(ri catalog.ReferenceItem, loc *state.SpawnLocation) {
	loc.Active = false
	if ri.RespawnDuration == nil {
		loc.RespawnTime = nil
		loc.Respawns = false
		return
	}
	at := c.now().Add(ri.RespawnDuration.Std()).UTC()
	loc.RespawnTime = &at
}

// BeginRecovery starts the recovery of a consumed location and persists the
// world. objectTypeID selects the reference item that defines the respawn
// duration.
func (c *Controller) BeginRecovery(ctx context.Context, objectTypeID, playerID, locationID string, world *state.WorldState) error {
	ri, err := c.refs.Require(objectTypeID)
	if err != nil {
		return err
	}
	loc, err := world.Location(locationID)
	if err != nil {
		return err
	}
	c.Recover(ri, loc)
	if err := c.worlds.SetWorld(ctx, playerID, world); err != nil {
		return fmt.Errorf("failed to save world for player %s: %w", playerID, err)
	}
	if loc.RespawnTime != nil {
		c.logger.Debug("Location recovering", "player_id", playerID, "location_id", locationID, "respawn_time", loc.RespawnTime)
	} else {
		c.logger.Info("Location consumed permanently", "player_id", playerID, "location_id", locationID)
	}
	return nil
}
