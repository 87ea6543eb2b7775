package game

import (
	"context"
	"fmt"

	"github.com/jwebster45206/zoinkies/pkg/spawn"
	"github.com/jwebster45206/zoinkies/pkg/state"
)

// EnsurePlayer returns the player's state, creating a starter player and an
// empty world on first use. created reports whether anything was written.
func (r *Resolver) EnsurePlayer(ctx context.Context, playerID, name string) (*state.PlayerState, bool, error) {
	existing, err := r.players.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load player %s: %w", playerID, err)
	}
	if existing != nil {
		return existing, false, nil
	}

	world, err := r.loadWorld(ctx, playerID)
	if err != nil {
		return nil, false, err
	}
	if world == nil {
		if err := r.saveWorld(ctx, playerID, state.NewWorldState()); err != nil {
			return nil, false, err
		}
	}
	player := state.NewPlayerState(name)
	if err := r.savePlayer(ctx, playerID, player); err != nil {
		return nil, false, err
	}
	r.logger.Info("Player created", "player_id", playerID, "name", player.Name)
	return player, true, nil
}

// Player returns the player's state.
func (r *Resolver) Player(ctx context.Context, playerID string) (*state.PlayerState, error) {
	return r.loadPlayer(ctx, playerID)
}

// World returns the player's world. A player without a world gets an empty
// one; nothing is written.
func (r *Resolver) World(ctx context.Context, playerID string) (*state.WorldState, error) {
	world, err := r.loadWorld(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if world == nil {
		world = state.NewWorldState()
	}
	return world, nil
}

// DiscoverLocations adds raw locations the player has not seen before to the
// player's world, assigning each a spawn type. Known ids are skipped, so
// rediscovery never resets a location. The whole batch is rejected if any
// raw location is invalid. The newly added locations are returned.
func (r *Resolver) DiscoverLocations(ctx context.Context, playerID string, raws []spawn.RawLocation) ([]*state.SpawnLocation, error) {
	world, err := r.loadWorld(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if world == nil {
		world = state.NewWorldState()
	}

	seen := make(map[string]bool, len(raws))
	var fresh []spawn.RawLocation
	for _, raw := range raws {
		if err := spawn.Validate(raw); err != nil {
			return nil, err
		}
		id := spawn.LocationID(raw.Name)
		if _, ok := world.Locations[id]; ok || seen[id] {
			continue
		}
		seen[id] = true
		fresh = append(fresh, raw)
	}

	added := make([]*state.SpawnLocation, 0, len(fresh))
	for _, raw := range fresh {
		loc, err := r.generator.Assign(raw)
		if err != nil {
			return nil, err
		}
		world.Add(loc)
		added = append(added, loc)
	}
	if len(added) == 0 {
		return added, nil
	}
	if err := r.saveWorld(ctx, playerID, world); err != nil {
		return nil, err
	}
	r.logger.Debug("Locations discovered", "player_id", playerID, "added", len(added), "requested", len(raws))
	return added, nil
}
