package game

import (
	"context"
	"fmt"

	"github.com/jwebster45206/zoinkies/pkg/loot"
	"github.com/jwebster45206/zoinkies/pkg/state"
)

// ResolveChest opens the chest at locationID. The location's required gold
// keys are spent, the chest rewards are granted and the chest starts
// recovering. The rewards carry the player's id.
func (r *Resolver) ResolveChest(ctx context.Context, playerID, locationID string) (*state.RewardsData, error) {
	world, loc, err := r.respawn.EnsureAvailable(ctx, playerID, locationID)
	if err != nil {
		return nil, err
	}
	if loc.ObjectTypeID != state.Chest {
		return nil, fmt.Errorf("%w: %s is a %s, not a chest", ErrInvalidTarget, locationID, loc.ObjectTypeID)
	}
	if _, err := r.refs.Require(state.GoldKey); err != nil {
		return nil, err
	}
	if _, err := r.refs.Require(state.Chest); err != nil {
		return nil, err
	}
	player, err := r.loadPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	required := loc.NumberOfKeysToActivate
	if have := player.Quantity(state.GoldKey); have < required {
		return nil, fmt.Errorf("%w: chest %s needs %d gold keys, player has %d",
			ErrInsufficientResources, locationID, required, have)
	}
	items, err := loot.ChestRewards(r.rng)
	if err != nil {
		return nil, err
	}

	player.RemoveItem(state.GoldKey, required)
	player.AddItems(items)

	if err := r.respawn.BeginRecovery(ctx, state.Chest, playerID, locationID, world); err != nil {
		return nil, err
	}
	if err := r.savePlayer(ctx, playerID, player); err != nil {
		return nil, err
	}
	r.logger.Debug("Chest opened", "player_id", playerID, "location_id", locationID, "keys_spent", required)
	return &state.RewardsData{ID: playerID, Items: items}, nil
}

// ResolveEnergyStation refills the player's energy at locationID and starts
// the station's recovery.
func (r *Resolver) ResolveEnergyStation(ctx context.Context, playerID, locationID string) (*state.EnergyData, error) {
	world, loc, err := r.respawn.EnsureAvailable(ctx, playerID, locationID)
	if err != nil {
		return nil, err
	}
	if loc.ObjectTypeID != state.EnergyStation {
		return nil, fmt.Errorf("%w: %s is a %s, not an energy station", ErrInvalidTarget, locationID, loc.ObjectTypeID)
	}
	if _, err := r.refs.Require(state.EnergyStation); err != nil {
		return nil, err
	}
	player, err := r.loadPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	restored := player.RestoreEnergy()
	if err := r.savePlayer(ctx, playerID, player); err != nil {
		return nil, err
	}
	if err := r.respawn.BeginRecovery(ctx, state.EnergyStation, playerID, locationID, world); err != nil {
		return nil, err
	}
	r.logger.Debug("Energy restored", "player_id", playerID, "location_id", locationID, "amount", restored)
	return &state.EnergyData{ID: locationID, AmountRestored: restored}, nil
}
