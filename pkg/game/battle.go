package game

import (
	"context"
	"fmt"

	"github.com/jwebster45206/zoinkies/pkg/catalog"
	"github.com/jwebster45206/zoinkies/pkg/loot"
	"github.com/jwebster45206/zoinkies/pkg/random"
	"github.com/jwebster45206/zoinkies/pkg/state"
)

// PrepareBattle checks the prerequisites for a battle at locationID and
// returns the opponent's parameters.
//
// Minions must be available. Towers must be available and are unlocked by
// spending the location's required diamond keys; the keys are deducted and
// the unlock persisted before the battle data is returned. A player without
// enough keys gets ErrInsufficientResources and nothing is written.
func (r *Resolver) PrepareBattle(ctx context.Context, playerID, locationID string) (*state.BattleData, error) {
	target, err := r.locate(ctx, playerID, locationID)
	if err != nil {
		return nil, err
	}

	switch target.ObjectTypeID {
	case state.Minion:
		minion, err := r.refs.Require(state.Minion)
		if err != nil {
			return nil, err
		}
		if _, _, err := r.respawn.EnsureAvailable(ctx, playerID, locationID); err != nil {
			return nil, err
		}
		return r.battleData(locationID, minion, r.tuning.MinionEnergyLevel), nil

	case state.Tower:
		general, err := r.refs.Require(state.General)
		if err != nil {
			return nil, err
		}
		if _, err := r.refs.Require(state.Tower); err != nil {
			return nil, err
		}
		if _, err := r.refs.Require(state.DiamondKey); err != nil {
			return nil, err
		}
		world, loc, err := r.respawn.EnsureAvailable(ctx, playerID, locationID)
		if err != nil {
			return nil, err
		}
		player, err := r.loadPlayer(ctx, playerID)
		if err != nil {
			return nil, err
		}

		required := loc.NumberOfKeysToActivate
		if have := player.Quantity(state.DiamondKey); have < required {
			return nil, fmt.Errorf("%w: tower %s needs %d diamond keys, player has %d",
				ErrInsufficientResources, locationID, required, have)
		}
		if required > 0 {
			player.RemoveItem(state.DiamondKey, required)
			loc.NumberOfKeysToActivate = 0

			if err := r.saveWorld(ctx, playerID, world); err != nil {
				return nil, err
			}
			if err := r.savePlayer(ctx, playerID, player); err != nil {
				return nil, err
			}
			r.logger.Info("Tower unlocked", "player_id", playerID, "location_id", locationID, "keys_spent", required)
		}
		return r.battleData(locationID, general, r.tuning.GeneralEnergyLevel), nil

	default:
		return nil, fmt.Errorf("%w: %s is a %s", ErrInvalidBattleTarget, locationID, target.ObjectTypeID)
	}
}

func (r *Resolver) battleData(locationID string, opponent catalog.ReferenceItem, energy int) *state.BattleData {
	bd := &state.BattleData{
		ID:             locationID,
		OpponentTypeID: opponent.ID,
		PlayerStarts:   random.Bool(r.rng),
		EnergyLevel:    energy,
	}
	if opponent.Cooldown != nil {
		bd.Cooldown = opponent.Cooldown.String()
	}
	// The attack ceiling has always been filled with the opponent's defense
	// bonus and the defense ceiling left unset. Clients depend on that
	// mapping; it stays until product decides what the defense ceiling holds.
	bd.MaxAttackScoreBonus = opponent.DefenseScoreBonus
	return bd
}

// ResolveBattle records the outcome of a battle at locationID.
//
// Only minions and towers produce rewards; any other location returns a
// summary that just echoes the winner. A win grants the opponent's rewards
// and may win the game. A loss costs one gold key if the player has one; the
// summary always reports the lost key. Afterwards the location starts
// recovering, or is consumed for good if its object type never respawns and
// the player won.
func (r *Resolver) ResolveBattle(ctx context.Context, playerID, locationID string, winner bool) (*state.BattleSummaryData, error) {
	target, err := r.locate(ctx, playerID, locationID)
	if err != nil {
		return nil, err
	}
	summary := &state.BattleSummaryData{Winner: winner}
	if target.ObjectTypeID != state.Minion && target.ObjectTypeID != state.Tower {
		return summary, nil
	}

	world, loc, err := r.respawn.EnsureAvailable(ctx, playerID, locationID)
	if err != nil {
		return nil, err
	}
	opponent, err := r.refs.Require(loc.ObjectTypeID)
	if err != nil {
		return nil, err
	}
	player, err := r.loadPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	rewards := &state.RewardsData{ID: locationID}
	if winner {
		build := loot.MinionRewards
		if loc.ObjectTypeID == state.Tower {
			build = loot.GeneralRewards
		}
		items, err := build(r.rng)
		if err != nil {
			return nil, err
		}
		player.AddItems(items)
		rewards.Items = items
		summary.WonTheGame = player.Quantity(state.FreedLeader) >= r.freedLeadersToWin
	} else {
		player.RemoveItem(state.GoldKey, 1)
		rewards.Items = []state.Item{{ID: state.GoldKey, Quantity: -1}}
	}
	summary.Rewards = rewards

	if err := r.savePlayer(ctx, playerID, player); err != nil {
		return nil, err
	}

	if opponent.Respawns() || winner {
		r.respawn.Recover(opponent, loc)
		if err := r.saveWorld(ctx, playerID, world); err != nil {
			return nil, err
		}
	}

	r.logger.Debug("Battle resolved",
		"player_id", playerID,
		"location_id", locationID,
		"opponent", loc.ObjectTypeID,
		"winner", winner,
		"won_the_game", summary.WonTheGame)
	if summary.WonTheGame {
		r.logger.Info("Player won the game", "player_id", playerID, "freed_leaders", player.Quantity(state.FreedLeader))
	}
	return summary, nil
}
