// Package loot implements weighted reward selection over fixed loot tables.
package loot

import (
	"errors"
	"fmt"

	"github.com/jwebster45206/zoinkies/pkg/random"
	"github.com/jwebster45206/zoinkies/pkg/state"
)

// ErrIncompleteLootTable means a draw fell past the last entry because the
// table's weights sum to less than 1. It is a configuration defect.
var ErrIncompleteLootTable = errors.New("loot table weights sum to less than 1")

// WeightTolerance is how far below 1 a table's accumulated weight may land
// through floating-point rounding and still count as complete.
const WeightTolerance = 1e-12

// Entry is one weighted reward candidate.
type Entry struct {
	ObjectTypeID string  `json:"object_type_id"`
	Weight       float64 `json:"weight"`
	MinQuantity  int     `json:"min_quantity"`
	MaxQuantity  int     `json:"max_quantity"`
}

// Table is an ordered list of entries. Order matters: the first entry whose
// cumulative weight reaches the draw wins.
type Table []Entry

// Sample draws one item from table. The item quantity is the entry's
// MinQuantity.
func Sample(table Table, rng random.Source) (state.Item, error) {
	r := rng.Float64()
	var cumulative float64
	last := -1
	for i, e := range table {
		cumulative += e.Weight
		if e.Weight > 0 {
			last = i
		}
		if r <= cumulative {
			return state.Item{ID: e.ObjectTypeID, Quantity: e.MinQuantity}, nil
		}
	}
	if last >= 0 && cumulative >= 1-WeightTolerance {
		e := table[last]
		return state.Item{ID: e.ObjectTypeID, Quantity: e.MinQuantity}, nil
	}
	return state.Item{}, fmt.Errorf("%w: draw %.6f, total weight %.6f", ErrIncompleteLootTable, r, cumulative)
}

// TotalWeight sums the weights of table. Sampling never validates a table;
// this is for configuration checks.
func TotalWeight(table Table) float64 {
	var total float64
	for _, e := range table {
		total += e.Weight
	}
	return total
}

// Rewards returns a fixed item followed by n samples from table.
func Rewards(fixed state.Item, table Table, n int, rng random.Source) ([]state.Item, error) {
	items := make([]state.Item, 0, n+1)
	items = append(items, fixed)
	for range n {
		it, err := Sample(table, rng)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// MinionRewards is one gold key plus one sample from the minion table.
func MinionRewards(rng random.Source) ([]state.Item, error) {
	return Rewards(state.Item{ID: state.GoldKey, Quantity: 1}, MinionTable, 1, rng)
}

// GeneralRewards is one freed leader plus two samples from the general table.
func GeneralRewards(rng random.Source) ([]state.Item, error) {
	return Rewards(state.Item{ID: state.FreedLeader, Quantity: 1}, GeneralTable, 2, rng)
}

// ChestRewards is one diamond key plus two samples from the chest table.
func ChestRewards(rng random.Source) ([]state.Item, error) {
	return Rewards(state.Item{ID: state.DiamondKey, Quantity: 1}, ChestTable, 2, rng)
}
