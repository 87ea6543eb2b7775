package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayerState(t *testing.T) {
	p := NewPlayerState("")

	assert.Equal(t, DefaultPlayerName, p.Name)
	assert.Equal(t, Character1, p.CharacterType)
	assert.Equal(t, DefaultPlayerEnergyLevel, p.EnergyLevel)
	assert.Equal(t, DefaultPlayerEnergyLevel, p.MaxEnergyLevel)
	assert.Equal(t, Weapon1, p.EquippedWeapon)
	assert.Equal(t, BodyArmor1, p.EquippedBodyArmor)
	for _, id := range []string{BodyArmor1, Weapon1, Character1, Character2, Character3, Character4} {
		assert.Equal(t, 1, p.Quantity(id), id)
	}
}

func TestPlayerState_AddItem(t *testing.T) {
	tests := []struct {
		name     string
		start    []Item
		add      Item
		expected []Item
	}{
		{
			name:     "appends new entry",
			start:    nil,
			add:      Item{ID: GoldKey, Quantity: 2},
			expected: []Item{{ID: GoldKey, Quantity: 2}},
		},
		{
			name:     "merges into existing entry",
			start:    []Item{{ID: GoldKey, Quantity: 2}},
			add:      Item{ID: GoldKey, Quantity: 1},
			expected: []Item{{ID: GoldKey, Quantity: 3}},
		},
		{
			name:     "zero quantity is ignored",
			start:    []Item{{ID: GoldKey, Quantity: 2}},
			add:      Item{ID: DiamondKey, Quantity: 0},
			expected: []Item{{ID: GoldKey, Quantity: 2}},
		},
		{
			name:     "negative quantity removes and clamps",
			start:    []Item{{ID: GoldKey, Quantity: 1}, {ID: Weapon1, Quantity: 1}},
			add:      Item{ID: GoldKey, Quantity: -3},
			expected: []Item{{ID: Weapon1, Quantity: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PlayerState{Inventory: tt.start}
			p.AddItem(tt.add)
			assert.Equal(t, tt.expected, p.Inventory)
		})
	}
}

func TestPlayerState_RemoveItem(t *testing.T) {
	p := &PlayerState{Inventory: []Item{{ID: GoldKey, Quantity: 3}, {ID: DiamondKey, Quantity: 1}}}

	assert.Equal(t, 2, p.RemoveItem(GoldKey, 2))
	assert.Equal(t, 1, p.Quantity(GoldKey))

	assert.Equal(t, 1, p.RemoveItem(DiamondKey, 5))
	assert.Equal(t, 0, p.Quantity(DiamondKey))
	assert.Len(t, p.Inventory, 1, "empty entries must be dropped")

	assert.Equal(t, 0, p.RemoveItem(FreedLeader, 1))
	assert.Equal(t, 0, p.RemoveItem(GoldKey, 0))
}

func TestPlayerState_RestoreEnergy(t *testing.T) {
	p := &PlayerState{EnergyLevel: 35, MaxEnergyLevel: 100}
	assert.Equal(t, 65, p.RestoreEnergy())
	assert.Equal(t, 100, p.EnergyLevel)
	assert.Equal(t, 0, p.RestoreEnergy())
}

func TestWorldState_Location(t *testing.T) {
	w := NewWorldState()
	require.True(t, w.Add(&SpawnLocation{ID: "a", ObjectTypeID: Minion, Active: true}))
	assert.False(t, w.Add(&SpawnLocation{ID: "a", ObjectTypeID: Chest}), "existing location must not be replaced")

	loc, err := w.Location("a")
	require.NoError(t, err)
	assert.Equal(t, Minion, loc.ObjectTypeID)

	_, err = w.Location("missing")
	assert.ErrorIs(t, err, ErrLocationNotFound)

	var nilWorld *WorldState
	_, err = nilWorld.Location("a")
	assert.ErrorIs(t, err, ErrLocationNotFound)
}
