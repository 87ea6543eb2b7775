package state

import "slices"

const (
	DefaultPlayerName        = "Player"
	DefaultPlayerEnergyLevel = 100
)

// PlayerState is the per-player profile and inventory.
type PlayerState struct {
	Name              string `json:"name"`
	CharacterType     string `json:"character_type"`
	EnergyLevel       int    `json:"energy_level"`
	MaxEnergyLevel    int    `json:"max_energy_level"`
	Inventory         []Item `json:"inventory"`
	EquippedWeapon    string `json:"equipped_weapon,omitempty"`
	EquippedBodyArmor string `json:"equipped_body_armor,omitempty"`
	EquippedHelmet    string `json:"equipped_helmet,omitempty"`
	EquippedShield    string `json:"equipped_shield,omitempty"`
}

// NewPlayerState creates a player with the starter equipment and every
// character type unlocked.
func NewPlayerState(name string) *PlayerState {
	if name == "" {
		name = DefaultPlayerName
	}
	return &PlayerState{
		Name:           name,
		CharacterType:  Character1,
		EnergyLevel:    DefaultPlayerEnergyLevel,
		MaxEnergyLevel: DefaultPlayerEnergyLevel,
		Inventory: []Item{
			{ID: BodyArmor1, Quantity: 1},
			{ID: Weapon1, Quantity: 1},
			{ID: Character1, Quantity: 1},
			{ID: Character2, Quantity: 1},
			{ID: Character3, Quantity: 1},
			{ID: Character4, Quantity: 1},
		},
		EquippedWeapon:    Weapon1,
		EquippedBodyArmor: BodyArmor1,
	}
}

// Quantity returns how many of the given object type the player holds.
func (p *PlayerState) Quantity(id string) int {
	for _, it := range p.Inventory {
		if it.ID == id {
			return it.Quantity
		}
	}
	return 0
}

// AddItem merges an item into the inventory. A negative quantity removes
// items; the result is clamped at zero and empty entries are dropped.
func (p *PlayerState) AddItem(item Item) {
	if item.Quantity < 0 {
		p.RemoveItem(item.ID, -item.Quantity)
		return
	}
	if item.Quantity == 0 {
		return
	}
	for i := range p.Inventory {
		if p.Inventory[i].ID == item.ID {
			p.Inventory[i].Quantity += item.Quantity
			return
		}
	}
	p.Inventory = append(p.Inventory, item)
}

// AddItems merges each item in order.
func (p *PlayerState) AddItems(items []Item) {
	for _, it := range items {
		p.AddItem(it)
	}
}

// RemoveItem takes up to n items of the given type out of the inventory and
// returns how many were actually removed.
func (p *PlayerState) RemoveItem(id string, n int) int {
	if n <= 0 {
		return 0
	}
	i := slices.IndexFunc(p.Inventory, func(it Item) bool { return it.ID == id })
	if i < 0 {
		return 0
	}
	removed := min(n, p.Inventory[i].Quantity)
	p.Inventory[i].Quantity -= removed
	if p.Inventory[i].Quantity <= 0 {
		p.Inventory = slices.Delete(p.Inventory, i, i+1)
	}
	return removed
}

// RestoreEnergy refills the player and returns the amount restored.
func (p *PlayerState) RestoreEnergy() int {
	restored := max(p.MaxEnergyLevel-p.EnergyLevel, 0)
	p.EnergyLevel = p.MaxEnergyLevel
	return restored
}
