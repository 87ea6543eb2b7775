// Package catalog holds the static reference data of the game: one
// ReferenceItem per object type. A Catalog is built once and never mutated,
// so it is safe for any number of concurrent readers.
package catalog

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrReferenceItemNotFound is returned by Require for unknown ids.
	ErrReferenceItemNotFound = errors.New("reference item not found")

	// ErrDuplicateReferenceItem is returned by New when two items share an id.
	ErrDuplicateReferenceItem = errors.New("duplicate reference item")
)

// ReferenceItem is the static definition of one object type.
type ReferenceItem struct {
	ID                string    `json:"id" yaml:"id"`
	Type              string    `json:"type,omitempty" yaml:"type,omitempty"`
	Name              string    `json:"name,omitempty" yaml:"name,omitempty"`
	Description       string    `json:"description,omitempty" yaml:"description,omitempty"`
	RespawnDuration   *Duration `json:"respawn_duration,omitempty" yaml:"respawn_duration,omitempty"` // absent: never respawns
	Cooldown          *Duration `json:"cooldown,omitempty" yaml:"cooldown,omitempty"`                 // battle opponents only
	AttackScoreBonus  int       `json:"attack_score_bonus,omitempty" yaml:"attack_score_bonus,omitempty"`
	DefenseScoreBonus int       `json:"defense_score_bonus,omitempty" yaml:"defense_score_bonus,omitempty"`
}

// Respawns reports whether the object type comes back after being consumed.
func (ri ReferenceItem) Respawns() bool {
	return ri.RespawnDuration != nil
}

// Catalog is an ordered, immutable collection of reference items.
type Catalog struct {
	items []ReferenceItem
	byID  map[string]int
}

// Data is the serialized form of a catalog file.
type Data struct {
	References []ReferenceItem `json:"references" yaml:"references"`
}

// New builds a catalog from items, keeping their order.
func New(items []ReferenceItem) (*Catalog, error) {
	c := &Catalog{
		items: slices.Clone(items),
		byID:  make(map[string]int, len(items)),
	}
	for i, ri := range c.items {
		if ri.ID == "" {
			return nil, fmt.Errorf("reference item at index %d has no id", i)
		}
		if _, exists := c.byID[ri.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateReferenceItem, ri.ID)
		}
		c.byID[ri.ID] = i
	}
	return c, nil
}

// Lookup returns the reference item for id. A missing id is reported with
// ok == false; callers decide whether that is fatal.
func (c *Catalog) Lookup(id string) (ReferenceItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return ReferenceItem{}, false
	}
	return c.items[i], true
}

// Require is Lookup for callers that cannot continue without the item.
func (c *Catalog) Require(id string) (ReferenceItem, error) {
	ri, ok := c.Lookup(id)
	if !ok {
		return ReferenceItem{}, fmt.Errorf("%w: %s", ErrReferenceItemNotFound, id)
	}
	return ri, nil
}

// Items returns a copy of every reference item in catalog order.
func (c *Catalog) Items() []ReferenceItem {
	return slices.Clone(c.items)
}

// Len returns the number of reference items.
func (c *Catalog) Len() int {
	return len(c.items)
}
