package state

import (
	"errors"
	"fmt"
	"time"
)

// ErrLocationNotFound is returned when a location id is absent from a
// player's world.
var ErrLocationNotFound = errors.New("location not found")

// LatLng is a geographic point in degrees.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SpawnLocation is a world location instance owned by one player.
//
// RespawnTime is set if and only if the location is inactive and
// respawn-capable. An inactive location that does not respawn (a defeated
// tower) carries no RespawnTime and stays inactive.
type SpawnLocation struct {
	ID                     string     `json:"id"`
	SnappedPoint           LatLng     `json:"snapped_point"`
	ObjectTypeID           string     `json:"object_type_id"`
	Active                 bool       `json:"active"`
	RespawnTime            *time.Time `json:"respawn_time,omitempty"`
	NumberOfKeysToActivate int        `json:"number_of_keys_to_activate"`
	KeyTypeID              *string    `json:"key_type_id,omitempty"`
	Respawns               bool       `json:"respawns"`
}

// WorldState maps location ids to the player's spawn locations.
type WorldState struct {
	Locations map[string]*SpawnLocation `json:"locations"`
}

// NewWorldState creates an empty world.
func NewWorldState() *WorldState {
	return &WorldState{Locations: make(map[string]*SpawnLocation)}
}

// Location returns the location with the given id or ErrLocationNotFound.
// A nil world has no locations.
func (w *WorldState) Location(id string) (*SpawnLocation, error) {
	if w != nil {
		if loc, ok := w.Locations[id]; ok && loc != nil {
			return loc, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, id)
}

// Add inserts a location and reports whether it was new. Existing locations
// keep their current state.
func (w *WorldState) Add(loc *SpawnLocation) bool {
	if w.Locations == nil {
		w.Locations = make(map[string]*SpawnLocation)
	}
	if _, exists := w.Locations[loc.ID]; exists {
		return false
	}
	w.Locations[loc.ID] = loc
	return true
}
