// Package spawn assigns object types to newly discovered world locations.
package spawn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jwebster45206/zoinkies/pkg/random"
	"github.com/jwebster45206/zoinkies/pkg/state"
)

// ErrInvalidLocationInput is returned for raw locations without a name or
// without any geographic point.
var ErrInvalidLocationInput = errors.New("invalid location input")

// RawLocation is a discovered point of interest as supplied by the
// playable-locations service.
type RawLocation struct {
	Name         string        `json:"name"`
	PlaceID      string        `json:"place_id,omitempty"`
	Types        []string      `json:"types,omitempty"`
	SnappedPoint *state.LatLng `json:"snapped_point,omitempty"`
	CenterPoint  *state.LatLng `json:"center_point,omitempty"`
}

// Bucket maps an inclusive range of the spawn draw to a location template.
type Bucket struct {
	Low, High int
	Template  state.SpawnLocation
}

func keyType(id string) *string { return &id }

// Buckets is the fixed spawn distribution over draws in [0, 100]. The
// minion bucket covers 61 of the 101 values.
var Buckets = []Bucket{
	{Low: 0, High: 4, Template: state.SpawnLocation{
		ObjectTypeID: state.EnergyStation, Active: true, Respawns: true,
	}},
	{Low: 5, High: 24, Template: state.SpawnLocation{
		ObjectTypeID: state.Chest, Active: true, NumberOfKeysToActivate: 3, KeyTypeID: keyType(state.GoldKey), Respawns: true,
	}},
	{Low: 25, High: 39, Template: state.SpawnLocation{
		ObjectTypeID: state.Tower, Active: true, NumberOfKeysToActivate: 3, KeyTypeID: keyType(state.DiamondKey), Respawns: false,
	}},
	{Low: 40, High: 100, Template: state.SpawnLocation{
		ObjectTypeID: state.Minion, Active: true, Respawns: true,
	}},
}

// drawRange is the number of distinct spawn draws, 0 through 100.
const drawRange = 101

// Generator assigns spawn types using an injected randomness source.
type Generator struct {
	rng random.Source
}

// NewGenerator creates a generator.
func NewGenerator(rng random.Source) *Generator {
	return &Generator{rng: rng}
}

// MaxIDLength bounds location ids so they fit in URLs and storage keys.
const MaxIDLength = 256

// unsafeIDChars cannot appear in a location id.
const unsafeIDChars = " :/"

var idReplacer = strings.NewReplacer(" ", "_", ":", "_", "/", "_")

// LocationID derives a location id from a place name. Path separators,
// spaces and colons are replaced so the id is safe in URLs and storage keys.
func LocationID(name string) string {
	return idReplacer.Replace(name)
}

// ValidID reports whether id can address a location.
func ValidID(id string) bool {
	return id != "" && len(id) <= MaxIDLength && !strings.ContainsAny(id, unsafeIDChars)
}

// Validate checks that raw has a name that yields a usable id and at least
// one geographic point.
func Validate(raw RawLocation) error {
	if raw.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidLocationInput)
	}
	if !ValidID(LocationID(raw.Name)) {
		return fmt.Errorf("%w: name longer than %d bytes", ErrInvalidLocationInput, MaxIDLength)
	}
	if raw.SnappedPoint == nil && raw.CenterPoint == nil {
		return fmt.Errorf("%w: %s has no coordinates", ErrInvalidLocationInput, raw.Name)
	}
	return nil
}

// Assign builds a new spawn location for raw. The snapped point is preferred
// over the center point.
func (g *Generator) Assign(raw RawLocation) (*state.SpawnLocation, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	point := raw.SnappedPoint
	if point == nil {
		point = raw.CenterPoint
	}

	n := g.rng.IntN(drawRange)
	for _, b := range Buckets {
		if n < b.Low || n > b.High {
			continue
		}
		loc := b.Template
		if b.Template.KeyTypeID != nil {
			loc.KeyTypeID = keyType(*b.Template.KeyTypeID)
		}
		loc.ID = LocationID(raw.Name)
		loc.SnappedPoint = *point
		return &loc, nil
	}
	return nil, fmt.Errorf("spawn draw %d outside [0, %d]", n, drawRange-1)
}
