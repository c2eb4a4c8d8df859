// Package locations places and describes discoverable points of
// interest on a generated island.
package locations

import "github.com/talgya/island-wanderer/internal/world"

// Type enumerates the kinds of discoverable locations.
type Type uint8

const (
	TypeBeach Type = iota // Coves and shores on the sand band
	TypeVillage
	TypeGrove
	TypeRuins
	TypeViewpoint
)

// PlacementOrder is the order types are placed in: ascending elevation
// bands first so the narrow shoreline band is not starved by types
// with wider preferences.
var PlacementOrder = [5]Type{TypeBeach, TypeVillage, TypeGrove, TypeRuins, TypeViewpoint}

// String returns a human-readable type name.
func (t Type) String() string {
	switch t {
	case TypeBeach:
		return "Beach"
	case TypeVillage:
		return "Village"
	case TypeGrove:
		return "Grove"
	case TypeRuins:
		return "Ruins"
	case TypeViewpoint:
		return "Viewpoint"
	default:
		return "Unknown"
	}
}

// Preference is a type's terrain predicate, checked only at placement
// time: an elevation band plus an optional moisture requirement.
type Preference struct {
	MinElevation float64 // Inclusive
	MaxElevation float64 // Exclusive
	MinMoisture  float64 // 0 = no moisture requirement
}

// Matches reports whether a cell suits the preference. Open water
// never qualifies regardless of the band.
func (p Preference) Matches(biome world.Biome, elevation, moisture float64) bool {
	if biome.IsWater() {
		return false
	}
	if elevation < p.MinElevation || elevation >= p.MaxElevation {
		return false
	}
	return moisture >= p.MinMoisture
}

// preferences maps each type to its terrain band. The beach band is
// exactly the Beach biome band, so beach locations always sit on sand.
var preferences = map[Type]Preference{
	TypeBeach:     {MinElevation: 0.30, MaxElevation: 0.40},
	TypeVillage:   {MinElevation: 0.40, MaxElevation: 0.55},
	TypeGrove:     {MinElevation: 0.45, MaxElevation: 0.65, MinMoisture: 0.40},
	TypeRuins:     {MinElevation: 0.45, MaxElevation: 0.70},
	TypeViewpoint: {MinElevation: 0.65, MaxElevation: 1.01},
}

// PreferenceFor returns the terrain predicate for a location type.
func PreferenceFor(t Type) Preference {
	return preferences[t]
}

// Location is a placed point of interest. Identity is the (X, Y)
// coordinate, immutable once placed. Discovered flips false→true
// exactly once and never back.
type Location struct {
	X           int
	Y           int
	Type        Type
	Name        string
	Description string
	Discovered  bool
}

// Discover marks the location as discovered.
func (l *Location) Discover() {
	l.Discovered = true
}
