// Package discovery resolves proximity-based discovery and interaction
// against the placed location set. All distances are Manhattan.
package discovery

import (
	"fmt"

	"github.com/talgya/island-wanderer/internal/locations"
	"github.com/talgya/island-wanderer/internal/world"
)

// Default radii, in grid cells.
const (
	DefaultDiscoveryRadius = 3
	DefaultInteractRadius  = 1
)

// Tracker watches an observer move across the island and flips
// location discovered flags. It references the placed locations, never
// copies them; the flag flip is its only mutation.
type Tracker struct {
	locs            []*locations.Location
	DiscoveryRadius int
	InteractRadius  int
}

// NewTracker wraps a placed location set with default radii.
func NewTracker(locs []*locations.Location) *Tracker {
	return &Tracker{
		locs:            locs,
		DiscoveryRadius: DefaultDiscoveryRadius,
		InteractRadius:  DefaultInteractRadius,
	}
}

// Locations returns the tracked set in placement order.
func (t *Tracker) Locations() []*locations.Location {
	return t.locs
}

// LocationsNear returns every location within radius of (x, y), in
// placement order. Read-only; a zero radius still matches a location
// at the exact coordinate, only a negative radius matches nothing.
func (t *Tracker) LocationsNear(x, y, radius int) []*locations.Location {
	if radius < 0 {
		return nil
	}
	var near []*locations.Location
	for _, loc := range t.locs {
		if world.Manhattan(x, y, loc.X, loc.Y) <= radius {
			near = append(near, loc)
		}
	}
	return near
}

// CheckDiscovery flips the discovered flag on every undiscovered
// location within the discovery radius of the observer and returns the
// newly discovered ones in placement order. Called once per observer
// move; already-discovered locations are never returned again.
func (t *Tracker) CheckDiscovery(x, y int) []*locations.Location {
	var found []*locations.Location
	for _, loc := range t.locs {
		if loc.Discovered {
			continue
		}
		if world.Manhattan(x, y, loc.X, loc.Y) <= t.DiscoveryRadius {
			loc.Discover()
			found = append(found, loc)
		}
	}
	return found
}

// Discovered returns all discovered locations in placement order.
func (t *Tracker) Discovered() []*locations.Location {
	var out []*locations.Location
	for _, loc := range t.locs {
		if loc.Discovered {
			out = append(out, loc)
		}
	}
	return out
}

// InteractionResult is the event surfaced to the exploration loop for
// an explicit interact action.
type InteractionResult struct {
	Success bool
	Message string
	Detail  string // Lore text when a location was targeted
}

// TryInteract targets the nearest location within the interaction
// radius of the observer. Ties prefer an undiscovered location over a
// discovered one, then earliest placement order — stable for a given
// world. Interacting with an undiscovered location discovers it.
func (t *Tracker) TryInteract(x, y int) InteractionResult {
	var target *locations.Location
	bestDist := t.InteractRadius + 1

	for _, loc := range t.locs {
		d := world.Manhattan(x, y, loc.X, loc.Y)
		if d > t.InteractRadius {
			continue
		}
		switch {
		case d < bestDist:
			target = loc
			bestDist = d
		case d == bestDist && target != nil && target.Discovered && !loc.Discovered:
			target = loc
		}
	}

	if target == nil {
		return InteractionResult{
			Success: false,
			Message: "Nothing interesting to interact with here.",
		}
	}

	if !target.Discovered {
		target.Discover()
		return InteractionResult{
			Success: true,
			Message: fmt.Sprintf("Discovered %s!", target.Name),
			Detail:  target.Description,
		}
	}
	return InteractionResult{
		Success: true,
		Message: fmt.Sprintf("Examining %s...", target.Name),
		Detail:  target.Description,
	}
}
