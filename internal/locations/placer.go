// Location placement — seeded sampling under spacing constraints, with
// a bounded fallback ladder for cramped islands.
package locations

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/talgya/island-wanderer/internal/world"
)

// PlaceConfig controls location placement.
type PlaceConfig struct {
	MinCount     int  // Minimum total locations wanted
	MaxCount     int  // Maximum total locations
	MinSpacing   int  // Minimum Manhattan distance between locations
	MaxAttempts  int  // Sampling attempts per location before fallback
	RelaxSpacing bool // Halve spacing (floor 2) when sampling fails
}

// DefaultPlaceConfig returns the standard placement tuning.
func DefaultPlaceConfig() PlaceConfig {
	return PlaceConfig{
		MinCount:     5,
		MaxCount:     8,
		MinSpacing:   10,
		MaxAttempts:  1000,
		RelaxSpacing: true,
	}
}

// Validate reports the first configuration error, if any.
func (cfg PlaceConfig) Validate() error {
	if cfg.MinCount <= 0 {
		return fmt.Errorf("locations: min count must be positive, got %d", cfg.MinCount)
	}
	if cfg.MaxCount < cfg.MinCount {
		return fmt.Errorf("locations: max count %d below min count %d", cfg.MaxCount, cfg.MinCount)
	}
	if cfg.MinSpacing <= 0 {
		return fmt.Errorf("locations: min spacing must be positive, got %d", cfg.MinSpacing)
	}
	if cfg.MaxAttempts <= 0 {
		return fmt.Errorf("locations: max attempts must be positive, got %d", cfg.MaxAttempts)
	}
	return nil
}

// Report summarizes how placement went. Scarcity is surfaced here and
// in logs, never as an error.
type Report struct {
	Requested        int  // Locations asked for after capacity adjustment
	Placed           int  // Locations actually placed
	EffectiveSpacing int  // Smallest spacing any pair was accepted at
	ScanFallbacks    int  // Placements that needed the deterministic scan
	UnderProvisioned bool // Placed fell short of the configured minimum
}

// Place puts locations on the island. Deterministic: the same island
// and config always produce the same set, in the same order, all
// undiscovered. Runs once, right after terrain generation.
func Place(isl *world.Island, cfg PlaceConfig) ([]*Location, Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Report{}, err
	}

	rng := rand.New(rand.NewSource(isl.Config().Seed + 200))
	names := newNamer(rng)

	valid := countValidCells(isl)
	if valid == 0 {
		slog.Warn("no valid terrain for locations", "seed", isl.Config().Seed)
		return nil, Report{UnderProvisioned: true}, nil
	}

	// Capacity estimate: square packing at half the spacing. Optimistic
	// on purpose; the fallback ladder absorbs overshoot.
	areaPer := (cfg.MinSpacing / 2) * (cfg.MinSpacing / 2)
	if areaPer < 1 {
		areaPer = 1
	}
	maxPossible := valid / areaPer
	if maxPossible < 1 {
		maxPossible = 1
	}

	adjustedMax := cfg.MaxCount
	if maxPossible < adjustedMax {
		adjustedMax = maxPossible
	}
	adjustedMin := cfg.MinCount
	if adjustedMax < adjustedMin {
		adjustedMin = adjustedMax
	}
	requested := adjustedMin + rng.Intn(adjustedMax-adjustedMin+1)

	report := Report{
		Requested:        requested,
		EffectiveSpacing: cfg.MinSpacing,
	}

	// Spread the budget across types in placement order; earlier types
	// absorb the remainder so the shoreline band is served first.
	quotas := make(map[Type]int, len(PlacementOrder))
	for i := 0; i < requested; i++ {
		quotas[PlacementOrder[i%len(PlacementOrder)]]++
	}

	var placed []*Location
	for _, t := range PlacementOrder {
		for n := 0; n < quotas[t]; n++ {
			loc, spacing, scanned := placeOne(isl, t, placed, cfg, rng)
			if loc == nil {
				slog.Warn("location type under-provisioned",
					"type", t.String(), "seed", isl.Config().Seed)
				continue
			}
			loc.Name = names.name(t)
			loc.Description = names.description(t)
			placed = append(placed, loc)
			if spacing < report.EffectiveSpacing {
				report.EffectiveSpacing = spacing
			}
			if scanned {
				report.ScanFallbacks++
			}
		}
	}

	report.Placed = len(placed)
	report.UnderProvisioned = report.Placed < cfg.MinCount
	if report.UnderProvisioned {
		slog.Warn("placement under-provisioned",
			"placed", report.Placed,
			"min", cfg.MinCount,
			"valid_cells", valid,
			"seed", isl.Config().Seed)
	}

	return placed, report, nil
}

// placeOne finds a coordinate for one location of the given type.
// Ladder: seeded sampling at full spacing, then at halved spacings if
// relaxation is enabled, then a deterministic grid scan. Returns nil
// if every rung fails (the type is under-provisioned this seed).
func placeOne(isl *world.Island, t Type, placed []*Location, cfg PlaceConfig, rng *rand.Rand) (*Location, int, bool) {
	pref := PreferenceFor(t)

	spacing := cfg.MinSpacing
	for {
		for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
			x := rng.Intn(isl.Width())
			y := rng.Intn(isl.Height())
			if !cellSuits(isl, pref, x, y) {
				continue
			}
			if !spacingOK(x, y, placed, spacing) {
				continue
			}
			return &Location{X: x, Y: y, Type: t}, spacing, false
		}

		if !cfg.RelaxSpacing || spacing <= 2 {
			break
		}
		spacing = spacing / 2
		if spacing < 2 {
			spacing = 2
		}
	}

	// Deterministic scan at the most relaxed spacing reached.
	for y := 0; y < isl.Height(); y++ {
		for x := 0; x < isl.Width(); x++ {
			if cellSuits(isl, pref, x, y) && spacingOK(x, y, placed, spacing) {
				return &Location{X: x, Y: y, Type: t}, spacing, true
			}
		}
	}

	return nil, spacing, false
}

// spacingOK reports whether (x, y) keeps at least the given Manhattan
// distance from every placed location. Distance exactly equal to the
// spacing is acceptable.
func spacingOK(x, y int, placed []*Location, spacing int) bool {
	for _, loc := range placed {
		if world.Manhattan(x, y, loc.X, loc.Y) < spacing {
			return false
		}
	}
	return true
}

func cellSuits(isl *world.Island, pref Preference, x, y int) bool {
	return pref.Matches(isl.BiomeAt(x, y), isl.ElevationAt(x, y), isl.MoistureAt(x, y))
}

// countValidCells counts cells matching at least one type preference.
func countValidCells(isl *world.Island) int {
	n := 0
	for y := 0; y < isl.Height(); y++ {
		for x := 0; x < isl.Width(); x++ {
			for _, t := range PlacementOrder {
				if cellSuits(isl, PreferenceFor(t), x, y) {
					n++
					break
				}
			}
		}
	}
	return n
}
