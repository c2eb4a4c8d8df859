// Island generation using layered simplex noise.
// Builds an elevation map, applies a radial island mask, derives a
// moisture map, and classifies biomes. Runs once before exploration
// begins; the resulting grids are read-only afterwards.
package world

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/talgya/island-wanderer/internal/noise"
)

// GenConfig holds island generation parameters.
type GenConfig struct {
	Width  int   // Grid width in cells
	Height int   // Grid height in cells
	Seed   int64 // Sole source of entropy for the whole pipeline

	Noise noise.Params // Fractal noise shape

	Contrast   float64 // Power applied after normalization (< 1 raises terrain)
	PeakChance float64 // Per-cell chance of a boosted peak (0 disables)

	FalloffPower float64 // Radial mask exponent (higher = sharper edge)
	FalloffFloor float64 // Blend floor keeping some height inside the mask
	ShoreGamma   float64 // Post-mask power sharpening the shoreline

	MoistureScale  float64 // Moisture noise frequency
	MoistureGamma  float64 // Contrast power for the moisture field
	CoastalBlend   float64 // Weight of the coastal moisture influence term
	CoastElevation float64 // Elevation where coastal moisture peaks

	Thresholds BiomeThresholds
}

// DefaultGenConfig returns the standard island tuning.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:  80,
		Height: 40,
		Seed:   0,

		Noise: noise.DefaultParams(),

		Contrast:   0.7,
		PeakChance: 0.02,

		FalloffPower: 1.5,
		FalloffFloor: 0.2,
		ShoreGamma:   0.8,

		MoistureScale:  4.0,
		MoistureGamma:  1.2,
		CoastalBlend:   0.3,
		CoastElevation: 0.3,

		Thresholds: DefaultBiomeThresholds(),
	}
}

// Validate reports the first configuration error, if any. Called by
// Generate before any work starts.
func (cfg GenConfig) Validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("world: grid dimensions must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	if err := cfg.Noise.Validate(); err != nil {
		return err
	}
	if cfg.Contrast <= 0 {
		return fmt.Errorf("world: contrast must be positive, got %g", cfg.Contrast)
	}
	if cfg.PeakChance < 0 || cfg.PeakChance >= 1 {
		return fmt.Errorf("world: peak chance must be in [0, 1), got %g", cfg.PeakChance)
	}
	if cfg.FalloffPower <= 0 {
		return fmt.Errorf("world: falloff power must be positive, got %g", cfg.FalloffPower)
	}
	if cfg.FalloffFloor < 0 || cfg.FalloffFloor >= 1 {
		return fmt.Errorf("world: falloff floor must be in [0, 1), got %g", cfg.FalloffFloor)
	}
	if cfg.ShoreGamma <= 0 {
		return fmt.Errorf("world: shore gamma must be positive, got %g", cfg.ShoreGamma)
	}
	if cfg.MoistureScale <= 0 {
		return fmt.Errorf("world: moisture scale must be positive, got %g", cfg.MoistureScale)
	}
	if cfg.CoastalBlend < 0 || cfg.CoastalBlend > 1 {
		return fmt.Errorf("world: coastal blend must be in [0, 1], got %g", cfg.CoastalBlend)
	}
	return cfg.Thresholds.Validate()
}

// Island is the generated world: elevation, moisture and biome grids
// plus the configuration that produced them. All grids share dimensions.
type Island struct {
	Elevation *ElevationGrid
	Moisture  *ElevationGrid
	Biomes    *BiomeGrid

	cfg GenConfig
}

// Config returns the configuration the island was generated from.
// Together with the grid dimensions and seed it is sufficient to
// reconstruct the island bit-for-bit.
func (isl *Island) Config() GenConfig { return isl.cfg }

// Width returns the island width in cells.
func (isl *Island) Width() int { return isl.Elevation.Width() }

// Height returns the island height in cells.
func (isl *Island) Height() int { return isl.Elevation.Height() }

// ElevationAt returns the normalized height at (x, y).
// Panics on out-of-bounds coordinates.
func (isl *Island) ElevationAt(x, y int) float64 { return isl.Elevation.At(x, y) }

// MoistureAt returns the normalized moisture at (x, y).
// Panics on out-of-bounds coordinates.
func (isl *Island) MoistureAt(x, y int) float64 { return isl.Moisture.At(x, y) }

// BiomeAt returns the biome label at (x, y).
// Panics on out-of-bounds coordinates.
func (isl *Island) BiomeAt(x, y int) Biome { return isl.Biomes.At(x, y) }

// Generate runs the full pipeline: noise → heightmap → island mask →
// moisture → biomes. Deterministic: two calls with the same config
// yield bit-identical grids.
func Generate(cfg GenConfig) (*Island, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Independent noise layers on offset seeds.
	heightField, err := noise.New(cfg.Seed, cfg.Noise)
	if err != nil {
		return nil, err
	}
	moistParams := cfg.Noise
	moistParams.Scale = cfg.MoistureScale
	moistField, err := noise.New(cfg.Seed+1, moistParams)
	if err != nil {
		return nil, err
	}

	elev := buildHeightMap(heightField, cfg)
	applyIslandMask(elev, cfg)
	moist := buildMoistureMap(moistField, elev, cfg)
	biomes := cfg.Thresholds.ClassifyGrid(elev)

	return &Island{
		Elevation: elev,
		Moisture:  moist,
		Biomes:    biomes,
		cfg:       cfg,
	}, nil
}

// buildHeightMap samples the noise field once per cell, normalizes the
// raw field to [0, 1] and applies the contrast curve. Raw multi-octave
// noise clusters near the midpoint; without the power curve the island
// reads as a flat plateau.
func buildHeightMap(field *noise.Field, cfg GenConfig) *ElevationGrid {
	grid := NewElevationGrid(cfg.Width, cfg.Height)

	min := math.Inf(1)
	max := math.Inf(-1)
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			nx := float64(x) / float64(cfg.Width)
			ny := float64(y) / float64(cfg.Height)
			v := field.Sample(nx, ny)
			grid.Set(x, y, v)
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}

	// Constant field: min-max normalization would divide by zero.
	// Substitute flat mid-elevation rather than crash.
	if max-min < 1e-12 {
		slog.Warn("degenerate noise field, falling back to flat elevation",
			"seed", cfg.Seed, "value", min)
		for i := range grid.cells {
			grid.cells[i] = 0.5
		}
		return grid
	}

	span := max - min
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			v := (grid.At(x, y) - min) / span
			grid.Set(x, y, math.Pow(v, cfg.Contrast))
		}
	}

	scatterPeaks(grid, cfg)
	return grid
}

// scatterPeaks boosts a small random set of cells to break up smooth
// highlands. Seeded: same seed, same peaks.
func scatterPeaks(grid *ElevationGrid, cfg GenConfig) {
	if cfg.PeakChance <= 0 {
		return
	}
	rng := rand.New(rand.NewSource(cfg.Seed + 3))
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			if rng.Float64() < cfg.PeakChance {
				grid.Set(x, y, math.Min(grid.At(x, y)*1.5, 1.0))
			}
		}
	}
}

// applyIslandMask blends elevation toward deep water as the normalized
// elliptical distance from the grid center grows. Cells past the
// inscribed ellipse are forced underwater; the floor term keeps a bias
// toward land inside it.
func applyIslandMask(grid *ElevationGrid, cfg GenConfig) {
	cx := float64(cfg.Width) / 2
	cy := float64(cfg.Height) / 2

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			dx := (float64(x) - cx) / (float64(cfg.Width) / 2)
			dy := (float64(y) - cy) / (float64(cfg.Height) / 2)
			dist := math.Sqrt(dx*dx + dy*dy)

			mask := 1.0 - math.Min(math.Pow(dist, cfg.FalloffPower), 1.0)
			v := grid.At(x, y) * (mask*(1-cfg.FalloffFloor) + cfg.FalloffFloor)
			// Past the ellipse edge the mask is zero; keep those cells
			// fully drowned instead of letting the floor resurface them.
			if dist >= 1.0 {
				v = grid.At(x, y) * cfg.FalloffFloor * 0.5
			}
			v = math.Pow(v, cfg.ShoreGamma)
			grid.Set(x, y, clamp01(v))
		}
	}
}

// buildMoistureMap derives a moisture field from its own noise layer
// plus a coastal influence term that peaks at shoreline elevation.
func buildMoistureMap(field *noise.Field, elev *ElevationGrid, cfg GenConfig) *ElevationGrid {
	grid := NewElevationGrid(cfg.Width, cfg.Height)

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			// Offset coordinates so moisture decorrelates from height.
			nx := float64(x)/float64(cfg.Width) + 100.0
			ny := float64(y)/float64(cfg.Height) + 100.0
			v := math.Pow(field.Sample(nx, ny), cfg.MoistureGamma)

			coastal := math.Exp(-5.0 * math.Abs(elev.At(x, y)-cfg.CoastElevation))
			v = (1-cfg.CoastalBlend)*v + cfg.CoastalBlend*coastal
			grid.Set(x, y, clamp01(v))
		}
	}
	return grid
}

// SpawnPoint finds a starting position for the observer: the cell
// closest to the grid center whose elevation is at least beach level.
// Falls back to a full scan, then to the raw center (possibly wet).
func (isl *Island) SpawnPoint() (int, int) {
	cx := isl.Width() / 2
	cy := isl.Height() / 2
	maxRadius := isl.Width()
	if isl.Height() > maxRadius {
		maxRadius = isl.Height()
	}

	for radius := 0; radius <= maxRadius/2; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				x, y := cx+dx, cy+dy
				if isl.Elevation.InBounds(x, y) && isl.ElevationAt(x, y) >= isl.cfg.Thresholds.Beach {
					return x, y
				}
			}
		}
	}

	for y := 0; y < isl.Height(); y++ {
		for x := 0; x < isl.Width(); x++ {
			if isl.ElevationAt(x, y) >= isl.cfg.Thresholds.Beach {
				return x, y
			}
		}
	}

	slog.Warn("no dry spawn point found, starting at center", "seed", isl.cfg.Seed)
	return cx, cy
}

// BiomeCounts returns the distribution of biome labels across the grid.
func (isl *Island) BiomeCounts() map[Biome]int {
	counts := make(map[Biome]int)
	for y := 0; y < isl.Height(); y++ {
		for x := 0; x < isl.Width(); x++ {
			counts[isl.BiomeAt(x, y)]++
		}
	}
	return counts
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
