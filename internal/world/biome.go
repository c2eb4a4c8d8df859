package world

import "fmt"

// Biome classifies a cell by elevation band. Values are ordered driest
// to wettest inverted: higher Biome value means higher terrain.
type Biome uint8

const (
	BiomeDeepWater Biome = iota // Open sea
	BiomeWater                  // Shallows near the shore
	BiomeBeach                  // Sand band above the waterline
	BiomeGrass                  // Grassland, groves and scrub
	BiomeCliff                  // Rocky highland
)

// Rank returns the biome's position in the elevation ordering. Higher
// elevation never maps to a lower rank under the same thresholds.
func (b Biome) Rank() int { return int(b) }

// String returns a human-readable biome name.
func (b Biome) String() string {
	switch b {
	case BiomeDeepWater:
		return "Deep Water"
	case BiomeWater:
		return "Water"
	case BiomeBeach:
		return "Beach"
	case BiomeGrass:
		return "Grass"
	case BiomeCliff:
		return "Cliff"
	default:
		return "Unknown"
	}
}

// IsWater reports whether the biome is open water (unsuitable for any
// placed location).
func (b Biome) IsWater() bool {
	return b == BiomeDeepWater || b == BiomeWater
}

// BiomeThresholds are the inclusive lower bounds separating biome bands,
// in ascending order: elevation below Water is deep water, below Beach
// is shallow water, below Grass is beach, below Cliff is grassland, and
// anything at or above Cliff is cliff.
type BiomeThresholds struct {
	Water float64
	Beach float64
	Grass float64
	Cliff float64
}

// DefaultBiomeThresholds returns the standard island banding.
func DefaultBiomeThresholds() BiomeThresholds {
	return BiomeThresholds{
		Water: 0.20,
		Beach: 0.30,
		Grass: 0.40,
		Cliff: 0.72,
	}
}

// Validate rejects unordered or out-of-range thresholds.
func (t BiomeThresholds) Validate() error {
	bounds := []float64{t.Water, t.Beach, t.Grass, t.Cliff}
	prev := 0.0
	for _, b := range bounds {
		if b <= prev || b >= 1 {
			return fmt.Errorf("world: biome thresholds must be strictly ascending within (0, 1), got %v", bounds)
		}
		prev = b
	}
	return nil
}

// Classify maps an elevation to its biome. Total over [0, 1]: every
// valid elevation lands in exactly one band.
func (t BiomeThresholds) Classify(elevation float64) Biome {
	switch {
	case elevation < t.Water:
		return BiomeDeepWater
	case elevation < t.Beach:
		return BiomeWater
	case elevation < t.Grass:
		return BiomeBeach
	case elevation < t.Cliff:
		return BiomeGrass
	default:
		return BiomeCliff
	}
}

// ClassifyGrid derives a biome grid from an elevation grid. Pure: no
// randomness, cell-by-cell lookup.
func (t BiomeThresholds) ClassifyGrid(elev *ElevationGrid) *BiomeGrid {
	biomes := NewBiomeGrid(elev.Width(), elev.Height())
	for y := 0; y < elev.Height(); y++ {
		for x := 0; x < elev.Width(); x++ {
			biomes.Set(x, y, t.Classify(elev.At(x, y)))
		}
	}
	return biomes
}
