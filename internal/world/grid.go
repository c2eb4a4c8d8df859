// Package world provides island terrain synthesis: fractal heightmap,
// radial island mask, moisture field, and biome classification.
package world

import "fmt"

// ElevationGrid is a fixed-size 2D field of normalized heights in [0, 1].
// It is written once during generation and read-only afterwards.
type ElevationGrid struct {
	width  int
	height int
	cells  []float64
}

// NewElevationGrid allocates a zeroed grid.
func NewElevationGrid(width, height int) *ElevationGrid {
	return &ElevationGrid{
		width:  width,
		height: height,
		cells:  make([]float64, width*height),
	}
}

// Width returns the grid width in cells.
func (g *ElevationGrid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *ElevationGrid) Height() int { return g.height }

// At returns the elevation at (x, y). Out-of-bounds coordinates are a
// caller precondition violation and panic.
func (g *ElevationGrid) At(x, y int) float64 {
	return g.cells[g.index(x, y)]
}

// Set writes the elevation at (x, y). Generation-time only.
func (g *ElevationGrid) Set(x, y int, v float64) {
	g.cells[g.index(x, y)] = v
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *ElevationGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *ElevationGrid) index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("world: grid query out of bounds: (%d, %d) on %dx%d", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// BiomeGrid holds one biome label per cell, same dimensions as the
// elevation grid it was derived from.
type BiomeGrid struct {
	width  int
	height int
	cells  []Biome
}

// NewBiomeGrid allocates a grid filled with BiomeDeepWater.
func NewBiomeGrid(width, height int) *BiomeGrid {
	return &BiomeGrid{
		width:  width,
		height: height,
		cells:  make([]Biome, width*height),
	}
}

// Width returns the grid width in cells.
func (g *BiomeGrid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *BiomeGrid) Height() int { return g.height }

// At returns the biome at (x, y). Panics on out-of-bounds coordinates.
func (g *BiomeGrid) At(x, y int) Biome {
	return g.cells[g.index(x, y)]
}

// Set writes the biome at (x, y). Generation-time only.
func (g *BiomeGrid) Set(x, y int, b Biome) {
	g.cells[g.index(x, y)] = b
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *BiomeGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *BiomeGrid) index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("world: grid query out of bounds: (%d, %d) on %dx%d", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// Manhattan returns the Manhattan distance between two grid coordinates.
// All proximity checks in the game use this metric.
func Manhattan(x1, y1, x2, y2 int) int {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
