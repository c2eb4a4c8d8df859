// Package render draws the island and its locations as text. A thin
// consumer of the world grids; holds no generation logic.
package render

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/talgya/island-wanderer/internal/locations"
	"github.com/talgya/island-wanderer/internal/world"
)

// Glyphs per biome.
var biomeGlyphs = map[world.Biome]byte{
	world.BiomeDeepWater: '~',
	world.BiomeWater:     '~',
	world.BiomeBeach:     '.',
	world.BiomeGrass:     '"',
	world.BiomeCliff:     '^',
}

// ANSI foreground colors per biome, used only on a TTY.
var biomeColors = map[world.Biome]string{
	world.BiomeDeepWater: "\x1b[34m", // blue
	world.BiomeWater:     "\x1b[36m", // cyan
	world.BiomeBeach:     "\x1b[33m", // yellow
	world.BiomeGrass:     "\x1b[32m", // green
	world.BiomeCliff:     "\x1b[31m", // red-brown
}

const (
	colorReset    = "\x1b[0m"
	colorObserver = "\x1b[97m" // bright white
	colorLocation = "\x1b[93m" // bright yellow
)

// Renderer draws map frames.
type Renderer struct {
	color bool
}

// New returns a renderer that emits ANSI color iff stdout is a
// terminal.
func New() *Renderer {
	return &Renderer{color: isatty.IsTerminal(os.Stdout.Fd())}
}

// NewPlain returns a renderer without color, for tests and piped
// output.
func NewPlain() *Renderer {
	return &Renderer{}
}

// Frame renders the island with discovered locations and the observer
// marked. Undiscovered locations stay hidden.
func (r *Renderer) Frame(isl *world.Island, locs []*locations.Location, observerX, observerY int) string {
	marks := make(map[[2]int]byte, len(locs))
	for _, loc := range locs {
		if loc.Discovered {
			marks[[2]int{loc.X, loc.Y}] = '!'
		}
	}

	var b strings.Builder
	for y := 0; y < isl.Height(); y++ {
		for x := 0; x < isl.Width(); x++ {
			switch {
			case x == observerX && y == observerY:
				r.put(&b, '@', colorObserver)
			case marks[[2]int{x, y}] != 0:
				r.put(&b, marks[[2]int{x, y}], colorLocation)
			default:
				biome := isl.BiomeAt(x, y)
				r.put(&b, biomeGlyphs[biome], biomeColors[biome])
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *Renderer) put(b *strings.Builder, glyph byte, color string) {
	if r.color {
		b.WriteString(color)
		b.WriteByte(glyph)
		b.WriteString(colorReset)
		return
	}
	b.WriteByte(glyph)
}
