package world

import (
	"math"
	"strings"
	"testing"

	"github.com/talgya/island-wanderer/internal/noise"
)

func testConfig(seed int64) GenConfig {
	cfg := DefaultGenConfig()
	cfg.Seed = seed
	return cfg
}

func TestGenerateDeterminism(t *testing.T) {
	cfg := testConfig(42)

	a, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			if a.ElevationAt(x, y) != b.ElevationAt(x, y) {
				t.Fatalf("elevation differs at (%d, %d): %v vs %v",
					x, y, a.ElevationAt(x, y), b.ElevationAt(x, y))
			}
			if a.BiomeAt(x, y) != b.BiomeAt(x, y) {
				t.Fatalf("biome differs at (%d, %d)", x, y)
			}
			if a.MoistureAt(x, y) != b.MoistureAt(x, y) {
				t.Fatalf("moisture differs at (%d, %d)", x, y)
			}
		}
	}
}

func TestElevationBounded(t *testing.T) {
	for _, seed := range []int64{1, 42, 999, -7} {
		isl, err := Generate(testConfig(seed))
		if err != nil {
			t.Fatalf("Generate(seed=%d): %v", seed, err)
		}
		for y := 0; y < isl.Height(); y++ {
			for x := 0; x < isl.Width(); x++ {
				v := isl.ElevationAt(x, y)
				if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
					t.Fatalf("seed %d: elevation at (%d, %d) = %v, want [0, 1]", seed, x, y, v)
				}
				m := isl.MoistureAt(x, y)
				if m < 0 || m > 1 {
					t.Fatalf("seed %d: moisture at (%d, %d) = %v, want [0, 1]", seed, x, y, m)
				}
			}
		}
	}
}

// The island mask must pull grid corners toward water while leaving
// the center high, in expectation over seeds.
func TestIslandMaskCenterAboveCorner(t *testing.T) {
	var centerSum, cornerSum float64
	const seeds = 25

	for seed := int64(1); seed <= seeds; seed++ {
		isl, err := Generate(testConfig(seed))
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		centerSum += isl.ElevationAt(isl.Width()/2, isl.Height()/2)
		cornerSum += isl.ElevationAt(0, 0)
	}

	if centerSum <= cornerSum {
		t.Errorf("mean center elevation %.3f not above mean corner elevation %.3f",
			centerSum/seeds, cornerSum/seeds)
	}
}

func TestGridBoundaryIsWater(t *testing.T) {
	isl, err := Generate(testConfig(42))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	wet := 0
	total := 0
	for x := 0; x < isl.Width(); x++ {
		for _, y := range []int{0, isl.Height() - 1} {
			total++
			if isl.BiomeAt(x, y).IsWater() {
				wet++
			}
		}
	}
	// The falloff has a soft band; demand the boundary be almost
	// entirely water rather than every single cell.
	if float64(wet) < 0.95*float64(total) {
		t.Errorf("only %d/%d boundary cells are water", wet, total)
	}
}

func TestDegenerateFieldFallsBackFlat(t *testing.T) {
	// A 1x1 grid makes the raw field constant by construction, which
	// would divide by zero in min-max normalization.
	cfg := testConfig(7)
	cfg.Width = 1
	cfg.Height = 1

	field, err := noise.New(cfg.Seed, cfg.Noise)
	if err != nil {
		t.Fatalf("noise.New: %v", err)
	}
	grid := buildHeightMap(field, cfg)
	if got := grid.At(0, 0); got != 0.5 {
		t.Errorf("flat fallback elevation = %v, want 0.5", got)
	}

	// The full pipeline must also survive it.
	isl, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate on degenerate grid: %v", err)
	}
	v := isl.ElevationAt(0, 0)
	if math.IsNaN(v) || v < 0 || v > 1 {
		t.Errorf("degenerate pipeline elevation = %v", v)
	}
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*GenConfig)
	}{
		{"zero width", func(c *GenConfig) { c.Width = 0 }},
		{"negative height", func(c *GenConfig) { c.Height = -4 }},
		{"zero octaves", func(c *GenConfig) { c.Noise.Octaves = 0 }},
		{"zero contrast", func(c *GenConfig) { c.Contrast = 0 }},
		{"falloff floor one", func(c *GenConfig) { c.FalloffFloor = 1 }},
		{"unordered thresholds", func(c *GenConfig) { c.Thresholds.Beach = 0.1 }},
	}

	for _, tc := range cases {
		cfg := testConfig(1)
		tc.mutate(&cfg)
		if _, err := Generate(cfg); err == nil {
			t.Errorf("%s: expected configuration error", tc.name)
		}
	}
}

func TestOutOfBoundsQueryPanics(t *testing.T) {
	isl, err := Generate(testConfig(3))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on out-of-bounds query")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "out of bounds") {
			t.Fatalf("unexpected panic payload: %v", r)
		}
	}()
	isl.ElevationAt(-1, 5)
}

func TestSpawnPointIsDry(t *testing.T) {
	for _, seed := range []int64{1, 42, 1234} {
		isl, err := Generate(testConfig(seed))
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		x, y := isl.SpawnPoint()
		if !isl.Elevation.InBounds(x, y) {
			t.Fatalf("seed %d: spawn point (%d, %d) out of bounds", seed, x, y)
		}
		if isl.ElevationAt(x, y) < isl.Config().Thresholds.Beach {
			t.Errorf("seed %d: spawn point (%d, %d) is underwater", seed, x, y)
		}
	}
}

func TestManhattan(t *testing.T) {
	cases := []struct {
		x1, y1, x2, y2, want int
	}{
		{0, 0, 0, 0, 0},
		{1, 2, 4, 6, 7},
		{4, 6, 1, 2, 7},
		{-3, 0, 3, 0, 6},
	}
	for _, tc := range cases {
		if got := Manhattan(tc.x1, tc.y1, tc.x2, tc.y2); got != tc.want {
			t.Errorf("Manhattan(%d,%d,%d,%d) = %d, want %d",
				tc.x1, tc.y1, tc.x2, tc.y2, got, tc.want)
		}
	}
}
