package world

import "testing"

func TestClassifyTotality(t *testing.T) {
	thr := DefaultBiomeThresholds()

	// Every elevation in [0, 1] must land in exactly one band.
	for i := 0; i <= 1000; i++ {
		e := float64(i) / 1000
		b := thr.Classify(e)
		if b > BiomeCliff {
			t.Fatalf("Classify(%v) returned invalid biome %d", e, b)
		}
	}

	// Band edges are inclusive lower bounds.
	if got := thr.Classify(thr.Beach); got != BiomeBeach {
		t.Errorf("Classify at beach threshold = %v, want Beach", got)
	}
	if got := thr.Classify(thr.Cliff); got != BiomeCliff {
		t.Errorf("Classify at cliff threshold = %v, want Cliff", got)
	}
}

func TestClassifyMonotonic(t *testing.T) {
	thr := DefaultBiomeThresholds()

	prev := -1
	for i := 0; i <= 1000; i++ {
		e := float64(i) / 1000
		rank := thr.Classify(e).Rank()
		if rank < prev {
			t.Fatalf("biome rank decreased at elevation %v: %d -> %d", e, prev, rank)
		}
		prev = rank
	}
}

func TestClassifyGridMatchesCells(t *testing.T) {
	isl, err := Generate(testConfig(42))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	thr := isl.Config().Thresholds
	for y := 0; y < isl.Height(); y++ {
		for x := 0; x < isl.Width(); x++ {
			if isl.BiomeAt(x, y) != thr.Classify(isl.ElevationAt(x, y)) {
				t.Fatalf("biome grid not a pure function of elevation at (%d, %d)", x, y)
			}
		}
	}
}

func TestThresholdsValidate(t *testing.T) {
	good := DefaultBiomeThresholds()
	if err := good.Validate(); err != nil {
		t.Errorf("default thresholds rejected: %v", err)
	}

	bad := []BiomeThresholds{
		{Water: 0.3, Beach: 0.2, Grass: 0.4, Cliff: 0.7}, // unordered
		{Water: 0, Beach: 0.3, Grass: 0.4, Cliff: 0.7},   // zero bound
		{Water: 0.2, Beach: 0.3, Grass: 0.4, Cliff: 1.0}, // bound at 1
	}
	for i, thr := range bad {
		if err := thr.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestBiomeIsWater(t *testing.T) {
	if !BiomeDeepWater.IsWater() || !BiomeWater.IsWater() {
		t.Error("water biomes not reported as water")
	}
	for _, b := range []Biome{BiomeBeach, BiomeGrass, BiomeCliff} {
		if b.IsWater() {
			t.Errorf("%v reported as water", b)
		}
	}
}
