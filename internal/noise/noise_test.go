package noise

import "testing"

func TestFieldDeterminism(t *testing.T) {
	f1, err := New(12345, DefaultParams())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f2, err := New(12345, DefaultParams())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 200; i++ {
		x := float64(i) * 0.37
		y := float64(i) * 0.53
		if f1.Sample(x, y) != f2.Sample(x, y) {
			t.Fatalf("Sample not deterministic at (%f, %f)", x, y)
		}
	}
}

func TestFieldSeedsDiffer(t *testing.T) {
	f1, _ := New(1, DefaultParams())
	f2, _ := New(2, DefaultParams())

	same := true
	for i := 0; i < 50 && same; i++ {
		x := float64(i) * 0.11
		if f1.Sample(x, x) != f2.Sample(x, x) {
			same = false
		}
	}
	if same {
		t.Error("fields with different seeds produced identical samples")
	}
}

func TestFieldRange(t *testing.T) {
	f, err := New(42, DefaultParams())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 5000; i++ {
		x := float64(i)*0.13 - 300
		y := float64(i)*0.07 - 200
		v := f.Sample(x, y)
		if v < 0 || v > 1 {
			t.Errorf("Sample(%f, %f) = %f, out of [0, 1]", x, y, v)
		}
	}
}

func TestParamsValidate(t *testing.T) {
	cases := []struct {
		name   string
		params Params
	}{
		{"zero octaves", Params{Octaves: 0, Lacunarity: 2, Gain: 0.5, Scale: 1}},
		{"negative octaves", Params{Octaves: -3, Lacunarity: 2, Gain: 0.5, Scale: 1}},
		{"lacunarity one", Params{Octaves: 4, Lacunarity: 1, Gain: 0.5, Scale: 1}},
		{"zero gain", Params{Octaves: 4, Lacunarity: 2, Gain: 0, Scale: 1}},
		{"gain above one", Params{Octaves: 4, Lacunarity: 2, Gain: 1.5, Scale: 1}},
		{"zero scale", Params{Octaves: 4, Lacunarity: 2, Gain: 0.5, Scale: 0}},
	}

	for _, tc := range cases {
		if _, err := New(7, tc.params); err == nil {
			t.Errorf("%s: expected configuration error, got nil", tc.name)
		}
	}

	if _, err := New(7, DefaultParams()); err != nil {
		t.Errorf("default params rejected: %v", err)
	}
}
