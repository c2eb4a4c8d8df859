// Package noise provides deterministic fractal simplex noise fields.
// A Field with the same seed and parameters always returns the same
// value at the same coordinate — world reproducibility depends on it.
package noise

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Params controls the fractal summation of a Field.
type Params struct {
	Octaves    int     // Number of noise layers summed (≥ 1)
	Lacunarity float64 // Frequency multiplier per octave (> 1)
	Gain       float64 // Amplitude multiplier per octave (0 < gain ≤ 1)
	Scale      float64 // Base sampling frequency (> 0)
}

// DefaultParams returns the generation defaults: six octaves with
// moderate roughness, tuned for island-scale terrain.
func DefaultParams() Params {
	return Params{
		Octaves:    6,
		Lacunarity: 2.5,
		Gain:       0.5,
		Scale:      2.5,
	}
}

// Validate reports the first invalid parameter, if any.
func (p Params) Validate() error {
	if p.Octaves <= 0 {
		return fmt.Errorf("noise: octaves must be positive, got %d", p.Octaves)
	}
	if p.Lacunarity <= 1 {
		return fmt.Errorf("noise: lacunarity must exceed 1, got %g", p.Lacunarity)
	}
	if p.Gain <= 0 || p.Gain > 1 {
		return fmt.Errorf("noise: gain must be in (0, 1], got %g", p.Gain)
	}
	if p.Scale <= 0 {
		return fmt.Errorf("noise: scale must be positive, got %g", p.Scale)
	}
	return nil
}

// Field is a deterministic 2D scalar field in [0, 1].
type Field struct {
	src    opensimplex.Noise
	params Params
}

// New creates a Field from a seed. Parameter errors are configuration
// errors and surface here, never mid-generation.
func New(seed int64, params Params) (*Field, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Field{
		src:    opensimplex.NewNormalized(seed),
		params: params,
	}, nil
}

// Sample returns the fractal noise value at (x, y), normalized to [0, 1]
// by the total octave amplitude.
func (f *Field) Sample(x, y float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	freq := f.params.Scale

	for i := 0; i < f.params.Octaves; i++ {
		total += f.src.Eval2(x*freq, y*freq) * amplitude
		maxVal += amplitude
		amplitude *= f.params.Gain
		freq *= f.params.Lacunarity
	}

	return total / maxVal
}

// Params returns the field's parameters.
func (f *Field) Params() Params {
	return f.params
}
