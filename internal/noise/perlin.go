package noise

import (
	"errors"
	"fmt"
	"math"
)

// Default fractal parameters.
const (
	DefaultOctaves     = 6
	DefaultFrequency   = 1.0
	DefaultLacunarity  = 2.0
	DefaultPersistence = 0.5
)

// ErrInvalidConfiguration is returned by Validate for parameter sets that
// cannot produce a meaningful field.
var ErrInvalidConfiguration = errors.New("invalid noise configuration")

// Perlin sums octaves of Lattice noise (fractal Brownian motion).
//
// A Perlin value is read-only during GetValue, so concurrent readers are
// fine. Setters are not synchronized; callers that reconfigure while other
// goroutines evaluate should hand those goroutines a copy instead.
type Perlin struct {
	octaves     int
	frequency   float64
	lacunarity  float64
	persistence float64
}

// NewPerlin returns a generator with the default parameters.
func NewPerlin() *Perlin {
	return &Perlin{
		octaves:     DefaultOctaves,
		frequency:   DefaultFrequency,
		lacunarity:  DefaultLacunarity,
		persistence: DefaultPersistence,
	}
}

// SetOctaveCount sets the number of octaves summed.
func (p *Perlin) SetOctaveCount(n int) { p.octaves = n }

// SetFrequency sets the frequency of the first octave.
func (p *Perlin) SetFrequency(f float64) { p.frequency = f }

// SetPersistence sets the amplitude multiplier between octaves.
func (p *Perlin) SetPersistence(v float64) { p.persistence = v }

// SetLacunarity sets the frequency multiplier between octaves.
func (p *Perlin) SetLacunarity(l float64) { p.lacunarity = l }

func (p Perlin) OctaveCount() int     { return p.octaves }
func (p Perlin) Frequency() float64   { return p.frequency }
func (p Perlin) Lacunarity() float64  { return p.lacunarity }
func (p Perlin) Persistence() float64 { return p.persistence }

// GetValue returns the fractal noise value at (x, y, z) in [-1, 1].
//
// The raw octave sum is divided by the total amplitude only when its
// magnitude exceeds 1. Values still outside [-1, 1] after that are clamped.
// Zero or negative octave counts yield 0.
func (p Perlin) GetValue(x, y, z float64) float64 {
	if p.octaves <= 0 {
		return 0
	}

	x *= p.frequency
	y *= p.frequency
	z *= p.frequency

	value := 0.0
	amplitude := 1.0
	total := 0.0
	for i := 0; i < p.octaves; i++ {
		value += Lattice(x, y, z) * amplitude
		total += amplitude
		x *= p.lacunarity
		y *= p.lacunarity
		z *= p.lacunarity
		amplitude *= p.persistence
	}

	if math.Abs(value) > 1 && total != 0 {
		value /= total
	}
	return clamp(value, -1, 1)
}

// Validate reports whether the parameters describe a usable field.
func (p Perlin) Validate() error {
	switch {
	case p.octaves < 1:
		return fmt.Errorf("%w: octave count %d, need at least 1", ErrInvalidConfiguration, p.octaves)
	case !positive(p.frequency):
		return fmt.Errorf("%w: frequency %v must be finite and positive", ErrInvalidConfiguration, p.frequency)
	case !positive(p.lacunarity):
		return fmt.Errorf("%w: lacunarity %v must be finite and positive", ErrInvalidConfiguration, p.lacunarity)
	case !finite(p.persistence):
		return fmt.Errorf("%w: persistence %v must be finite", ErrInvalidConfiguration, p.persistence)
	}
	return nil
}

func (p Perlin) String() string {
	return fmt.Sprintf("perlin(octaves=%d frequency=%g lacunarity=%g persistence=%g)",
		p.octaves, p.frequency, p.lacunarity, p.persistence)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positive(v float64) bool {
	return finite(v) && v > 0
}
