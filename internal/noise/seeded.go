package noise

import (
	perlin "github.com/aquilax/go-perlin"
)

// Seeded is classic gradient noise with a permutation shuffled from a seed,
// for callers that want distinct fields instead of the fixed table.
type Seeded struct {
	gen       *perlin.Perlin
	frequency float64
}

// NewSeeded builds a seeded source from cfg. Persistence maps to the
// library's per-octave amplitude divisor and lacunarity to its frequency
// spacing.
func NewSeeded(cfg Config) (*Seeded, error) {
	p, err := cfg.Perlin()
	if err != nil {
		return nil, err
	}
	alpha := 1 / p.Persistence()
	if !positive(alpha) {
		alpha = 1 / DefaultPersistence
	}
	return &Seeded{
		gen:       perlin.NewPerlin(alpha, p.Lacunarity(), int32(p.OctaveCount()), cfg.Seed),
		frequency: p.Frequency(),
	}, nil
}

// GetValue returns the seeded noise value at (x, y, z) clamped to [-1, 1].
func (s *Seeded) GetValue(x, y, z float64) float64 {
	f := s.frequency
	return clamp(s.gen.Noise3D(x*f, y*f, z*f), -1, 1)
}
