// Package noise generates deterministic, continuous scalar noise over 3D
// space for procedural content.
package noise

import (
	"errors"
	"fmt"
	"sort"
)

// Noise is any scalar field that can be sampled at a point.
type Noise interface {
	GetValue(x, y, z float64) float64
}

// ErrUnknownSource is returned by NewSource for an unregistered name.
var ErrUnknownSource = errors.New("unknown noise source")

// Source names accepted by NewSource.
const (
	SourcePerlin = "perlin"
	SourceSeeded = "seeded"
)

var sources = map[string]func(Config) (Noise, error){
	SourcePerlin: func(c Config) (Noise, error) {
		p, err := c.Perlin()
		if err != nil {
			return nil, err
		}
		return *p, nil
	},
	SourceSeeded: func(c Config) (Noise, error) {
		s, err := NewSeeded(c)
		if err != nil {
			return nil, err
		}
		return s, nil
	},
}

// NewSource builds the named noise source from cfg. An empty name selects
// the fixed-table Perlin generator.
func NewSource(name string, cfg Config) (Noise, error) {
	if name == "" {
		name = SourcePerlin
	}
	build, ok := sources[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownSource, name, SourceNames())
	}
	return build(cfg)
}

// SourceNames lists the registered source names in sorted order.
func SourceNames() []string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
