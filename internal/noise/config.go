package noise

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the on-disk description of a noise source.
type Config struct {
	Source      string  `json:"source,omitempty"`
	Seed        int64   `json:"seed,omitempty"`
	Octaves     int     `json:"octaves"`
	Frequency   float64 `json:"frequency"`
	Lacunarity  float64 `json:"lacunarity"`
	Persistence float64 `json:"persistence"`
}

// DefaultConfig returns the default Perlin parameters.
func DefaultConfig() Config {
	return Config{
		Source:      SourcePerlin,
		Octaves:     DefaultOctaves,
		Frequency:   DefaultFrequency,
		Lacunarity:  DefaultLacunarity,
		Persistence: DefaultPersistence,
	}
}

// LoadConfig reads a JSON config. Fields missing from the file keep their
// default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if _, err := cfg.Perlin(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Perlin builds a validated generator from the config parameters.
func (c Config) Perlin() (*Perlin, error) {
	p := NewPerlin()
	p.SetOctaveCount(c.Octaves)
	p.SetFrequency(c.Frequency)
	p.SetLacunarity(c.Lacunarity)
	p.SetPersistence(c.Persistence)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Build constructs the noise source named by c.Source.
func (c Config) Build() (Noise, error) {
	return NewSource(c.Source, c)
}
