package explorer

import (
	"math"

	"latticenoise/internal/noise"
	"latticenoise/internal/render"
)

// Limits applied when a viewer reconfigures its generator.
const (
	MaxOctaves     = 16
	MinPersistence = 0.05
	MaxPersistence = 0.95
	MinLacunarity  = 1.1
	MaxLacunarity  = 4.0
	MinFrequency   = 1.0 / 64
	MaxFrequency   = 64.0
	MinStep        = 1.0 / 64
	MaxStep        = 4.0

	DefaultStep      = 0.05 // noise units per sample
	PanSamples       = 4    // samples moved per pan keypress
	PersistenceDelta = 0.05
	LacunarityDelta  = 0.1
	SliceDelta       = 0.1
	AnimSlicePerTick = 0.01
)

// Viewer holds the exploration state for a connected session.
type Viewer struct {
	ID   string
	Name string

	source string
	seed   int64
	gen    *noise.Perlin
	seeded *noise.Seeded

	CenterX, CenterY float64
	Z                float64
	Step             float64
	Palette          string
	Animating        bool
}

// ViewerSnapshot is a read-only copy of a viewer's state for rendering.
// Field is safe to evaluate from another goroutine.
type ViewerSnapshot struct {
	ID, Name    string
	Source      string
	Field       noise.Noise
	Octaves     int
	Frequency   float64
	Lacunarity  float64
	Persistence float64

	CenterX, CenterY float64
	Z                float64
	Step             float64
	Palette          string
	Animating        bool
}

func newViewer(id, name string, cfg noise.Config) *Viewer {
	v := &Viewer{ID: id, Name: name, source: cfg.Source, seed: cfg.Seed}
	v.reset(cfg)
	return v
}

// reset restores cfg's generator parameters and the default camera.
func (v *Viewer) reset(cfg noise.Config) {
	gen, err := cfg.Perlin()
	if err != nil {
		gen = noise.NewPerlin()
	}
	v.gen = gen
	v.CenterX, v.CenterY, v.Z = 0, 0, 0
	v.Step = DefaultStep
	v.Palette = render.PaletteGray
	v.Animating = false
	v.refresh()
}

// refresh rebuilds the seeded source after a parameter change.
func (v *Viewer) refresh() {
	if v.source != noise.SourceSeeded {
		v.seeded = nil
		return
	}
	s, err := noise.NewSeeded(v.config())
	if err != nil {
		return
	}
	v.seeded = s
}

func (v *Viewer) config() noise.Config {
	return noise.Config{
		Source:      v.source,
		Seed:        v.seed,
		Octaves:     v.gen.OctaveCount(),
		Frequency:   v.gen.Frequency(),
		Lacunarity:  v.gen.Lacunarity(),
		Persistence: v.gen.Persistence(),
	}
}

func (v *Viewer) field() noise.Noise {
	if v.seeded != nil {
		return v.seeded
	}
	return *v.gen
}

// Snapshot returns a copy of the viewer state for rendering.
func (v *Viewer) Snapshot() ViewerSnapshot {
	source := v.source
	if source == "" {
		source = noise.SourcePerlin
	}
	return ViewerSnapshot{
		ID:          v.ID,
		Name:        v.Name,
		Source:      source,
		Field:       v.field(),
		Octaves:     v.gen.OctaveCount(),
		Frequency:   v.gen.Frequency(),
		Lacunarity:  v.gen.Lacunarity(),
		Persistence: v.gen.Persistence(),
		CenterX:     v.CenterX,
		CenterY:     v.CenterY,
		Z:           v.Z,
		Step:        v.Step,
		Palette:     v.Palette,
		Animating:   v.Animating,
	}
}

// apply performs a single action. Parameter changes rebuild the seeded
// source, if any.
func (v *Viewer) apply(a Action, cfg noise.Config) {
	pan := PanSamples * v.Step
	switch a {
	case ActionUp:
		v.CenterY -= pan
	case ActionDown:
		v.CenterY += pan
	case ActionLeft:
		v.CenterX -= pan
	case ActionRight:
		v.CenterX += pan
	case ActionZoomIn:
		v.Step = clamp(v.Step/2, MinStep, MaxStep)
	case ActionZoomOut:
		v.Step = clamp(v.Step*2, MinStep, MaxStep)
	case ActionSliceForward:
		v.Z += SliceDelta
	case ActionSliceBack:
		v.Z -= SliceDelta
	case ActionToggleAnimation:
		v.Animating = !v.Animating
	case ActionCyclePalette:
		v.Palette = render.NextPalette(v.Palette)
	case ActionReset:
		v.reset(cfg)
	case ActionOctavesUp:
		v.gen.SetOctaveCount(min(v.gen.OctaveCount()+1, MaxOctaves))
	case ActionOctavesDown:
		v.gen.SetOctaveCount(max(v.gen.OctaveCount()-1, 1))
	case ActionPersistenceUp:
		v.gen.SetPersistence(clamp(round2(v.gen.Persistence()+PersistenceDelta), MinPersistence, MaxPersistence))
	case ActionPersistenceDown:
		v.gen.SetPersistence(clamp(round2(v.gen.Persistence()-PersistenceDelta), MinPersistence, MaxPersistence))
	case ActionLacunarityUp:
		v.gen.SetLacunarity(clamp(round2(v.gen.Lacunarity()+LacunarityDelta), MinLacunarity, MaxLacunarity))
	case ActionLacunarityDown:
		v.gen.SetLacunarity(clamp(round2(v.gen.Lacunarity()-LacunarityDelta), MinLacunarity, MaxLacunarity))
	case ActionFrequencyUp:
		v.gen.SetFrequency(clamp(v.gen.Frequency()*2, MinFrequency, MaxFrequency))
	case ActionFrequencyDown:
		v.gen.SetFrequency(clamp(v.gen.Frequency()/2, MinFrequency, MaxFrequency))
	}
	switch a {
	case ActionOctavesUp, ActionOctavesDown,
		ActionPersistenceUp, ActionPersistenceDown,
		ActionLacunarityUp, ActionLacunarityDown,
		ActionFrequencyUp, ActionFrequencyDown:
		v.refresh()
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// round2 keeps repeated ±0.05 steps from drifting off two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
