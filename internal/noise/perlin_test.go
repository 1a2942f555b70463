package noise

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestNewPerlinDefaults(t *testing.T) {
	p := NewPerlin()
	if p.OctaveCount() != 6 || p.Frequency() != 1 || p.Lacunarity() != 2 || p.Persistence() != 0.5 {
		t.Fatalf("unexpected defaults: %v", p)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestGetValueGolden(t *testing.T) {
	p := NewPerlin()
	if got := p.GetValue(0, 0, 0); got != 0 {
		t.Errorf("GetValue(0, 0, 0) = %v, want 0", got)
	}
	// Octaves past the first land on 0.5 and then on integers, all zero.
	if got := p.GetValue(0.25, 0, 0); got != 0.146484375 {
		t.Errorf("GetValue(0.25, 0, 0) = %v, want 0.146484375", got)
	}

	single := NewPerlin()
	single.SetOctaveCount(1)
	single.SetFrequency(0.25)
	if got := single.GetValue(3, 0, 0); got != -0.146484375 {
		t.Errorf("single octave GetValue(3, 0, 0) at f=0.25 = %v, want -0.146484375", got)
	}
}

func TestGetValueZeroOctaves(t *testing.T) {
	p := NewPerlin()
	p.SetOctaveCount(0)
	for _, x := range []float64{0, 0.3, 7.7, -2.5} {
		if got := p.GetValue(x, x*0.5, x*2); got != 0 {
			t.Errorf("GetValue with 0 octaves = %v, want 0", got)
		}
	}
	if err := p.Validate(); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Validate with 0 octaves = %v, want ErrInvalidConfiguration", err)
	}
}

func TestGetValueDeterministic(t *testing.T) {
	p := NewPerlin()
	p.SetOctaveCount(8)
	p.SetFrequency(1.7)
	for i := 0; i < 50; i++ {
		x, y, z := float64(i)*0.731, float64(i)*-0.377, float64(i)*1.913
		a := p.GetValue(x, y, z)
		b := p.GetValue(x, y, z)
		if math.Float64bits(a) != math.Float64bits(b) {
			t.Fatalf("GetValue(%v, %v, %v) not repeatable: %v vs %v", x, y, z, a, b)
		}
	}
}

func TestGetValueRange(t *testing.T) {
	configs := []struct {
		name        string
		octaves     int
		frequency   float64
		persistence float64
	}{
		{"defaults", 6, 1, 0.5},
		{"one octave", 1, 1, 0.5},
		{"rough", 10, 4, 0.9},
		{"smooth", 3, 0.3, 0.1},
	}
	for _, cfg := range configs {
		t.Run(cfg.name, func(t *testing.T) {
			p := NewPerlin()
			p.SetOctaveCount(cfg.octaves)
			p.SetFrequency(cfg.frequency)
			p.SetPersistence(cfg.persistence)
			for x := -5.0; x < 5; x += 0.37 {
				for y := -5.0; y < 5; y += 0.41 {
					for _, z := range []float64{-1.3, 0, 0.5, 2.71} {
						if v := p.GetValue(x, y, z); math.Abs(v) > 1 {
							t.Fatalf("GetValue(%v, %v, %v) = %v, out of [-1, 1]", x, y, z, v)
						}
					}
				}
			}
		})
	}

	t.Run("ten octaves at frequency 4", func(t *testing.T) {
		p := NewPerlin()
		p.SetOctaveCount(10)
		p.SetFrequency(4)
		axis := []float64{0, 0.5, 1, 10.25}
		for _, x := range axis {
			for _, y := range axis {
				for _, z := range axis {
					if v := p.GetValue(x, y, z); math.Abs(v) > 1 {
						t.Errorf("GetValue(%v, %v, %v) = %v, out of [-1, 1]", x, y, z, v)
					}
				}
			}
		}
	})
}

// With two octaves the sum is rescaled by the total amplitude only when it
// leaves the unit range.
func TestGetValueNormalizesOnlyOnOverflow(t *testing.T) {
	for _, persistence := range []float64{0.5, 3} {
		p := NewPerlin()
		p.SetOctaveCount(2)
		p.SetPersistence(persistence)
		total := 1 + persistence

		normalized := 0
		for x := 0.05; x < 6; x += 0.29 {
			for y := 0.11; y < 6; y += 0.31 {
				z := 0.7
				raw := Lattice(x, y, z)*1 + Lattice(x*2, y*2, z*2)*persistence
				want := raw
				if math.Abs(raw) > 1 {
					want = raw / total
					normalized++
				}
				want = math.Max(-1, math.Min(1, want))
				if got := p.GetValue(x, y, z); math.Abs(got-want) > 1e-12 {
					t.Fatalf("persistence %v: GetValue(%v, %v, %v) = %v, want %v", persistence, x, y, z, got, want)
				}
			}
		}
		if persistence > 1 && normalized == 0 {
			t.Errorf("persistence %v: expected some samples to overflow and be normalized", persistence)
		}
	}
}

func TestGetValueContinuous(t *testing.T) {
	const eps = 1e-7
	for _, octaves := range []int{1, 6} {
		p := NewPerlin()
		p.SetOctaveCount(octaves)
		for x := -3.0; x < 3; x += 0.113 {
			for y := -3.0; y < 3; y += 0.127 {
				a := p.GetValue(x, y, 0.4)
				b := p.GetValue(x+eps, y, 0.4)
				// Pairs near the normalization threshold may legitimately jump.
				if math.Abs(a) > 0.9 || math.Abs(b) > 0.9 {
					continue
				}
				if math.Abs(a-b) > 100*eps {
					t.Fatalf("octaves %d: jump at (%v, %v): %v vs %v", octaves, x, y, a, b)
				}
			}
		}
	}
}

// detailEnergy measures how far the full fractal sum strays from its first
// octave, relative to the first octave's own energy.
func detailEnergy(persistence float64) float64 {
	full := NewPerlin()
	full.SetPersistence(persistence)
	base := NewPerlin()
	base.SetOctaveCount(1)

	var detail, energy float64
	for x := 0.031; x < 8; x += 0.173 {
		for y := 0.057; y < 8; y += 0.191 {
			b := base.GetValue(x, y, 1.37)
			d := full.GetValue(x, y, 1.37) - b
			detail += d * d
			energy += b * b
		}
	}
	return detail / energy
}

func TestPersistenceShiftsEnergyToHigherOctaves(t *testing.T) {
	low := detailEnergy(0.1)
	mid := detailEnergy(0.5)
	high := detailEnergy(0.9)
	if !(low < mid && mid < high) {
		t.Errorf("detail energy not increasing with persistence: 0.1=%v 0.5=%v 0.9=%v", low, mid, high)
	}
}

func TestSetterAffectsOnlyLaterCalls(t *testing.T) {
	p := NewPerlin()
	x, y, z := 1.3, 2.7, 0.45
	before := p.GetValue(x, y, z)
	snapshot := *p

	p.SetFrequency(3)
	p.SetLacunarity(2.5)
	p.SetPersistence(0.7)
	p.SetOctaveCount(4)

	if got := snapshot.GetValue(x, y, z); got != before {
		t.Errorf("snapshot changed after setters: %v, want %v", got, before)
	}

	fresh := &Perlin{octaves: 4, frequency: 3, lacunarity: 2.5, persistence: 0.7}
	if got, want := p.GetValue(x, y, z), fresh.GetValue(x, y, z); got != want {
		t.Errorf("GetValue after setters = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Perlin
		wantErr bool
	}{
		{"defaults", *NewPerlin(), false},
		{"negative octaves", Perlin{octaves: -1, frequency: 1, lacunarity: 2, persistence: 0.5}, true},
		{"zero frequency", Perlin{octaves: 1, frequency: 0, lacunarity: 2, persistence: 0.5}, true},
		{"inf lacunarity", Perlin{octaves: 1, frequency: 1, lacunarity: math.Inf(1), persistence: 0.5}, true},
		{"nan persistence", Perlin{octaves: 1, frequency: 1, lacunarity: 2, persistence: math.NaN()}, true},
		{"persistence above one", Perlin{octaves: 1, frequency: 1, lacunarity: 2, persistence: 1.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfiguration) {
					t.Errorf("Validate() = %v, want ErrInvalidConfiguration", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestGetValueConcurrentReaders(t *testing.T) {
	p := NewPerlin()
	p.SetOctaveCount(8)

	want := make([]float64, 64)
	for i := range want {
		want[i] = p.GetValue(float64(i)*0.37, float64(i)*0.11, 0.5)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range want {
				if got := p.GetValue(float64(i)*0.37, float64(i)*0.11, 0.5); got != want[i] {
					errs <- "concurrent GetValue differs from sequential result"
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}
}
