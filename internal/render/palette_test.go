package render

import (
	"math"
	"testing"
)

func TestPaletteByName(t *testing.T) {
	for _, name := range PaletteNames() {
		if _, err := PaletteByName(name); err != nil {
			t.Errorf("PaletteByName(%q): %v", name, err)
		}
	}
	if _, err := PaletteByName("rainbow"); err == nil {
		t.Error("expected error for unknown palette")
	}
}

func TestNextPaletteCycles(t *testing.T) {
	names := PaletteNames()
	name := names[0]
	for i := 0; i < len(names); i++ {
		name = NextPalette(name)
	}
	if name != names[0] {
		t.Errorf("cycle ended at %q, want %q", name, names[0])
	}
	if got := NextPalette("bogus"); got != names[0] {
		t.Errorf("NextPalette(bogus) = %q, want %q", got, names[0])
	}
}

func TestGrayCellRamp(t *testing.T) {
	tests := []struct {
		v     float64
		level uint8
		ch    rune
	}{
		{-1, 0, ' '},
		{1, 255, '@'},
		{-5, 0, ' '},
		{5, 255, '@'},
		{math.NaN(), 128, '+'},
	}
	for _, tt := range tests {
		c := grayCell(tt.v)
		if c.BgR != tt.level || c.Ch != tt.ch {
			t.Errorf("grayCell(%v) = level %d %q, want %d %q", tt.v, c.BgR, c.Ch, tt.level, tt.ch)
		}
	}
}

func TestTerrainCellBands(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		ch   rune
	}{
		{"deep water", -1, '~'},
		{"sand", -0.4, '.'},
		{"forest", 0.1, 'T'},
		{"rock", 0.5, '^'},
		{"snow", 1, '*'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := terrainCell(tt.v).Ch; got != tt.ch {
				t.Errorf("terrainCell(%v) = %q, want %q", tt.v, got, tt.ch)
			}
		})
	}
}
