package render

import (
	"fmt"
	"math"
)

// Palette maps a noise value in [-1, 1] to a terminal cell.
type Palette func(v float64) Cell

// Palette names accepted by PaletteByName.
const (
	PaletteGray    = "gray"
	PaletteTerrain = "terrain"
)

var paletteOrder = []string{PaletteGray, PaletteTerrain}

var palettes = map[string]Palette{
	PaletteGray:    grayCell,
	PaletteTerrain: terrainCell,
}

// PaletteByName returns the named palette.
func PaletteByName(name string) (Palette, error) {
	p, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q (available: %v)", name, paletteOrder)
	}
	return p, nil
}

// PaletteNames lists palettes in cycling order.
func PaletteNames() []string {
	return append([]string(nil), paletteOrder...)
}

// NextPalette returns the palette after name in cycling order. Unknown
// names restart the cycle.
func NextPalette(name string) string {
	for i, n := range paletteOrder {
		if n == name {
			return paletteOrder[(i+1)%len(paletteOrder)]
		}
	}
	return paletteOrder[0]
}

// unit maps [-1, 1] onto [0, 1], clamping out-of-range and NaN input.
func unit(v float64) float64 {
	if math.IsNaN(v) {
		return 0.5
	}
	t := (v + 1) / 2
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// grayGlyphs goes from sparse to dense.
var grayGlyphs = []rune(" .:-=+*#%@")

func grayCell(v float64) Cell {
	t := unit(v)
	level := uint8(math.Round(t * 255))
	g := grayGlyphs[int(math.Round(t*float64(len(grayGlyphs)-1)))]
	fg := level / 2
	if level < 128 {
		fg = level + 64
	}
	return Cell{Ch: g, FgR: fg, FgG: fg, FgB: fg, BgR: level, BgG: level, BgB: level}
}

// terrainBand is one elevation band of the terrain palette.
type terrainBand struct {
	upTo    float64 // upper bound of the band on the [0, 1] scale
	ch      rune
	r, g, b uint8
}

var terrainBands = []terrainBand{
	{0.20, '~', 20, 40, 120},   // deep water
	{0.28, '~', 40, 90, 170},   // shallow water
	{0.32, '.', 200, 185, 120}, // sand
	{0.42, '.', 70, 150, 60},   // grass
	{0.70, 'T', 30, 100, 40},   // forest
	{0.78, '^', 120, 110, 100}, // rock
	{1.01, '*', 235, 235, 240}, // snow
}

func terrainCell(v float64) Cell {
	t := unit(v)
	band := terrainBands[len(terrainBands)-1]
	for _, b := range terrainBands {
		if t < b.upTo {
			band = b
			break
		}
	}
	return Cell{
		Ch:  band.ch,
		FgR: band.r / 2, FgG: band.g / 2, FgB: band.b / 2,
		BgR: band.r, BgG: band.g, BgB: band.b,
	}
}
