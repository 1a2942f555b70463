package render

import (
	"fmt"
	"strings"

	"latticenoise/internal/noise"
)

const HUDRows = 4

var sentinel = Cell{Ch: '\x00', FgR: 255, BgB: 255, Bold: true}

// View is everything the renderer needs to draw one frame of a noise slice.
type View struct {
	Field  noise.Noise
	Source string

	Octaves     int
	Frequency   float64
	Lacunarity  float64
	Persistence float64

	CenterX, CenterY float64
	Z                float64
	Step             float64 // noise units per sample
	Palette          string
	Animating        bool

	ViewerName string
	Viewers    int
}

// Engine is a per-session double-buffer diff renderer.
type Engine struct {
	width, height int
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool
	lastPalette   string
}

// NewEngine creates a renderer for the given terminal dimensions.
func NewEngine(width, height int) *Engine {
	e := &Engine{
		width:      width,
		height:     height,
		firstFrame: true,
	}
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	return e
}

// Resize adjusts the renderer for a new terminal size.
func (e *Engine) Resize(width, height int) {
	e.width = width
	e.height = height
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	e.firstFrame = true
}

func (e *Engine) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, e.height)
	for y := 0; y < e.height; y++ {
		buf[y] = make([]Cell, e.width)
		for x := 0; x < e.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

// Render produces the ANSI byte output for the current frame.
func (e *Engine) Render(view View, termW, termH int) string {
	if termW != e.width || termH != e.height {
		e.Resize(termW, termH)
	}
	if view.Palette != e.lastPalette {
		e.firstFrame = true
		e.lastPalette = view.Palette
	}

	palette, err := PaletteByName(view.Palette)
	if err != nil {
		palette = grayCell
	}

	// Clear next buffer
	bgCell := Cell{Ch: ' ', BgR: 10, BgG: 10, BgB: 15}
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			e.next[y][x] = bgCell
		}
	}

	vp := NewViewport(view.CenterX, view.CenterY, view.Step, termW, termH, HUDRows)
	centre := 0.0
	if view.Field != nil {
		planeValues := noise.SamplePlane(view.Field, noise.Plane{
			OriginX: vp.OriginX,
			OriginY: vp.OriginY,
			Z:       view.Z,
			Step:    vp.Step,
			Width:   vp.ViewW,
			Height:  vp.ViewH,
		})
		for row, values := range planeValues {
			for col, v := range values {
				c := palette(v)
				for dx := 0; dx < CellWidth; dx++ {
					e.next[row][col*CellWidth+dx] = c
				}
			}
		}
		if col, row, ok := vp.Centre(); ok {
			x, y := vp.SampleAt(col, row)
			centre = view.Field.GetValue(x, y, view.Z)
			e.drawCrosshair(col, row)
		}
	}

	e.drawHUD(view, centre)
	return e.flush()
}

// drawCrosshair brackets sample (col, row).
func (e *Engine) drawCrosshair(sampleCol, row int) {
	col := sampleCol * CellWidth
	if row < 0 || row >= e.height || col < 0 || col+1 >= e.width {
		return
	}
	left := e.next[row][col]
	left.Ch, left.Bold = '[', true
	left.FgR, left.FgG, left.FgB = 255, 60, 60
	right := left
	right.Ch = ']'
	e.next[row][col] = left
	e.next[row][col+1] = right
}

// flush diffs current vs next, emits only changed cells and swaps buffers.
func (e *Engine) flush() string {
	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			nc := e.next[y][x]
			if e.firstFrame || nc != e.current[y][x] {
				// Only emit cursor position if not consecutive
				if y != lastRow || x != lastCol {
					sb.WriteString(MoveTo(y+1, x+1))
				}
				WriteCellSGR(&sb, nc)
				lastRow = y
				lastCol = x + 1
			}
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	e.current, e.next = e.next, e.current
	e.firstFrame = false

	return sb.String()
}

// --- HUD ---

func (e *Engine) drawHUD(view View, centre float64) {
	hudY := e.height - HUDRows
	if hudY < 0 {
		return
	}

	bgR, bgG, bgB := uint8(15), uint8(18), uint8(30)

	// Row 0: separator — thin gradient line
	for x := 0; x < e.width; x++ {
		t := uint8(60 - x*40/max(e.width, 1))
		e.next[hudY][x] = Cell{
			Ch: '━', FgR: 40 + t, FgG: 70 + t, FgB: 90 + t,
			BgR: bgR, BgG: bgG, BgB: bgB,
		}
	}
	for row := 1; row < HUDRows; row++ {
		y := hudY + row
		if y >= e.height {
			break
		}
		for x := 0; x < e.width; x++ {
			e.next[y][x] = Cell{Ch: ' ', BgR: bgR, BgG: bgG, BgB: bgB}
		}
	}

	// Row 1: viewer, source and fractal parameters
	row1 := hudY + 1
	col := e.writeText(row1, 1, e.width, view.ViewerName, 120, 200, 255, bgR, bgG, bgB, true)
	col = e.writeText(row1, col, e.width, "  │  ", 60, 65, 85, bgR, bgG, bgB, false)
	col = e.writeText(row1, col, e.width, view.Source, 180, 180, 195, bgR, bgG, bgB, false)
	col = e.writeText(row1, col, e.width, "  │  ", 60, 65, 85, bgR, bgG, bgB, false)
	params := fmt.Sprintf("oct %d  freq %.4g  lac %.3g  pers %.2f",
		view.Octaves, view.Frequency, view.Lacunarity, view.Persistence)
	e.writeText(row1, col, e.width, params, 220, 220, 140, bgR, bgG, bgB, false)

	// Row 2: position and sampled value
	row2 := hudY + 2
	anim := ""
	if view.Animating {
		anim = "  ▶"
	}
	pos := fmt.Sprintf("x %.3f  y %.3f  z %.3f  zoom %.4g  value %+.4f  │  %s  │  %d online%s",
		view.CenterX, view.CenterY, view.Z, view.Step, centre, view.Palette, view.Viewers, anim)
	e.writeText(row2, 1, e.width, pos, 180, 180, 195, bgR, bgG, bgB, false)

	// Row 3: controls
	row3 := hudY + 3
	e.writeText(row3, 1, e.width,
		"←↑↓→/WASD Pan  +/- Zoom  o/O Oct  p/P Pers  l/L Lac  f/F Freq  z/Z Slice  Space Anim  C Palette  R Reset  Q Quit",
		130, 130, 145, bgR, bgG, bgB, false)
}

// writeText writes colored text into a bounded region [col, maxCol). Returns the next column position.
func (e *Engine) writeText(row, col, maxCol int, text string, fgR, fgG, fgB, bgR, bgG, bgB uint8, bold bool) int {
	for _, r := range text {
		if col >= maxCol || col >= e.width {
			break
		}
		if row >= 0 && row < e.height && col >= 0 {
			e.next[row][col] = Cell{Ch: r, FgR: fgR, FgG: fgG, FgB: fgB, BgR: bgR, BgG: bgG, BgB: bgB, Bold: bold}
		}
		col++
	}
	return col
}
