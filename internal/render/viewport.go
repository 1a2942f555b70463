package render

// Viewport maps screen cells onto a rectangle of noise space.
type Viewport struct {
	OriginX, OriginY float64 // noise coordinate of the top-left sample
	Step             float64 // noise units per sample
	ViewW, ViewH     int     // viewport size in samples
}

// NewViewport centres the view on (centerX, centerY). hudRows reserves
// space for the HUD at the bottom.
func NewViewport(centerX, centerY, step float64, termW, termH, hudRows int) Viewport {
	viewW := termW / CellWidth
	viewH := termH - hudRows
	if viewW < 0 {
		viewW = 0
	}
	if viewH < 0 {
		viewH = 0
	}
	return Viewport{
		OriginX: centerX - float64(viewW/2)*step,
		OriginY: centerY - float64(viewH/2)*step,
		Step:    step,
		ViewW:   viewW,
		ViewH:   viewH,
	}
}

// SampleAt returns the noise-space coordinate of sample (col, row).
func (v Viewport) SampleAt(col, row int) (float64, float64) {
	return v.OriginX + float64(col)*v.Step, v.OriginY + float64(row)*v.Step
}

// Centre returns the sample index under the view centre. ok is false for
// an empty viewport.
func (v Viewport) Centre() (col, row int, ok bool) {
	if v.ViewW <= 0 || v.ViewH <= 0 {
		return -1, -1, false
	}
	return v.ViewW / 2, v.ViewH / 2, true
}
