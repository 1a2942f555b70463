package noise

import "math"

// Plane is a rectangular grid of sample points on the slice z = Z.
type Plane struct {
	OriginX, OriginY float64
	Z                float64
	Step             float64
	Width, Height    int
}

// SamplePlane evaluates n at every point of pl. The result is indexed
// [row][col], row growing along +y.
func SamplePlane(n Noise, pl Plane) [][]float64 {
	rows := make([][]float64, pl.Height)
	for r := 0; r < pl.Height; r++ {
		rows[r] = make([]float64, pl.Width)
		y := pl.OriginY + float64(r)*pl.Step
		for c := 0; c < pl.Width; c++ {
			rows[r][c] = n.GetValue(pl.OriginX+float64(c)*pl.Step, y, pl.Z)
		}
	}
	return rows
}

// Stats summarizes a set of samples.
type Stats struct {
	Count    int
	Min      float64
	Max      float64
	Mean     float64
	Variance float64 // population variance
}

// Summarize computes Stats over values. An empty input gives a zero Stats.
func Summarize(values [][]float64) Stats {
	var s Stats
	s.Min = math.Inf(1)
	s.Max = math.Inf(-1)
	var sum float64
	for _, row := range values {
		for _, v := range row {
			s.Count++
			sum += v
			s.Min = math.Min(s.Min, v)
			s.Max = math.Max(s.Max, v)
		}
	}
	if s.Count == 0 {
		return Stats{}
	}
	s.Mean = sum / float64(s.Count)
	for _, row := range values {
		for _, v := range row {
			d := v - s.Mean
			s.Variance += d * d
		}
	}
	s.Variance /= float64(s.Count)
	return s
}
