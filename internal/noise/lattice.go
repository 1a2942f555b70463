package noise

import "math"

// fade is the quintic ease curve 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad picks one of the 12 edge gradients from the low 4 bits of hash and
// dots it with (x, y, z).
func grad(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := y
	if h < 8 {
		u = x
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// Lattice evaluates a single octave of gradient noise at (x, y, z).
//
// Cell indices are signed floors and every table access is masked, so the
// field is continuous across zero and repeats every 256 units on each axis.
func Lattice(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	ix, iy, iz := int(fx), int(fy), int(fz)

	// Position inside the unit cube.
	x -= fx
	y -= fy
	z -= fz

	u := fade(x)
	v := fade(y)
	w := fade(z)

	// Hash the eight cube corners.
	a := lookup(ix) + iy
	aa := lookup(a) + iz
	ab := lookup(a+1) + iz
	b := lookup(ix+1) + iy
	ba := lookup(b) + iz
	bb := lookup(b+1) + iz

	return lerp(w,
		lerp(v,
			lerp(u, grad(lookup(aa), x, y, z),
				grad(lookup(ba), x-1, y, z)),
			lerp(u, grad(lookup(ab), x, y-1, z),
				grad(lookup(bb), x-1, y-1, z))),
		lerp(v,
			lerp(u, grad(lookup(aa+1), x, y, z-1),
				grad(lookup(ba+1), x-1, y, z-1)),
			lerp(u, grad(lookup(ab+1), x, y-1, z-1),
				grad(lookup(bb+1), x-1, y-1, z-1))))
}
