// Package sweep computes the earliest intersection time of a moving
// sphere against point, segment and plane primitives carried by a moving
// support frame.
//
// Every function takes the sphere as (p, v, r) and the primitive in the
// local coordinates of a frame positioned at o and translating with
// velocity w. Keeping the primitive data frame-local means the caller
// never has to transform the sphere into body space, which would require
// inverting the body's possibly non-linear path interpolation.
//
// A result of LARGE means no contact; a result t >= dt means no contact
// within the caller's remaining step.
package sweep

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// LARGE is the contact time reported when no contact occurs.
const LARGE = 1.0e+5

// Solve returns the smaller root t of |p + t·v| = r, i.e. of
// a·t² + b·t + c with a = v·v, b = 2·p·v, c = p·p - r². With two
// distinct roots it returns LARGE when the smaller one is negative, even
// if the larger one is not; with no real root it returns LARGE; a double
// root is returned as is, negative or not.
//
// When a == 0 the division is permitted to produce ±Inf or NaN: guarding
// the degenerate case caused low-velocity contacts to be missed, and
// callers already discard LARGE and anything beyond their step.
func Solve(p, v mgl32.Vec3, r float32) float32 {
	a := v.Dot(v)
	b := v.Dot(p) * 2
	c := p.Dot(p) - r*r
	d := b*b - 4*a*c

	switch {
	case d < 0:
		return LARGE
	case d > 0:
		s := sqrt(d)
		t0 := 0.5 * (-b - s) / a
		t1 := 0.5 * (-b + s) / a

		t := min(t0, t1)
		if t < 0 {
			return LARGE
		}
		return t
	default:
		return -b * 0.5 / a
	}
}

// Vertex sweeps the sphere against the point q in a frame at o moving
// along w. Only an approaching sphere can make contact. The returned
// point is in world space.
func Vertex(o, q, w, p, v mgl32.Vec3, r float32) (float32, mgl32.Vec3) {
	var hit mgl32.Vec3
	var t float32 = LARGE

	base := o.Add(q)
	rp := p.Sub(base)
	rv := v.Sub(w)

	if rp.Dot(rv) < 0 {
		t = Solve(rp, rv, r)

		if t < LARGE {
			hit = base.Add(w.Mul(t))
		}
	}
	return t, hit
}

// Edge sweeps the sphere against the segment from q along u in a frame
// at o moving along w. The components of the relative position and
// velocity parallel to u are removed before solving, and the contact is
// accepted only when its parameter s along the segment lies strictly
// inside (0, 1).
func Edge(o, q, u, w, p, v mgl32.Vec3, r float32) (float32, mgl32.Vec3) {
	d := p.Sub(o).Sub(q)
	e := v.Sub(w)

	du := d.Dot(u)
	eu := e.Dot(u)
	uu := u.Dot(u)

	rp := d.Add(u.Mul(-du / uu))
	rv := e.Add(u.Mul(-eu / uu))

	t := Solve(rp, rv, r)
	s := (du + eu*t) / uu

	if 0 <= t && t < LARGE && 0 < s && s < 1 {
		return t, o.Add(w.Mul(t)).Add(q).Add(u.Mul(s))
	}
	return LARGE, mgl32.Vec3{}
}

// Side sweeps the sphere against the plane x·n = d of a frame at o
// moving along w. A sphere already past the surface but with its center
// still in front reports an immediate contact at t = 0, which lets the
// caller re-project small penetrations away instead of tunnelling.
func Side(o, w, n mgl32.Vec3, d float32, p, v mgl32.Vec3, r float32) (float32, mgl32.Vec3) {
	var hit mgl32.Vec3
	var t float32 = LARGE

	vn := v.Dot(n)
	wn := w.Dot(n)

	if vn-wn <= 0 {
		on := o.Dot(n)
		pn := p.Dot(n)

		u := (r + d + on - pn) / (vn - wn)
		a := (d + on - pn) / (vn - wn)

		switch {
		case u >= 0:
			t = u
		case a >= 0:
			t = 0
		default:
			return t, hit
		}
		hit = p.Add(v.Mul(t)).Sub(n.Mul(r))
	}
	return t, hit
}

func sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}
