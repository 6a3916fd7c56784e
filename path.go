package marble

import (
	"github.com/go-gl/mathgl/mgl32"
)

// erp is the Hermite ease with zero endpoint derivatives.
func erp(t float32) float32 {
	return 3*t*t - 2*t*t*t
}

// derp is the time derivative of erp.
func derp(t float32) float32 {
	return 6*t - 6*t*t
}

// BodyPos returns the instantaneous position of the body along its path
// segment. Bodies without a path sit at the origin.
func (w *World) BodyPos(b *Body) mgl32.Vec3 {
	if b.Pi < 0 {
		return mgl32.Vec3{}
	}

	pp := &w.Paths[b.Pi]
	pq := &w.Paths[pp.Pi]

	d := pq.P.Sub(pp.P)
	if pp.S {
		return pp.P.Add(d.Mul(erp(b.T / pp.T)))
	}
	return pp.P.Add(d.Mul(b.T / pp.T))
}

// BodyVel returns the instantaneous velocity of the body along its path
// segment. A disabled path yields zero velocity but unchanged position,
// so a disabled body stands still wherever it is in its cycle.
func (w *World) BodyVel(b *Body) mgl32.Vec3 {
	if b.Pi < 0 || !w.Paths[b.Pi].F {
		return mgl32.Vec3{}
	}

	pp := &w.Paths[b.Pi]
	pq := &w.Paths[pp.Pi]

	v := pq.P.Sub(pp.P).Mul(1 / pp.T)
	if pp.S {
		v = v.Mul(derp(b.T / pp.T))
	}
	return v
}

// bodyStep advances every body on an enabled path, wrapping onto the
// successor segment when the current one completes.
func (w *World) bodyStep(dt float32) {
	for i := range w.Bodies {
		b := &w.Bodies[i]

		if b.Pi >= 0 && w.Paths[b.Pi].F {
			b.T += dt

			if b.T >= w.Paths[b.Pi].T {
				b.Pi = w.Paths[b.Pi].Pi
				b.T = 0
			}
		}
	}
}

// switchStep advances every armed switch countdown. An expiring timer
// resets the whole path cycle, and the switch itself, to the default
// state.
func (w *World) switchStep(dt float32) {
	for i := range w.Switches {
		x := &w.Switches[i]

		if x.T > 0 {
			x.T -= dt

			if x.T <= 0 {
				x.T = 0
				w.setPathCycle(x.Pi, x.F0)
				x.F = x.F0
			}
		}
	}
}

// setPathCycle writes f to every path in the cycle rooted at pi. The
// tortoise-and-hare termination tolerates arbitrary cycle shapes without
// a visited set.
func (w *World) setPathCycle(pi int32, f bool) {
	pj := pi

	for {
		w.Paths[pi].F = f
		w.Paths[pj].F = f

		pi = w.Paths[pi].Pi
		pj = w.Paths[pj].Pi
		pj = w.Paths[pj].Pi

		if pi == pj {
			break
		}
	}
}
