package marble

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// BOUNCE_K scales the velocity reflection at impact. The elastic
	// value would be 2.0; 1.7 leaves roughly 0.7 restitution and visibly
	// lively but damped bounces. Do not "correct" it.
	BOUNCE_K = 1.7

	// CONTACT_CAP bounds contact resolutions within a single step.
	CONTACT_CAP = 16

	// TOUCH_T is the probe threshold below which the ball counts as
	// resting on a surface. Tuning constant.
	TOUCH_T = 0.0005

	// REST_ALIGN is the cosine threshold between the contact direction
	// and gravity for rolling friction to apply. Tuning constant.
	REST_ALIGN = 0.999
)

// Step advances ball ui through dt seconds under gravity g, resolving
// every contact on the way, and returns the largest normal closing speed
// of any bounce, for use as a sound amplitude. When m is non-nil the
// surface friction logic runs, and *m is incremented on every call that
// finds the ball at rest; Step never resets it.
//
// A ball pinched between two approaching solids could produce contacts
// forever; after CONTACT_CAP resolutions the remainder of the step is
// abandoned. Better to do something physically impossible than to lock
// up.
func (w *World) Step(g mgl32.Vec3, dt float32, ui int, m *int) float32 {
	var b float32
	tt := dt

	if ui >= len(w.Balls) {
		return b
	}
	u := &w.Balls[ui]

	// If the ball is in contact with a surface, apply friction.

	a := u.V
	v := u.V
	u.V = g

	accel := true

	if m != nil {
		if t, hit, sv := w.test(tt, u); t < TOUCH_T {
			u.V = v
			r := hit.Sub(u.P)

			if r.Dot(g)/(r.Len()*g.Len()) > REST_ALIGN {
				accel = false

				if e := u.V.Len() - dt; e > 0 {
					// Scale the linear velocity.
					u.V = u.V.Normalize().Mul(e)

					// Scale the angular velocity.
					slip := sv.Sub(u.V)
					u.W = slip.Cross(r).Mul(-1 / (u.R * u.R))
				} else {
					// Friction has brought the ball to a stop.
					u.V = mgl32.Vec3{}
					(*m)++
				}
			}
		}
	}
	if accel {
		u.V = v.Add(g.Mul(tt))
	}

	// Resolve contacts until the slice, or the iteration cap, runs out.

	for c := CONTACT_CAP; c > 0 && tt > 0; c-- {
		nt, hit, sv := w.test(tt, u)
		if nt >= tt {
			break
		}

		w.bodyStep(nt)
		w.switchStep(nt)
		w.ballStep(nt)

		tt -= nt

		if d := bounce(u, hit, sv); d > b {
			b = d
		}
	}

	w.bodyStep(tt)
	w.switchStep(tt)
	w.ballStep(tt)

	// Apply the ball's net acceleration to the pendulum.

	u.Pendulum(u.V.Sub(a), g, dt)

	return b
}

// ballStep advances every ball along its velocity and spins its render
// basis.
func (w *World) ballStep(dt float32) {
	for i := range w.Balls {
		u := &w.Balls[i]

		u.P = u.P.Add(u.V.Mul(dt))
		u.E.Rotate(u.W, dt)
	}
}

// bounce reflects the ball off the contact point q, where sv is the
// velocity of the impacted surface. The ball is re-projected onto the
// contact normal to remove residual penetration. Returns the magnitude
// of the normal component of the closing velocity.
func bounce(u *Ball, q, sv mgl32.Vec3) float32 {
	// Find the normal of the impact.

	r := u.P.Sub(q)
	d := u.V.Sub(sv)
	n := r.Normalize()

	// Find the new angular velocity.

	u.W = d.Cross(r).Mul(-1 / (u.R * u.R))

	// Find the new linear velocity.

	vn := u.V.Dot(n)
	wn := sv.Dot(n)

	u.V = u.V.Add(n.Mul(BOUNCE_K * (wn - vn)))

	u.P = q.Add(n.Mul(u.R))

	return mgl32.Abs(n.Dot(d))
}
