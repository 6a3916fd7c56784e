package marble

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Jump containment states reported by JumpTest.
const (
	JUMP_OUTSIDE = 0
	JUMP_INSIDE  = 1
	JUMP_BORDER  = 2
)

// flatDist is the horizontal distance between a ball and a cylinder
// axis.
func flatDist(p, c mgl32.Vec3) float32 {
	return mgl32.Vec2{p.X() - c.X(), p.Z() - c.Z()}.Len()
}

// ItemTest returns the first untaken item ball 0 touches, along with the
// item position, or nil.
func (w *World) ItemTest(itemR float32) (*Item, mgl32.Vec3) {
	u := &w.Balls[0]

	for i := range w.Items {
		h := &w.Items[i]

		if h.T != ITEM_NONE && u.P.Sub(h.P).Len() < u.R+itemR {
			return h, h.P
		}
	}
	return nil, mgl32.Vec3{}
}

// GoalTest returns the first goal cylinder entirely containing ball ui
// horizontally, along with the goal position, or nil.
func (w *World) GoalTest(ui int) (*Goal, mgl32.Vec3) {
	u := &w.Balls[ui]

	for i := range w.Goals {
		z := &w.Goals[i]

		if flatDist(u.P, z.P) < z.R-u.R &&
			u.P.Y() >= z.P.Y() &&
			u.P.Y() < z.P.Y()+GOAL_HEIGHT/2 {
			return z, z.P
		}
	}
	return nil, mgl32.Vec3{}
}

// JumpTest reports whether ball ui is inside a jump. It returns
// JUMP_INSIDE with the teleport destination when the ball is entirely
// within a jump cylinder, JUMP_BORDER when its center is inside one but
// the ball is not entirely within it, and JUMP_OUTSIDE otherwise. The destination preserves the ball's offset
// from the jump center.
func (w *World) JumpTest(ui int) (int, mgl32.Vec3) {
	u := &w.Balls[ui]
	res := JUMP_OUTSIDE

	for i := range w.Jumps {
		j := &w.Jumps[i]

		l := flatDist(u.P, j.P) - j.R

		if l < 0 &&
			u.P.Y() >= j.P.Y() &&
			u.P.Y() < j.P.Y()+JUMP_HEIGHT/2 {
			if l < -u.R {
				return JUMP_INSIDE, j.Q.Add(u.P.Sub(j.P))
			}
			res = JUMP_BORDER
		}
	}
	return res, mgl32.Vec3{}
}

// SwitchTest processes entry and exit events of ball ui against every
// switch. It returns true iff a visible switch toggled during this call.
func (w *World) SwitchTest(ui int) bool {
	u := &w.Balls[ui]
	res := false

	for i := range w.Switches {
		x := &w.Switches[i]

		// A timed switch locked away from its default state cannot be
		// toggled again until the countdown reverts it.
		if x.T0 != 0 && x.F != x.F0 {
			continue
		}

		l := flatDist(u.P, x.P) - x.R

		if l < u.R &&
			u.P.Y() >= x.P.Y() &&
			u.P.Y() < x.P.Y()+SWCH_HEIGHT/2 {
			if !x.E && l < -u.R {
				// The ball enters.

				if x.T0 == 0 {
					x.E = true
				}

				// Toggle the state, update the path cycle.

				x.F = !x.F
				w.setPathCycle(x.Pi, x.F)

				// It toggled to the non-default state, start the timer.

				if x.F != x.F0 {
					x.T = x.T0
				}

				if !x.I {
					res = true
				}
			}
		} else if x.E {
			// The ball exits.
			x.E = false
		}
	}
	return res
}
