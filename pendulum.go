package marble

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	PEND_M  = 5.0   // pendulum bob mass
	PEND_KA = 0.5   // linear coupling to ball acceleration
	PEND_KD = 0.995 // angular damping per step
)

// Pendulum advances the auxiliary frame hanging from the ball's center,
// driven by the ball's net velocity change a over the step and gravity
// g. The frame only drives rendering, but replays depend on its exact
// arithmetic, so the order of operations is fixed.
func (u *Ball) Pendulum(a, g mgl32.Vec3, dt float32) {
	if dt <= 0 {
		return
	}

	// Find the total force over dt.

	acc := a.Mul(PEND_KA).Sub(g.Mul(dt))
	f := acc.Mul(PEND_M / dt)

	// Find the position of the bob relative to the ball center.

	r := u.PE[1].Mul(-u.R)

	// Find the torque on the pendulum.

	var t mgl32.Vec3
	if mgl32.Abs(r.Dot(f)) > 0 {
		t = f.Cross(r)
	}

	// Apply the torque and dampen the angular velocity.

	u.PW = u.PW.Add(t.Mul(dt)).Mul(PEND_KD)

	// Apply the angular velocity to the pendulum basis.

	u.PE.Rotate(u.PW, dt)

	// Apply a torque turning the pendulum toward the ball velocity.

	v := u.V.Add(u.PE[1].Mul(u.V.Dot(u.PE[1])))
	y := v.Cross(u.PE[2])
	y = u.PE[1].Mul(2 * y.Dot(u.PE[1]))

	u.PE.Rotate(y, dt)
}
