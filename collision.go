package marble

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/akmonengine/marble/sweep"
)

// vertTest sweeps the ball against one vert of a body frame at fo moving
// along fv.
func (w *World) vertTest(u *Ball, vp *Vert, fo, fv mgl32.Vec3) (float32, mgl32.Vec3) {
	return sweep.Vertex(fo, vp.P, fv, u.P, u.V, u.R)
}

// edgeTest sweeps the ball against one edge of a body frame at fo moving
// along fv.
func (w *World) edgeTest(u *Ball, ep *Edge, fo, fv mgl32.Vec3) (float32, mgl32.Vec3) {
	q := w.Verts[ep.Vi].P
	d := w.Verts[ep.Vj].P.Sub(q)

	return sweep.Edge(fo, q, d, fv, u.P, u.V, u.R)
}

// sideTest sweeps the ball against one side of a lump, clipped to the
// lump's feasible region: a contact on the plane's infinite extension
// outside the convex cell is rejected.
func (w *World) sideTest(dt float32, u *Ball, lp *Lump, si int32, fo, fv mgl32.Vec3) (float32, mgl32.Vec3) {
	sp := &w.Sides[si]

	t, hit := sweep.Side(fo, fv, sp.N, sp.D, u.P, u.V, u.R)

	if t < dt {
		for i := int32(0); i < lp.Sc; i++ {
			sq := &w.Sides[w.Indices[lp.S0+i]]

			if sq != sp &&
				hit.Dot(sq.N)-fo.Dot(sq.N)-fv.Dot(sq.N)*t > sq.D {
				return sweep.LARGE, hit
			}
		}
	}
	return t, hit
}

// lumpTest returns the earliest contact of the ball with one convex
// lump, or dt when none occurs within the step. Verts and edges are
// tested in order before sides so ties break identically on every run.
// The degenerate zero-radius ball touches only planes.
func (w *World) lumpTest(dt float32, u *Ball, lp *Lump, fo, fv mgl32.Vec3) (float32, mgl32.Vec3) {
	t := dt
	var hit mgl32.Vec3

	// Short circuit a non-solid lump.
	if lp.Fl&L_DETAIL != 0 {
		return t, hit
	}

	if u.R > 0 {
		for i := int32(0); i < lp.Vc; i++ {
			vp := &w.Verts[w.Indices[lp.V0+i]]

			if tu, q := w.vertTest(u, vp, fo, fv); tu < t {
				t, hit = tu, q
			}
		}
		for i := int32(0); i < lp.Ec; i++ {
			ep := &w.Edges[w.Indices[lp.E0+i]]

			if tu, q := w.edgeTest(u, ep, fo, fv); tu < t {
				t, hit = tu, q
			}
		}
	}

	for i := int32(0); i < lp.Sc; i++ {
		if tu, q := w.sideTest(t, u, lp, w.Indices[lp.S0+i], fo, fv); tu < t {
			t, hit = tu, q
		}
	}
	return t, hit
}

// foreTest reports whether the ball is, now or after dt, not strictly
// behind the node's splitting plane, counting the radius as clearance.
func foreTest(dt float32, u *Ball, sp *Side, fo mgl32.Vec3) bool {
	q := u.P.Sub(fo)

	if q.Dot(sp.N)-sp.D+u.R >= 0 {
		return true
	}

	q = q.Add(u.V.Mul(dt))

	return q.Dot(sp.N)-sp.D+u.R >= 0
}

// backTest mirrors foreTest for the back half-space.
func backTest(dt float32, u *Ball, sp *Side, fo mgl32.Vec3) bool {
	q := u.P.Sub(fo)

	if q.Dot(sp.N)-sp.D-u.R <= 0 {
		return true
	}

	q = q.Add(u.V.Mul(dt))

	return q.Dot(sp.N)-sp.D-u.R <= 0
}

// nodeTest recursively finds the earliest contact under a BSP node. Both
// children may be visited when the ball straddles the splitting plane.
func (w *World) nodeTest(dt float32, u *Ball, np *Node, fo, fv mgl32.Vec3) (float32, mgl32.Vec3) {
	t := dt
	var hit mgl32.Vec3

	for i := int32(0); i < np.Lc; i++ {
		lp := &w.Lumps[np.L0+i]

		if tu, q := w.lumpTest(t, u, lp, fo, fv); tu < t {
			t, hit = tu, q
		}
	}

	if np.Ni >= 0 && foreTest(t, u, &w.Sides[np.Si], fo) {
		if tu, q := w.nodeTest(t, u, &w.Nodes[np.Ni], fo, fv); tu < t {
			t, hit = tu, q
		}
	}

	if np.Nj >= 0 && backTest(t, u, &w.Sides[np.Si], fo) {
		if tu, q := w.nodeTest(t, u, &w.Nodes[np.Nj], fo, fv); tu < t {
			t, hit = tu, q
		}
	}

	return t, hit
}

// bodyTest finds the earliest contact of the ball with one body, using
// the body's current path position and velocity as the moving frame.
func (w *World) bodyTest(dt float32, u *Ball, b *Body) (float32, mgl32.Vec3, mgl32.Vec3) {
	fo := w.BodyPos(b)
	fv := w.BodyVel(b)

	t, hit := w.nodeTest(dt, u, &w.Nodes[b.Ni], fo, fv)

	return t, hit, fv
}

// test returns the earliest contact of the ball with any body within dt,
// the contact point, and the velocity of the impacted surface.
func (w *World) test(dt float32, u *Ball) (float32, mgl32.Vec3, mgl32.Vec3) {
	t := dt
	var hit, vel mgl32.Vec3

	for i := range w.Bodies {
		if tu, q, v := w.bodyTest(t, u, &w.Bodies[i]); tu < t {
			t, hit, vel = tu, q, v
		}
	}
	return t, hit, vel
}
