package marble

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Assembly helpers. The level loader that produces full worlds lives
// outside this module; these cover tests, tools and examples.

// AddBall appends a ball at rest with identity bases and returns its
// index.
func (w *World) AddBall(p mgl32.Vec3, r float32) int {
	w.Balls = append(w.Balls, Ball{P: p, R: r, E: NewBasis(), PE: NewBasis()})
	return len(w.Balls) - 1
}

// AddPath appends an enabled path keyframe and returns its index. The
// successor link pi may point at a path added later; the caller patches
// the cycle once it is complete.
func (w *World) AddPath(p mgl32.Vec3, t float32, pi int32, smooth bool) int32 {
	w.Paths = append(w.Paths, Path{P: p, T: t, Pi: pi, F: true, S: smooth})
	return int32(len(w.Paths) - 1)
}

// AddItem appends an item and returns its index.
func (w *World) AddItem(p mgl32.Vec3, t int32) int {
	w.Items = append(w.Items, Item{P: p, T: t})
	return len(w.Items) - 1
}

// AddGoal appends a goal cylinder and returns its index.
func (w *World) AddGoal(p mgl32.Vec3, r float32) int {
	w.Goals = append(w.Goals, Goal{P: p, R: r})
	return len(w.Goals) - 1
}

// AddJump appends a jump cylinder at p teleporting to q and returns its
// index.
func (w *World) AddJump(p, q mgl32.Vec3, r float32) int {
	w.Jumps = append(w.Jumps, Jump{P: p, Q: q, R: r})
	return len(w.Jumps) - 1
}

// AddSwitch appends a switch in its default state and returns its index.
func (w *World) AddSwitch(p mgl32.Vec3, r float32, pi int32, t0 float32, f0, invisible bool) int {
	w.Switches = append(w.Switches, Switch{
		P: p, R: r, Pi: pi,
		T0: t0,
		F0: f0, F: f0,
		I: invisible,
	})
	return len(w.Switches) - 1
}

// AddPlaneBody adds a body holding a single unbounded half-space lump,
// useful as a floor or wall, with path head pi (-1 for static bodies).
// The plane is x·n <= d in world coordinates when pi is -1, in
// body-local coordinates otherwise.
func (w *World) AddPlaneBody(n mgl32.Vec3, d float32, pi int32) int {
	si := int32(len(w.Sides))
	w.Sides = append(w.Sides, Side{N: n, D: d})

	i0 := int32(len(w.Indices))
	w.Indices = append(w.Indices, si)

	li := int32(len(w.Lumps))
	w.Lumps = append(w.Lumps, Lump{S0: i0, Sc: 1})

	ni := int32(len(w.Nodes))
	w.Nodes = append(w.Nodes, Node{Si: si, Ni: -1, Nj: -1, L0: li, Lc: 1})

	w.Bodies = append(w.Bodies, Body{Ni: ni, Pi: pi})
	return len(w.Bodies) - 1
}

// boxCorners enumerates the sign pattern of a box's eight corners.
var boxCorners = [8]mgl32.Vec3{
	{-1, -1, -1}, {+1, -1, -1}, {-1, +1, -1}, {+1, +1, -1},
	{-1, -1, +1}, {+1, -1, +1}, {-1, +1, +1}, {+1, +1, +1},
}

// boxEdges joins corner indices along the twelve box edges.
var boxEdges = [12][2]int32{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// AddBoxBody adds a body holding one solid axis-aligned box lump with
// center c and half-extents h, and path head pi (-1 for static bodies).
// Moving bodies should be built in body-local coordinates. Returns the
// body index.
func (w *World) AddBoxBody(c, h mgl32.Vec3, pi int32) int {
	v0 := int32(len(w.Verts))
	for _, s := range boxCorners {
		w.Verts = append(w.Verts, Vert{P: c.Add(mgl32.Vec3{
			s.X() * h.X(),
			s.Y() * h.Y(),
			s.Z() * h.Z(),
		})})
	}

	e0 := int32(len(w.Edges))
	for _, e := range boxEdges {
		w.Edges = append(w.Edges, Edge{Vi: v0 + e[0], Vj: v0 + e[1]})
	}

	s0 := int32(len(w.Sides))
	w.Sides = append(w.Sides,
		Side{N: mgl32.Vec3{+1, 0, 0}, D: c.X() + h.X()},
		Side{N: mgl32.Vec3{-1, 0, 0}, D: -(c.X() - h.X())},
		Side{N: mgl32.Vec3{0, +1, 0}, D: c.Y() + h.Y()},
		Side{N: mgl32.Vec3{0, -1, 0}, D: -(c.Y() - h.Y())},
		Side{N: mgl32.Vec3{0, 0, +1}, D: c.Z() + h.Z()},
		Side{N: mgl32.Vec3{0, 0, -1}, D: -(c.Z() - h.Z())},
	)

	i0 := int32(len(w.Indices))
	for i := int32(0); i < 8; i++ {
		w.Indices = append(w.Indices, v0+i)
	}
	for i := int32(0); i < 12; i++ {
		w.Indices = append(w.Indices, e0+i)
	}
	for i := int32(0); i < 6; i++ {
		w.Indices = append(w.Indices, s0+i)
	}

	li := int32(len(w.Lumps))
	w.Lumps = append(w.Lumps, Lump{
		V0: i0, Vc: 8,
		E0: i0 + 8, Ec: 12,
		S0: i0 + 20, Sc: 6,
	})

	ni := int32(len(w.Nodes))
	w.Nodes = append(w.Nodes, Node{Si: s0, Ni: -1, Nj: -1, L0: li, Lc: 1})

	w.Bodies = append(w.Bodies, Body{Ni: ni, Pi: pi})
	return len(w.Bodies) - 1
}
