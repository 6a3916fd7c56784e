package marble

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Lump flags.
const (
	// L_DETAIL marks a non-solid, decorative lump skipped by collision.
	L_DETAIL = 1 << 0
)

// Item types. ITEM_NONE marks an item already taken; such items are
// invisible to ItemTest.
const (
	ITEM_NONE int32 = iota
	ITEM_COIN
	ITEM_GROW
	ITEM_SHRINK
)

// Heights of the goal, jump and switch cylinders. These must match the
// values used by the host game.
const (
	GOAL_HEIGHT = 3.0
	JUMP_HEIGHT = 2.0
	SWCH_HEIGHT = 2.0
)

// Vert is a collision vertex.
type Vert struct {
	P mgl32.Vec3
}

// Edge is a collision segment joining two vertex indices.
type Edge struct {
	Vi, Vj int32
}

// Side is the plane half-space x·N <= D. N must be unit length. The
// interior of a convex lump is the intersection of its sides' interiors.
type Side struct {
	N mgl32.Vec3
	D float32
}

// Lump is a convex cell. The ranges index into the world index pool and
// enumerate the sides bounding the cell plus the incident edges and
// verts, so a sphere can be swept against every feature.
type Lump struct {
	Fl     uint32
	V0, Vc int32
	E0, Ec int32
	S0, Sc int32
}

// Node is a BSP node. Si selects the splitting side, Ni and Nj the front
// and back children (-1 for none). The node owns the lump range
// [L0, L0+Lc) tested at this level.
type Node struct {
	Si     int32
	Ni, Nj int32
	L0, Lc int32
}

// Path is a keyframe in a cyclic graph. A body on this path animates
// toward the successor path Pi over T seconds, with ease-in/ease-out
// interpolation when S is set. F gates motion along the segment.
//
// Following Pi from any reachable path eventually cycles.
type Path struct {
	P  mgl32.Vec3
	T  float32
	Pi int32
	F  bool
	S  bool
}

// Body is a piece of rigid level geometry: a BSP sub-root, optionally
// animated along a path cycle. Its side, edge and vert data stay in
// body-local coordinates; the current path position acts as the frame
// origin.
type Body struct {
	Ni int32   // BSP sub-root
	Pi int32   // current path, -1 for static bodies
	T  float32 // elapsed time on the current path segment
}

// Ball is the rolling sphere the simulation revolves around. Both bases
// stay orthonormal up to numerical drift, which basis rotation corrects.
type Ball struct {
	P mgl32.Vec3 // position
	V mgl32.Vec3 // linear velocity
	R float32    // radius

	W mgl32.Vec3 // spin angular velocity, for rolling
	E Basis      // render basis

	PW mgl32.Vec3 // pendulum angular velocity
	PE Basis      // pendulum basis
}

// Item is a pickup. Inert to physics; the caller flips T to ITEM_NONE
// after collecting it.
type Item struct {
	P mgl32.Vec3
	T int32
}

// Goal is a cylindrical target volume of height GOAL_HEIGHT.
type Goal struct {
	P mgl32.Vec3
	R float32
}

// Jump is a teleporter cylinder at P; a fully contained ball is carried
// to Q, preserving its offset from P.
type Jump struct {
	P mgl32.Vec3
	Q mgl32.Vec3
	R float32
}

// Switch is a cylinder that toggles the enable flag of the path cycle
// rooted at Pi when the ball enters it. A non-zero default countdown T0
// arms a timer that reverts the cycle to F0 when it expires.
type Switch struct {
	P  mgl32.Vec3
	R  float32
	Pi int32

	T0, T float32 // default and current countdown
	F0, F bool    // default and current path flag
	I     bool    // invisible
	E     bool    // ball entered an untimed switch and has not left it
}

// World owns every entity of a loaded level, stored in flat arrays
// addressed by stable integer indices. Cross-references are indices and
// -1 means "none". The loader assembles a World once; afterwards only
// the simulation mutates it.
type World struct {
	Verts    []Vert
	Edges    []Edge
	Sides    []Side
	Lumps    []Lump
	Nodes    []Node
	Paths    []Path
	Bodies   []Body
	Balls    []Ball
	Items    []Item
	Goals    []Goal
	Jumps    []Jump
	Switches []Switch

	// Indices is the shared pool lumps reference their verts, edges and
	// sides through.
	Indices []int32
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{}
}
