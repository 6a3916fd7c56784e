package marble

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Basis is a right-handed orthonormal frame stored as three row vectors.
type Basis [3]mgl32.Vec3

// NewBasis returns the identity basis.
func NewBasis() Basis {
	return Basis{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Rotate integrates the rotation of the basis under angular velocity w
// through dt, then re-orthonormalizes it with three cross products. The
// re-orthonormalization keeps drift below single-precision noise across
// thousands of steps. A zero w leaves the basis untouched, without
// re-orthonormalizing it.
func (e *Basis) Rotate(w mgl32.Vec3, dt float32) {
	if w.Len() > 0 {
		m := mgl32.HomogRotate3D(w.Len()*dt, w.Normalize())

		var f Basis
		for i := range f {
			f[i] = m.Mul4x1(e[i].Vec4(0)).Vec3()
		}

		e[2] = f[0].Cross(f[1]).Normalize()
		e[1] = f[2].Cross(f[0]).Normalize()
		e[0] = f[1].Cross(f[2]).Normalize()
	}
}
