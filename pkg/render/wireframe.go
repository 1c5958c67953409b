package render

import (
	"github.com/taigrr/spinmesh/pkg/math3d"
)

// Palette indices of the axis gizmo.
const (
	AxisColorX = 1 // Red
	AxisColorY = 3 // Green
	AxisColorZ = 6 // Blue
)

// DrawLine3D projects a view-space segment and draws it depth-tested with
// color c. It reports false when either endpoint has no usable projection.
func (r *Rasterizer) DrawLine3D(a, b math3d.Vec3, c float64) bool {
	proj := r.Projection.Matrix(r.aspect())
	vp := r.Viewport()

	pa, okA := r.project(proj, a)
	pb, okB := r.project(proj, b)
	if !okA || !okB {
		return false
	}

	ax, ay := vp.Map(pa)
	bx, by := vp.Map(pb)
	r.fb.DrawLine(
		ScreenVertex{X: ax, Y: ay, Z: a.Z, Color: c},
		ScreenVertex{X: bx, Y: by, Z: b.Z, Color: c},
	)
	return true
}

// DrawAxes draws the object's X, Y and Z axes from its origin at the given
// pose. Call it after Render so the axes are depth-tested against the mesh.
func (r *Rasterizer) DrawAxes(pose Pose, length float64) {
	m := pose.Matrix()
	origin := m.MulVec3(math3d.V3(0, 0, 0))
	r.DrawLine3D(origin, m.MulVec3(math3d.V3(length, 0, 0)), AxisColorX)
	r.DrawLine3D(origin, m.MulVec3(math3d.V3(0, length, 0)), AxisColorY)
	r.DrawLine3D(origin, m.MulVec3(math3d.V3(0, 0, length)), AxisColorZ)
}
