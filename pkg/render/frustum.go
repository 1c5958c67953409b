package render

import (
	"github.com/taigrr/spinmesh/pkg/math3d"
)

// Plane represents a plane in 3D space using the equation Ax + By + Cz + D = 0
// where (A, B, C) is the normal.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize scales the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = inside (same side as normal).
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum holds the six planes of a view volume, normals pointing inward.
type Frustum struct {
	Planes [6]Plane
}

// Frustum plane indices.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustum extracts the view volume of a projection matrix in view space.
// The matrix must map depth to [0, 1]·w, as Perspective and Orthographic
// do, so the near plane is row 2 on its own.
func NewFrustum(m math3d.Mat4) Frustum {
	// For column-major m, row i element j is m[i+j*4].
	row := func(i int) (math3d.Vec3, float64) {
		return math3d.V3(m[i], m[i+4], m[i+8]), m[i+12]
	}
	r0, d0 := row(0)
	r1, d1 := row(1)
	r2, d2 := row(2)
	r3, d3 := row(3)

	var f Frustum
	f.Planes[FrustumLeft] = Plane{Normal: r3.Add(r0), D: d3 + d0}
	f.Planes[FrustumRight] = Plane{Normal: r3.Sub(r0), D: d3 - d0}
	f.Planes[FrustumBottom] = Plane{Normal: r3.Add(r1), D: d3 + d1}
	f.Planes[FrustumTop] = Plane{Normal: r3.Sub(r1), D: d3 - d1}
	f.Planes[FrustumNear] = Plane{Normal: r2, D: d2}
	f.Planes[FrustumFar] = Plane{Normal: r3.Sub(r2), D: d3 - d2}

	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

// ContainsPoint reports whether p lies inside every plane.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether any part of the sphere may be inside the
// frustum. It can report true for spheres just outside a corner.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}

// Bounded is implemented by meshes that know their model-space bounding
// box. The rasterizer uses it to skip meshes entirely outside the view
// volume; triangles that are partly visible are never clipped.
type Bounded interface {
	GetBounds() (min, max math3d.Vec3)
}

// boundingSphere returns the sphere around a box.
func boundingSphere(min, max math3d.Vec3) (center math3d.Vec3, radius float64) {
	center = min.Add(max).Scale(0.5)
	return center, max.Sub(min).Len() * 0.5
}
