// Package models provides the triangle meshes spinmesh renders and the
// loaders that read them.
package models

import (
	"math"

	"github.com/taigrr/spinmesh/pkg/math3d"
)

// Vertex is a position plus the scalar color attribute: a palette index for
// unshaded meshes, a base intensity in [0, 1] for shaded ones.
type Vertex struct {
	Position math3d.Vec3
	Color    float64
}

// Triangle owns its three vertices; nothing is shared between triangles.
// Vertex order is the winding: (v1-v0)x(v2-v0) points out of the surface.
type Triangle struct {
	V [3]Vertex
}

// Mesh is an ordered list of triangles. After loading it is treated as
// immutable source geometry.
type Mesh struct {
	Name      string
	Format    Format
	Triangles []Triangle

	// Viewport size suggested by the input, zero when it has none.
	Width, Height int

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string, format Format) *Mesh {
	return &Mesh{
		Name:   name,
		Format: format,
	}
}

// Add appends a triangle.
func (m *Mesh) Add(t Triangle) {
	m.Triangles = append(m.Triangles, t)
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Triangles) == 0 {
		return
	}

	m.BoundsMin = m.Triangles[0].V[0].Position
	m.BoundsMax = m.BoundsMin
	for _, t := range m.Triangles {
		for _, v := range t.V {
			m.BoundsMin = m.BoundsMin.Min(v.Position)
			m.BoundsMax = m.BoundsMax.Max(v.Position)
		}
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Triangle returns the positions and colors of triangle i.
// Implements render.MeshRenderer.
func (m *Mesh) Triangle(i int) (v [3]math3d.Vec3, c [3]float64) {
	t := &m.Triangles[i]
	for k := range 3 {
		v[k] = t.V[k].Position
		c[k] = t.V[k].Color
	}
	return v, c
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Triangles {
		for k := range 3 {
			p := &m.Triangles[i].V[k].Position
			*p = mat.MulVec3(*p)
		}
	}
	m.CalculateBounds()
}

// Normalize centers the mesh on the origin and scales it so its largest
// dimension equals extent.
func (m *Mesh) Normalize(extent float64) {
	m.CalculateBounds()
	center := m.Center()
	size := m.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim <= 0 {
		m.Transform(math3d.Translate(center.Negate()))
		return
	}
	s := extent / maxDim
	m.Transform(math3d.Scale(math3d.V3(s, s, s)).Mul(math3d.Translate(center.Negate())))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := *m
	clone.Triangles = make([]Triangle, len(m.Triangles))
	copy(clone.Triangles, m.Triangles)
	return &clone
}

// GetBounds returns the axis-aligned bounding box.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}

// AsShaded returns a copy of the mesh with every vertex at full base
// intensity, so palette-indexed geometry can be lit.
func (m *Mesh) AsShaded() *Mesh {
	clone := m.Clone()
	clone.Format = FormatShaded
	for i := range clone.Triangles {
		for k := range 3 {
			clone.Triangles[i].V[k].Color = 1
		}
	}
	return clone
}
