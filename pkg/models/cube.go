package models

import (
	"github.com/taigrr/spinmesh/pkg/math3d"
)

// cubeFaces lists each face's outward normal with two tangents u, v where
// u x v = normal, so the quad c-u-v, c+u-v, c+u+v, c-u+v winds outward.
var cubeFaces = [6][3]math3d.Vec3{
	{{X: 0, Y: 0, Z: -1}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 0, Z: 0}}, // Front
	{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},  // Back
	{{X: -1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 0}}, // Left
	{{X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}},  // Right
	{{X: 0, Y: -1, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}}, // Bottom
	{{X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 0}},  // Top
}

// Cube returns a 12-triangle cube centered on the origin with the given
// edge length. Triangles wind outward and each face takes one palette index,
// 1 through 6.
func Cube(size float64) *Mesh {
	h := size / 2
	mesh := NewMesh("cube", FormatUnshaded)

	for i, f := range cubeFaces {
		n, u, v := f[0].Scale(h), f[1].Scale(h), f[2].Scale(h)
		q := [4]math3d.Vec3{
			n.Sub(u).Sub(v),
			n.Add(u).Sub(v),
			n.Add(u).Add(v),
			n.Sub(u).Add(v),
		}

		c := float64(i%MaxColorIndex + 1)
		mesh.Add(flatTriangle(q[0], q[1], q[2], c))
		mesh.Add(flatTriangle(q[0], q[2], q[3], c))
	}

	mesh.CalculateBounds()
	return mesh
}

func flatTriangle(a, b, c math3d.Vec3, color float64) Triangle {
	return Triangle{V: [3]Vertex{
		{Position: a, Color: color},
		{Position: b, Color: color},
		{Position: c, Color: color},
	}}
}
