package render

import (
	"math"

	"github.com/taigrr/spinmesh/pkg/math3d"
)

// AmbientFloor is the lowest Lambert intensity, so faces turned away from
// the light stay dimly visible.
const AmbientFloor = 0.3

// DefaultLight points from the upper left into the scene.
var DefaultLight = math3d.V3(-1, -1, 1).Normalize()

// FaceNormal returns the unit normal (b-a)x(c-a) of a view-space triangle.
// Collinear or coincident vertices report false.
func FaceNormal(a, b, c math3d.Vec3) (math3d.Vec3, bool) {
	return b.Sub(a).Cross(c.Sub(a)).Unit()
}

// FrontFacing reports whether a view-space normal points back toward the
// camera, which looks down +Z from the origin.
func FrontFacing(n math3d.Vec3) bool {
	return n.Z < 0
}

// Lambert returns the diffuse intensity -n·light clamped to [floor, 1].
// A light travelling into the scene along +Z fully lights faces whose
// normals point back at it.
func Lambert(n, light math3d.Vec3, floor float64) float64 {
	return math.Max(floor, math.Min(1, -n.Dot(light)))
}

// RampIndex maps an intensity in [0, 1] to an index in [0, n-1]. Values
// outside the range are clamped.
func RampIndex(v float64, n int) int {
	if n <= 1 {
		return 0
	}
	i := int(v * float64(n-1))
	return max(0, min(n-1, i))
}
