package render

import (
	"fmt"
	"math"

	"github.com/taigrr/spinmesh/pkg/math3d"
)

// ProjectionKind selects how view space is flattened onto the screen.
type ProjectionKind int

const (
	ProjectPerspective ProjectionKind = iota
	ProjectOrthographic
)

func (k ProjectionKind) String() string {
	switch k {
	case ProjectPerspective:
		return "perspective"
	case ProjectOrthographic:
		return "orthographic"
	default:
		return fmt.Sprintf("ProjectionKind(%d)", int(k))
	}
}

// ParseProjection parses "perspective" or "orthographic" (or "ortho").
func ParseProjection(s string) (ProjectionKind, error) {
	switch s {
	case "perspective", "persp":
		return ProjectPerspective, nil
	case "orthographic", "ortho":
		return ProjectOrthographic, nil
	}
	return 0, fmt.Errorf("unknown projection %q", s)
}

// Projection describes the fixed camera. The camera sits at the origin
// looking down +Z; only the object moves.
type Projection struct {
	Kind ProjectionKind
	FOV  float64 // Vertical field of view in degrees (perspective)
	Near float64 // Near plane distance
	Far  float64 // Far plane distance, also the cleared depth

	// HalfHeight is the half extent of the view volume in view units for
	// orthographic projection.
	HalfHeight float64
}

// DefaultProjection returns a 90 degree perspective projection over
// [0.1, 100].
func DefaultProjection() Projection {
	return Projection{
		Kind:       ProjectPerspective,
		FOV:        90,
		Near:       0.1,
		Far:        100,
		HalfHeight: 1.5,
	}
}

// Matrix returns the projection matrix for the given aspect ratio
// (width / height).
func (p Projection) Matrix(aspect float64) math3d.Mat4 {
	if p.Kind == ProjectOrthographic {
		h := p.HalfHeight
		w := h * aspect
		return math3d.Orthographic(-w, w, -h, h, p.Near, p.Far)
	}
	return math3d.Perspective(p.Near, p.Far, p.FOV, aspect)
}

// Viewport maps normalized device coordinates onto a pixel grid.
type Viewport struct {
	Width, Height int
	FlipY         bool // Put +Y at the top of the screen
}

// Map converts NDC x and y in [-1, 1] to pixel coordinates using
// (ndc+1)*0.5*dimension.
func (v Viewport) Map(ndc math3d.Vec4) (x, y int) {
	sx := (ndc.X + 1) * 0.5 * float64(v.Width)
	ny := ndc.Y
	if v.FlipY {
		ny = -ny
	}
	sy := (ny + 1) * 0.5 * float64(v.Height)
	return int(math.Floor(sx)), int(math.Floor(sy))
}

// Pose places the object in view space: Euler angles in radians applied as
// RotateX * RotateY * RotateZ, then a push of Distance along +Z.
type Pose struct {
	X, Y, Z  float64
	Distance float64
}

// Matrix returns the model-to-view transform for the pose.
func (p Pose) Matrix() math3d.Mat4 {
	rot := math3d.RotateX(p.X).Mul(math3d.RotateY(p.Y)).Mul(math3d.RotateZ(p.Z))
	return math3d.Translate(math3d.V3(0, 0, p.Distance)).Mul(rot)
}
