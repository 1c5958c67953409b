package render

import (
	"math"

	"github.com/taigrr/spinmesh/pkg/math3d"
)

// MeshRenderer is the source geometry the rasterizer draws. It is
// implemented by models.Mesh; the interface keeps render free of the models
// package.
type MeshRenderer interface {
	TriangleCount() int
	// Triangle returns the model-space vertices of triangle i and the color
	// attribute of each vertex.
	Triangle(i int) (v [3]math3d.Vec3, c [3]float64)
}

// FrameStats counts what happened to the triangles of one frame.
type FrameStats struct {
	Submitted  int // Triangles read from the mesh
	Culled     int // Back faces skipped
	Degenerate int // Zero-area triangles and vertices with no usable projection
	Drawn      int // Triangles handed to the fill or wireframe path
	Outside    int // Triangles skipped with a mesh outside the view volume
}

// GuardBand bounds projected vertices in normalized device units. Triangles
// reaching past it are dropped instead of being walked pixel by pixel far
// outside the framebuffer.
const GuardBand = 64.0

// viewTriangle is a triangle after rotation and translation.
type viewTriangle struct {
	v [3]math3d.Vec3
	c [3]float64
}

// Rasterizer runs the per-frame pipeline: transform, cull, shade, project
// and fill into its framebuffer.
type Rasterizer struct {
	fb *Framebuffer

	Projection Projection
	FlipY      bool           // Put +Y at the top of the screen
	Shade      bool           // Modulate vertex color by Lambert lighting
	Wireframe  bool           // Draw triangle edges instead of filling
	Light      math3d.Vec3    // Light direction in view space
	Floor      float64        // Minimum Lambert intensity
	Stats      FrameStats     // Counters from the last Render
	view       []viewTriangle // Reused per-frame transformed triangles
}

// NewRasterizer creates a rasterizer drawing into fb. The framebuffer's far
// value is set to the projection's far plane.
func NewRasterizer(fb *Framebuffer, proj Projection) *Rasterizer {
	fb.Far = proj.Far
	fb.Clear()
	return &Rasterizer{
		fb:         fb,
		Projection: proj,
		Light:      DefaultLight,
		Floor:      AmbientFloor,
	}
}

// Framebuffer returns the framebuffer the rasterizer draws into.
func (r *Rasterizer) Framebuffer() *Framebuffer {
	return r.fb
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	return r.fb.Height
}

// Viewport returns the viewport matching the framebuffer.
func (r *Rasterizer) Viewport() Viewport {
	return Viewport{Width: r.fb.Width, Height: r.fb.Height, FlipY: r.FlipY}
}

// Render clears the framebuffer and draws the mesh at the given pose. The
// mesh is never modified; transformed triangles go to a buffer reused across
// frames.
func (r *Rasterizer) Render(mesh MeshRenderer, pose Pose) FrameStats {
	r.fb.Clear()
	r.Stats = FrameStats{}

	model := pose.Matrix()
	proj := r.Projection.Matrix(r.aspect())

	if b, ok := mesh.(Bounded); ok && mesh.TriangleCount() > 0 {
		center, radius := boundingSphere(b.GetBounds())
		if !NewFrustum(proj).IntersectsSphere(model.MulVec3(center), radius) {
			r.Stats.Submitted = mesh.TriangleCount()
			r.Stats.Outside = r.Stats.Submitted
			return r.Stats
		}
	}

	r.view = r.view[:0]
	for i := 0; i < mesh.TriangleCount(); i++ {
		v, c := mesh.Triangle(i)
		t := viewTriangle{c: c}
		for k := range 3 {
			t.v[k] = model.MulVec3(v[k])
		}
		r.view = append(r.view, t)
	}
	r.Stats.Submitted = len(r.view)

	vp := r.Viewport()
	for i := range r.view {
		r.drawTriangle(&r.view[i], proj, vp)
	}
	return r.Stats
}

// drawTriangle culls, shades, projects and rasterizes one view-space
// triangle.
func (r *Rasterizer) drawTriangle(t *viewTriangle, proj math3d.Mat4, vp Viewport) {
	n, ok := FaceNormal(t.v[0], t.v[1], t.v[2])
	if !ok {
		r.Stats.Degenerate++
		return
	}
	if !FrontFacing(n) {
		r.Stats.Culled++
		return
	}

	intensity := 1.0
	if r.Shade {
		intensity = Lambert(n, r.Light, r.Floor)
	}

	var s [3]ScreenVertex
	for k := range 3 {
		p, ok := r.project(proj, t.v[k])
		if !ok {
			r.Stats.Degenerate++
			return
		}
		x, y := vp.Map(p)
		s[k] = ScreenVertex{X: x, Y: y, Z: t.v[k].Z, Color: t.c[k] * intensity}
	}

	r.Stats.Drawn++
	if r.Wireframe {
		r.fb.DrawTriangleEdges(s[0], s[1], s[2])
		return
	}
	r.fb.FillTriangle(s[0], s[1], s[2])
}

// project maps a view-space point to normalized device coordinates. It
// reports false for points nearer than the near plane and for projections
// that fail or land past GuardBand.
func (r *Rasterizer) project(proj math3d.Mat4, v math3d.Vec3) (math3d.Vec4, bool) {
	if v.Z < r.Projection.Near {
		return math3d.Vec4{}, false
	}
	p, ok := proj.Apply(math3d.Point(v))
	if !ok || math.Abs(p.X) > GuardBand || math.Abs(p.Y) > GuardBand {
		return math3d.Vec4{}, false
	}
	return p, true
}

func (r *Rasterizer) aspect() float64 {
	if r.fb.Height == 0 {
		return 1
	}
	return float64(r.fb.Width) / float64(r.fb.Height)
}
