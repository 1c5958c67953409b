package render

import (
	"math"
	"testing"
	"time"

	"github.com/taigrr/spinmesh/pkg/math3d"
	"github.com/taigrr/spinmesh/pkg/models"
)

// triMesh is a MeshRenderer over loose triangles with one color each.
type triMesh struct {
	tris   [][3]math3d.Vec3
	colors []float64
}

func (m *triMesh) TriangleCount() int { return len(m.tris) }
func (m *triMesh) Triangle(i int) ([3]math3d.Vec3, [3]float64) {
	c := m.colors[i]
	return m.tris[i], [3]float64{c, c, c}
}

// createTestRasterizer creates a rasterizer with the default projection.
func createTestRasterizer(width, height int) (*Rasterizer, *Framebuffer) {
	fb := NewFramebuffer(width, height, 0)
	return NewRasterizer(fb, DefaultProjection()), fb
}

// facing is a triangle in the z=0 plane whose normal points at the camera.
var facing = [3]math3d.Vec3{
	math3d.V3(-1, -1, 0),
	math3d.V3(-1, 1, 0),
	math3d.V3(1, 1, 0),
}

func TestRenderCubeCullsBackFaces(t *testing.T) {
	r, fb := createTestRasterizer(60, 60)
	cube := models.Cube(2)

	stats := r.Render(cube, Pose{X: 0.4, Y: 0.7, Distance: 5})

	if stats.Submitted != 12 {
		t.Errorf("Submitted = %d, want 12", stats.Submitted)
	}
	if stats.Culled != 6 {
		t.Errorf("Culled = %d, want 6", stats.Culled)
	}
	if stats.Drawn != 6 || stats.Degenerate != 0 {
		t.Errorf("Drawn = %d, Degenerate = %d, want 6, 0", stats.Drawn, stats.Degenerate)
	}
	if fb.Covered() == 0 {
		t.Error("cube should cover some pixels")
	}
	if r.Stats != stats {
		t.Errorf("Stats = %+v, want %+v", r.Stats, stats)
	}
}

func TestRenderAxisAlignedCube(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)
	r.Render(models.Cube(2), Pose{Distance: 4})

	// Only the front face survives: side faces are edge-on (n.Z == 0) and
	// count as back faces, so 10 are culled here. The 6 of 12 of a typical
	// frame needs a rotated pose, see TestRenderCubeCullsBackFaces.
	if r.Stats.Drawn != 2 || r.Stats.Culled != 10 {
		t.Errorf("Drawn = %d, Culled = %d, want 2, 10", r.Stats.Drawn, r.Stats.Culled)
	}
	// The front face has palette index 1.
	if got := fb.At(20, 20); got != 1 {
		t.Errorf("center pixel = %v, want 1", got)
	}
}

func TestRenderWindingFlipsCull(t *testing.T) {
	flipped := [3]math3d.Vec3{facing[0], facing[2], facing[1]}
	tests := []struct {
		name   string
		tri    [3]math3d.Vec3
		drawn  int
		culled int
	}{
		{"facing", facing, 1, 0},
		{"reversed", flipped, 0, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, fb := createTestRasterizer(30, 30)
			r.Render(&triMesh{tris: [][3]math3d.Vec3{tc.tri}, colors: []float64{2}}, Pose{Distance: 3})
			if r.Stats.Drawn != tc.drawn || r.Stats.Culled != tc.culled {
				t.Errorf("Drawn = %d, Culled = %d, want %d, %d", r.Stats.Drawn, r.Stats.Culled, tc.drawn, tc.culled)
			}
			if (fb.Covered() > 0) != (tc.drawn > 0) {
				t.Errorf("Covered = %d with Drawn = %d", fb.Covered(), tc.drawn)
			}
		})
	}
}

func TestRenderDegenerate(t *testing.T) {
	r, fb := createTestRasterizer(20, 20)
	line := [3]math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(1, 1, 0), math3d.V3(2, 2, 0)}
	r.Render(&triMesh{tris: [][3]math3d.Vec3{line}, colors: []float64{1}}, Pose{Distance: 3})
	if r.Stats.Degenerate != 1 || r.Stats.Drawn != 0 {
		t.Errorf("stats = %+v, want one degenerate", r.Stats)
	}
	if fb.Covered() != 0 {
		t.Error("degenerate triangle should draw nothing")
	}
}

func TestRenderUnprojectable(t *testing.T) {
	// At distance 0 a vertex sits on the camera plane.
	r, _ := createTestRasterizer(20, 20)
	tri := [3]math3d.Vec3{math3d.V3(-1, -1, 0), math3d.V3(-1, 1, 1), math3d.V3(1, 1, 1)}
	r.Render(&triMesh{tris: [][3]math3d.Vec3{tri}, colors: []float64{1}}, Pose{})
	if r.Stats.Degenerate != 1 {
		t.Errorf("stats = %+v, want one unprojectable triangle", r.Stats)
	}
}

func TestRenderNearPlaneVertex(t *testing.T) {
	tests := []struct {
		name  string
		z     float64
		drawn int
	}{
		{"1e-5", 1e-5, 0},
		{"1e-6", 1e-6, 0},
		{"1e-7", 1e-7, 0},
		{"negative", -0.5, 0},
		{"past near", 0.2, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := createTestRasterizer(40, 40)
			tri := [3]math3d.Vec3{math3d.V3(-1, -1, 2), math3d.V3(1, 1, tc.z), math3d.V3(1, -1, 2)}

			start := time.Now()
			r.Render(&triMesh{tris: [][3]math3d.Vec3{tri}, colors: []float64{1}}, Pose{})
			if elapsed := time.Since(start); elapsed > time.Second {
				t.Errorf("render took %v", elapsed)
			}

			if r.Stats.Drawn != tc.drawn || r.Stats.Degenerate != 1-tc.drawn {
				t.Errorf("stats = %+v, want Drawn %d", r.Stats, tc.drawn)
			}
		})
	}
}

func TestRenderGuardBand(t *testing.T) {
	fb := NewFramebuffer(40, 40, 0)
	proj := DefaultProjection()
	proj.Near = 1e-9
	r := NewRasterizer(fb, proj)

	// Past the near plane, but it projects 1e7 units off screen.
	tri := [3]math3d.Vec3{math3d.V3(-1, -1, 2), math3d.V3(1, 1, 1e-7), math3d.V3(1, -1, 2)}

	start := time.Now()
	r.Render(&triMesh{tris: [][3]math3d.Vec3{tri}, colors: []float64{1}}, Pose{})
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("render took %v", elapsed)
	}
	if r.Stats.Degenerate != 1 || fb.Covered() != 0 {
		t.Errorf("stats = %+v, covered %d", r.Stats, fb.Covered())
	}

	if r.DrawLine3D(math3d.V3(0, 0, 2), math3d.V3(1, 1, 1e-7), 1) {
		t.Error("DrawLine3D accepted an endpoint past the guard band")
	}
}

func TestRenderShading(t *testing.T) {
	tests := []struct {
		name  string
		light math3d.Vec3
		want  float64
	}{
		{"lit", math3d.V3(0, 0, 1), 0.8},
		{"unlit", math3d.V3(0, 0, -1), 0.8 * AmbientFloor},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, fb := createTestRasterizer(30, 30)
			r.Shade = true
			r.Light = tc.light
			r.Render(&triMesh{tris: [][3]math3d.Vec3{facing}, colors: []float64{0.8}}, Pose{Distance: 3})

			// Sample inside the triangle, clear of its edges.
			x, y := r.Viewport().Map(math3d.V4(-0.1, 0.1, 0, 1))
			if got := fb.At(x, y); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("pixel = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRenderDoesNotMutateMesh(t *testing.T) {
	r, _ := createTestRasterizer(30, 30)
	cube := models.Cube(2)
	before := cube.Clone()

	for i := range 5 {
		r.Render(cube, Pose{X: float64(i), Y: 0.3 * float64(i), Z: 0.1, Distance: 4})
	}
	for i := range cube.Triangles {
		if cube.Triangles[i] != before.Triangles[i] {
			t.Fatalf("triangle %d changed during rendering", i)
		}
	}
}

func TestRenderDepthOrder(t *testing.T) {
	near := [3]math3d.Vec3{math3d.V3(-1, -1, -0.5), math3d.V3(-1, 1, -0.5), math3d.V3(1, 1, -0.5)}
	far := [3]math3d.Vec3{math3d.V3(-1, -1, 0.5), math3d.V3(-1, 1, 0.5), math3d.V3(1, 1, 0.5)}

	for _, order := range [][2]int{{0, 1}, {1, 0}} {
		tris := [2][3]math3d.Vec3{near, far}
		colors := [2]float64{4, 5}
		mesh := &triMesh{
			tris:   [][3]math3d.Vec3{tris[order[0]], tris[order[1]]},
			colors: []float64{colors[order[0]], colors[order[1]]},
		}
		r, fb := createTestRasterizer(40, 40)
		r.Render(mesh, Pose{Distance: 4})

		x, y := r.Viewport().Map(math3d.V4(-0.05, 0.05, 0, 1))
		if got := fb.At(x, y); got != 4 {
			t.Errorf("order %v: pixel = %v, want near color 4", order, got)
		}
	}
}

func TestRenderWireframe(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)
	r.Wireframe = true
	r.Render(models.Cube(2), Pose{Distance: 4})

	if r.Stats.Drawn != 2 {
		t.Fatalf("Drawn = %d, want 2", r.Stats.Drawn)
	}
	if fb.At(16, 23) != Background {
		t.Error("wireframe should leave the face interior empty")
	}
	if fb.Covered() == 0 {
		t.Error("wireframe should draw edges")
	}
}

func TestRenderOrthographic(t *testing.T) {
	fb := NewFramebuffer(40, 40, 0)
	proj := DefaultProjection()
	proj.Kind = ProjectOrthographic
	r := NewRasterizer(fb, proj)

	// The same cube covers the same area at any distance.
	r.Render(models.Cube(2), Pose{Distance: 4})
	nearArea := fb.Covered()
	r.Render(models.Cube(2), Pose{Distance: 40})
	farArea := fb.Covered()

	if nearArea == 0 || nearArea != farArea {
		t.Errorf("covered %d at distance 4 and %d at distance 40", nearArea, farArea)
	}
}

func TestDrawAxes(t *testing.T) {
	r, fb := createTestRasterizer(40, 40)
	r.DrawAxes(Pose{X: 0.3, Y: 0.5, Distance: 4}, 1)

	seen := map[float64]bool{}
	for _, c := range fb.Color {
		seen[c] = true
	}
	for _, c := range []float64{AxisColorX, AxisColorY, AxisColorZ} {
		if !seen[c] {
			t.Errorf("axis color %v not drawn", c)
		}
	}
}

func BenchmarkRenderCube(b *testing.B) {
	r, _ := createTestRasterizer(160, 80)
	cube := models.Cube(2)
	pose := Pose{X: 0.4, Y: 0.7, Distance: 4}
	for b.Loop() {
		r.Render(cube, pose)
		pose.Y += 0.01
	}
}
