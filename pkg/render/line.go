package render

import "math"

// MinDepth is the smallest depth magnitude the interpolator accepts. Depths
// closer to zero are pushed out to it so 1/z stays finite.
const MinDepth = 1e-6

// ScreenVertex is a vertex in pixel space. Z is the view-space depth and
// Color is the scalar color attribute (palette index or intensity).
type ScreenVertex struct {
	X, Y  int
	Z     float64
	Color float64
}

// Row is the part of an edge that lies on one scanline.
type Row struct {
	Y           int
	Left, Right ScreenVertex // Leftmost and rightmost edge pixels on the row
}

// EdgeStepper walks the Bresenham pixels between two screen vertices,
// interpolating depth in reciprocal space and color linearly (or
// perspective-correct) along the way. It serves both line drawing, one pixel
// at a time, and triangle fill, one row at a time.
type EdgeStepper struct {
	from, to    ScreenVertex
	perspective bool

	invZ0, invZ1 float64
	dx, dy       int // Absolute deltas
	sx, sy       int // Step directions
	steps        int // Major axis length
	xMajor       bool

	x, y, d, i int
	done       bool

	pending    ScreenVertex
	hasPending bool
}

// NewEdgeStepper creates a stepper from a to b. With perspective set, color
// is interpolated perspective-correct instead of screen-linear.
func NewEdgeStepper(a, b ScreenVertex, perspective bool) *EdgeStepper {
	e := &EdgeStepper{from: a, to: b, perspective: perspective}
	e.from.Z = clampDepth(a.Z)
	e.to.Z = clampDepth(b.Z)
	e.invZ0 = 1 / e.from.Z
	e.invZ1 = 1 / e.to.Z

	e.dx, e.sx = absSign(b.X - a.X)
	e.dy, e.sy = absSign(b.Y - a.Y)
	e.xMajor = e.dx >= e.dy
	e.steps = max(e.dx, e.dy)

	e.Reset()
	return e
}

// Reset rewinds the stepper to its first pixel.
func (e *EdgeStepper) Reset() {
	e.x, e.y, e.i = e.from.X, e.from.Y, 0
	if e.xMajor {
		e.d = 2*e.dy - e.dx
	} else {
		e.d = 2*e.dx - e.dy
	}
	e.done = false
	e.hasPending = false
}

// Steps returns the number of major-axis steps between the endpoints.
func (e *EdgeStepper) Steps() int {
	return e.steps
}

// Next returns the next pixel on the edge. The first pixel is the start
// vertex and the last is the end vertex.
func (e *EdgeStepper) Next() (ScreenVertex, bool) {
	if e.hasPending {
		e.hasPending = false
		return e.pending, true
	}
	if e.done {
		return ScreenVertex{}, false
	}

	v := e.sample()
	if e.i >= e.steps {
		e.done = true
		return v, true
	}

	if e.xMajor {
		if e.d > 0 {
			e.y += e.sy
			e.d -= 2 * e.dx
		}
		e.d += 2 * e.dy
		e.x += e.sx
	} else {
		if e.d > 0 {
			e.x += e.sx
			e.d -= 2 * e.dy
		}
		e.d += 2 * e.dx
		e.y += e.sy
	}
	e.i++

	return v, true
}

// NextRow consumes every pixel of the current row and returns the row's
// horizontal extent. Shallow edges contribute several pixels per row and
// steep edges exactly one.
func (e *EdgeStepper) NextRow() (Row, bool) {
	first, ok := e.Next()
	if !ok {
		return Row{}, false
	}

	row := Row{Y: first.Y, Left: first, Right: first}
	for {
		v, ok := e.Next()
		if !ok {
			break
		}
		if v.Y != row.Y {
			e.pending, e.hasPending = v, true
			break
		}
		if v.X < row.Left.X {
			row.Left = v
		}
		if v.X > row.Right.X {
			row.Right = v
		}
	}
	return row, true
}

// sample returns the current pixel with attributes interpolated at
// t = steps taken / total major steps.
func (e *EdgeStepper) sample() ScreenVertex {
	t := 0.0
	if e.steps > 0 {
		t = float64(e.i) / float64(e.steps)
	}

	inv := e.invZ0 + (e.invZ1-e.invZ0)*t
	z := math.Inf(1)
	if inv != 0 {
		z = 1 / inv
	}

	var c float64
	if e.perspective && inv != 0 {
		c0 := e.from.Color * e.invZ0
		c1 := e.to.Color * e.invZ1
		c = (c0 + (c1-c0)*t) / inv
	} else {
		c = e.from.Color + (e.to.Color-e.from.Color)*t
	}

	return ScreenVertex{X: e.x, Y: e.y, Z: z, Color: c}
}

// DrawLine rasterizes a depth-tested line from a to b, endpoints included.
func (fb *Framebuffer) DrawLine(a, b ScreenVertex) {
	e := NewEdgeStepper(a, b, fb.PerspectiveColor)
	for {
		v, ok := e.Next()
		if !ok {
			return
		}
		fb.DrawPixel(v.X, v.Y, v.Z, v.Color)
	}
}

func clampDepth(z float64) float64 {
	if math.Abs(z) >= MinDepth {
		return z
	}
	if z < 0 {
		return -MinDepth
	}
	return MinDepth
}

func absSign(d int) (int, int) {
	if d < 0 {
		return -d, -1
	}
	return d, 1
}
