package render

// FillTriangle scan-converts a triangle into the framebuffer.
//
// The vertices are ordered by ascending Y with three compare-and-swap steps,
// moving whole vertices so position, depth and color stay together. The long
// edge v0->v2 is walked by a single stepper for the whole triangle, so its
// interpolation origin is v0 on both sides of the v1 seam. It is paired with
// v0->v1 for rows y0 <= y < y1 and with v1->v2 for rows y1 <= y <= y2; a flat
// top makes the first segment empty. Each row is filled between the outer
// extents of the two edges on that row.
func (fb *Framebuffer) FillTriangle(v0, v1, v2 ScreenVertex) {
	if v1.Y < v0.Y {
		v0, v1 = v1, v0
	}
	if v2.Y < v0.Y {
		v0, v2 = v2, v0
	}
	if v2.Y < v1.Y {
		v1, v2 = v2, v1
	}

	long := NewEdgeStepper(v0, v2, fb.PerspectiveColor)

	upper := NewEdgeStepper(v0, v1, fb.PerspectiveColor)
	for y := v0.Y; y < v1.Y; y++ {
		if !fb.fillRow(long, upper) {
			return
		}
	}

	lower := NewEdgeStepper(v1, v2, fb.PerspectiveColor)
	for y := v1.Y; y <= v2.Y; y++ {
		if !fb.fillRow(long, lower) {
			return
		}
	}
}

// fillRow advances both edges by one row and draws the span between them.
func (fb *Framebuffer) fillRow(a, b *EdgeStepper) bool {
	ra, okA := a.NextRow()
	rb, okB := b.NextRow()
	if !okA || !okB {
		return false
	}

	left, right := ra.Left, rb.Right
	if rb.Left.X < left.X {
		left = rb.Left
	}
	if ra.Right.X > right.X {
		right = ra.Right
	}
	fb.DrawLine(left, right)
	return true
}

// DrawTriangleEdges draws the three edges of a triangle as depth-tested lines.
func (fb *Framebuffer) DrawTriangleEdges(v0, v1, v2 ScreenVertex) {
	fb.DrawLine(v0, v1)
	fb.DrawLine(v1, v2)
	fb.DrawLine(v2, v0)
}
