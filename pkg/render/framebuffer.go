// Package render provides depth-tested software rasterization for spinmesh.
package render

import (
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// Background is the color value of a cell nothing has been drawn into.
const Background = -1.0

// Framebuffer is a fixed-size grid of color values with a matching depth
// buffer. Smaller depth is closer to the camera and wins the depth test.
type Framebuffer struct {
	Width  int       // Width in cells
	Height int       // Height in cells
	Far    float64   // Depth every cell is cleared to
	Color  []float64 // Row-major color values (palette index or intensity)
	Depth  []float64 // Row-major view-space depth

	// PerspectiveColor interpolates color in reciprocal depth space like
	// depth. The default is screen-linear color.
	PerspectiveColor bool
}

// NewFramebuffer creates a cleared framebuffer with the given dimensions.
func NewFramebuffer(width, height int, far float64) *Framebuffer {
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Far:    far,
		Color:  make([]float64, width*height),
		Depth:  make([]float64, width*height),
	}
	fb.Clear()
	return fb
}

// Clear resets every color cell to Background and every depth cell to Far.
func (fb *Framebuffer) Clear() {
	fill(fb.Color, Background)
	fill(fb.Depth, fb.Far)
}

// fill sets every element of s to v using copy-doubling.
func fill(s []float64, v float64) {
	if len(s) == 0 {
		return
	}
	s[0] = v
	for i := 1; i < len(s); i *= 2 {
		copy(s[i:], s[:i])
	}
}

// index returns the cell index for (x, y), or -1 when out of bounds.
func (fb *Framebuffer) index(x, y int) int {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return -1
	}
	return y*fb.Width + x
}

// DrawPixel writes c at (x, y) when z is at least as close as the stored
// depth. Writes outside the buffer are dropped.
func (fb *Framebuffer) DrawPixel(x, y int, z, c float64) {
	i := fb.index(x, y)
	if i < 0 {
		return
	}
	if z <= fb.Depth[i] {
		fb.Depth[i] = z
		fb.Color[i] = c
	}
}

// At returns the color at (x, y), or Background when out of bounds.
func (fb *Framebuffer) At(x, y int) float64 {
	i := fb.index(x, y)
	if i < 0 {
		return Background
	}
	return fb.Color[i]
}

// DepthAt returns the depth at (x, y), or Far when out of bounds.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	i := fb.index(x, y)
	if i < 0 {
		return fb.Far
	}
	return fb.Depth[i]
}

// Covered counts the cells that hold something other than Background.
func (fb *Framebuffer) Covered() int {
	n := 0
	for _, c := range fb.Color {
		if c != Background {
			n++
		}
	}
	return n
}

// ToImage converts the framebuffer to an image using the palette's colors,
// one image pixel per cell.
func (fb *Framebuffer) ToImage(pal Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.Set(x, y, pal.Swatch(fb.Color[y*fb.Width+x]).Solid())
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file, each cell scaled to a
// scale×scale block (cells are drawn double-width in the terminal, so the
// image is stretched horizontally by 2 as well).
func (fb *Framebuffer) SavePNG(path string, pal Palette, scale int) error {
	if scale < 1 {
		scale = 1
	}
	src := fb.ToImage(pal)
	dst := image.NewRGBA(image.Rect(0, 0, fb.Width*scale*2, fb.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, dst)
}
