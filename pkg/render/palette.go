package render

import (
	"image/color"
	"math"

	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
)

// Swatch is how a single framebuffer cell looks on screen. A nil color
// leaves the terminal default in place.
type Swatch struct {
	Glyph string
	Fg    color.Color
	Bg    color.Color
}

// Solid returns the dominant color of the swatch for image output.
func (s Swatch) Solid() color.Color {
	if s.Bg != nil {
		return s.Bg
	}
	if s.Fg != nil && s.Glyph != " " {
		return s.Fg
	}
	return color.Black
}

// Palette maps framebuffer color values to swatches.
type Palette interface {
	Swatch(v float64) Swatch
}

// IndexedPalette paints cells with one of six bright ANSI background colors.
// Color values 1 through 6 select an entry; anything else is background.
type IndexedPalette struct {
	Colors     [6]color.Color
	Background color.Color
}

// DefaultIndexedPalette returns the red, cyan, green, yellow, magenta, blue
// palette on a black background.
func DefaultIndexedPalette() IndexedPalette {
	return IndexedPalette{
		Colors: [6]color.Color{
			ansi.BrightRed,
			ansi.BrightCyan,
			ansi.BrightGreen,
			ansi.BrightYellow,
			ansi.BrightMagenta,
			ansi.BrightBlue,
		},
		Background: ansi.Black,
	}
}

// Swatch implements Palette.
func (p IndexedPalette) Swatch(v float64) Swatch {
	i := int(math.Round(v))
	if v == Background || i < 1 || i > len(p.Colors) {
		return Swatch{Glyph: " ", Bg: p.Background}
	}
	return Swatch{Glyph: " ", Bg: p.Colors[i-1]}
}

// DefaultGlyphs is the ramp used by shaded rendering, sparse to dense.
const DefaultGlyphs = ".,-~:;=!*#$@"

// GlyphRamp maps intensities in [0, 1] to glyphs ordered from sparse to
// dense, with a foreground color blended from Dim to Bright.
type GlyphRamp struct {
	glyphs []string
	colors []color.Color
}

// NewGlyphRamp creates a ramp over the given glyphs. The foreground color of
// each step is blended in Lab space between dim and bright; a nil dim or
// bright gives glyphs with no foreground color.
func NewGlyphRamp(glyphs string, dim, bright color.Color) *GlyphRamp {
	r := &GlyphRamp{}
	for _, g := range glyphs {
		r.glyphs = append(r.glyphs, string(g))
	}
	if len(r.glyphs) == 0 {
		r.glyphs = []string{"#"}
	}

	r.colors = make([]color.Color, len(r.glyphs))
	if dim == nil || bright == nil {
		return r
	}
	from, _ := colorful.MakeColor(dim)
	to, _ := colorful.MakeColor(bright)
	for i := range r.colors {
		t := 0.0
		if len(r.colors) > 1 {
			t = float64(i) / float64(len(r.colors)-1)
		}
		r.colors[i] = from.BlendLab(to, t).Clamped()
	}
	return r
}

// DefaultGlyphRamp returns the default ramp, grey-blue to white.
func DefaultGlyphRamp() *GlyphRamp {
	return NewGlyphRamp(DefaultGlyphs,
		colorful.Color{R: 0.25, G: 0.27, B: 0.4},
		colorful.Color{R: 1, G: 1, B: 1})
}

// Len returns the number of ramp steps.
func (r *GlyphRamp) Len() int {
	return len(r.glyphs)
}

// Swatch implements Palette.
func (r *GlyphRamp) Swatch(v float64) Swatch {
	if v == Background || v < 0 {
		return Swatch{Glyph: " "}
	}
	i := RampIndex(v, len(r.glyphs))
	return Swatch{Glyph: r.glyphs[i], Fg: r.colors[i]}
}
