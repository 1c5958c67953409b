package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Each terminal row shows two framebuffer rows with ▀ (upper half
// block): the top cell's color as foreground, the bottom cell's as
// background. The framebuffer height should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle, pal Palette) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < fb.Width; col++ {
			x := col - area.Min.X
			top := pal.Swatch(fb.At(x, topY))
			bot := pal.Swatch(fb.At(x, botY))

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: top.Solid(),
					Bg: bot.Solid(),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// DrawGlyphs draws each framebuffer cell as two terminal cells holding the
// palette's glyph, so cells come out roughly square. It suits glyph ramps,
// whose characters carry the shading.
func (fb *Framebuffer) DrawGlyphs(scr uv.Screen, area uv.Rectangle, pal Palette) {
	for row := area.Min.Y; row < area.Max.Y && row-area.Min.Y < fb.Height; row++ {
		for x := 0; x < fb.Width; x++ {
			col := area.Min.X + 2*x
			if col+1 >= area.Max.X {
				break
			}
			s := pal.Swatch(fb.At(x, row-area.Min.Y))
			cell := &uv.Cell{
				Content: s.Glyph,
				Width:   1,
				Style:   uv.Style{Fg: s.Fg, Bg: s.Bg},
			}
			scr.SetCell(col, row, cell)
			scr.SetCell(col+1, row, cell)
		}
	}
}
