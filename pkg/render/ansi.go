package render

import (
	"bufio"
	"image/color"
	"io"

	"github.com/charmbracelet/x/ansi"
)

// WriteANSI writes the framebuffer as an ANSI frame: a full-screen clear,
// then one line per framebuffer row with every cell printed twice so cells
// come out roughly square. Style sequences are only emitted when the swatch
// colors change.
func WriteANSI(w io.Writer, fb *Framebuffer, pal Palette) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(ansi.EraseEntireScreen)
	bw.WriteString(ansi.CursorHomePosition)

	for y := 0; y < fb.Height; y++ {
		var fg, bg color.Color
		styled := false
		for x := 0; x < fb.Width; x++ {
			s := pal.Swatch(fb.Color[y*fb.Width+x])
			if !styled || s.Fg != fg || s.Bg != bg {
				bw.WriteString(swatchStyle(s))
				fg, bg, styled = s.Fg, s.Bg, true
			}
			bw.WriteString(s.Glyph)
			bw.WriteString(s.Glyph)
		}
		bw.WriteString(ansi.ResetStyle)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// swatchStyle returns the SGR sequence selecting the swatch colors.
func swatchStyle(s Swatch) string {
	if s.Fg == nil && s.Bg == nil {
		return ansi.ResetStyle
	}
	st := ansi.Style{}.Reset()
	if s.Fg != nil {
		st = st.ForegroundColor(s.Fg)
	}
	if s.Bg != nil {
		st = st.BackgroundColor(s.Bg)
	}
	return st.String()
}
