package render

import (
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
)

func TestDrawHalfBlocks(t *testing.T) {
	fb := NewFramebuffer(3, 4, 100)
	fb.DrawPixel(1, 0, 1, 1) // Top half of terminal row 0
	fb.DrawPixel(1, 3, 1, 6) // Bottom half of terminal row 1

	pal := DefaultIndexedPalette()
	scr := uv.NewScreenBuffer(3, 2)
	fb.Draw(scr, scr.Bounds(), pal)

	top := scr.CellAt(1, 0)
	if top == nil || top.Content != "▀" {
		t.Fatalf("cell (1, 0) = %+v, want half block", top)
	}
	if top.Style.Fg != pal.Colors[0] {
		t.Errorf("top fg = %v, want %v", top.Style.Fg, pal.Colors[0])
	}
	if top.Style.Bg != pal.Background {
		t.Errorf("top bg = %v, want background", top.Style.Bg)
	}

	bot := scr.CellAt(1, 1)
	if bot.Style.Bg != pal.Colors[5] {
		t.Errorf("bottom bg = %v, want %v", bot.Style.Bg, pal.Colors[5])
	}
}

func TestDrawGlyphs(t *testing.T) {
	fb := NewFramebuffer(2, 1, 100)
	fb.DrawPixel(1, 0, 1, 1)

	scr := uv.NewScreenBuffer(4, 1)
	fb.DrawGlyphs(scr, scr.Bounds(), DefaultGlyphRamp())

	want := []string{" ", " ", "@", "@"}
	for x, w := range want {
		if c := scr.CellAt(x, 0); c == nil || c.Content != w {
			t.Errorf("cell %d = %+v, want %q", x, c, w)
		}
	}
}
