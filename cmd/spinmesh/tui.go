package main

import (
	"context"
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/spinmesh/pkg/anim"
	"github.com/taigrr/spinmesh/pkg/models"
	"github.com/taigrr/spinmesh/pkg/render"
)

// tuiSize returns the framebuffer size for a terminal of cols x rows.
// Indexed meshes use half blocks (two pixels per cell, stacked); glyph
// ramps use two cells per pixel side by side.
func (sc *scene) tuiSize(cols, rows int) (int, int) {
	if sc.mesh.Format == models.FormatShaded {
		return max(1, cols/2), max(1, rows)
	}
	return max(1, cols), max(1, rows*2)
}

func (sc *scene) present(scr uv.Screen, fb *render.Framebuffer, area uv.Rectangle) {
	if sc.mesh.Format == models.FormatShaded {
		fb.DrawGlyphs(scr, area, sc.pal)
		return
	}
	fb.Draw(scr, area, sc.pal)
}

// runTUI renders into the alternate screen until the context ends, the
// frame budget runs out, or the user quits.
func runTUI(ctx context.Context, sc *scene) (*render.Rasterizer, error) {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return nil, fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return nil, fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Events are handed to the render loop so all state stays on one
	// goroutine.
	events := make(chan uv.Event)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	r := sc.rasterizer(sc.tuiSize(width, height))
	a := anim.NewAnimator(sc.cfg.AnimConfig())
	state := a.Initial()
	paused := false

	ticker := time.NewTicker(sc.cfg.FrameDelay())
	defer ticker.Stop()

	for {
		sc.draw(r, state)
		term.Erase()
		sc.present(term, r.Framebuffer(), uv.Rect(0, 0, width, height))
		if err := term.Display(); err != nil {
			return r, fmt.Errorf("display: %w", err)
		}
		if sc.done(state) {
			return r, nil
		}

	wait:
		for {
			select {
			case <-ctx.Done():
				return r, nil

			case ev := <-events:
				switch ev := ev.(type) {
				case uv.WindowSizeEvent:
					width, height = ev.Width, ev.Height
					term.Erase()
					term.Resize(width, height)
					wire := r.Wireframe
					r = sc.rasterizer(sc.tuiSize(width, height))
					r.Wireframe = wire
					sc.logger.Debug("Resized", "cols", width, "rows", height)
					break wait

				case uv.KeyPressEvent:
					switch {
					case ev.MatchString("escape", "q", "ctrl+c"):
						return r, nil
					case ev.MatchString("space"):
						paused = !paused
					case ev.MatchString("x"):
						r.Wireframe = !r.Wireframe
						break wait
					}
				}

			case <-ticker.C:
				if !paused {
					state = a.Advance(state)
				}
				break wait
			}
		}
	}
}
