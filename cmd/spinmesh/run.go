package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/log"
	"github.com/taigrr/spinmesh/pkg/anim"
	"github.com/taigrr/spinmesh/pkg/models"
	"github.com/taigrr/spinmesh/pkg/render"
	"golang.org/x/term"
)

// Default framebuffer size when neither the input nor the flags give one.
const (
	defaultWidth  = 40
	defaultHeight = 40
)

// meshExtent is the size meshes are normalized to before rendering.
const meshExtent = 2.0

// scene bundles what every front end needs to draw frames.
type scene struct {
	cfg    Config
	mesh   *models.Mesh
	pal    render.Palette
	proj   render.Projection
	shade  bool
	logger *log.Logger
}

func run(ctx context.Context, cfg Config, path string, logger *log.Logger) error {
	sc, err := newScene(cfg, path, logger)
	if err != nil {
		return err
	}

	var r *render.Rasterizer
	switch cfg.UI {
	case uiTUI:
		r, err = runTUI(ctx, sc)
	default:
		r, err = runPlain(ctx, sc)
	}
	if err != nil {
		return err
	}

	if cfg.Snapshot != "" && r != nil {
		if err := r.Framebuffer().SavePNG(cfg.Snapshot, sc.pal, 4); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		logger.Info("Saved snapshot", "path", cfg.Snapshot)
	}
	logger.Debug("Shutting down")
	return nil
}

// newScene loads the mesh and picks shading and palette.
func newScene(cfg Config, path string, logger *log.Logger) (*scene, error) {
	var mesh *models.Mesh
	if path == "" {
		mesh = models.Cube(meshExtent)
	} else {
		format := models.FormatUnshaded
		if cfg.Shade {
			format = models.FormatShaded
		}
		var err error
		mesh, err = models.Load(path, format)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
	}
	mesh.Normalize(meshExtent)

	shade := mesh.Format == models.FormatShaded
	if cfg.ShadeSet {
		shade = cfg.Shade
	}
	if shade && mesh.Format == models.FormatUnshaded {
		mesh = mesh.AsShaded()
	}

	var pal render.Palette = render.DefaultIndexedPalette()
	if mesh.Format == models.FormatShaded {
		pal = render.DefaultGlyphRamp()
	}

	logger.Info("Loaded",
		"name", filepath.Base(mesh.Name),
		"format", mesh.Format,
		"triangles", mesh.TriangleCount(),
		"shade", shade,
	)

	return &scene{
		cfg:    cfg,
		mesh:   mesh,
		pal:    pal,
		proj:   cfg.ProjectionSettings(),
		shade:  shade,
		logger: logger,
	}, nil
}

// rasterizer creates a rasterizer of the given size configured from the
// command line.
func (sc *scene) rasterizer(width, height int) *render.Rasterizer {
	fb := render.NewFramebuffer(width, height, sc.proj.Far)
	fb.PerspectiveColor = sc.cfg.Perspective
	r := render.NewRasterizer(fb, sc.proj)
	r.Shade = sc.shade
	r.Wireframe = sc.cfg.Wireframe
	r.FlipY = sc.cfg.FlipY
	return r
}

// draw renders one frame of the scene at the given state.
func (sc *scene) draw(r *render.Rasterizer, s anim.State) render.FrameStats {
	stats := r.Render(sc.mesh, s.Pose())
	if sc.cfg.Axes {
		r.DrawAxes(s.Pose(), meshExtent*0.75)
	}
	sc.logger.Debug("Frame",
		"n", s.Frame,
		"submitted", stats.Submitted,
		"culled", stats.Culled,
		"degenerate", stats.Degenerate,
		"drawn", stats.Drawn,
		"outside", stats.Outside,
	)
	return stats
}

// done reports whether the fixed frame budget is used up after drawing
// frame s.
func (sc *scene) done(s anim.State) bool {
	return sc.cfg.Mode == modeFixed && s.Frame+1 >= sc.cfg.Frames
}

// plainSize returns the framebuffer size for plain output.
func (sc *scene) plainSize() (int, int, error) {
	if sc.cfg.Size != "" {
		return parseSize(sc.cfg.Size)
	}
	if sc.cfg.Fit {
		cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			return 0, 0, fmt.Errorf("get terminal size: %w", err)
		}
		// Every cell prints two columns; keep a row for the cursor.
		return max(1, cols/2), max(1, rows-1), nil
	}
	if sc.mesh.Width > 0 && sc.mesh.Height > 0 {
		return sc.mesh.Width, sc.mesh.Height, nil
	}
	return defaultWidth, defaultHeight, nil
}

// runPlain writes ANSI frames to stdout, downsampled to the terminal's
// color profile.
func runPlain(ctx context.Context, sc *scene) (*render.Rasterizer, error) {
	width, height, err := sc.plainSize()
	if err != nil {
		return nil, err
	}
	r := sc.rasterizer(width, height)

	out := colorprofile.NewWriter(os.Stdout, os.Environ())
	sc.logger.Debug("Output", "profile", out.Profile, "size", fmt.Sprintf("%dx%d", width, height))

	a := anim.NewAnimator(sc.cfg.AnimConfig())
	state := a.Initial()

	ticker := time.NewTicker(sc.cfg.FrameDelay())
	defer ticker.Stop()

	for {
		sc.draw(r, state)
		if err := render.WriteANSI(out, r.Framebuffer(), sc.pal); err != nil {
			return r, fmt.Errorf("write frame: %w", err)
		}
		if sc.done(state) {
			return r, nil
		}
		state = a.Advance(state)

		select {
		case <-ctx.Done():
			return r, nil
		case <-ticker.C:
		}
	}
}
