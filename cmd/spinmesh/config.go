package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/taigrr/spinmesh/pkg/anim"
	"github.com/taigrr/spinmesh/pkg/math3d"
	"github.com/taigrr/spinmesh/pkg/render"
)

// Termination policies.
const (
	modeFixed = "fixed"
	modeLoop  = "loop"
)

// Output front ends.
const (
	uiPlain = "plain"
	uiTUI   = "tui"
)

// Config holds everything the command line controls.
type Config struct {
	Mode   string        // fixed or loop
	Frames int           // Frame count in fixed mode
	FPS    int           // Frame rate when Delay is zero
	Delay  time.Duration // Fixed delay between frames, overrides FPS

	Shade       bool // Light the mesh; defaults to the mesh format
	ShadeSet    bool // Shade was given explicitly
	Wireframe   bool
	Axes        bool
	Perspective bool // Perspective-correct color interpolation

	Projection string
	FOV        float64
	Near       float64
	Far        float64
	Distance   float64
	DepthStep  float64
	Ease       bool
	SpinUp     int
	Spin       []float64

	Size  string // WxH, empty for the mesh's own size
	Fit   bool   // Size the framebuffer to the terminal
	FlipY bool

	UI       string
	Snapshot string
	LogLevel string
	Demo     bool
}

// DefaultConfig returns the defaults of every flag.
func DefaultConfig() Config {
	return Config{
		Mode:       modeLoop,
		Frames:     60,
		FPS:        15,
		Projection: "perspective",
		FOV:        90,
		Near:       0.1,
		Far:        100,
		Distance:   4,
		Spin:       []float64{math.Pi / 30, math.Pi / 40, 0},
		UI:         uiPlain,
		LogLevel:   "info",
	}
}

// Validate checks the configuration for values the renderer cannot use.
func (c Config) Validate() error {
	var errs []error
	switch c.Mode {
	case modeFixed, modeLoop:
	default:
		errs = append(errs, fmt.Errorf("mode must be %q or %q, got %q", modeFixed, modeLoop, c.Mode))
	}
	if c.Mode == modeFixed && c.Frames <= 0 {
		errs = append(errs, fmt.Errorf("frames must be positive, got %d", c.Frames))
	}
	if c.FPS <= 0 && c.Delay <= 0 {
		errs = append(errs, errors.New("fps must be positive when no delay is set"))
	}
	if c.Delay < 0 {
		errs = append(errs, fmt.Errorf("delay must not be negative, got %v", c.Delay))
	}
	if _, err := render.ParseProjection(c.Projection); err != nil {
		errs = append(errs, err)
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov must be in (0, 180), got %v", c.FOV))
	}
	if c.Near <= 0 || c.Far <= c.Near {
		errs = append(errs, fmt.Errorf("need 0 < near < far, got near %v far %v", c.Near, c.Far))
	}
	if c.Distance <= 0 {
		errs = append(errs, fmt.Errorf("distance must be positive, got %v", c.Distance))
	}
	if c.DepthStep < 0 {
		errs = append(errs, fmt.Errorf("depth-step must not be negative, got %v", c.DepthStep))
	}
	if c.SpinUp < 0 {
		errs = append(errs, fmt.Errorf("spin-up must not be negative, got %d", c.SpinUp))
	}
	if len(c.Spin) != 3 {
		errs = append(errs, fmt.Errorf("spin needs 3 values, got %d", len(c.Spin)))
	}
	if c.Size != "" {
		if _, _, err := parseSize(c.Size); err != nil {
			errs = append(errs, err)
		}
	}
	switch c.UI {
	case uiPlain, uiTUI:
	default:
		errs = append(errs, fmt.Errorf("ui must be %q or %q, got %q", uiPlain, uiTUI, c.UI))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log-level: %w", err))
	}
	return errors.Join(errs...)
}

// FrameDelay returns the pause between frames.
func (c Config) FrameDelay() time.Duration {
	if c.Delay > 0 {
		return c.Delay
	}
	return time.Second / time.Duration(c.FPS)
}

// ProjectionSettings returns the camera projection.
func (c Config) ProjectionSettings() render.Projection {
	p := render.DefaultProjection()
	p.Kind, _ = render.ParseProjection(c.Projection)
	p.FOV = c.FOV
	p.Near = c.Near
	p.Far = c.Far
	return p
}

// AnimConfig returns the animation settings.
func (c Config) AnimConfig() anim.Config {
	cfg := anim.DefaultConfig()
	if len(c.Spin) == 3 {
		cfg.Spin = math3d.V3(c.Spin[0], c.Spin[1], c.Spin[2])
	}
	cfg.MinDistance = c.Distance
	cfg.MaxDistance = c.Far
	cfg.DepthStep = c.DepthStep
	cfg.Ease = c.Ease
	cfg.SpinUp = c.SpinUp
	if c.Delay > 0 {
		cfg.FPS = max(1, int(time.Second/c.Delay))
	} else {
		cfg.FPS = c.FPS
	}
	return cfg
}

// parseSize parses "WxH".
func parseSize(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WxH", s)
	}
	w, err = strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: width: %w", s, err)
	}
	h, err = strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: height: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q: dimensions must be positive", s)
	}
	return w, h, nil
}
