// Package anim advances the rotation and distance of the spinning object
// from one frame to the next.
package anim

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/tanema/gween/ease"
	"github.com/taigrr/spinmesh/pkg/math3d"
	"github.com/taigrr/spinmesh/pkg/render"
)

// State is the animation state of one frame. It is a plain value: Advance
// returns a new State and never mutates its input.
type State struct {
	X, Y, Z  float64 // Rotation angles in radians
	Distance float64 // Current push along +Z
	Velocity float64 // Distance velocity while easing toward Target
	Target   float64 // Distance the object is heading for
	Frame    int     // Frames advanced so far
}

// Pose returns the render pose of the state.
func (s State) Pose() render.Pose {
	return render.Pose{X: s.X, Y: s.Y, Z: s.Z, Distance: s.Distance}
}

// Config controls how the animation advances.
type Config struct {
	// Spin is the per-frame angle increment around X, Y and Z.
	Spin math3d.Vec3

	// MinDistance is the starting distance and where depth cycling wraps to.
	MinDistance float64
	// MaxDistance is where depth cycling wraps, normally the far plane.
	MaxDistance float64
	// DepthStep moves the target distance each frame. Zero keeps the object
	// at MinDistance.
	DepthStep float64

	// Ease makes the distance follow its target on a critically damped
	// spring instead of jumping to it.
	Ease bool
	// FPS is the frame rate the spring is tuned for.
	FPS int

	// SpinUp eases the spin in from rest over this many frames.
	SpinUp int
}

// DefaultConfig spins like the classic cube demo: π/30 around X and π/40
// around Y per frame, at distance 4.
func DefaultConfig() Config {
	return Config{
		Spin:        math3d.V3(math.Pi/30, math.Pi/40, 0),
		MinDistance: 4,
		MaxDistance: 100,
		FPS:         30,
	}
}

// Animator advances State values.
type Animator struct {
	cfg    Config
	spring harmonica.Spring
	spinUp ease.TweenFunc
}

// NewAnimator creates an animator for the given configuration.
func NewAnimator(cfg Config) *Animator {
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	return &Animator{
		cfg: cfg,
		// Frequency 6.0 = quick follow, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(cfg.FPS), 6.0, 1.0),
		spinUp: ease.OutCubic,
	}
}

// Config returns the animator's configuration.
func (a *Animator) Config() Config {
	return a.cfg
}

// Initial returns the state of the first frame.
func (a *Animator) Initial() State {
	return State{
		Distance: a.cfg.MinDistance,
		Target:   a.cfg.MinDistance,
	}
}

// Advance returns the state of the frame after s.
func (a *Animator) Advance(s State) State {
	k := a.spinScale(s.Frame)
	s.X += a.cfg.Spin.X * k
	s.Y += a.cfg.Spin.Y * k
	s.Z += a.cfg.Spin.Z * k

	if a.cfg.DepthStep != 0 {
		s.Target += a.cfg.DepthStep
		if s.Target > a.cfg.MaxDistance {
			s.Target = a.cfg.MinDistance
		}
	}

	if a.cfg.Ease {
		s.Distance, s.Velocity = a.spring.Update(s.Distance, s.Velocity, s.Target)
	} else {
		s.Distance, s.Velocity = s.Target, 0
	}

	s.Frame++
	return s
}

// spinScale returns the fraction of full spin speed at the given frame.
func (a *Animator) spinScale(frame int) float64 {
	if a.cfg.SpinUp <= 0 || frame >= a.cfg.SpinUp {
		return 1
	}
	return float64(a.spinUp(float32(frame+1), 0, 1, float32(a.cfg.SpinUp)))
}
