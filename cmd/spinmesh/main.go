// spinmesh - Spinning 3D meshes in your terminal
// Renders a rotating triangle mesh with a depth-buffered software rasterizer.
//
// Input is a text geometry file ("width height count" or "count" header
// followed by "x y z color" records), a GLB/GLTF model, or the built-in
// cube with --demo.
//
// Controls (--ui tui):
//
//	Space  - Pause/resume
//	X      - Toggle wireframe
//	Esc/Q  - Quit
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// errUsage is returned when no geometry is given.
var errUsage = errors.New("a geometry file is required unless --demo is set")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := DefaultConfig()

	cmd := &cobra.Command{
		Use:   "spinmesh [flags] <geometry.txt|model.glb>",
		Short: "Render a spinning 3D mesh in the terminal",
		Long: "spinmesh rasterizes a rotating triangle mesh into a character grid\n" +
			"using perspective projection, back-face culling, Lambert shading\n" +
			"and a depth buffer.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("too many arguments")
			}
			if len(args) == 0 && !cfg.Demo {
				return errUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.ShadeSet = cmd.Flags().Changed("shade")
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg.LogLevel)
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			cmd.SilenceUsage = true
			return run(cmd.Context(), cfg, path, logger)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Mode, "mode", cfg.Mode, "termination policy: fixed (run --frames frames) or loop (until interrupted)")
	f.IntVar(&cfg.Frames, "frames", cfg.Frames, "frames to render in fixed mode")
	f.IntVar(&cfg.FPS, "fps", cfg.FPS, "target frames per second")
	f.DurationVar(&cfg.Delay, "delay", cfg.Delay, "fixed delay between frames (overrides --fps)")
	f.BoolVar(&cfg.Shade, "shade", cfg.Shade, "light the mesh (default: on for shaded geometry files)")
	f.BoolVar(&cfg.Wireframe, "wireframe", cfg.Wireframe, "draw triangle edges instead of filling")
	f.BoolVar(&cfg.Axes, "axes", cfg.Axes, "draw the object's axes")
	f.BoolVar(&cfg.Perspective, "perspective-color", cfg.Perspective, "interpolate color perspective-correct instead of screen-linear")
	f.StringVar(&cfg.Projection, "projection", cfg.Projection, "perspective or orthographic")
	f.Float64Var(&cfg.FOV, "fov", cfg.FOV, "vertical field of view in degrees")
	f.Float64Var(&cfg.Near, "near", cfg.Near, "near plane distance")
	f.Float64Var(&cfg.Far, "far", cfg.Far, "far plane distance")
	f.Float64Var(&cfg.Distance, "distance", cfg.Distance, "distance from the camera to the object")
	f.Float64Var(&cfg.DepthStep, "depth-step", cfg.DepthStep, "per-frame distance increase, wrapping at the far plane")
	f.BoolVar(&cfg.Ease, "ease", cfg.Ease, "ease distance changes with a spring")
	f.IntVar(&cfg.SpinUp, "spin-up", cfg.SpinUp, "frames over which the spin eases in from rest")
	f.Float64SliceVar(&cfg.Spin, "spin", cfg.Spin, "per-frame rotation around x,y,z in radians")
	f.StringVar(&cfg.Size, "size", cfg.Size, "framebuffer size WxH (default: from the geometry file)")
	f.BoolVar(&cfg.Fit, "fit", cfg.Fit, "size the framebuffer to the terminal")
	f.BoolVar(&cfg.FlipY, "flip-y", cfg.FlipY, "draw +Y at the top of the screen")
	f.StringVar(&cfg.UI, "ui", cfg.UI, "output: plain (ANSI frames on stdout) or tui (full-screen)")
	f.StringVar(&cfg.Snapshot, "snapshot", cfg.Snapshot, "write the last frame to this PNG file")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	f.BoolVar(&cfg.Demo, "demo", cfg.Demo, "render the built-in cube")

	return cmd
}

// newLogger returns a stderr logger so stdout stays free for frames.
func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "spinmesh",
		ReportTimestamp: true,
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
