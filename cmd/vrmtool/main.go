// vrmtool is a CLI utility for inspecting VRM avatars and their spring bones.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-vrm/internal/logger"
	"github.com/Faultbox/midgard-vrm/internal/report"
	"github.com/Faultbox/midgard-vrm/pkg/avatar"
	"github.com/Faultbox/midgard-vrm/pkg/vrm"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "springs", "sb":
		cmdSprings(args)
	case "simulate", "sim":
		cmdSimulate(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`vrmtool - VRM avatar utility

Usage:
  vrmtool <command> [options] <file.vrm>

Commands:
  info <file.vrm>                 Show meta, humanoid, blend shapes and materials
  springs <file.vrm>              Show spring bone groups, chains and colliders
  simulate [-n N] [-dt MS] [-every K] <file.vrm>
                                  Run the spring bones and print tail positions

Common options:
  -log LEVEL                      Log level (debug, info, warn, error)

Examples:
  vrmtool info AliciaSolid.vrm
  vrmtool springs -log debug AliciaSolid.vrm
  vrmtool simulate -n 120 -dt 16.6 AliciaSolid.vrm`)
}

// open loads the model named by the flag set's first argument. The flag set
// must already be parsed.
func open(fs *flag.FlagSet, level string, usage string, opts ...avatar.Option) (*vrm.Model, *avatar.Manager) {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: vrmtool "+usage)
		os.Exit(1)
	}

	if err := logger.InitTool(level); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	model, err := vrm.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("model loaded", zap.String("path", model.Path), zap.Int("nodes", model.Scene.Len()))

	opts = append([]avatar.Option{avatar.WithLogger(logger.Named("avatar"))}, opts...)
	return model, avatar.New(model, opts...)
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	level := fs.String("log", "error", "Log level")
	fs.Parse(args)

	model, m := open(fs, *level, "info <file.vrm>")
	defer logger.Sync()

	report.Source(os.Stdout, model)
	report.Info(os.Stdout, m)
}

func cmdSprings(args []string) {
	fs := flag.NewFlagSet("springs", flag.ExitOnError)
	level := fs.String("log", "error", "Log level")
	fs.Parse(args)

	_, m := open(fs, *level, "springs <file.vrm>")
	defer logger.Sync()

	report.Springs(os.Stdout, m)
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	level := fs.String("log", "error", "Log level")
	frames := fs.Int("n", 60, "Number of frames")
	dt := fs.Float64("dt", 1000.0/60, "Frame time in milliseconds")
	every := fs.Int("every", 0, "Also print tails every K frames (0 = last frame only)")
	sequential := fs.Bool("sequential", false, "Update chains on one goroutine")
	fs.Parse(args)

	opts := report.SimulateOptions{Frames: *frames, DeltaMs: float32(*dt), Every: *every}
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var avatarOpts []avatar.Option
	if *sequential {
		avatarOpts = append(avatarOpts, avatar.WithSequential())
	}
	_, m := open(fs, *level, "simulate [-n N] [-dt MS] [-every K] <file.vrm>", avatarOpts...)
	defer logger.Sync()
	defer m.Dispose()

	if err := report.Simulate(os.Stdout, m, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
