package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/golang/geo/r3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/willbeason/lichtenberg/pkg/animate"
	"github.com/willbeason/lichtenberg/pkg/render"
	"github.com/willbeason/lichtenberg/pkg/tree"
)

const (
	flagFrames      = "frames"
	flagSeed        = "seed"
	flagConfig      = "config"
	flagOutDir      = "out-dir"
	flagWidth       = "width"
	flagHeight      = "height"
	flagOrbitSpeed  = "orbit-speed"
	flagMaxLayers   = "max-layers"
	flagFrameBudget = "frame-budget"
	flagVerbose     = "verbose"
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Grow Lichtenberg figures frame by frame and write each frame as a PNG",
		Args:  cobra.ExactArgs(0),
		RunE:  runCmd,
	}

	defaults := animate.DefaultConfig()
	cmd.Flags().Int(flagFrames, 120, "frames to render; 0 runs until interrupted")
	cmd.Flags().Int64(flagSeed, 0, "random seed; 0 picks one from the clock")
	cmd.Flags().String(flagConfig, "", "TOML file with growth parameters and an [animation] table")
	cmd.Flags().String(flagOutDir, "", "directory for frames; defaults to out/<timestamp>")
	cmd.Flags().Int(flagWidth, 1280, "image width in pixels")
	cmd.Flags().Int(flagHeight, 720, "image height in pixels")
	cmd.Flags().Float64(flagOrbitSpeed, 0.01, "camera rotation per frame, in radians")
	cmd.Flags().Int(flagMaxLayers, defaults.MaxLayers, "layers grown before a tree is replaced")
	cmd.Flags().Duration(flagFrameBudget, defaults.FrameBudget, "frame time after which the tree is replaced; 0 disables")
	cmd.Flags().Bool(flagVerbose, false, "log at debug level")

	return cmd
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// loadConfigs reads the config file, if any, then applies explicitly set
// flags on top.
func loadConfigs(cmd *cobra.Command) (tree.Config, animate.Config, error) {
	flags := cmd.Flags()
	treeCfg := tree.DefaultConfig()
	animCfg := animate.DefaultConfig()

	configPath, _ := flags.GetString(flagConfig)
	if configPath != "" {
		var err error
		treeCfg, err = tree.LoadConfig(configPath, treeCfg)
		if err != nil {
			return treeCfg, animCfg, err
		}
		animCfg, err = animate.LoadConfig(configPath, animCfg)
		if err != nil {
			return treeCfg, animCfg, err
		}
	}

	if flags.Changed(flagMaxLayers) {
		animCfg.MaxLayers, _ = flags.GetInt(flagMaxLayers)
	}
	if flags.Changed(flagFrameBudget) {
		animCfg.FrameBudget, _ = flags.GetDuration(flagFrameBudget)
	}

	return treeCfg, animCfg, animCfg.Validate()
}

func runCmd(cmd *cobra.Command, _ []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	flags := cmd.Flags()
	frames, _ := flags.GetInt(flagFrames)
	seed, _ := flags.GetInt64(flagSeed)
	outDir, _ := flags.GetString(flagOutDir)
	width, _ := flags.GetInt(flagWidth)
	height, _ := flags.GetInt(flagHeight)
	orbitSpeed, _ := flags.GetFloat64(flagOrbitSpeed)
	verbose, _ := flags.GetBool(flagVerbose)

	logger, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	treeCfg, animCfg, err := loadConfigs(cmd)
	if err != nil {
		return err
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// Shared by every generation.
	src := tree.NewSource(seed)

	factory := func(root r3.Vector) (*tree.Tree, error) {
		return tree.New(root, tree.WithConfig(treeCfg), tree.WithSource(src))
	}

	driver, err := animate.NewDriver(animCfg, factory, animate.WithLogger(logger))
	if err != nil {
		return err
	}

	if outDir == "" {
		outDir = filepath.Join("out", time.Now().Format("20060102150405"))
	}
	err = os.MkdirAll(outDir, os.ModePerm)
	if err != nil {
		return err
	}

	scene := render.DefaultScene(width, height)
	scene.Focus = animCfg.Root
	sink := func(_ context.Context, frame animate.Frame) error {
		img := scene.WithOrbit(float64(frame.Index)*orbitSpeed).Render(frame.Paths, frame.Light)
		path := filepath.Join(outDir, fmt.Sprintf("frame-%05d.png", frame.Index))

		logger.Debugw("frame",
			"index", frame.Index,
			"generation", frame.Generation,
			"layer", frame.Layer,
			"nodes", frame.Nodes,
			"paths", len(frame.Paths))

		return render.SavePNG(path, img)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Infow("animating", "seed", seed, "frames", frames, "out", outDir)
	err = driver.Run(ctx, frames, sink)
	if err != nil && ctx.Err() == nil {
		return err
	}

	logger.Infow("done", "out", outDir)
	return nil
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
