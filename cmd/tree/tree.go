package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/golang/geo/r3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/willbeason/lichtenberg/pkg/render"
	"github.com/willbeason/lichtenberg/pkg/tree"
)

const (
	flagLayers  = "layers"
	flagSeed    = "seed"
	flagConfig  = "config"
	flagOut     = "out"
	flagWidth   = "width"
	flagHeight  = "height"
	flagOrbit   = "orbit"
	flagVerbose = "verbose"
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Grow a Lichtenberg figure and render it to a PNG",
		Args:  cobra.ExactArgs(0),
		RunE:  runCmd,
	}

	cmd.Flags().Int(flagLayers, 20, "number of layers to grow")
	cmd.Flags().Int64(flagSeed, 0, "random seed; 0 picks one from the clock")
	cmd.Flags().String(flagConfig, "", "TOML file overriding the growth parameters")
	cmd.Flags().String(flagOut, "", "output file; defaults to out/<timestamp>.png")
	cmd.Flags().Int(flagWidth, 2560, "image width in pixels")
	cmd.Flags().Int(flagHeight, 1440, "image height in pixels")
	cmd.Flags().Float64(flagOrbit, 0, "camera angle around the tree, in radians")
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

func runCmd(cmd *cobra.Command, _ []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	flags := cmd.Flags()
	layers, _ := flags.GetInt(flagLayers)
	seed, _ := flags.GetInt64(flagSeed)
	configPath, _ := flags.GetString(flagConfig)
	out, _ := flags.GetString(flagOut)
	width, _ := flags.GetInt(flagWidth)
	height, _ := flags.GetInt(flagHeight)
	orbit, _ := flags.GetFloat64(flagOrbit)
	verbose, _ := flags.GetBool(flagVerbose)

	logger, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfg := tree.DefaultConfig()
	if configPath != "" {
		cfg, err = tree.LoadConfig(configPath, cfg)
		if err != nil {
			return err
		}
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fractal, err := tree.New(r3.Vector{}, tree.WithConfig(cfg), tree.WithSource(tree.NewSource(seed)))
	if err != nil {
		return err
	}

	for i := 0; i < layers; i++ {
		fractal.GrowLayer()
	}

	paths := fractal.Paths()
	logger.Infow("grown",
		"seed", seed,
		"layers", fractal.Layers(),
		"nodes", fractal.Len(),
		"tips", len(fractal.BranchTips()),
		"paths", len(paths))

	scene := render.DefaultScene(width, height).WithOrbit(orbit)
	img := scene.Render(paths, fractal.AverageTipLocation())

	if out == "" {
		err = os.MkdirAll("out", os.ModePerm)
		if err != nil {
			return err
		}
		out = fmt.Sprintf("out/%s.png", time.Now().Format("20060102150405"))
	}

	err = render.SavePNG(out, img)
	if err != nil {
		return err
	}

	logger.Infow("wrote image", "path", out)
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
