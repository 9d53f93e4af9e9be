// Package animate drives a Lichtenberg tree frame by frame: one growth layer
// and one path extraction per frame, with the tree discarded and regrown
// when it reaches its final layer or a frame runs over budget.
package animate

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/willbeason/lichtenberg/pkg/tree"
)

// A Factory builds a fresh tree rooted at root.
type Factory func(root r3.Vector) (*tree.Tree, error)

// A Frame is the state of the tree after one growth layer.
type Frame struct {
	// Index counts frames since the Driver started, from 0.
	Index int

	// Generation counts the trees built so far, from 1.
	Generation int

	// Layer is the number of layers grown on the current tree.
	Layer int

	Nodes int
	Tips  int

	Paths []tree.Path

	// Light is where the tip light goes: the average tip location.
	Light r3.Vector
}

// A Sink consumes frames, typically by rendering them.
type Sink func(ctx context.Context, frame Frame) error

type Driver struct {
	cfg     Config
	factory Factory
	clock   clock.Clock
	logger  *zap.SugaredLogger

	tree       *tree.Tree
	generation int
	frames     int
}

type Option func(*Driver)

func WithClock(c clock.Clock) Option {
	return func(d *Driver) {
		d.clock = c
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

func NewDriver(cfg Config, factory Factory, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, errors.New("animate: nil tree factory")
	}

	d := &Driver{
		cfg:     cfg,
		factory: factory,
		clock:   clock.New(),
		logger:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// Tree is the tree currently growing, or nil before the first frame and
// right after a reset.
func (d *Driver) Tree() *tree.Tree {
	return d.tree
}

// Reset discards the current tree. The next frame starts a new one.
func (d *Driver) Reset() {
	d.tree = nil
}

func (d *Driver) rebuild() error {
	t, err := d.factory(d.cfg.Root)
	if err != nil {
		return errors.Wrap(err, "building tree")
	}

	d.tree = t
	d.generation++
	d.logger.Debugw("new tree", "generation", d.generation, "root", d.cfg.Root)

	return nil
}

// Step grows the tree by one layer and extracts its paths. A tree that has
// already grown MaxLayers layers is replaced first.
func (d *Driver) Step() (Frame, error) {
	if d.tree == nil || d.tree.Layers() >= d.cfg.MaxLayers {
		if err := d.rebuild(); err != nil {
			return Frame{}, err
		}
	}

	d.tree.GrowLayer()

	frame := Frame{
		Index:      d.frames,
		Generation: d.generation,
		Layer:      d.tree.Layers(),
		Nodes:      d.tree.Len(),
		Tips:       len(d.tree.BranchTips()),
		Paths:      d.tree.Paths(),
		Light:      d.tree.AverageTipLocation(),
	}
	d.frames++

	return frame, nil
}

// Run steps the driver and hands each frame to sink until frames frames are
// done, or until ctx is done if frames <= 0.
//
// A frame whose growth, traversal and sink together take longer than
// FrameBudget discards the tree.
func (d *Driver) Run(ctx context.Context, frames int, sink Sink) error {
	for i := 0; frames <= 0 || i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := d.clock.Now()

		frame, err := d.Step()
		if err != nil {
			return err
		}

		if err := sink(ctx, frame); err != nil {
			return errors.Wrapf(err, "frame %d", frame.Index)
		}

		elapsed := d.clock.Since(start)
		if d.cfg.FrameBudget > 0 && elapsed > d.cfg.FrameBudget {
			d.logger.Warnw("frame over budget, restarting tree",
				"frame", frame.Index,
				"layer", frame.Layer,
				"nodes", frame.Nodes,
				"elapsed", elapsed.Round(time.Millisecond),
				"budget", d.cfg.FrameBudget)
			d.Reset()
		}
	}

	return nil
}
