package tree

import (
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid tree config")

// GrowthRate is how far a new node grows upwards (+y) from its parent.
//
// When Min equals Max the rate is fixed and resolving it consumes no random
// draw. Otherwise each new node draws a length uniformly from [Min, Max).
type GrowthRate struct {
	Min float64 `toml:"min"`
	Max float64 `toml:"max"`
}

// Fixed returns a GrowthRate that always displaces by length.
func Fixed(length float64) GrowthRate {
	return GrowthRate{Min: length, Max: length}
}

// Between returns a GrowthRate sampled uniformly between low and high.
func Between(low, high float64) GrowthRate {
	return GrowthRate{Min: low, Max: high}
}

func (g GrowthRate) IsFixed() bool {
	return g.Min == g.Max
}

// Resolve returns the length for one new node.
func (g GrowthRate) Resolve(src Source) float64 {
	if g.IsFixed() {
		return g.Min
	}
	return src.Float64()*(g.Max-g.Min) + g.Min
}

// Config holds the parameters of a Tree's growth.
type Config struct {
	// GrowthRate is the vertical displacement of each new node.
	GrowthRate GrowthRate `toml:"growth_rate"`

	// SpreadRange is how far nodes can spread horizontally on either side
	// (±x, ±z) of their parent.
	SpreadRange float64 `toml:"spread_range"`

	// BranchFactor is the probability that a tip spawns another child beyond
	// the ones it already spawned this layer.
	BranchFactor float64 `toml:"branch_factor"`

	// MaxChildBranches caps the children a single tip spawns in one layer.
	MaxChildBranches int `toml:"max_child_branches"`
}

func DefaultConfig() Config {
	return Config{
		GrowthRate:       Fixed(5),
		SpreadRange:      5,
		BranchFactor:     0.5,
		MaxChildBranches: 3,
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var err error

	if !finite(c.GrowthRate.Min) || !finite(c.GrowthRate.Max) {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidConfig,
			"growth rate [%v, %v] is not finite", c.GrowthRate.Min, c.GrowthRate.Max))
	} else if c.GrowthRate.Min > c.GrowthRate.Max {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidConfig,
			"growth rate min %v exceeds max %v", c.GrowthRate.Min, c.GrowthRate.Max))
	}

	if !finite(c.SpreadRange) || c.SpreadRange < 0 {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidConfig,
			"spread range %v must be a non-negative number", c.SpreadRange))
	}

	// Negated so NaN fails too.
	if !(c.BranchFactor >= 0 && c.BranchFactor <= 1) {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidConfig,
			"branch factor %v outside [0, 1]", c.BranchFactor))
	}

	if c.MaxChildBranches < 1 {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidConfig,
			"max child branches %d is less than 1", c.MaxChildBranches))
	}

	return err
}

// DecodeConfig overlays the TOML document data on base. Keys missing from
// data keep their value from base.
func DecodeConfig(data []byte, base Config) (Config, error) {
	cfg := base
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return base, errors.Wrap(err, "decoding tree config")
	}

	if err := cfg.Validate(); err != nil {
		return base, err
	}

	return cfg, nil
}

// LoadConfig reads a TOML file and overlays it on base.
func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, errors.Wrapf(err, "reading tree config %q", path)
	}

	return DecodeConfig(data, base)
}

// An Option overrides part of a Tree's configuration.
type Option func(*Tree)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(t *Tree) {
		t.config = cfg
	}
}

func WithGrowthRate(g GrowthRate) Option {
	return func(t *Tree) {
		t.config.GrowthRate = g
	}
}

func WithSpreadRange(spread float64) Option {
	return func(t *Tree) {
		t.config.SpreadRange = spread
	}
}

func WithBranchFactor(p float64) Option {
	return func(t *Tree) {
		t.config.BranchFactor = p
	}
}

func WithMaxChildBranches(n int) Option {
	return func(t *Tree) {
		t.config.MaxChildBranches = n
	}
}

// WithSource sets the Source of every random draw the tree makes.
func WithSource(src Source) Option {
	return func(t *Tree) {
		t.src = src
	}
}
