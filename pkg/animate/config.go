package animate

import (
	"os"
	"time"

	"github.com/golang/geo/r3"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

var ErrInvalidConfig = errors.New("invalid animation config")

type Config struct {
	// MaxLayers is how many layers a tree grows before it is replaced.
	MaxLayers int

	// FrameBudget is the longest a frame may take before the tree is
	// replaced. Zero disables the check.
	FrameBudget time.Duration

	// Root is where every tree is rooted.
	Root r3.Vector
}

func DefaultConfig() Config {
	return Config{
		MaxLayers:   40,
		FrameBudget: 100 * time.Millisecond,
	}
}

func (c Config) Validate() error {
	var err error
	if c.MaxLayers < 1 {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidConfig, "max layers %d is less than 1", c.MaxLayers))
	}
	if c.FrameBudget < 0 {
		err = multierr.Append(err, errors.Wrapf(ErrInvalidConfig, "frame budget %v is negative", c.FrameBudget))
	}
	return err
}

// file is the [animation] table of a config file.
type file struct {
	Animation struct {
		MaxLayers   *int       `toml:"max_layers"`
		FrameBudget *string    `toml:"frame_budget"`
		Root        *[]float64 `toml:"root"`
	} `toml:"animation"`
}

// DecodeConfig overlays the [animation] table of the TOML document data on
// base. frame_budget is a duration string such as "120ms"; root is [x, y, z].
func DecodeConfig(data []byte, base Config) (Config, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return base, errors.Wrap(err, "decoding animation config")
	}

	cfg := base
	a := f.Animation
	if a.MaxLayers != nil {
		cfg.MaxLayers = *a.MaxLayers
	}
	if a.FrameBudget != nil {
		budget, err := time.ParseDuration(*a.FrameBudget)
		if err != nil {
			return base, errors.Wrap(err, "parsing frame_budget")
		}
		cfg.FrameBudget = budget
	}
	if a.Root != nil {
		root := *a.Root
		if len(root) != 3 {
			return base, errors.Wrapf(ErrInvalidConfig, "root has %d coordinates, want 3", len(root))
		}
		cfg.Root = r3.Vector{X: root[0], Y: root[1], Z: root[2]}
	}

	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, errors.Wrapf(err, "reading animation config %q", path)
	}
	return DecodeConfig(data, base)
}
