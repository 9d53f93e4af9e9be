package animate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	data := []byte(`
branch_factor = 0.4

[animation]
max_layers = 12
frame_budget = "250ms"
root = [0.0, -5.0, 0.0]
`)

	cfg, err := DecodeConfig(data, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.MaxLayers)
	assert.Equal(t, 250*time.Millisecond, cfg.FrameBudget)
	assert.Equal(t, r3.Vector{Y: -5}, cfg.Root)
}

func TestDecodeConfig_KeepsBase(t *testing.T) {
	cfg, err := DecodeConfig([]byte(`branch_factor = 0.4`), DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDecodeConfig_Invalid(t *testing.T) {
	tcs := map[string]string{
		"bad duration": "[animation]\nframe_budget = \"soon\"",
		"short root":   "[animation]\nroot = [1.0, 2.0]",
		"no layers":    "[animation]\nmax_layers = 0",
		"negative":     "[animation]\nframe_budget = \"-1s\"",
	}

	for name, data := range tcs {
		t.Run(name, func(t *testing.T) {
			cfg, err := DecodeConfig([]byte(data), DefaultConfig())
			assert.Error(t, err)
			assert.Equal(t, DefaultConfig(), cfg)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lichtenberg.toml")
	require.NoError(t, os.WriteFile(path, []byte("[animation]\nmax_layers = 7\n"), 0o600))

	cfg, err := LoadConfig(path, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxLayers)
}
