package train

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, ModeScalar, cfg.Mode)
	assert.Equal(t, 100, cfg.Epochs)
	assert.Equal(t, []int{4, 4, 1}, cfg.Layers)
	assert.Equal(t, 3, cfg.Features())
	assert.Len(t, cfg.Inputs, 4)
	assert.Equal(t, []float32{1, -1, -1, -1}, cfg.Targets)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
mode: tensor
epochs: 20
lr: 0.05
optimizer: adam
layers: [8, 1]
inputs:
  - [1, 2]
  - [3, 4]
targets: [0.5, -0.5]
`))
	require.NoError(t, err)

	assert.Equal(t, ModeTensor, cfg.Mode)
	assert.Equal(t, 20, cfg.Epochs)
	assert.InDelta(t, 0.05, float64(cfg.LR), 1e-7)
	assert.Equal(t, OptimizerAdam, cfg.Optimizer)
	assert.Equal(t, []int{8, 1}, cfg.Layers)
	assert.Equal(t, [][]float32{{1, 2}, {3, 4}}, cfg.Inputs)
	assert.Equal(t, 2, cfg.Features())

	// Unset fields keep their defaults.
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 1, cfg.LogEvery)
}

func TestParseConfig_Empty(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfig_Malformed(t *testing.T) {
	_, err := ParseConfig([]byte("epochs: [1, 2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"mode", func(c *Config) { c.Mode = "gpu" }, `unknown mode "gpu"`},
		{"optimizer", func(c *Config) { c.Optimizer = "rmsprop" }, `unknown optimizer "rmsprop"`},
		{"epochs", func(c *Config) { c.Epochs = 0 }, "epochs must be positive"},
		{"lr", func(c *Config) { c.LR = -1 }, "lr must be positive"},
		{"momentum", func(c *Config) { c.Momentum = 1 }, "momentum must be in [0, 1)"},
		{"log every", func(c *Config) { c.LogEvery = 0 }, "log_every must be positive"},
		{"no layers", func(c *Config) { c.Layers = nil }, "at least one layer"},
		{"zero layer", func(c *Config) { c.Layers = []int{4, 0, 1} }, "layer 1: size must be positive"},
		{"wide output", func(c *Config) { c.Layers = []int{4, 2} }, "single output"},
		{"empty dataset", func(c *Config) { c.Inputs, c.Targets = nil, nil }, "dataset is empty"},
		{"target count", func(c *Config) { c.Targets = c.Targets[:3] }, "4 inputs but 3 targets"},
		{"no features", func(c *Config) { c.Inputs = [][]float32{{}, {}, {}, {}} }, "no features"},
		{"ragged", func(c *Config) { c.Inputs[2] = []float32{1} }, "input 2 has 1 features, want 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.yaml")
	require.NoError(t, os.WriteFile(path, []byte("epochs: 5\nseed: 7\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Epochs)
	assert.Equal(t, uint64(7), cfg.Seed)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("epochs: -3\n"), 0o600))
	_, err = LoadConfig(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
	assert.Contains(t, err.Error(), "epochs must be positive")
}
