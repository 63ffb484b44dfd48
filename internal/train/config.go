package train

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Training modes.
const (
	ModeScalar = "scalar" // One tape node per number; MLP of Neurons
	ModeTensor = "tensor" // One tape node per matrix; Sequential of Linear layers
)

// Optimizer names.
const (
	OptimizerSGD  = "sgd"
	OptimizerAdam = "adam"
)

// Config describes one training run.
//
// Fields missing from a YAML file keep the value from DefaultConfig.
type Config struct {
	Mode      string      `yaml:"mode"`
	Epochs    int         `yaml:"epochs"`
	LR        float32     `yaml:"lr"`
	Optimizer string      `yaml:"optimizer"`
	Momentum  float32     `yaml:"momentum"` // SGD only
	Seed      uint64      `yaml:"seed"`
	Layers    []int       `yaml:"layers"`    // Output size of each layer; the last must be 1
	LogEvery  int         `yaml:"log_every"` // Report every N epochs; the last epoch is always reported
	Inputs    [][]float32 `yaml:"inputs"`
	Targets   []float32   `yaml:"targets"`
	Save      string      `yaml:"save"` // SafeTensors path for the trained parameters; empty skips saving
}

// DefaultConfig returns the four-sample toy problem trained by a
// 3 -> 4 -> 4 -> 1 network with plain gradient descent.
func DefaultConfig() Config {
	return Config{
		Mode:      ModeScalar,
		Epochs:    100,
		LR:        0.001,
		Optimizer: OptimizerSGD,
		Seed:      42,
		Layers:    []int{4, 4, 1},
		LogEvery:  1,
		Inputs: [][]float32{
			{2, 3, -1},
			{3, -1, 0.5},
			{0.5, 1, 1},
			{1, 1, -1},
		},
		Targets: []float32{1, -1, -1, -1},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig and validates the
// result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first problem with the configuration.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeScalar, ModeTensor:
	default:
		return errors.Errorf("unknown mode %q (want %q or %q)", c.Mode, ModeScalar, ModeTensor)
	}
	switch c.Optimizer {
	case OptimizerSGD, OptimizerAdam:
	default:
		return errors.Errorf("unknown optimizer %q (want %q or %q)", c.Optimizer, OptimizerSGD, OptimizerAdam)
	}

	if c.Epochs <= 0 {
		return errors.Errorf("epochs must be positive, got %d", c.Epochs)
	}
	if c.LR <= 0 {
		return errors.Errorf("lr must be positive, got %v", c.LR)
	}
	if c.Momentum < 0 || c.Momentum >= 1 {
		return errors.Errorf("momentum must be in [0, 1), got %v", c.Momentum)
	}
	if c.LogEvery <= 0 {
		return errors.Errorf("log_every must be positive, got %d", c.LogEvery)
	}

	if len(c.Layers) == 0 {
		return errors.New("at least one layer is required")
	}
	for i, size := range c.Layers {
		if size <= 0 {
			return errors.Errorf("layer %d: size must be positive, got %d", i, size)
		}
	}
	if last := c.Layers[len(c.Layers)-1]; last != 1 {
		return errors.Errorf("last layer must have a single output, got %d", last)
	}

	if len(c.Inputs) == 0 {
		return errors.New("dataset is empty")
	}
	if len(c.Inputs) != len(c.Targets) {
		return errors.Errorf("dataset has %d inputs but %d targets", len(c.Inputs), len(c.Targets))
	}
	features := len(c.Inputs[0])
	if features == 0 {
		return errors.New("input 0 has no features")
	}
	for i, x := range c.Inputs {
		if len(x) != features {
			return errors.Errorf("input %d has %d features, want %d", i, len(x), features)
		}
	}
	return nil
}

// Features returns the number of values in each input.
func (c Config) Features() int {
	if len(c.Inputs) == 0 {
		return 0
	}
	return len(c.Inputs[0])
}
