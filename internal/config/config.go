package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultEpochs    = 10
	DefaultBatchSize = 32
	DefaultLR        = 0.1
	DefaultValSplit  = 0.2
	DefaultBeta1     = 0.9
	DefaultBeta2     = 0.999
	DefaultEps       = 1e-8
	DefaultMomentum  = 0.9
	DefaultGamma     = 0.95
	DefaultStepEvery = 10
	DefaultFactor    = 0.5
)

type Config struct {
	Arch            string          `yaml:"arch"`
	Dataset         string          `yaml:"dataset"`
	Loss            string          `yaml:"loss"`
	Optimizer       string          `yaml:"optimizer"`
	Schedule        string          `yaml:"schedule"`
	Epochs          int             `yaml:"epochs"`
	BatchSize       int             `yaml:"batch_size"`
	LR              float64         `yaml:"lr"`
	ValSplit        float64         `yaml:"val_split"`
	Seed            int64           `yaml:"seed"`
	OptimizerParams OptimizerConfig `yaml:"optimizer_params"`
	ScheduleParams  ScheduleConfig  `yaml:"schedule_params"`
}

type OptimizerConfig struct {
	Beta1    float64 `yaml:"beta1"`
	Beta2    float64 `yaml:"beta2"`
	Eps      float64 `yaml:"eps"`
	Momentum float64 `yaml:"momentum"`
}

type ScheduleConfig struct {
	Gamma     float64 `yaml:"gamma"`
	StepEvery int     `yaml:"step_every"`
	Factor    float64 `yaml:"factor"`
	MinLR     float64 `yaml:"min_lr"`
}

func DefaultConfig() *Config {
	return &Config{
		Arch:      "mlp",
		Dataset:   "blobs",
		Loss:      "cross_entropy",
		Optimizer: "sgd",
		Schedule:  "constant",
		Epochs:    DefaultEpochs,
		BatchSize: DefaultBatchSize,
		LR:        DefaultLR,
		ValSplit:  DefaultValSplit,
		OptimizerParams: OptimizerConfig{
			Beta1:    DefaultBeta1,
			Beta2:    DefaultBeta2,
			Eps:      DefaultEps,
			Momentum: DefaultMomentum,
		},
		ScheduleParams: ScheduleConfig{
			Gamma:     DefaultGamma,
			StepEvery: DefaultStepEvery,
			Factor:    DefaultFactor,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params flattens optimizer and schedule knobs into the registry's map shape.
func (c *Config) Params() map[string]float64 {
	return map[string]float64{
		"lr":         c.LR,
		"epochs":     float64(c.Epochs),
		"beta1":      c.OptimizerParams.Beta1,
		"beta2":      c.OptimizerParams.Beta2,
		"eps":        c.OptimizerParams.Eps,
		"momentum":   c.OptimizerParams.Momentum,
		"gamma":      c.ScheduleParams.Gamma,
		"step_every": float64(c.ScheduleParams.StepEvery),
		"factor":     c.ScheduleParams.Factor,
		"min_lr":     c.ScheduleParams.MinLR,
	}
}
