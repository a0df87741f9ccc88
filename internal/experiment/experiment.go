package experiment

import (
	"context"

	"github.com/aitechroberts/deep-learning/internal/nn"
)

type Config struct {
	Arch      string
	Dataset   string
	Loss      string
	Optimizer string
	Schedule  string
	Epochs    int
	BatchSize int
	ValSplit  float64
	Seed      int64
	Params    map[string]float64
}

// Experiment couples a configured trainer with its train/validation split.
type Experiment struct {
	cfg     Config
	trainer *nn.Trainer
	train   []nn.Sample
	val     []nn.Sample
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(trainer *nn.Trainer, train, val []nn.Sample, metrics []nn.Metric) error {
	if trainer == nil {
		return nn.ErrNotSetup
	}
	e.trainer = trainer
	e.train = train
	e.val = val
	for _, m := range metrics {
		trainer.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*nn.Result, error) {
	if e.trainer == nil {
		return nil, nn.ErrNotSetup
	}

	cfg := nn.DefaultConfig()
	cfg.Epochs = e.cfg.Epochs
	cfg.BatchSize = e.cfg.BatchSize
	cfg.Seed = e.cfg.Seed

	return e.trainer.Run(ctx, e.train, e.val, cfg)
}

// Trainer returns the underlying trainer for adding observers.
func (e *Experiment) Trainer() *nn.Trainer {
	return e.trainer
}
