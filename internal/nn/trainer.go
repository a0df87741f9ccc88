package nn

import (
	"context"
	"fmt"
	"math/rand"
)

// Trainer runs the supervised training loop: shuffle, minibatch forward pass,
// loss gradient, backpropagation, optimizer step, repeated for each epoch.
type Trainer struct {
	net       *Network
	loss      Loss
	opt       Optimizer
	sched     Schedule
	metrics   []Metric
	observers []Observer
}

func NewTrainer(net *Network, loss Loss, opt Optimizer, sched Schedule) *Trainer {
	return &Trainer{
		net:       net,
		loss:      loss,
		opt:       opt,
		sched:     sched,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (t *Trainer) AddMetric(m Metric)     { t.metrics = append(t.metrics, m) }
func (t *Trainer) AddObserver(o Observer) { t.observers = append(t.observers, o) }

func (t *Trainer) Network() *Network { return t.net }

func (t *Trainer) Run(ctx context.Context, train, val []Sample, cfg Config) (*Result, error) {
	if err := t.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(train) == 0 {
		return nil, ErrEmptyDataset
	}

	result := &Result{
		History: make([]EpochStats, 0, cfg.Epochs),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	order := make([]int, len(train))
	for i := range order {
		order[i] = i
	}

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		lr := t.sched.LearningRate(epoch)

		if cfg.Shuffle {
			rng.Shuffle(len(order), func(i, j int) {
				order[i], order[j] = order[j], order[i]
			})
		}

		trainLoss, err := t.TrainEpoch(train, order, lr, cfg.BatchSize)
		if err != nil {
			result.Errors = append(result.Errors, &EpochError{Epoch: epoch, Wrapped: err})
			break
		}

		if cfg.ValidateParams && !t.net.ParamsValid() {
			result.Errors = append(result.Errors, &EpochError{Epoch: epoch, Wrapped: ErrDiverged})
			break
		}

		for _, m := range t.metrics {
			m.Reset()
		}
		evalSet := val
		if len(evalSet) == 0 {
			evalSet = train
		}
		valLoss := t.Evaluate(evalSet)

		stats := EpochStats{
			Epoch:     epoch,
			LR:        lr,
			TrainLoss: trainLoss,
			ValLoss:   valLoss,
			Metrics:   make(map[string]float64, len(t.metrics)),
		}
		for _, m := range t.metrics {
			stats.Metrics[m.Name()] = m.Value()
		}

		result.History = append(result.History, stats)
		result.EpochsRun++

		for _, obs := range t.observers {
			obs.OnEpoch(stats)
		}
	}

	if n := len(result.History); n > 0 {
		for name, val := range result.History[n-1].Metrics {
			result.Metrics[name] = val
		}
		result.Metrics["train_loss"] = result.History[n-1].TrainLoss
		result.Metrics["val_loss"] = result.History[n-1].ValLoss
	}

	return result, nil
}

// TrainEpoch performs one pass over the training set in minibatches, visiting
// samples in the given order, and returns the mean per-sample loss. Callers
// driving the loop themselves (the live view) use this directly.
func (t *Trainer) TrainEpoch(train []Sample, order []int, lr float64, batchSize int) (float64, error) {
	t.net.SetTraining(true)
	defer t.net.SetTraining(false)

	total := 0.0
	for start := 0; start < len(order); start += batchSize {
		end := start + batchSize
		if end > len(order) {
			end = len(order)
		}
		batch := order[start:end]

		t.net.ZeroGrads()
		for _, idx := range batch {
			s := train[idx]
			pred := t.net.Forward(s.X)
			if len(pred) != len(s.Y) {
				return 0, fmt.Errorf("prediction dim %d, target dim %d: %w",
					len(pred), len(s.Y), ErrDimensionMismatch)
			}
			total += t.loss.Forward(pred, s.Y)
			t.net.Backward(t.loss.Gradient(pred, s.Y))
		}

		// Mean gradient over the batch.
		scale := 1.0 / float64(len(batch))
		grads := t.net.Grads()
		for _, g := range grads {
			for i := range g {
				g[i] *= scale
			}
		}

		t.opt.Step(t.net.Params(), grads, lr)
	}

	return total / float64(len(order)), nil
}

// Evaluate computes the mean loss over samples in inference mode, feeding
// each prediction to the registered metrics.
func (t *Trainer) Evaluate(samples []Sample) float64 {
	if len(samples) == 0 {
		return 0
	}

	t.net.SetTraining(false)

	total := 0.0
	for _, s := range samples {
		pred := t.net.Forward(s.X)
		total += t.loss.Forward(pred, s.Y)
		for _, m := range t.metrics {
			m.Observe(pred, s.Y)
		}
	}
	return total / float64(len(samples))
}

func (t *Trainer) validateConfig(cfg Config) error {
	if cfg.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive, got %d", cfg.Epochs)
	}
	if cfg.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", cfg.BatchSize)
	}
	return nil
}
