package experiment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aitechroberts/deep-learning/internal/dataset"
	"github.com/aitechroberts/deep-learning/internal/layers"
	"github.com/aitechroberts/deep-learning/internal/loss"
	"github.com/aitechroberts/deep-learning/internal/metrics"
	"github.com/aitechroberts/deep-learning/internal/nn"
	"github.com/aitechroberts/deep-learning/internal/optim"
	"github.com/aitechroberts/deep-learning/internal/schedule"
)

type Registry struct {
	archs      map[string]func(in, out int, seed int64) *nn.Network
	losses     map[string]func() nn.Loss
	optimizers map[string]func(params map[string]float64) nn.Optimizer
	schedules  map[string]func(params map[string]float64) nn.Schedule
}

func NewRegistry() *Registry {
	r := &Registry{
		archs:      make(map[string]func(int, int, int64) *nn.Network),
		losses:     make(map[string]func() nn.Loss),
		optimizers: make(map[string]func(map[string]float64) nn.Optimizer),
		schedules:  make(map[string]func(map[string]float64) nn.Schedule),
	}

	r.archs["logreg"] = func(in, out int, seed int64) *nn.Network {
		return nn.NewNetwork(
			layers.NewDenseXavier(in, out, seed),
			layers.NewSoftmax(),
		)
	}
	r.archs["mlp"] = func(in, out int, seed int64) *nn.Network {
		return nn.NewNetwork(
			layers.NewDense(in, 64, seed),
			layers.NewReLU(),
			layers.NewDense(64, 32, seed+1),
			layers.NewReLU(),
			layers.NewDenseXavier(32, out, seed+2),
			layers.NewSoftmax(),
		)
	}
	r.archs["mlp-dropout"] = func(in, out int, seed int64) *nn.Network {
		return nn.NewNetwork(
			layers.NewDense(in, 128, seed),
			layers.NewReLU(),
			layers.NewDropout(0.3, seed+10),
			layers.NewDense(128, 64, seed+1),
			layers.NewReLU(),
			layers.NewDropout(0.2, seed+11),
			layers.NewDenseXavier(64, out, seed+2),
			layers.NewSoftmax(),
		)
	}
	r.archs["mlp-tanh"] = func(in, out int, seed int64) *nn.Network {
		return nn.NewNetwork(
			layers.NewDenseXavier(in, 64, seed),
			layers.NewTanh(),
			layers.NewDenseXavier(64, out, seed+1),
			layers.NewSoftmax(),
		)
	}

	r.losses["cross_entropy"] = func() nn.Loss { return loss.NewCrossEntropy() }
	r.losses["mse"] = func() nn.Loss { return loss.NewMSE() }

	r.optimizers["sgd"] = func(params map[string]float64) nn.Optimizer {
		return optim.NewSGD()
	}
	r.optimizers["momentum"] = func(params map[string]float64) nn.Optimizer {
		mu := params["momentum"]
		if mu == 0 {
			mu = 0.9
		}
		return optim.NewMomentum(mu)
	}
	r.optimizers["adam"] = func(params map[string]float64) nn.Optimizer {
		beta1 := params["beta1"]
		if beta1 == 0 {
			beta1 = 0.9
		}
		beta2 := params["beta2"]
		if beta2 == 0 {
			beta2 = 0.999
		}
		eps := params["eps"]
		if eps == 0 {
			eps = 1e-8
		}
		return optim.NewAdam(beta1, beta2, eps)
	}

	r.schedules["constant"] = func(params map[string]float64) nn.Schedule {
		return schedule.NewConstant(params["lr"])
	}
	r.schedules["step"] = func(params map[string]float64) nn.Schedule {
		every := int(params["step_every"])
		if every == 0 {
			every = 10
		}
		factor := params["factor"]
		if factor == 0 {
			factor = 0.5
		}
		return schedule.NewStepDecay(params["lr"], factor, every)
	}
	r.schedules["exp"] = func(params map[string]float64) nn.Schedule {
		gamma := params["gamma"]
		if gamma == 0 {
			gamma = 0.95
		}
		return schedule.NewExponential(params["lr"], gamma)
	}
	r.schedules["cosine"] = func(params map[string]float64) nn.Schedule {
		return schedule.NewCosine(params["lr"], params["min_lr"], int(params["epochs"]))
	}

	return r
}

func (r *Registry) GetArch(name string, in, out int, seed int64) (*nn.Network, error) {
	fn, ok := r.archs[name]
	if !ok {
		return nil, fmt.Errorf("unknown architecture: %s (available: %s)",
			name, strings.Join(r.ListArchs(), ", "))
	}
	return fn(in, out, seed), nil
}

func (r *Registry) GetLoss(name string) (nn.Loss, error) {
	fn, ok := r.losses[name]
	if !ok {
		return nil, fmt.Errorf("unknown loss: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetOptimizer(name string, params map[string]float64) (nn.Optimizer, error) {
	fn, ok := r.optimizers[name]
	if !ok {
		return nil, fmt.Errorf("unknown optimizer: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) GetSchedule(name string, params map[string]float64) (nn.Schedule, error) {
	fn, ok := r.schedules[name]
	if !ok {
		return nil, fmt.Errorf("unknown schedule: %s", name)
	}
	return fn(params), nil
}

// ListArchs returns the registered architecture names in stable order.
func (r *Registry) ListArchs() []string {
	names := make([]string, 0, len(r.archs))
	for name := range r.archs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetDataset loads a dataset by name. "blobs" is generated in memory;
// "mnist" and "mnist-test" are read from IDX files under dataDir.
func (r *Registry) GetDataset(name, dataDir string, seed int64) (*dataset.Dataset, error) {
	switch name {
	case "blobs":
		return dataset.Blobs(4, 250, 16, 0.8, seed)
	case "mnist":
		return dataset.LoadMNIST(dataDir, "train")
	case "mnist-test":
		return dataset.LoadMNIST(dataDir, "test")
	default:
		return nil, fmt.Errorf("unknown dataset: %s", name)
	}
}

// DefaultMetrics returns the metric set attached to every training run.
func (r *Registry) DefaultMetrics() []nn.Metric {
	return []nn.Metric{
		metrics.NewAccuracy(),
		metrics.NewTopK(3),
		metrics.NewConfidence(),
	}
}
