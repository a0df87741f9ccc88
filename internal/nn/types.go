package nn

import "math"

type Vector []float64

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func (v Vector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func (v Vector) Add(other Vector) Vector {
	result := make(Vector, len(v))
	for i := range v {
		if i < len(other) {
			result[i] = v[i] + other[i]
		} else {
			result[i] = v[i]
		}
	}
	return result
}

func (v Vector) Sub(other Vector) Vector {
	result := make(Vector, len(v))
	for i := range v {
		if i < len(other) {
			result[i] = v[i] - other[i]
		} else {
			result[i] = v[i]
		}
	}
	return result
}

func (v Vector) Scale(factor float64) Vector {
	result := make(Vector, len(v))
	for i := range v {
		result[i] = v[i] * factor
	}
	return result
}

// ArgMax returns the index of the largest component.
func (v Vector) ArgMax() int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

// Sample pairs an input vector with its one-hot target.
type Sample struct {
	X Vector
	Y Vector
}

type Layer interface {
	Forward(x Vector) Vector
	Backward(grad Vector) Vector
	Params() []Vector
	Grads() []Vector
	ZeroGrads()
}

// TrainAware layers behave differently in training and inference mode
// (dropout is the only current implementer).
type TrainAware interface {
	SetTraining(training bool)
}

type Loss interface {
	Name() string
	Forward(pred, target Vector) float64
	Gradient(pred, target Vector) Vector
}

type Optimizer interface {
	Name() string
	Step(params, grads []Vector, lr float64)
}

type Schedule interface {
	Name() string
	LearningRate(epoch int) float64
}

type Metric interface {
	Name() string
	Observe(pred, target Vector)
	Value() float64
	Reset()
}

type Observer interface {
	OnEpoch(stats EpochStats)
}

type Config struct {
	Epochs         int
	BatchSize      int
	Seed           int64
	Shuffle        bool
	ValidateParams bool
}

func DefaultConfig() Config {
	return Config{
		Epochs:         10,
		BatchSize:      32,
		Shuffle:        true,
		ValidateParams: true,
	}
}

// EpochStats is the per-epoch record appended to Result.History.
type EpochStats struct {
	Epoch     int
	LR        float64
	TrainLoss float64
	ValLoss   float64
	Metrics   map[string]float64
}

type Result struct {
	History   []EpochStats
	Metrics   map[string]float64
	EpochsRun int
	Errors    []error
}

// FinalTrainLoss returns the training loss of the last completed epoch.
func (r *Result) FinalTrainLoss() float64 {
	if len(r.History) == 0 {
		return math.NaN()
	}
	return r.History[len(r.History)-1].TrainLoss
}
