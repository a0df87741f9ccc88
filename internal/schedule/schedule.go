package schedule

import "math"

// Constant returns the same learning rate every epoch.
type Constant struct {
	lr float64
}

func NewConstant(lr float64) *Constant { return &Constant{lr: lr} }

func (Constant) Name() string { return "constant" }

func (c *Constant) LearningRate(epoch int) float64 { return c.lr }

// StepDecay multiplies the rate by factor every `every` epochs.
type StepDecay struct {
	base   float64
	factor float64
	every  int
}

func NewStepDecay(base, factor float64, every int) *StepDecay {
	if every <= 0 {
		every = 1
	}
	return &StepDecay{base: base, factor: factor, every: every}
}

func (StepDecay) Name() string { return "step" }

func (s *StepDecay) LearningRate(epoch int) float64 {
	return s.base * math.Pow(s.factor, float64(epoch/s.every))
}

// Exponential decays the rate by gamma each epoch.
type Exponential struct {
	base  float64
	gamma float64
}

func NewExponential(base, gamma float64) *Exponential {
	return &Exponential{base: base, gamma: gamma}
}

func (Exponential) Name() string { return "exp" }

func (e *Exponential) LearningRate(epoch int) float64 {
	return e.base * math.Pow(e.gamma, float64(epoch))
}

// Cosine anneals from base to min over total epochs, then holds min.
type Cosine struct {
	base  float64
	min   float64
	total int
}

func NewCosine(base, min float64, total int) *Cosine {
	if total <= 0 {
		total = 1
	}
	return &Cosine{base: base, min: min, total: total}
}

func (Cosine) Name() string { return "cosine" }

func (c *Cosine) LearningRate(epoch int) float64 {
	if epoch >= c.total {
		return c.min
	}
	progress := float64(epoch) / float64(c.total)
	return c.min + 0.5*(c.base-c.min)*(1+math.Cos(math.Pi*progress))
}
