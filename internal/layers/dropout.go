package layers

import (
	"math/rand"

	"github.com/aitechroberts/deep-learning/internal/nn"
)

// Dropout zeroes activations with probability rate during training and
// rescales the survivors (inverted dropout), so inference needs no scaling.
type Dropout struct {
	activation
	rate     float64
	rng      *rand.Rand
	mask     []bool
	training bool
}

func NewDropout(rate float64, seed int64) *Dropout {
	return &Dropout{
		rate: rate,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (d *Dropout) SetTraining(training bool) { d.training = training }

func (d *Dropout) Forward(x nn.Vector) nn.Vector {
	if !d.training || d.rate <= 0 {
		d.mask = nil
		return x
	}

	if len(d.mask) != len(x) {
		d.mask = make([]bool, len(x))
	}

	keep := 1.0 - d.rate
	y := make(nn.Vector, len(x))
	for i, v := range x {
		d.mask[i] = d.rng.Float64() < keep
		if d.mask[i] {
			y[i] = v / keep
		}
	}
	return y
}

func (d *Dropout) Backward(grad nn.Vector) nn.Vector {
	if d.mask == nil {
		return grad
	}

	keep := 1.0 - d.rate
	dx := make(nn.Vector, len(grad))
	for i := range grad {
		if i < len(d.mask) && d.mask[i] {
			dx[i] = grad[i] / keep
		}
	}
	return dx
}
