package metrics

import "github.com/aitechroberts/deep-learning/internal/nn"

type Accuracy struct {
	name    string
	correct int
	samples int
}

func NewAccuracy() *Accuracy {
	return &Accuracy{name: "accuracy"}
}

func (a *Accuracy) Name() string { return a.name }

func (a *Accuracy) Observe(pred, target nn.Vector) {
	a.samples++
	if pred.ArgMax() == target.ArgMax() {
		a.correct++
	}
}

func (a *Accuracy) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return float64(a.correct) / float64(a.samples)
}

func (a *Accuracy) Reset() {
	a.correct = 0
	a.samples = 0
}
