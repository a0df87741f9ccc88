package metrics

import "github.com/aitechroberts/deep-learning/internal/nn"

// TopK counts a prediction as correct when the true class is among the k
// highest-scoring outputs.
type TopK struct {
	name    string
	k       int
	correct int
	samples int
}

func NewTopK(k int) *TopK {
	if k < 1 {
		k = 1
	}
	return &TopK{name: "top_k", k: k}
}

func (t *TopK) Name() string { return t.name }

func (t *TopK) Observe(pred, target nn.Vector) {
	t.samples++

	truth := target.ArgMax()
	if truth >= len(pred) {
		return
	}

	// Count outputs strictly greater than the true class score.
	higher := 0
	for i, v := range pred {
		if i != truth && v > pred[truth] {
			higher++
		}
	}
	if higher < t.k {
		t.correct++
	}
}

func (t *TopK) Value() float64 {
	if t.samples == 0 {
		return 0
	}
	return float64(t.correct) / float64(t.samples)
}

func (t *TopK) Reset() {
	t.correct = 0
	t.samples = 0
}
