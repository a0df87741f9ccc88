package metrics

import "github.com/aitechroberts/deep-learning/internal/nn"

// Confidence averages the probability the network assigns to its own argmax
// prediction. Values near 1/numClasses indicate the network is guessing.
type Confidence struct {
	name    string
	sum     float64
	samples int
}

func NewConfidence() *Confidence {
	return &Confidence{name: "confidence"}
}

func (c *Confidence) Name() string { return c.name }

func (c *Confidence) Observe(pred, target nn.Vector) {
	if len(pred) == 0 {
		return
	}
	c.sum += pred[pred.ArgMax()]
	c.samples++
}

func (c *Confidence) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *Confidence) Reset() {
	c.sum = 0
	c.samples = 0
}
