package loss

import (
	"math"

	"github.com/aitechroberts/deep-learning/internal/nn"
)

const eps = 1e-12

// CrossEntropy expects predictions that already sum to one (a softmax output
// layer). Gradient returns -y/p, the derivative with respect to the
// predictions; pushed through the Softmax jacobian this reduces to p - y.
type CrossEntropy struct{}

func NewCrossEntropy() *CrossEntropy { return &CrossEntropy{} }

func (CrossEntropy) Name() string { return "cross_entropy" }

func (CrossEntropy) Forward(pred, target nn.Vector) float64 {
	sum := 0.0
	for i := range target {
		if i < len(pred) && target[i] > 0 {
			sum -= target[i] * math.Log(pred[i]+eps)
		}
	}
	return sum
}

func (CrossEntropy) Gradient(pred, target nn.Vector) nn.Vector {
	grad := make(nn.Vector, len(pred))
	for i := range pred {
		if i < len(target) && target[i] > 0 {
			grad[i] = -target[i] / (pred[i] + eps)
		}
	}
	return grad
}
