package loss

import "github.com/aitechroberts/deep-learning/internal/nn"

// MSE is half the squared error, so the gradient is simply pred - target.
type MSE struct{}

func NewMSE() *MSE { return &MSE{} }

func (MSE) Name() string { return "mse" }

func (MSE) Forward(pred, target nn.Vector) float64 {
	sum := 0.0
	for i := range pred {
		d := pred[i]
		if i < len(target) {
			d -= target[i]
		}
		sum += d * d
	}
	return 0.5 * sum
}

func (MSE) Gradient(pred, target nn.Vector) nn.Vector {
	grad := make(nn.Vector, len(pred))
	for i := range pred {
		grad[i] = pred[i]
		if i < len(target) {
			grad[i] -= target[i]
		}
	}
	return grad
}
