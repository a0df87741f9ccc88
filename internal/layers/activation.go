package layers

import (
	"math"

	"github.com/aitechroberts/deep-learning/internal/nn"
)

// activation is the shared base for parameter-free layers.
type activation struct{}

func (activation) Params() []nn.Vector { return nil }
func (activation) Grads() []nn.Vector  { return nil }
func (activation) ZeroGrads()          {}

type ReLU struct {
	activation
	input nn.Vector
}

func NewReLU() *ReLU { return &ReLU{} }

func (r *ReLU) Forward(x nn.Vector) nn.Vector {
	r.input = x
	y := make(nn.Vector, len(x))
	for i, v := range x {
		if v > 0 {
			y[i] = v
		}
	}
	return y
}

func (r *ReLU) Backward(grad nn.Vector) nn.Vector {
	dx := make(nn.Vector, len(grad))
	for i := range grad {
		if i < len(r.input) && r.input[i] > 0 {
			dx[i] = grad[i]
		}
	}
	return dx
}

type LeakyReLU struct {
	activation
	alpha float64
	input nn.Vector
}

func NewLeakyReLU(alpha float64) *LeakyReLU { return &LeakyReLU{alpha: alpha} }

func (r *LeakyReLU) Forward(x nn.Vector) nn.Vector {
	r.input = x
	y := make(nn.Vector, len(x))
	for i, v := range x {
		if v > 0 {
			y[i] = v
		} else {
			y[i] = r.alpha * v
		}
	}
	return y
}

func (r *LeakyReLU) Backward(grad nn.Vector) nn.Vector {
	dx := make(nn.Vector, len(grad))
	for i := range grad {
		if i < len(r.input) && r.input[i] > 0 {
			dx[i] = grad[i]
		} else {
			dx[i] = r.alpha * grad[i]
		}
	}
	return dx
}

type Sigmoid struct {
	activation
	output nn.Vector
}

func NewSigmoid() *Sigmoid { return &Sigmoid{} }

func (s *Sigmoid) Forward(x nn.Vector) nn.Vector {
	y := make(nn.Vector, len(x))
	for i, v := range x {
		y[i] = 1.0 / (1.0 + math.Exp(-v))
	}
	s.output = y
	return y
}

func (s *Sigmoid) Backward(grad nn.Vector) nn.Vector {
	dx := make(nn.Vector, len(grad))
	for i := range grad {
		if i < len(s.output) {
			dx[i] = grad[i] * s.output[i] * (1 - s.output[i])
		}
	}
	return dx
}

type Tanh struct {
	activation
	output nn.Vector
}

func NewTanh() *Tanh { return &Tanh{} }

func (t *Tanh) Forward(x nn.Vector) nn.Vector {
	y := make(nn.Vector, len(x))
	for i, v := range x {
		y[i] = math.Tanh(v)
	}
	t.output = y
	return y
}

func (t *Tanh) Backward(grad nn.Vector) nn.Vector {
	dx := make(nn.Vector, len(grad))
	for i := range grad {
		if i < len(t.output) {
			dx[i] = grad[i] * (1 - t.output[i]*t.output[i])
		}
	}
	return dx
}

// Softmax converts logits to a probability distribution. Backward applies the
// full softmax jacobian, so it composes correctly with any loss; chained with
// cross-entropy the two reduce to the familiar p - y.
type Softmax struct {
	activation
	output nn.Vector
}

func NewSoftmax() *Softmax { return &Softmax{} }

func (s *Softmax) Forward(x nn.Vector) nn.Vector {
	y := make(nn.Vector, len(x))
	if len(x) == 0 {
		return y
	}

	// Shift by max for numerical stability.
	max := x[0]
	for _, v := range x[1:] {
		if v > max {
			max = v
		}
	}

	sum := 0.0
	for i, v := range x {
		y[i] = math.Exp(v - max)
		sum += y[i]
	}
	for i := range y {
		y[i] /= sum
	}

	s.output = y
	return y
}

func (s *Softmax) Backward(grad nn.Vector) nn.Vector {
	// dx_i = y_i * (g_i - <g, y>), the jacobian-vector product of softmax.
	dot := 0.0
	for i := range grad {
		if i < len(s.output) {
			dot += grad[i] * s.output[i]
		}
	}

	dx := make(nn.Vector, len(grad))
	for i := range grad {
		if i < len(s.output) {
			dx[i] = s.output[i] * (grad[i] - dot)
		}
	}
	return dx
}
