package optim

import (
	"math"

	"github.com/aitechroberts/deep-learning/internal/nn"
)

// Adam keeps first and second moment estimates per parameter with bias
// correction. Moment buffers are sized lazily on the first step.
type Adam struct {
	beta1, beta2, eps float64

	m, v []nn.Vector
	t    int
}

func NewAdam(beta1, beta2, eps float64) *Adam {
	return &Adam{beta1: beta1, beta2: beta2, eps: eps}
}

// NewAdamDefault uses the standard beta1=0.9, beta2=0.999, eps=1e-8.
func NewAdamDefault() *Adam {
	return NewAdam(0.9, 0.999, 1e-8)
}

func (Adam) Name() string { return "adam" }

func (a *Adam) ensureScratch(params []nn.Vector) {
	if len(a.m) == len(params) {
		return
	}
	a.m = make([]nn.Vector, len(params))
	a.v = make([]nn.Vector, len(params))
	for i, p := range params {
		a.m[i] = make(nn.Vector, len(p))
		a.v[i] = make(nn.Vector, len(p))
	}
	a.t = 0
}

func (a *Adam) Step(params, grads []nn.Vector, lr float64) {
	a.ensureScratch(params)
	a.t++

	c1 := 1 - math.Pow(a.beta1, float64(a.t))
	c2 := 1 - math.Pow(a.beta2, float64(a.t))

	for i := range params {
		p, g := params[i], grads[i]
		m, v := a.m[i], a.v[i]
		for j := range p {
			m[j] = a.beta1*m[j] + (1-a.beta1)*g[j]
			v[j] = a.beta2*v[j] + (1-a.beta2)*g[j]*g[j]

			mHat := m[j] / c1
			vHat := v[j] / c2

			p[j] -= lr * mHat / (math.Sqrt(vHat) + a.eps)
		}
	}
}
