package optim

import "github.com/aitechroberts/deep-learning/internal/nn"

// SGD is plain stochastic gradient descent: p -= lr * g.
type SGD struct{}

func NewSGD() *SGD { return &SGD{} }

func (SGD) Name() string { return "sgd" }

func (SGD) Step(params, grads []nn.Vector, lr float64) {
	for i := range params {
		p, g := params[i], grads[i]
		for j := range p {
			p[j] -= lr * g[j]
		}
	}
}

// Momentum accumulates a velocity per parameter: v = mu*v + g; p -= lr*v.
type Momentum struct {
	mu       float64
	velocity []nn.Vector
}

func NewMomentum(mu float64) *Momentum {
	return &Momentum{mu: mu}
}

func (Momentum) Name() string { return "momentum" }

func (m *Momentum) ensureScratch(params []nn.Vector) {
	if len(m.velocity) == len(params) {
		return
	}
	m.velocity = make([]nn.Vector, len(params))
	for i, p := range params {
		m.velocity[i] = make(nn.Vector, len(p))
	}
}

func (m *Momentum) Step(params, grads []nn.Vector, lr float64) {
	m.ensureScratch(params)
	for i := range params {
		p, g, v := params[i], grads[i], m.velocity[i]
		for j := range p {
			v[j] = m.mu*v[j] + g[j]
			p[j] -= lr * v[j]
		}
	}
}
