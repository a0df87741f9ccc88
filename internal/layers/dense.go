package layers

import (
	"math"
	"math/rand"

	"github.com/aitechroberts/deep-learning/internal/nn"
)

// Dense is a fully connected layer: y = Wx + b.
type Dense struct {
	in, out int

	w     []nn.Vector // out rows of length in
	b     nn.Vector
	gradW []nn.Vector
	gradB nn.Vector

	input nn.Vector // cached for backward

	outPool *nn.VectorPool
	lastOut nn.Vector
}

// NewDense creates a dense layer with He-initialized weights, appropriate for
// ReLU-family activations.
func NewDense(in, out int, seed int64) *Dense {
	d := &Dense{
		in:      in,
		out:     out,
		w:       make([]nn.Vector, out),
		b:       make(nn.Vector, out),
		gradW:   make([]nn.Vector, out),
		gradB:   make(nn.Vector, out),
		outPool: nn.NewVectorPool(out),
	}

	rng := rand.New(rand.NewSource(seed))
	scale := math.Sqrt(2.0 / float64(in))
	for i := 0; i < out; i++ {
		d.w[i] = make(nn.Vector, in)
		d.gradW[i] = make(nn.Vector, in)
		for j := 0; j < in; j++ {
			d.w[i][j] = rng.NormFloat64() * scale
		}
	}

	return d
}

// NewDenseXavier creates a dense layer with Xavier-initialized weights,
// appropriate for sigmoid/tanh/softmax outputs.
func NewDenseXavier(in, out int, seed int64) *Dense {
	d := NewDense(in, out, seed)
	rng := rand.New(rand.NewSource(seed))
	scale := math.Sqrt(1.0 / float64(in))
	for i := range d.w {
		for j := range d.w[i] {
			d.w[i][j] = rng.NormFloat64() * scale
		}
	}
	return d
}

func (d *Dense) InDim() int  { return d.in }
func (d *Dense) OutDim() int { return d.out }

// Forward computes Wx + b. The returned vector is recycled through the
// layer's pool and is only valid until the next Forward call.
func (d *Dense) Forward(x nn.Vector) nn.Vector {
	d.input = x

	if d.lastOut != nil {
		d.outPool.Put(d.lastOut)
	}
	y := d.outPool.Get()

	for i := 0; i < d.out; i++ {
		sum := d.b[i]
		row := d.w[i]
		for j := 0; j < d.in && j < len(x); j++ {
			sum += row[j] * x[j]
		}
		y[i] = sum
	}

	d.lastOut = y
	return y
}

func (d *Dense) Backward(grad nn.Vector) nn.Vector {
	dx := make(nn.Vector, d.in)
	for i := 0; i < d.out && i < len(grad); i++ {
		g := grad[i]
		d.gradB[i] += g
		row := d.w[i]
		gw := d.gradW[i]
		for j := 0; j < d.in; j++ {
			gw[j] += g * d.input[j]
			dx[j] += g * row[j]
		}
	}
	return dx
}

func (d *Dense) Params() []nn.Vector {
	params := make([]nn.Vector, 0, d.out+1)
	params = append(params, d.w...)
	params = append(params, d.b)
	return params
}

func (d *Dense) Grads() []nn.Vector {
	grads := make([]nn.Vector, 0, d.out+1)
	grads = append(grads, d.gradW...)
	grads = append(grads, d.gradB)
	return grads
}

func (d *Dense) ZeroGrads() {
	for i := range d.gradW {
		for j := range d.gradW[i] {
			d.gradW[i][j] = 0
		}
	}
	for i := range d.gradB {
		d.gradB[i] = 0
	}
}
