package layers

import (
	"math"
	"testing"

	"github.com/aitechroberts/deep-learning/internal/nn"
)

func TestDenseForward(t *testing.T) {
	d := NewDense(2, 2, 1)

	// Params returns live slices: out rows then the bias.
	params := d.Params()
	copy(params[0], nn.Vector{1, 2})
	copy(params[1], nn.Vector{3, 4})
	copy(params[2], nn.Vector{0.5, -0.5})

	y := d.Forward(nn.Vector{1, 1})
	if math.Abs(y[0]-3.5) > 1e-12 || math.Abs(y[1]-6.5) > 1e-12 {
		t.Errorf("Forward failed: got %v", y)
	}
}

func TestDenseForwardRecycle(t *testing.T) {
	d := NewDense(2, 2, 1)
	params := d.Params()
	copy(params[0], nn.Vector{1, 0})
	copy(params[1], nn.Vector{0, 1})
	copy(params[2], nn.Vector{0, 0})

	// Outputs cycle through the layer's pool; repeated passes must not leak
	// values from earlier calls.
	first := d.Forward(nn.Vector{1, 2})
	if first[0] != 1 || first[1] != 2 {
		t.Errorf("first pass: got %v", first)
	}

	second := d.Forward(nn.Vector{-3, 4})
	if second[0] != -3 || second[1] != 4 {
		t.Errorf("second pass: got %v", second)
	}

	third := d.Forward(nn.Vector{0, 0})
	if third[0] != 0 || third[1] != 0 {
		t.Errorf("third pass: got %v", third)
	}
}

func TestDenseParamShapes(t *testing.T) {
	d := NewDense(3, 5, 1)

	params := d.Params()
	if len(params) != 6 {
		t.Fatalf("expected 6 param vectors (5 rows + bias), got %d", len(params))
	}
	for i := 0; i < 5; i++ {
		if len(params[i]) != 3 {
			t.Errorf("row %d: expected length 3, got %d", i, len(params[i]))
		}
	}
	if len(params[5]) != 5 {
		t.Errorf("bias: expected length 5, got %d", len(params[5]))
	}

	grads := d.Grads()
	if len(grads) != len(params) {
		t.Errorf("grads/params mismatch: %d vs %d", len(grads), len(params))
	}
}

// TestDenseGradientCheck compares analytic gradients against central
// differences of f(params) = sum(Forward(x)).
func TestDenseGradientCheck(t *testing.T) {
	d := NewDense(3, 2, 42)
	x := nn.Vector{0.5, -1.2, 0.8}

	f := func() float64 {
		y := d.Forward(x)
		sum := 0.0
		for _, v := range y {
			sum += v
		}
		return sum
	}

	// Analytic: backward with an all-ones upstream gradient.
	d.ZeroGrads()
	d.Forward(x)
	d.Backward(nn.Vector{1, 1})
	analytic := d.Grads()

	const eps = 1e-6
	params := d.Params()
	for i := range params {
		for j := range params[i] {
			orig := params[i][j]
			params[i][j] = orig + eps
			fPlus := f()
			params[i][j] = orig - eps
			fMinus := f()
			params[i][j] = orig

			numeric := (fPlus - fMinus) / (2 * eps)
			if math.Abs(numeric-analytic[i][j]) > 1e-5 {
				t.Errorf("param [%d][%d]: analytic %.8f, numeric %.8f", i, j, analytic[i][j], numeric)
			}
		}
	}
}

func TestDenseInputGradient(t *testing.T) {
	d := NewDense(2, 2, 7)
	params := d.Params()
	copy(params[0], nn.Vector{1, 2})
	copy(params[1], nn.Vector{3, 4})
	copy(params[2], nn.Vector{0, 0})

	d.Forward(nn.Vector{1, 1})
	dx := d.Backward(nn.Vector{1, 1})

	// dx = W^T g = {1+3, 2+4}.
	if math.Abs(dx[0]-4) > 1e-12 || math.Abs(dx[1]-6) > 1e-12 {
		t.Errorf("input gradient failed: got %v", dx)
	}
}

func TestDenseZeroGrads(t *testing.T) {
	d := NewDense(2, 2, 1)
	d.Forward(nn.Vector{1, 1})
	d.Backward(nn.Vector{1, 1})

	d.ZeroGrads()
	for i, g := range d.Grads() {
		for j, v := range g {
			if v != 0 {
				t.Errorf("grad [%d][%d] not zeroed: %f", i, j, v)
			}
		}
	}
}

func TestDenseInitScales(t *testing.T) {
	he := NewDense(100, 10, 1)
	xavier := NewDenseXavier(100, 10, 1)

	heNorm := paramNorm(he)
	xavierNorm := paramNorm(xavier)

	// He variance is 2/in, Xavier 1/in: He weights should be larger overall.
	if heNorm <= xavierNorm {
		t.Errorf("expected He norm > Xavier norm: %.4f vs %.4f", heNorm, xavierNorm)
	}
}

func paramNorm(d *Dense) float64 {
	sum := 0.0
	for _, p := range d.Params() {
		for _, v := range p {
			sum += v * v
		}
	}
	return math.Sqrt(sum)
}
