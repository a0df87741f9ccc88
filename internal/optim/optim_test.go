package optim

import (
	"context"
	"math"
	"testing"

	"github.com/aitechroberts/deep-learning/internal/nn"
)

// quadratic is f(p) = 0.5*p^2 with gradient p, minimized at 0.
func quadraticGrad(params []nn.Vector) []nn.Vector {
	grads := make([]nn.Vector, len(params))
	for i, p := range params {
		grads[i] = p.Clone()
	}
	return grads
}

func converges(t *testing.T, opt nn.Optimizer, lr float64, steps int) {
	t.Helper()

	params := []nn.Vector{{5.0, -3.0}, {1.5}}
	for i := 0; i < steps; i++ {
		opt.Step(params, quadraticGrad(params), lr)
	}

	for i, p := range params {
		for j, v := range p {
			if math.Abs(v) > 0.05 {
				t.Errorf("%s: param [%d][%d] did not converge: %f", opt.Name(), i, j, v)
			}
		}
	}
}

func TestSGDConverges(t *testing.T) {
	converges(t, NewSGD(), 0.1, 100)
}

func TestMomentumConverges(t *testing.T) {
	converges(t, NewMomentum(0.9), 0.01, 300)
}

func TestAdamConverges(t *testing.T) {
	converges(t, NewAdamDefault(), 0.1, 300)
}

func TestSGDStep(t *testing.T) {
	params := []nn.Vector{{1.0}}
	grads := []nn.Vector{{2.0}}

	NewSGD().Step(params, grads, 0.5)
	if math.Abs(params[0][0]-0.0) > 1e-12 {
		t.Errorf("expected 0 after step, got %f", params[0][0])
	}
}

func TestMomentumAccumulates(t *testing.T) {
	m := NewMomentum(0.9)
	params := []nn.Vector{{0.0}}
	grads := []nn.Vector{{1.0}}

	// First step: v = 1, delta = lr*1. Second step: v = 1.9, delta = lr*1.9.
	m.Step(params, grads, 1.0)
	first := params[0][0]
	m.Step(params, grads, 1.0)
	second := params[0][0] - first

	if math.Abs(first+1.0) > 1e-12 {
		t.Errorf("first step: expected -1, got %f", first)
	}
	if math.Abs(second+1.9) > 1e-12 {
		t.Errorf("second step: expected -1.9, got %f", second)
	}
}

func TestAdamFirstStepSize(t *testing.T) {
	a := NewAdamDefault()
	params := []nn.Vector{{0.0}}
	grads := []nn.Vector{{0.3}}

	// Bias correction makes the first update ~lr regardless of gradient scale.
	a.Step(params, grads, 0.01)
	if math.Abs(math.Abs(params[0][0])-0.01) > 1e-4 {
		t.Errorf("expected first step near lr, got %f", params[0][0])
	}
}

func TestAdamScratchResize(t *testing.T) {
	a := NewAdamDefault()

	a.Step([]nn.Vector{{1.0}}, []nn.Vector{{1.0}}, 0.1)

	// A different parameter count must not panic; scratch is rebuilt.
	params := []nn.Vector{{1.0}, {2.0, 3.0}}
	grads := []nn.Vector{{1.0}, {1.0, 1.0}}
	a.Step(params, grads, 0.1)
}

func TestGridSearch(t *testing.T) {
	gs := NewGridSearch(
		[]string{"lr", "batch_size"},
		[][]float64{{0.01, 0.1, 1.0}, {16, 32}},
	)

	// Synthetic objective: minimized at lr=0.1, batch_size=32.
	run := func(ctx context.Context, params map[string]float64) (*nn.Result, error) {
		score := math.Abs(params["lr"]-0.1)*10 + math.Abs(params["batch_size"]-32)/16
		return &nn.Result{Metrics: map[string]float64{"val_loss": score}}, nil
	}

	best, score, err := gs.Search(context.Background(), run, "val_loss")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if best["lr"] != 0.1 || best["batch_size"] != 32 {
		t.Errorf("wrong best params: %v", best)
	}
	if score != 0 {
		t.Errorf("expected score 0, got %f", score)
	}
}

func TestGridSearchSkipsFailedRuns(t *testing.T) {
	gs := NewGridSearch([]string{"lr"}, [][]float64{{0.01, 0.1}})

	run := func(ctx context.Context, params map[string]float64) (*nn.Result, error) {
		if params["lr"] == 0.01 {
			return nil, context.DeadlineExceeded
		}
		return &nn.Result{Metrics: map[string]float64{"val_loss": 1.0}}, nil
	}

	best, score, err := gs.Search(context.Background(), run, "val_loss")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if best["lr"] != 0.1 {
		t.Errorf("expected surviving lr=0.1, got %v", best)
	}
	if score != 1.0 {
		t.Errorf("expected score 1.0, got %f", score)
	}
}
