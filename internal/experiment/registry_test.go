package experiment

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/aitechroberts/deep-learning/internal/loss"
	"github.com/aitechroberts/deep-learning/internal/nn"
	"github.com/aitechroberts/deep-learning/internal/optim"
	"github.com/aitechroberts/deep-learning/internal/schedule"
)

func TestRegistryArchs(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"logreg", "mlp", "mlp-dropout", "mlp-tanh"} {
		net, err := r.GetArch(name, 16, 4, 1)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}

		// Output must be a probability distribution over 4 classes.
		x := make(nn.Vector, 16)
		for i := range x {
			x[i] = 0.1 * float64(i)
		}
		y := net.Forward(x)
		if len(y) != 4 {
			t.Errorf("%s: expected 4 outputs, got %d", name, len(y))
		}
		sum := 0.0
		for _, v := range y {
			sum += v
		}
		if sum < 0.999 || sum > 1.001 {
			t.Errorf("%s: outputs should sum to 1, got %f", name, sum)
		}
	}

	_, err := r.GetArch("resnet", 16, 4, 1)
	if err == nil {
		t.Fatal("expected error for unknown architecture")
	}
	// The error names the alternatives.
	if !strings.Contains(err.Error(), "mlp") {
		t.Errorf("error should list available architectures: %v", err)
	}
}

func TestListArchs(t *testing.T) {
	r := NewRegistry()

	names := r.ListArchs()
	if !sort.StringsAreSorted(names) {
		t.Errorf("expected sorted names, got %v", names)
	}

	want := []string{"logreg", "mlp", "mlp-dropout", "mlp-tanh"}
	if len(names) != len(want) {
		t.Fatalf("expected %d architectures, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("arch %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}

func TestRegistryLossesAndOptimizers(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"cross_entropy", "mse"} {
		l, err := r.GetLoss(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if l.Name() != name {
			t.Errorf("loss name mismatch: %s vs %s", l.Name(), name)
		}
	}
	if _, err := r.GetLoss("hinge"); err == nil {
		t.Error("expected error for unknown loss")
	}

	for _, name := range []string{"sgd", "momentum", "adam"} {
		o, err := r.GetOptimizer(name, nil)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if o.Name() != name {
			t.Errorf("optimizer name mismatch: %s vs %s", o.Name(), name)
		}
	}
	if _, err := r.GetOptimizer("rmsprop", nil); err == nil {
		t.Error("expected error for unknown optimizer")
	}
}

func TestRegistrySchedules(t *testing.T) {
	r := NewRegistry()

	params := map[string]float64{"lr": 0.1, "epochs": 10}
	for _, name := range []string{"constant", "step", "exp", "cosine"} {
		s, err := r.GetSchedule(name, params)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if lr := s.LearningRate(0); lr != 0.1 {
			t.Errorf("%s: epoch 0 rate should be base lr, got %f", name, lr)
		}
	}
	if _, err := r.GetSchedule("warmup", params); err == nil {
		t.Error("expected error for unknown schedule")
	}
}

func TestRegistryDatasets(t *testing.T) {
	r := NewRegistry()

	d, err := r.GetDataset("blobs", "", 1)
	if err != nil {
		t.Fatalf("blobs: %v", err)
	}
	if d.Len() == 0 {
		t.Error("blobs dataset is empty")
	}

	if _, err := r.GetDataset("cifar", "", 1); err == nil {
		t.Error("expected error for unknown dataset")
	}
}

func TestExperimentRun(t *testing.T) {
	r := NewRegistry()

	ds, err := r.GetDataset("blobs", "", 42)
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	train, val := ds.Split(0.8)

	net, err := r.GetArch("logreg", ds.Dim, ds.NumClasses, 42)
	if err != nil {
		t.Fatalf("arch: %v", err)
	}

	trainer := nn.NewTrainer(net, loss.NewCrossEntropy(), optim.NewSGD(), schedule.NewConstant(0.1))

	exp := New(Config{
		Arch:      "logreg",
		Dataset:   "blobs",
		Epochs:    5,
		BatchSize: 32,
		Seed:      42,
	})
	if err := exp.Setup(trainer, train.Samples, val.Samples, r.DefaultMetrics()); err != nil {
		t.Fatalf("setup: %v", err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.EpochsRun != 5 {
		t.Errorf("expected 5 epochs, got %d", result.EpochsRun)
	}
	if _, ok := result.Metrics["accuracy"]; !ok {
		t.Error("result missing accuracy metric")
	}
}

func TestExperimentRunWithoutSetup(t *testing.T) {
	exp := New(Config{Epochs: 1, BatchSize: 8})
	if _, err := exp.Run(context.Background()); err == nil {
		t.Error("expected error for unconfigured experiment")
	}
}
