package dataset

import (
	"fmt"
	"math/rand"

	"github.com/aitechroberts/deep-learning/internal/nn"
)

// Dataset is an in-memory classification set with one-hot targets.
type Dataset struct {
	Name       string
	Samples    []nn.Sample
	Dim        int
	NumClasses int
}

func (d *Dataset) Len() int { return len(d.Samples) }

// Shuffle permutes samples in place with a seeded RNG.
func (d *Dataset) Shuffle(seed int64) {
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(d.Samples), func(i, j int) {
		d.Samples[i], d.Samples[j] = d.Samples[j], d.Samples[i]
	})
}

// Split partitions the set, keeping frac of the samples in the first part.
// Callers wanting a random split should Shuffle first.
func (d *Dataset) Split(frac float64) (*Dataset, *Dataset) {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	cut := int(float64(len(d.Samples)) * frac)

	first := &Dataset{Name: d.Name, Samples: d.Samples[:cut], Dim: d.Dim, NumClasses: d.NumClasses}
	second := &Dataset{Name: d.Name, Samples: d.Samples[cut:], Dim: d.Dim, NumClasses: d.NumClasses}
	return first, second
}

// Subset returns the first n samples (all of them if n exceeds the size).
func (d *Dataset) Subset(n int) *Dataset {
	if n > len(d.Samples) {
		n = len(d.Samples)
	}
	return &Dataset{Name: d.Name, Samples: d.Samples[:n], Dim: d.Dim, NumClasses: d.NumClasses}
}

// ClassCounts tallies samples per true class.
func (d *Dataset) ClassCounts() []int {
	counts := make([]int, d.NumClasses)
	for _, s := range d.Samples {
		idx := s.Y.ArgMax()
		if idx < len(counts) {
			counts[idx]++
		}
	}
	return counts
}

// OneHot builds a one-hot target vector.
func OneHot(class, numClasses int) (nn.Vector, error) {
	if class < 0 || class >= numClasses {
		return nil, fmt.Errorf("class %d out of range [0,%d)", class, numClasses)
	}
	y := make(nn.Vector, numClasses)
	y[class] = 1
	return y, nil
}
