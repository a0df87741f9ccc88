package dataset

import (
	"fmt"
	"math/rand"

	"github.com/aitechroberts/deep-learning/internal/nn"
)

// Blobs generates a seeded Gaussian-blob classification set: one random
// center per class, samples drawn as center plus isotropic noise. Every
// command works with no files on disk because of this generator.
func Blobs(numClasses, perClass, dim int, noise float64, seed int64) (*Dataset, error) {
	if numClasses < 2 {
		return nil, fmt.Errorf("blobs needs at least 2 classes, got %d", numClasses)
	}
	if perClass < 1 || dim < 1 {
		return nil, fmt.Errorf("blobs needs positive per-class count and dimension")
	}

	rng := rand.New(rand.NewSource(seed))

	centers := make([]nn.Vector, numClasses)
	for c := range centers {
		centers[c] = make(nn.Vector, dim)
		for j := 0; j < dim; j++ {
			centers[c][j] = rng.NormFloat64() * 2.0
		}
	}

	samples := make([]nn.Sample, 0, numClasses*perClass)
	for c := 0; c < numClasses; c++ {
		y, err := OneHot(c, numClasses)
		if err != nil {
			return nil, err
		}
		for i := 0; i < perClass; i++ {
			x := make(nn.Vector, dim)
			for j := 0; j < dim; j++ {
				x[j] = centers[c][j] + rng.NormFloat64()*noise
			}
			samples = append(samples, nn.Sample{X: x, Y: y})
		}
	}

	d := &Dataset{
		Name:       "blobs",
		Samples:    samples,
		Dim:        dim,
		NumClasses: numClasses,
	}
	d.Shuffle(seed)
	return d, nil
}
