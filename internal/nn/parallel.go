package nn

import (
	"context"
	"sync"
)

// Ensemble trains seed-varied replicas of the same experiment concurrently.
// Each replica gets its own trainer from the build function, so no network
// state is shared between goroutines.
type Ensemble struct {
	build     func(seed int64) *Trainer
	numRuns   int
	seedStart int64
}

func NewEnsemble(build func(seed int64) *Trainer, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, train, val []Sample, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			tr := e.build(cfgCopy.Seed)
			results[idx], errs[idx] = tr.Run(ctx, train, val, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
