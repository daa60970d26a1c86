package sim

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/san-kum/gazesim/internal/heatmap"
)

// Ensemble runs the same configuration under consecutive seeds, one
// goroutine and one engine per run. Providers and metrics are built per run
// since both carry state.
type Ensemble struct {
	provider  ProviderFactory
	metrics   func() []Metric
	logger    *slog.Logger
	numRuns   int
	seedStart int64
}

// ProviderFactory builds the field source for the run with the given seed.
type ProviderFactory func(seed int64) (heatmap.Provider, error)

func NewEnsemble(provider ProviderFactory, metrics func() []Metric, numRuns int, seedStart int64, logger *slog.Logger) *Ensemble {
	return &Ensemble{
		provider:  provider,
		metrics:   metrics,
		logger:    logger,
		numRuns:   numRuns,
		seedStart: seedStart,
	}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			provider, err := e.provider(cfgCopy.Seed)
			if err != nil {
				errs[idx] = fmt.Errorf("run %d (seed %d): %w", idx, cfgCopy.Seed, err)
				return
			}

			r := New(provider, e.logger)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					r.AddMetric(m)
				}
			}

			results[idx], errs[idx] = r.Run(ctx, cfgCopy)
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
