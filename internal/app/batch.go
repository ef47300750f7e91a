package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"carvalue/internal/domain"
)

// Valuer prices a single input, typically over the network.
type Valuer interface {
	Valuate(ctx context.Context, in domain.ValuationInput) (domain.PriceRange, error)
}

// BatchResult is one line of batch output. Exactly one of Valuation and Error is set.
type BatchResult struct {
	Index     int                `json:"index"`
	Valuation *domain.PriceRange `json:"valuation,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// RunBatch values every input with at most workers in flight and returns
// results in input order. A failed item never stops the batch; a cancelled
// ctx marks the remaining items with the context error.
func RunBatch(ctx context.Context, v Valuer, inputs []domain.ValuationInput, workers int) []BatchResult {
	if workers <= 0 {
		workers = 1
	}
	out := make([]BatchResult, len(inputs))
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for i, in := range inputs {
		out[i].Index = i

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			for j := i; j < len(inputs); j++ {
				out[j] = BatchResult{Index: j, Error: err.Error()}
			}
			break
		}

		wg.Add(1)
		go func(i int, in domain.ValuationInput) {
			defer wg.Done()
			defer sem.Release(1)

			r, err := v.Valuate(ctx, in)
			if err != nil {
				log.Warn().Int("index", i).Err(err).Msg("valuation failed")
				out[i].Error = err.Error()
				return
			}
			out[i].Valuation = &r
		}(i, in)
	}

	wg.Wait()
	return out
}
