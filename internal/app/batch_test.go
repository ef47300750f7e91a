package app_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"carvalue/internal/app"
	"carvalue/internal/domain"
	"carvalue/internal/pricing"
)

// localValuer prices in-process and tracks peak concurrency.
type localValuer struct {
	inFlight, peak int32
}

func (v *localValuer) Valuate(ctx context.Context, in domain.ValuationInput) (domain.PriceRange, error) {
	n := atomic.AddInt32(&v.inFlight, 1)
	defer atomic.AddInt32(&v.inFlight, -1)
	for {
		p := atomic.LoadInt32(&v.peak)
		if n <= p || atomic.CompareAndSwapInt32(&v.peak, p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	return pricing.PredictPrice(in)
}

func TestRunBatch_OrderAndErrors(t *testing.T) {
	good := camry()
	bad := camry()
	bad.Condition = "new"
	yugo := camry()
	yugo.Make = "Yugo"

	inputs := []domain.ValuationInput{good, bad, yugo, good, good, good}
	v := &localValuer{}
	out := app.RunBatch(context.Background(), v, inputs, 2)

	if len(out) != len(inputs) {
		t.Fatalf("got %d results, want %d", len(out), len(inputs))
	}
	for i, r := range out {
		if r.Index != i {
			t.Fatalf("result %d has index %d", i, r.Index)
		}
	}
	if out[1].Error == "" || out[1].Valuation != nil {
		t.Fatalf("invalid input should carry an error: %+v", out[1])
	}
	if out[0].Valuation == nil || *out[0].Valuation != (domain.PriceRange{Min: 13.8, Max: 18.5}) {
		t.Fatalf("unexpected first result: %+v", out[0])
	}
	if out[2].Valuation == nil || *out[2].Valuation != (domain.PriceRange{Min: 11.7, Max: 15.7}) {
		t.Fatalf("unexpected fallback result: %+v", out[2])
	}
	if p := atomic.LoadInt32(&v.peak); p > 2 {
		t.Fatalf("peak concurrency %d exceeds 2 workers", p)
	}
}

func TestRunBatch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := app.RunBatch(ctx, &localValuer{}, []domain.ValuationInput{camry(), camry()}, 1)
	for _, r := range out {
		if r.Valuation != nil || r.Error == "" {
			t.Fatalf("expected cancellation error, got %+v", r)
		}
	}
	if !errors.Is(ctx.Err(), context.Canceled) {
		t.Fatalf("ctx should be cancelled")
	}
}
