package valuer_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"carvalue/internal/adapters/valuer"
	"carvalue/internal/domain"
)

func camry() domain.ValuationInput {
	return domain.ValuationInput{
		Make: "Toyota", Model: "Camry", Year: 2019,
		Condition: domain.ConditionTokunbo, Grade: domain.GradeFull, Body: domain.BodyFirst,
		Location: "Lagos",
	}
}

func TestClient_RetriesThenSuccess(t *testing.T) {
	var hits int32
	var mu sync.Mutex
	ids := map[string]bool{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		ids[r.Header.Get("X-Request-Id")] = true
		mu.Unlock()

		var in domain.ValuationInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Make != "Toyota" {
			w.WriteHeader(400)
			return
		}
		switch atomic.AddInt32(&hits, 1) {
		case 1:
			w.WriteHeader(503)
		case 2:
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(429)
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success":   true,
				"valuation": map[string]float64{"min": 13.8, "max": 18.5},
			})
		}
	}))
	defer ts.Close()

	cl, err := valuer.New(ts.URL, 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	got, err := cl.Valuate(ctx, camry())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != (domain.PriceRange{Min: 13.8, Max: 18.5}) {
		t.Fatalf("unexpected range: %+v", got)
	}
	if atomic.LoadInt32(&hits) != 3 {
		t.Fatalf("expected 3 calls, got %d", hits)
	}
	if len(ids) != 1 || ids[""] {
		t.Fatalf("expected one non-empty request id across retries, got %v", ids)
	}
}

func TestClient_BadRequestIsNotRetried(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(400)
		_, _ = w.Write([]byte(`{"success":false,"error":"invalid body: body \"\""}`))
	}))
	defer ts.Close()

	cl, _ := valuer.New(ts.URL, 100)
	_, err := cl.Valuate(context.Background(), camry())
	if !errors.Is(err, valuer.ErrBadRequest) {
		t.Fatalf("err = %v, want ErrBadRequest", err)
	}
	if hits != 1 {
		t.Fatalf("4xx must not be retried, got %d calls", hits)
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer ts.Close()

	cl, _ := valuer.New(ts.URL, 100)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, err := cl.Valuate(ctx, camry()); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestNew_RequiresBase(t *testing.T) {
	if _, err := valuer.New("", 1); !errors.Is(err, valuer.ErrNoBaseURL) {
		t.Fatalf("err = %v", err)
	}
}
