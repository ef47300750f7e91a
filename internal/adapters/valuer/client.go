// Package valuer is an HTTP client for the valuation endpoint.
package valuer

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"carvalue/internal/adapters/observability"
	"carvalue/internal/domain"
)

const (
	valuationPath = "/api/valuation"
	maxAttempts   = 4
)

var (
	// ErrBadRequest means the server refused the input; retrying will not help.
	ErrBadRequest = errors.New("valuer: bad request")
	ErrNoBaseURL  = errors.New("valuer: base URL is required")
)

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

// New returns a client pacing itself to rps requests per second.
func New(base string, rps int) (*Client, error) {
	if base == "" {
		return nil, ErrNoBaseURL
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

type envelope struct {
	Success   bool               `json:"success"`
	Valuation *domain.PriceRange `json:"valuation"`
	Error     string             `json:"error"`
}

// Valuate posts in and returns the price band. 429 and transient 5xx are
// retried with backoff, honouring Retry-After.
func (c *Client) Valuate(ctx context.Context, in domain.ValuationInput) (domain.PriceRange, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return domain.PriceRange{}, err
	}
	if err := c.rl.Wait(ctx); err != nil {
		return domain.PriceRange{}, err
	}

	// one id per logical valuation, shared by its retries
	reqID := uuid.NewString()
	url := c.base + valuationPath

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return domain.PriceRange{}, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-Id", reqID)

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return domain.PriceRange{}, ctx.Err()
			}
			observability.ObserveExternal("valuer", valuationPath, 0, time.Since(start))
			lastErr = err
			if i < maxAttempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return domain.PriceRange{}, ctx.Err()
			}
			return domain.PriceRange{}, lastErr
		}
		observability.ObserveExternal("valuer", valuationPath, resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode == http.StatusOK:
			var env envelope
			err := json.NewDecoder(resp.Body).Decode(&env)
			resp.Body.Close()
			if err != nil {
				return domain.PriceRange{}, err
			}
			if !env.Success || env.Valuation == nil {
				return domain.PriceRange{}, fmt.Errorf("valuer: unsuccessful response: %s", env.Error)
			}
			return *env.Valuation, nil

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			wait := retryAfter(resp)
			msg := readError(resp)
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d: %s", resp.StatusCode, msg)
			if i < maxAttempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return domain.PriceRange{}, ctx.Err()
			}
			return domain.PriceRange{}, lastErr

		case resp.StatusCode >= 400:
			return domain.PriceRange{}, fmt.Errorf("%w: %s", ErrBadRequest, readError(resp))

		default:
			msg := readError(resp)
			return domain.PriceRange{}, fmt.Errorf("bad status %d: %s", resp.StatusCode, msg)
		}
	}
	return domain.PriceRange{}, lastErr
}

// readError extracts the envelope's error message, or the raw body, and closes it.
func readError(resp *http.Response) string {
	defer resp.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var env envelope
	if json.Unmarshal(b, &env) == nil && env.Error != "" {
		return env.Error
	}
	return strings.TrimSpace(string(b))
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
