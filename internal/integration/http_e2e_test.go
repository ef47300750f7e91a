//go:build integration

package integration

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	server "carvalue/internal/adapters/http_server"
	redisad "carvalue/internal/adapters/redis"
	"carvalue/internal/adapters/valuer"
	"carvalue/internal/app"
	"carvalue/internal/domain"
	"carvalue/internal/pricing"
)

func startRedis(t *testing.T) *redisad.Cache {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7.2-alpine",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run redis: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	c := redisad.New(fmt.Sprintf("127.0.0.1:%s", resource.GetPort("6379/tcp")), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	if err := pool.Retry(func() error { return c.Ping(context.Background()) }); err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	return c
}

func TestHTTP_EndToEnd_ValuationCached(t *testing.T) {
	cache := startRedis(t)

	srv := server.New(5 * time.Second)
	srv.MountHandlers(&server.Handlers{V: app.NewValuationService(cache, time.Minute), MaxBodyBytes: 1 << 16})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	cl, err := valuer.New(ts.URL, 50)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	ctx := context.Background()
	in := domain.ValuationInput{
		Make: "Mercedes-Benz", Model: "G-Class G 63 AMG", Year: 2021,
		Condition: domain.ConditionTokunbo, Grade: domain.GradeFull, Body: domain.BodyFirst,
		Location: "Lagos",
	}

	want := domain.PriceRange{Min: 392.7, Max: 526.5}
	for i := 0; i < 2; i++ {
		got, err := cl.Valuate(ctx, in)
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("call %d: got %+v, want %+v", i, got, want)
		}
	}

	var cached domain.Estimate
	ok, err := cache.Get(ctx, pricing.CacheKey(in), &cached)
	if err != nil || !ok {
		t.Fatalf("expected cached estimate, ok=%v err=%v", ok, err)
	}
	if cached.Tier != domain.TierLuxury || cached.Range != want {
		t.Fatalf("unexpected cached estimate: %+v", cached)
	}

	in.Body = "salvage"
	if _, err := cl.Valuate(ctx, in); err == nil {
		t.Fatalf("expected a bad-request error for unknown body")
	}
}
