//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	redisad "travel_planner/internal/adapters/redis"
	"travel_planner/internal/app"
	"travel_planner/internal/domain"
)

type countingWeather struct{ calls int32 }

func (c *countingWeather) Lookup(ctx context.Context, location, date string) domain.Weather {
	atomic.AddInt32(&c.calls, 1)
	return domain.Weather{Location: location, Date: date, Temperature: "12°C", Conditions: "overcast clouds"}
}

func startRedis(t *testing.T) *redisad.Cache {
	t.Helper()
	// Start isolated Redis; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{Repository: "redis", Tag: "7.2-alpine"}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run redis: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	addr := fmt.Sprintf("127.0.0.1:%s", resource.GetPort("6379/tcp"))
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := pool.Retry(func() error { return client.Ping(context.Background()).Err() }); err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return redisad.NewFromClient(client)
}

func TestCachedWeather_Redis(t *testing.T) {
	cache := startRedis(t)
	ctx := context.Background()

	next := &countingWeather{}
	svc := app.NewCachedWeather(next, cache, time.Minute)

	first := svc.Lookup(ctx, "Kyoto", "")
	second := svc.Lookup(ctx, "kyoto", "current")
	if first.Temperature != second.Temperature || first.Location != second.Location {
		t.Fatalf("cached value differs: %+v vs %+v", first, second)
	}
	if n := atomic.LoadInt32(&next.calls); n != 1 {
		t.Fatalf("expected one upstream call, got %d", n)
	}

	var raw domain.Weather
	ok, err := cache.Get(ctx, "weather:kyoto:current", &raw)
	if err != nil || !ok {
		t.Fatalf("entry missing: ok=%v err=%v", ok, err)
	}

	if err := cache.Del(ctx, "weather:kyoto:current"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	svc.Lookup(ctx, "Kyoto", "")
	if n := atomic.LoadInt32(&next.calls); n != 2 {
		t.Fatalf("expected refetch after Del, got %d calls", n)
	}
}
