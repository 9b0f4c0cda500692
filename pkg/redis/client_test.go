package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/config"
	"github.com/redis/go-redis/v9"
)

func TestFixedWindowAllow(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)
	store := newMemoryStore(func() time.Time { return clock })
	client := &Client{store: store}

	allowed, count, err := client.FixedWindowAllow(ctx, "test-scope", 2, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed || count != 1 {
		t.Fatalf("expected first request allowed, got allowed=%v count=%d", allowed, count)
	}

	allowed, count, err = client.FixedWindowAllow(ctx, "test-scope", 2, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed || count != 2 {
		t.Fatalf("unexpected second call state allowed=%v count=%d", allowed, count)
	}

	allowed, _, err = client.FixedWindowAllow(ctx, "test-scope", 2, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatalf("expected limit reached")
	}

	clock = clock.Add(time.Minute)
	allowed, count, err = client.FixedWindowAllow(ctx, "test-scope", 2, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed || count != 1 {
		t.Fatalf("expected window reset, got allowed=%v count=%d", allowed, count)
	}
}

func TestSetNXAndExpiry(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)
	client := &Client{store: newMemoryStore(func() time.Time { return clock })}
	key := client.IdempotencyKey("payments.verify", "abc")

	ok, err := client.SetNX(ctx, key, "pending", time.Hour)
	if err != nil || !ok {
		t.Fatalf("expected first SetNX to succeed, ok=%v err=%v", ok, err)
	}
	ok, err = client.SetNX(ctx, key, "other", time.Hour)
	if err != nil || ok {
		t.Fatalf("expected second SetNX to fail, ok=%v err=%v", ok, err)
	}
	value, err := client.Get(ctx, key)
	if err != nil || value != "pending" {
		t.Fatalf("expected stored value, got %q err=%v", value, err)
	}

	clock = clock.Add(time.Hour)
	if _, err := client.Get(ctx, key); err != redis.Nil {
		t.Fatalf("expected redis.Nil after expiry, got %v", err)
	}

	ok, err = client.SetNX(ctx, key, "retry", time.Hour)
	if err != nil || !ok {
		t.Fatalf("expected SetNX to succeed once the key expired, ok=%v err=%v", ok, err)
	}

	if err := client.Set(ctx, key, "final", 2*time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}
	if value, err := client.Get(ctx, key); err != nil || value != "final" {
		t.Fatalf("expected overwritten value, got %q err=%v", value, err)
	}
	clock = clock.Add(90 * time.Minute)
	if value, err := client.Get(ctx, key); err != nil || value != "final" {
		t.Fatalf("expected Set to replace the ttl, got %q err=%v", value, err)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, err := client.Get(ctx, key); err != redis.Nil {
		t.Fatalf("expected redis.Nil after Del, got %v", err)
	}
}

func TestMemoryStoreSweepsExpiredKeys(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)
	store := newMemoryStore(func() time.Time { return clock })
	client := &Client{store: store}

	for i := 0; i < 10000; i++ {
		if _, _, err := client.FixedWindowAllow(ctx, fmt.Sprintf("ip:login:10.0.%d.%d", i/256, i%256), 5, time.Minute); err != nil {
			t.Fatalf("allow: %v", err)
		}
	}
	if _, err := client.SetNX(ctx, client.IdempotencyKey("scope", "kept"), "v", 2*time.Hour); err != nil {
		t.Fatalf("setnx: %v", err)
	}

	clock = clock.Add(time.Hour)
	if _, _, err := client.FixedWindowAllow(ctx, "ip:login:fresh", 5, time.Minute); err != nil {
		t.Fatalf("allow: %v", err)
	}

	store.mu.Lock()
	remaining := len(store.entries)
	store.mu.Unlock()
	if remaining != 2 {
		t.Fatalf("expected only live keys to remain, got %d entries", remaining)
	}
	if value, err := client.Get(ctx, client.IdempotencyKey("scope", "kept")); err != nil || value != "v" {
		t.Fatalf("unexpired key must survive the sweep, got %q err=%v", value, err)
	}
}

func TestMemoryStoreSweepIsAmortised(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)
	store := newMemoryStore(func() time.Time { return clock })
	client := &Client{store: store}

	if _, err := client.SetNX(ctx, "short", "v", time.Second); err != nil {
		t.Fatalf("setnx: %v", err)
	}
	clock = clock.Add(2 * time.Second)
	if _, err := client.SetNX(ctx, "other", "v", time.Hour); err != nil {
		t.Fatalf("setnx: %v", err)
	}
	store.mu.Lock()
	_, stillThere := store.entries["short"]
	store.mu.Unlock()
	if !stillThere {
		t.Fatal("expected no sweep before the interval elapsed")
	}

	clock = clock.Add(memorySweepInterval)
	if _, err := client.SetNX(ctx, "third", "v", time.Hour); err != nil {
		t.Fatalf("setnx: %v", err)
	}
	store.mu.Lock()
	_, stillThere = store.entries["short"]
	store.mu.Unlock()
	if stillThere {
		t.Fatal("expected expired key to be swept once the interval elapsed")
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.IdempotencyKey("scope", "id"); got != "ssb:idempotency:scope:id" {
		t.Fatalf("unexpected idempotency key %s", got)
	}
	if got := client.RateLimitKey("ip:login:1.2.3.4"); got != "ssb:rate_limit:ip:login:1.2.3.4" {
		t.Fatalf("unexpected rate limit key %s", got)
	}
	if got := client.IdempotencyKey("scope", ""); got != "ssb:idempotency:scope" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}

	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6379/2", PoolSize: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.DB != 2 || opts.PoolSize != 7 {
		t.Fatalf("unexpected options db=%d pool=%d", opts.DB, opts.PoolSize)
	}

	opts, err = optionsFromConfig(config.RedisConfig{Address: "cache:6379", DB: 3, DialTimeout: time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "cache:6379" || opts.DB != 3 || opts.DialTimeout != time.Second {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestNilClientErrors(t *testing.T) {
	client := &Client{}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close on uninitialized client should be a no-op, got %v", err)
	}
}
