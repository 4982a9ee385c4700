package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/boddenberg/citadel-bfa-go/internal/infra/cache"

	"go.uber.org/goleak"
)

func TestCache_SetAndGet(t *testing.T) {
	c := cache.New[string](5 * time.Minute)
	defer c.Close()

	ctx := context.Background()
	c.Set(ctx, "key1", "value1")
	val, ok := c.Get(ctx, "key1")
	if !ok {
		t.Fatal("expected key to exist")
	}
	if val != "value1" {
		t.Errorf("expected 'value1', got '%s'", val)
	}
}

func TestCache_GetMiss(t *testing.T) {
	c := cache.New[string](5 * time.Minute)
	defer c.Close()

	_, ok := c.Get(context.Background(), "nonexistent")
	if ok {
		t.Fatal("expected cache miss for nonexistent key")
	}
}

func TestCache_Expiration(t *testing.T) {
	c := cache.New[string](50 * time.Millisecond)
	defer c.Close()

	ctx := context.Background()
	c.Set(ctx, "key1", "value1")
	time.Sleep(100 * time.Millisecond)

	_, ok := c.Get(ctx, "key1")
	if ok {
		t.Fatal("expected cache entry to be expired")
	}
}

func TestCache_SweeperRemovesExpired(t *testing.T) {
	c := cache.New[int](20 * time.Millisecond)
	defer c.Close()

	c.Set(context.Background(), "k", 1)
	deadline := time.Now().Add(time.Second)
	for c.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if c.Len() != 0 {
		t.Fatalf("expected sweeper to drop expired entry, %d left", c.Len())
	}
}

func TestCache_Delete(t *testing.T) {
	c := cache.New[string](5 * time.Minute)
	defer c.Close()

	ctx := context.Background()
	c.Set(ctx, "key1", "value1")
	c.Delete(ctx, "key1")

	_, ok := c.Get(ctx, "key1")
	if ok {
		t.Fatal("expected key to be deleted")
	}
}

func TestCache_CloseStopsSweeper(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := cache.New[string](time.Minute)
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
