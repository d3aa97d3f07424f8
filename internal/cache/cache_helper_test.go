package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *CacheHelper) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, NewCacheHelper(client, "request:")
}

type cachedValue struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestCacheHelper_SetAndGet(t *testing.T) {
	_, helper := newTestCache(t)
	ctx := context.Background()

	want := cachedValue{ID: 7, Name: "exam"}
	if err := helper.Set(ctx, "id:7", want, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got cachedValue
	if err := helper.Get(ctx, "id:7", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestCacheHelper_GetMiss(t *testing.T) {
	_, helper := newTestCache(t)

	var got cachedValue
	err := helper.Get(context.Background(), "missing", &got)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Fatalf("Expected ErrCacheNotFound, got %v", err)
	}
}

func TestCacheHelper_Expiry(t *testing.T) {
	mr, helper := newTestCache(t)
	ctx := context.Background()

	if err := helper.Set(ctx, "id:9", cachedValue{ID: 9}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	var got cachedValue
	err := helper.Get(ctx, "id:9", &got)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Fatalf("Expected ErrCacheNotFound after expiry, got %v", err)
	}
}

func TestCacheHelper_Delete(t *testing.T) {
	_, helper := newTestCache(t)
	ctx := context.Background()

	if err := helper.Set(ctx, "id:1", cachedValue{ID: 1}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := helper.Delete(ctx, "id:1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	exists, err := helper.Exists(ctx, "id:1")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Errorf("Key should be gone after delete")
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	_, helper := newTestCache(t)
	ctx := context.Background()

	for _, key := range []string{"id:1", "id:1:details", "id:2"} {
		if err := helper.Set(ctx, key, cachedValue{}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "id:1*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}

	if exists, _ := helper.Exists(ctx, "id:1"); exists {
		t.Errorf("id:1 should be invalidated")
	}
	if exists, _ := helper.Exists(ctx, "id:1:details"); exists {
		t.Errorf("id:1:details should be invalidated")
	}
	if exists, _ := helper.Exists(ctx, "id:2"); !exists {
		t.Errorf("id:2 should survive")
	}
}

func TestCacheHelper_NilClient(t *testing.T) {
	helper := NewCacheHelper(nil, "request:")
	ctx := context.Background()

	// Writes degrade gracefully, reads report the cache as unavailable
	if err := helper.Set(ctx, "k", cachedValue{}, time.Minute); err != nil {
		t.Errorf("Set with nil client should be a no-op, got %v", err)
	}
	var got cachedValue
	if err := helper.Get(ctx, "k", &got); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Expected ErrCacheNotAvailable, got %v", err)
	}
}

func TestCacheManager_HealthCheck(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cm := NewCacheManager(client)
	if err := cm.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}

	nilCM := NewCacheManager(nil)
	if err := nilCM.HealthCheck(context.Background()); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Expected ErrCacheNotAvailable, got %v", err)
	}
}
