//go:build integration

package cart

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/parthg2112/ecommerce-wp-proj/internal/testutil"
)

func TestRedisStorage(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{Addr: testutil.SetupRedis(ctx, t)})
	defer func() { _ = rdb.Close() }()

	storage := NewRedisStorage(rdb, "guest")

	data, err := storage.Load(ctx)
	if err != nil || data != nil {
		t.Fatalf("expected empty storage, got %q, %v", data, err)
	}

	m, err := NewManager(ctx, storage, testCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = m.Add(ctx, 1)
	_ = m.Add(ctx, 2)
	_ = m.ChangeQuantity(ctx, 2, 3)

	reloaded, err := NewManager(ctx, NewRedisStorage(rdb, "guest"), testCatalog())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !sameState(m.State(), reloaded.State()) {
		t.Errorf("reloaded %+v, want %+v", reloaded.State(), m.State())
	}

	ttl, err := rdb.TTL(ctx, "cart:guest").Result()
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if ttl <= 0 || ttl > redisCartTTL {
		t.Errorf("unexpected ttl %s", ttl)
	}

	other, err := NewManager(ctx, NewRedisStorage(rdb, "someone-else"), testCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(other.State()) != 0 {
		t.Errorf("expected separate owners to have separate carts, got %+v", other.State())
	}
}
