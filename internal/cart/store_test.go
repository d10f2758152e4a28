package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/warunglabs/warungpos-backend/pkg/redis"
)

func TestRedisStoreRoundTrip(t *testing.T) {
	t.Parallel()

	backend := newFakeBackend()
	store, err := NewRedisStore(backend, time.Hour)
	if err != nil {
		t.Fatalf("build store: %v", err)
	}
	ctx := context.Background()

	lines := []Line{
		{ProductID: uuid.New(), Name: "Kopi", UnitPriceCents: 2500, Quantity: 2},
		{ProductID: uuid.New(), Name: "Teh", UnitPriceCents: 1500, Quantity: 1},
	}
	if err := store.Put(ctx, "sess-1", lines); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 || got[0] != lines[0] || got[1] != lines[1] {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if _, ok := backend.values["pos:session:sess-1:cart"]; !ok {
		t.Fatal("expected namespaced cart key")
	}
}

func TestRedisStoreMissingSessionIsEmpty(t *testing.T) {
	t.Parallel()

	store, err := NewRedisStore(newFakeBackend(), 0)
	if err != nil {
		t.Fatalf("build store: %v", err)
	}

	lines, err := store.Get(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
}

func TestRedisStoreForget(t *testing.T) {
	t.Parallel()

	backend := newFakeBackend()
	store, err := NewRedisStore(backend, 0)
	if err != nil {
		t.Fatalf("build store: %v", err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, "sess-1", []Line{{ProductID: uuid.New(), Name: "Kopi", UnitPriceCents: 100, Quantity: 1}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Forget(ctx, "sess-1"); err != nil {
		t.Fatalf("forget: %v", err)
	}

	lines, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get after forget: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart after forget, got %+v", lines)
	}
}

type fakeBackend struct {
	values map[string]string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{values: map[string]string{}}
}

func (f *fakeBackend) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.values[key] = value.(string)
	return nil
}

func (f *fakeBackend) Get(ctx context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeBackend) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeBackend) CartKey(sessionID string) string {
	return "pos:session:" + sessionID + ":cart"
}
