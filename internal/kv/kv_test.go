package kv

import (
	"context"
	"testing"
)

func TestMemoryGetSet(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	_, found, err := store.Get(ctx, KeyProducts)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatalf("expected miss on empty store")
	}

	if err := store.Set(ctx, KeyProducts, `[{"id":"P001"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}

	value, found, err := store.Get(ctx, KeyProducts)
	if err != nil {
		t.Fatalf("get after set: %v", err)
	}
	if !found || value != `[{"id":"P001"}]` {
		t.Fatalf("unexpected value %q (found=%t)", value, found)
	}

	// Overwrites replace the whole blob.
	if err := store.Set(ctx, KeyProducts, "[]"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _, _ = store.Get(ctx, KeyProducts)
	if value != "[]" {
		t.Fatalf("expected overwritten value, got %q", value)
	}
}
