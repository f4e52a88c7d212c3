// Package kv defines the persistence port the repositories write through:
// whole collections serialized as text blobs under fixed keys. Backends only
// need get/set; everything richer (ordering, ids, invariants) lives above.
package kv

import (
	"context"
	"sync"
)

// Collection keys. One entry per entity collection, JSON-array text.
const (
	KeyProducts  = "products"
	KeySales     = "sales"
	KeyExpenses  = "expenses"
	KeyCustomers = "customers"
)

type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

// Memory is an in-process Store used for tests and for running without any
// external backend configured.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok, nil
}

func (m *Memory) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
