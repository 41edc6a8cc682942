package stores

import (
	"context"
	"fmt"
	"slices"

	"github.com/colonyops/taskr/internal/core/kv"
	pkgkv "github.com/colonyops/taskr/pkg/kv"
)

// MemoryStore implements kv.KV in process memory. Nothing survives a restart.
type MemoryStore struct {
	data *pkgkv.Store[string, []byte]
}

var _ kv.KV = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory KV store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: pkgkv.New[string, []byte]()}
}

// Get returns a copy of the value stored under key.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.data.Get(key)
	if !ok {
		return nil, fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}
	return slices.Clone(v), nil
}

// Set stores a copy of value under key.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.data.Set(key, slices.Clone(value))
	return nil
}

// Delete removes a key.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.data.Delete(key)
	return nil
}

// Has returns whether a key exists.
func (s *MemoryStore) Has(_ context.Context, key string) (bool, error) {
	_, ok := s.data.Get(key)
	return ok, nil
}

// ListKeys returns all keys in sorted order.
func (s *MemoryStore) ListKeys(_ context.Context) ([]string, error) {
	return s.data.Keys(), nil
}
