package kv

import "context"

// Slot binds a KV store to a single key, exposing read/write of one value.
type Slot struct {
	store KV
	key   string
}

// NewSlot returns a Slot that reads and writes key in store.
func NewSlot(store KV, key string) *Slot {
	return &Slot{store: store, key: key}
}

// Key returns the bound key.
func (s *Slot) Key() string {
	return s.key
}

// Read returns the stored value.
// Returns an error wrapping ErrNotFound if nothing has been written.
func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	return s.store.Get(ctx, s.key)
}

// Write replaces the stored value.
func (s *Slot) Write(ctx context.Context, data []byte) error {
	return s.store.Set(ctx, s.key, data)
}
