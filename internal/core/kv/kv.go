// Package kv defines the key-value storage contract used to persist task data.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key holds no value.
var ErrNotFound = errors.New("kv: key not found")

// KV is the interface for a persistent key-value store. Values are opaque
// byte strings; callers own their encoding.
type KV interface {
	// Get returns the value stored under key.
	// Returns an error wrapping ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Has returns whether a key exists.
	Has(ctx context.Context, key string) (bool, error)

	// ListKeys returns all keys in sorted order.
	ListKeys(ctx context.Context) ([]string, error)
}
