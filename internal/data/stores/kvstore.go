package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/colonyops/taskr/internal/core/kv"
	"github.com/colonyops/taskr/internal/data/db"
)

const (
	maxBusyRetries = 3
	busyRetryWait  = 50 * time.Millisecond
)

// KVStore implements kv.KV using SQLite.
type KVStore struct {
	db  *db.DB
	now func() time.Time
}

var _ kv.KV = (*KVStore)(nil)

// NewKVStore creates a new SQLite-backed KV store.
func NewKVStore(db *db.DB) *KVStore {
	return &KVStore{db: db, now: time.Now}
}

// Get retrieves the value stored under key.
// Returns an error wrapping kv.ErrNotFound if the key does not exist.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.Conn().
		QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", key).
		Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
		}
		return nil, fmt.Errorf("kv get %q: %w", key, err)
	}

	return value, nil
}

// Set stores value under key, keeping the original creation time on update.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}

	var err error
	for attempt := range maxBusyRetries {
		now := s.now().UnixNano()
		_, err = s.db.Conn().ExecContext(ctx, `
			INSERT INTO kv_store (key, value, created_at, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, value, now, now)
		if !IsBusyError(err) {
			break
		}
		time.Sleep(time.Duration(attempt+1) * busyRetryWait)
	}
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}

	return nil
}

// Delete removes a key.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Conn().ExecContext(ctx, "DELETE FROM kv_store WHERE key = ?", key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Has returns whether a key exists.
func (s *KVStore) Has(ctx context.Context, key string) (bool, error) {
	var count int64
	err := s.db.Conn().
		QueryRowContext(ctx, "SELECT COUNT(*) FROM kv_store WHERE key = ?", key).
		Scan(&count)
	if err != nil {
		return false, fmt.Errorf("kv has %q: %w", key, err)
	}
	return count > 0, nil
}

// ListKeys returns all keys in sorted order.
func (s *KVStore) ListKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.Conn().QueryContext(ctx, "SELECT key FROM kv_store ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("kv list keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("kv list keys scan: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}
