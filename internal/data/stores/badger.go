package stores

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/colonyops/taskr/internal/core/kv"
	"github.com/colonyops/taskr/internal/core/logging"
)

// BadgerOptions configures an embedded Badger database.
type BadgerOptions struct {
	// Dir is the directory holding the database files. Ignored when InMemory is set.
	Dir string
	// InMemory keeps all data in memory; used by tests.
	InMemory bool
	// SyncWrites fsyncs every write before returning.
	SyncWrites bool
}

// BadgerStore implements kv.KV on top of Badger.
type BadgerStore struct {
	db *badger.DB
}

var _ kv.KV = (*BadgerStore)(nil)

// OpenBadger opens (or creates) a Badger database.
func OpenBadger(opts BadgerOptions) (*BadgerStore, error) {
	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Dir == "" {
			return nil, errors.New("badger: directory is required")
		}
		if err := os.MkdirAll(opts.Dir, 0o750); err != nil {
			return nil, fmt.Errorf("create badger directory %s: %w", opts.Dir, err)
		}
		bopts = badger.DefaultOptions(opts.Dir)
	}

	bopts = bopts.
		WithSyncWrites(opts.SyncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(badgerLogger{log: logging.Component("badger")})

	database, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	return &BadgerStore{db: database}, nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Get returns a copy of the value stored under key.
func (s *BadgerStore) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
		}
		return nil, fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key.
func (s *BadgerStore) Set(_ context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Delete removes a key.
func (s *BadgerStore) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Has returns whether a key exists.
func (s *BadgerStore) Has(ctx context.Context, key string) (bool, error) {
	_, err := s.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListKeys returns all keys in sorted order. Badger iterates keys in
// byte-wise order, which matches string ordering.
func (s *BadgerStore) ListKeys(_ context.Context) ([]string, error) {
	keys := []string{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("kv list keys: %w", err)
	}
	return keys, nil
}

// badgerLogger routes Badger's internal logging through zerolog. Info and
// debug chatter is demoted so it stays out of the default log level.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.log.Trace().Msgf(format, args...)
}
