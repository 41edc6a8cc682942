package stores

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/colonyops/taskr/internal/core/kv"
	"github.com/colonyops/taskr/internal/data/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKVStore(t *testing.T) *KVStore {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewKVStore(database)
}

func newTestBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := OpenBadger(BadgerOptions{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func backends(t *testing.T) map[string]kv.KV {
	t.Helper()
	return map[string]kv.KV{
		"sqlite": newTestKVStore(t),
		"badger": newTestBadgerStore(t),
		"memory": NewMemoryStore(),
	}
}

func TestKV_SetAndGet(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Set(ctx, "tasks", []byte(`[{"id":1}]`)))

			got, err := store.Get(ctx, "tasks")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":1}]`, string(got))
		})
	}
}

func TestKV_GetNotFound(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(context.Background(), "nonexistent")
			assert.ErrorIs(t, err, kv.ErrNotFound)
			assert.True(t, IsNotFoundError(err))
		})
	}
}

func TestKV_SetOverwrite(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Set(ctx, "key", []byte("first")))
			require.NoError(t, store.Set(ctx, "key", []byte("second")))

			got, err := store.Get(ctx, "key")
			require.NoError(t, err)
			assert.Equal(t, "second", string(got))
		})
	}
}

func TestKV_StoresArbitraryBytes(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Set(ctx, "key", []byte("{not json")))

			got, err := store.Get(ctx, "key")
			require.NoError(t, err)
			assert.Equal(t, "{not json", string(got))
		})
	}
}

func TestKV_DeleteAndHas(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			has, err := store.Has(ctx, "key")
			require.NoError(t, err)
			assert.False(t, has)

			require.NoError(t, store.Set(ctx, "key", []byte("v")))
			has, err = store.Has(ctx, "key")
			require.NoError(t, err)
			assert.True(t, has)

			require.NoError(t, store.Delete(ctx, "key"))
			require.NoError(t, store.Delete(ctx, "key"), "deleting a missing key is not an error")

			has, err = store.Has(ctx, "key")
			require.NoError(t, err)
			assert.False(t, has)
		})
	}
}

func TestKV_ListKeysSorted(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			keys, err := store.ListKeys(ctx)
			require.NoError(t, err)
			assert.Empty(t, keys)

			for _, k := range []string{"work", "home", "errands"} {
				require.NoError(t, store.Set(ctx, k, []byte("[]")))
			}

			keys, err = store.ListKeys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"errands", "home", "work"}, keys)
		})
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	value := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestOpenBadger_RequiresDir(t *testing.T) {
	_, err := OpenBadger(BadgerOptions{})
	assert.Error(t, err)
}

func TestOpenBadger_PersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")
	ctx := context.Background()

	store, err := OpenBadger(BadgerOptions{Dir: dir, SyncWrites: true})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "tasks", []byte("[]")))
	require.NoError(t, store.Close())

	store, err = OpenBadger(BadgerOptions{Dir: dir})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	got, err := store.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestRecoverFromCorruption(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, db.FileName)
	require.NoError(t, os.WriteFile(dbPath, []byte("garbage"), 0o600))
	require.NoError(t, os.WriteFile(dbPath+"-wal", []byte("wal"), 0o600))

	backup, err := RecoverFromCorruption(dir)
	require.NoError(t, err)

	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err), "original file should be moved aside")
	_, err = os.Stat(dbPath + "-wal")
	assert.True(t, os.IsNotExist(err), "wal file should be moved aside")

	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(data))
}

func TestRecoverFromCorruption_MissingFile(t *testing.T) {
	_, err := RecoverFromCorruption(t.TempDir())
	assert.NoError(t, err)
}

func TestIsCorruptionError(t *testing.T) {
	assert.False(t, IsCorruptionError(nil))
	assert.False(t, IsCorruptionError(assert.AnError))
	assert.True(t, IsCorruptionError(errString("file is not a database")))
}

type errString string

func (e errString) Error() string { return string(e) }
