package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/colonyops/taskr/internal/core/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_ReadMissingFile(t *testing.T) {
	slot := NewSlot(filepath.Join(t.TempDir(), "tasks.json"))

	_, err := slot.Read(context.Background())
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestSlot_WriteCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.json")
	slot := NewSlot(path)

	require.NoError(t, slot.Write(context.Background(), []byte(`[]`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
	assert.Equal(t, path, slot.Path())
}

func TestSlot_WriteReplacesAndLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	slot := NewSlot(path)
	ctx := context.Background()

	require.NoError(t, slot.Write(ctx, []byte(`[{"id":1,"text":"a","completed":false}]`)))
	require.NoError(t, slot.Write(ctx, []byte(`[]`)))

	got, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSlot_WriteFailsWhenParentIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	slot := NewSlot(filepath.Join(blocker, "tasks.json"))
	assert.Error(t, slot.Write(context.Background(), []byte(`[]`)))
}

func TestSlot_ReadErrorOtherThanMissing(t *testing.T) {
	dir := t.TempDir()
	slot := NewSlot(dir) // a directory cannot be read as a file

	_, err := slot.Read(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, kv.ErrNotFound)
}
