// internal/store/file_store_test.go
package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardapio/internal/domain"
	"cardapio/internal/store"
)

func TestFileStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()

	fs, err := store.NewFileStore(filepath.Join(home, "session"))
	require.NoError(t, err)
	var kv domain.KeyValueStore = fs

	_, ok, err := kv.Get(ctx, "clientInfo")
	require.NoError(t, err)
	assert.False(t, ok, "missing key is absent, not an error")

	require.NoError(t, kv.Set(ctx, "clientInfo", []byte(`{"id":1}`)))
	got, ok, err := kv.Get(ctx, "clientInfo")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":1}`, string(got))

	info, err := os.Stat(filepath.Join(home, "session", "clientInfo.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, kv.Delete(ctx, "clientInfo"))
	require.NoError(t, kv.Delete(ctx, "clientInfo"), "deleting twice is fine")
	_, ok, err = kv.Get(ctx, "clientInfo")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
		assert.Error(t, fs.Set(context.Background(), key, []byte("x")), "key %q", key)
	}
}

func TestFileStore_OverwriteLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()
	fs, err := store.NewFileStore(home)
	require.NoError(t, err)

	require.NoError(t, fs.Set(ctx, "cart", []byte("1")))
	require.NoError(t, fs.Set(ctx, "cart", []byte("2")))

	entries, err := os.ReadDir(home)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cart.json", entries[0].Name())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	ms := store.NewMemoryStore()

	value := []byte("abc")
	require.NoError(t, ms.Set(ctx, "k", value))
	value[0] = 'z'

	got, ok, err := ms.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", string(got))

	require.NoError(t, ms.Delete(ctx, "k"))
	_, ok, _ = ms.Get(ctx, "k")
	assert.False(t, ok)
}
