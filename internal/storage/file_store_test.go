package storage

import (
	"context"
	"errors"
	"intentd/internal/testutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "kv")
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	store, err := NewFileStore(dir, comp)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, dir
}

func TestFileStore_RoundTrip(t *testing.T) {
	store, _ := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "upgradeIntentTracking:abc", `{"interactions":[]}`))

	val, ok, err := store.Get(ctx, "upgradeIntentTracking:abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"interactions":[]}`, val)
}

func TestFileStore_MissingKey(t *testing.T) {
	store, _ := newTestFileStore(t)

	val, ok, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, val)
}

func TestFileStore_OverwriteLeavesNoTmp(t *testing.T) {
	store, dir := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "one"))
	require.NoError(t, store.Set(ctx, "k", "two"))

	val, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "two", val)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".zst", filepath.Ext(entries[0].Name()))
}

func TestFileStore_KeysWithPathSeparators(t *testing.T) {
	store, dir := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "../../etc/passwd", "x"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	val, ok, err := store.Get(ctx, "../../etc/passwd")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", val)
}

func TestFileStore_CorruptedFile(t *testing.T) {
	store, _ := newTestFileStore(t)
	require.NoError(t, os.WriteFile(store.path("bad"), []byte("not zstd"), 0o644))

	_, _, err := store.Get(context.Background(), "bad")
	assert.Error(t, err)
}

func TestFileStore_CompressError(t *testing.T) {
	comp := &testutil.MockCompressor{
		CompressFn: func(b []byte) ([]byte, error) {
			return nil, errors.New("compress error")
		},
	}
	store, err := NewFileStore(t.TempDir(), comp)
	require.NoError(t, err)

	assert.Error(t, store.Set(context.Background(), "k", "v"))
}

func TestFileStore_CancelledContext(t *testing.T) {
	store, _ := newTestFileStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Set(ctx, "k", "v"), context.Canceled)
	_, _, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
