package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore(1, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "value"))

	val, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", val)
}

func TestMemoryStore_MissingKey(t *testing.T) {
	store := NewMemoryStore(1, time.Hour)

	_, ok, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_Overwrite(t *testing.T) {
	store := NewMemoryStore(0, 0)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "a"))
	require.NoError(t, store.Set(ctx, "k", "b"))

	val, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "b", val)
}

func TestMemoryStore_CloseClears(t *testing.T) {
	store := NewMemoryStore(1, time.Hour)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", "a"))

	require.NoError(t, store.Close())

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
