package storage

import (
	"context"
	"errors"
	"intentd/internal/structures"
	"intentd/internal/testutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKVStore_UnknownDriver(t *testing.T) {
	conf := &structures.Config{Storage: structures.StorageConfig{Driver: "indexeddb"}}

	_, err := NewKVStore(conf, &testutil.MockLogger{}, testutil.NewMockMetrics())
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestNewKVStore_Memory(t *testing.T) {
	conf := &structures.Config{
		Storage: structures.StorageConfig{Driver: "memory", Size: 1},
		Tracker: structures.TrackerConfig{Retention: 7 * 24 * time.Hour},
	}
	metrics := testutil.NewMockMetrics()

	store, err := NewKVStore(conf, &testutil.MockLogger{}, metrics)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(context.Background(), "k", "v"))
	_, _, err = store.Get(context.Background(), "k")
	require.NoError(t, err)

	assert.Equal(t, 1, metrics.StorageOps["set"])
	assert.Equal(t, 1, metrics.StorageOps["get"])
}

func TestNewKVStore_File(t *testing.T) {
	conf := &structures.Config{
		Storage: structures.StorageConfig{Driver: "file", Dir: filepath.Join(t.TempDir(), "state")},
	}

	store, err := NewKVStore(conf, &testutil.MockLogger{}, testutil.NewMockMetrics())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(context.Background(), "k", "v"))
	val, ok, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", val)
}

func TestInstrumentedStore_CountsErrors(t *testing.T) {
	inner := testutil.NewMockKVStore()
	inner.SetErr = errors.New("disk full")
	inner.GetErr = errors.New("io error")
	metrics := testutil.NewMockMetrics()
	store := NewInstrumentedStore(inner, metrics)

	assert.Error(t, store.Set(context.Background(), "k", "v"))
	_, _, err := store.Get(context.Background(), "k")
	assert.Error(t, err)

	assert.Equal(t, 1, metrics.StorageErrors["set"])
	assert.Equal(t, 1, metrics.StorageErrors["get"])

	require.NoError(t, store.Close())
	assert.True(t, inner.Closed)
}
