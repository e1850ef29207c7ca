package storage

import (
	"context"
	"github.com/coocood/freecache"
	"time"
	"unsafe"
)

const defaultMemorySizeMB = 256

// MemoryStore is a process-local store; values expire after ttl.
type MemoryStore struct {
	cache *freecache.Cache
	ttl   int
}

func NewMemoryStore(sizeMB int, ttl time.Duration) *MemoryStore {
	if sizeMB <= 0 {
		sizeMB = defaultMemorySizeMB
	}
	return &MemoryStore{
		cache: freecache.NewCache(sizeMB * 1024 * 1024),
		ttl:   max(int(ttl.Seconds()), 0),
	}
}

// unsafeStringToBytes converts string to []byte without allocation.
// freecache copies keys and values internally.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	val, err := m.cache.Get(unsafeStringToBytes(key))
	if err != nil {
		if err == freecache.ErrNotFound {
			return "", false, nil
		}
		return "", false, err
	}
	return string(val), true, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	return m.cache.Set(unsafeStringToBytes(key), unsafeStringToBytes(value), m.ttl)
}

func (m *MemoryStore) Close() error {
	m.cache.Clear()
	return nil
}
