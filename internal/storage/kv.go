// Package storage holds the key/value backends behind the tracker's
// persistence bridge. Each backend stores one opaque string per key.
package storage

import (
	"context"
	"errors"
	"fmt"
	"intentd/internal/providers"
	"intentd/internal/structures"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// NewKVStore builds the backend selected by storage.driver and wraps it
// with metrics.
func NewKVStore(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (KVStore, error) {
	var (
		store KVStore
		err   error
	)

	switch conf.Storage.Driver {
	case "file":
		var compressor Compressor
		compressor, err = NewZstdCompressor()
		if err != nil {
			return nil, err
		}
		store, err = NewFileStore(conf.Storage.Dir, compressor)
	case "memory":
		store = NewMemoryStore(conf.Storage.Size, conf.Tracker.Retention)
	case "redis":
		store, err = NewRedisStore(conf.Storage.Redis, conf.Tracker.Retention)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, conf.Storage.Driver)
	}
	if err != nil {
		return nil, err
	}

	logger.Infof(providers.TypeApp, "Storage initialized: driver=%s", conf.Storage.Driver)
	return NewInstrumentedStore(store, metrics), nil
}
