package storage

import (
	"context"
	"intentd/internal/providers"
	"time"
)

// InstrumentedStore times every call and counts failures.
type InstrumentedStore struct {
	inner   KVStore
	metrics providers.MetricsProviderInterface
}

func NewInstrumentedStore(inner KVStore, metrics providers.MetricsProviderInterface) KVStore {
	return &InstrumentedStore{inner: inner, metrics: metrics}
}

func (s *InstrumentedStore) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	val, ok, err := s.inner.Get(ctx, key)
	s.observe("get", start, err)
	return val, ok, err
}

func (s *InstrumentedStore) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.inner.Set(ctx, key, value)
	s.observe("set", start, err)
	return err
}

func (s *InstrumentedStore) Close() error {
	return s.inner.Close()
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error) {
	s.metrics.ObserveStorageDuration(op, time.Since(start))
	if err != nil {
		s.metrics.IncStorageErrors(op)
	}
}
