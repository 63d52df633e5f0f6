package suggestcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/shopsearch/internal/db"
)

type mockDictionary struct {
	terms []string
	err   error
	calls int
}

func (m *mockDictionary) Similar(_ context.Context, _ string, _ int) ([]string, error) {
	m.calls++
	return m.terms, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedDictionary(t *testing.T, inner *mockDictionary) (*CachedDictionary, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	return New(inner, ms, 0, nil, zap.NewNop()), ms
}
