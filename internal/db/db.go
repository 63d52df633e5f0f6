package db

import (
	"context"
	"time"
)

// Store is the search storage facade combining the catalog and dictionary collaborators.
type Store interface {
	Pinger
	CatalogSearcher
	DictionarySearcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Cache is a key-value store used for derived, disposable data.
type Cache interface {
	Pinger
	KVStore
	Close()
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CatalogSearcher runs ranked, windowed catalog searches.
type CatalogSearcher interface {
	SearchCatalog(ctx context.Context, q *CatalogQuery) (*SearchResult, error)
}

// DictionarySearcher returns the terms most similar to a token.
type DictionarySearcher interface {
	SearchDictionary(ctx context.Context, q *DictionaryQuery) (*SearchResult, error)
}

// PoolStats is a snapshot of connection pool usage.
type PoolStats struct {
	Acquired int
	Idle     int
	Total    int
	Max      int
}
