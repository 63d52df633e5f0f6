package dictionary

import (
	"context"

	"github.com/kailas-cloud/shopsearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn func(ctx context.Context, q *db.DictionaryQuery) (*db.SearchResult, error)
}

func (m *mockStore) SearchDictionary(ctx context.Context, q *db.DictionaryQuery) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}
