package catalog

import (
	"context"
	"testing"

	"github.com/kailas-cloud/shopsearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn func(ctx context.Context, q *db.CatalogQuery) (*db.SearchResult, error)
}

func (m *mockStore) SearchCatalog(ctx context.Context, q *db.CatalogQuery) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}
