package search

import (
	"context"
	"testing"

	"github.com/kailas-cloud/shopsearch/internal/domain/search/predicate"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/ranking"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/request"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/result"
)

// --- Mocks ---

type catalogCall struct {
	pred   predicate.Predicate
	phrase string
	policy ranking.Policy
	offset int
	limit  int
}

type mockCatalog struct {
	hits  []result.Hit
	total int
	err   error
	calls []catalogCall
}

func (m *mockCatalog) Search(
	_ context.Context, p predicate.Predicate, phrase string,
	policy ranking.Policy, offset, limit int,
) ([]result.Hit, int, error) {
	m.calls = append(m.calls, catalogCall{pred: p, phrase: phrase, policy: policy, offset: offset, limit: limit})
	return m.hits, m.total, m.err
}

type mockDictionary struct {
	terms map[string][]string
	err   error
	calls []string
}

func (m *mockDictionary) Similar(_ context.Context, token string, _ int) ([]string, error) {
	m.calls = append(m.calls, token)
	if m.err != nil {
		return nil, m.err
	}
	return m.terms[token], nil
}

// --- Helpers ---

func newTestService(t *testing.T, cat Catalog, dict Dictionary) *Service {
	t.Helper()
	svc, err := New(cat, dict, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return svc
}

func mustRequest(t *testing.T, q string, page, size int) request.Request {
	t.Helper()
	req, err := request.New(q, page, size, request.DefaultLimits())
	if err != nil {
		t.Fatalf("request.New(%q): %v", q, err)
	}
	return req
}

func hitIDs(res result.Result) []string {
	hits := res.Hits()
	out := make([]string, len(hits))
	for i := range hits {
		out[i] = hits[i].Item().ID
	}
	return out
}
