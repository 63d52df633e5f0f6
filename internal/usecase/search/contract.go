package search

import (
	"context"

	"github.com/kailas-cloud/shopsearch/internal/domain/search/predicate"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/ranking"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/request"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/result"
)

// Catalog runs the predicate against the catalog and returns one ranked window
// together with the total number of matches.
type Catalog interface {
	Search(
		ctx context.Context, p predicate.Predicate, phrase string,
		policy ranking.Policy, offset, limit int,
	) ([]result.Hit, int, error)
}

// Dictionary returns up to k known terms most similar to a token, best first.
type Dictionary interface {
	Similar(ctx context.Context, token string, k int) ([]string, error)
}

// Searcher is the inbound contract implemented by Service and its decorators.
type Searcher interface {
	Search(ctx context.Context, req request.Request) (result.Result, error)
}
