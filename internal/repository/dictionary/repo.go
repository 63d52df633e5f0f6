package dictionary

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/shopsearch/internal/db"
	"github.com/kailas-cloud/shopsearch/internal/repository"
)

// store is the consumer interface for dictionary lookups (ISP).
type store interface {
	SearchDictionary(ctx context.Context, q *db.DictionaryQuery) (*db.SearchResult, error)
}

// Repo implements usecase/search.Dictionary.
type Repo struct {
	store store
}

// New creates a dictionary repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Similar returns up to k known terms most similar to token, best first.
func (r *Repo) Similar(ctx context.Context, token string, k int) ([]string, error) {
	sr, err := r.store.SearchDictionary(ctx, &db.DictionaryQuery{Token: token, K: k})
	if err != nil {
		return nil, fmt.Errorf("search dictionary %q: %w", token, repository.Classify(err))
	}
	terms := make([]string, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		if e.Key != "" {
			terms = append(terms, e.Key)
		}
	}
	if len(terms) > k {
		terms = terms[:k]
	}
	return terms, nil
}
