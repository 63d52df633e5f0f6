package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/shopsearch/internal/db"
	"github.com/kailas-cloud/shopsearch/internal/domain"
	domcat "github.com/kailas-cloud/shopsearch/internal/domain/catalog"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/predicate"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/ranking"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/result"
	"github.com/kailas-cloud/shopsearch/internal/repository"
)

// store is the consumer interface for catalog search (ISP).
type store interface {
	SearchCatalog(ctx context.Context, q *db.CatalogQuery) (*db.SearchResult, error)
}

// Repo implements usecase/search.Catalog.
type Repo struct {
	store store
}

// New creates a catalog repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Search returns one ranked window of hits and the total number of matches.
func (r *Repo) Search(
	ctx context.Context, p predicate.Predicate, phrase string,
	policy ranking.Policy, offset, limit int,
) ([]result.Hit, int, error) {
	q := &db.CatalogQuery{
		Predicate: p,
		Phrase:    phrase,
		Demoted:   policy.Categories(),
		Offset:    offset,
		Limit:     limit,
	}

	sr, err := r.store.SearchCatalog(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("search catalog: %w", repository.Classify(err))
	}

	hits, err := parseEntries(sr)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrCollaboratorFault, err)
	}
	return hits, sr.Total, nil
}

// parseEntries converts db.SearchResult into domain hits.
func parseEntries(sr *db.SearchResult) ([]result.Hit, error) {
	if sr == nil {
		return nil, nil
	}
	hits := make([]result.Hit, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		item, err := parseItem(e)
		if err != nil {
			return nil, err
		}
		hits = append(hits, result.NewHit(item, e.Score, e.FullMatch, e.Demoted))
	}
	return hits, nil
}

func parseItem(e db.SearchEntry) (domcat.Item, error) {
	if e.Key == "" {
		return domcat.Item{}, fmt.Errorf("catalog entry without id")
	}
	item := domcat.Item{
		ID:       e.Key,
		Title:    e.Fields[db.FieldTitle],
		Handle:   e.Fields[db.FieldHandle],
		URL:      e.Fields[db.FieldURL],
		Category: e.Fields[db.FieldCategory],
		Tags:     e.Fields[db.FieldTags],
		SKU:      e.Fields[db.FieldSKU],
		ImageURL: e.Fields[db.FieldImageURL],
	}
	if raw, ok := e.Fields[db.FieldPrice]; ok && raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domcat.Item{}, fmt.Errorf("item %s: invalid price %q: %w", e.Key, raw, err)
		}
		item.Price = &v
	}
	return item, nil
}
