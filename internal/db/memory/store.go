// Package memory is an in-process implementation of db.Store over a fixed catalog snapshot.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/kailas-cloud/shopsearch/internal/db"
	"github.com/kailas-cloud/shopsearch/internal/domain/catalog"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/predicate"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/query"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/ranking"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Default limits mirror the postgres pool.
const (
	DefaultMaxConcurrent  = 10
	DefaultAcquireTimeout = 2 * time.Second
)

// Config bounds concurrent queries the same way a connection pool would.
type Config struct {
	MaxConcurrent  int
	AcquireTimeout time.Duration
}

// Store serves catalog and dictionary queries from memory. It is immutable after
// construction and safe for concurrent use.
type Store struct {
	items   []catalog.Item
	terms   []string
	slots   *semaphore.Weighted
	timeout time.Duration
	closed  chan struct{}
}

// NewStore creates a store over items and dictionary terms.
func NewStore(cfg Config, items []catalog.Item, terms []string) *Store {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultMaxConcurrent
	}
	if cfg.AcquireTimeout <= 0 {
		cfg.AcquireTimeout = DefaultAcquireTimeout
	}
	return &Store{
		items:   append([]catalog.Item(nil), items...),
		terms:   append([]string(nil), terms...),
		slots:   semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		timeout: cfg.AcquireTimeout,
		closed:  make(chan struct{}),
	}
}

// Ping fails once the store is closed.
func (s *Store) Ping(context.Context) error {
	select {
	case <-s.closed:
		return &db.Error{Op: db.OpPing, Err: db.ErrUnavailable}
	default:
		return nil
	}
}

// Close marks the store unavailable. Calling it twice is a no-op.
func (s *Store) Close() {
	select {
	case <-s.closed:
	default:
		close(s.closed)
	}
}

// WaitForReady returns immediately: the snapshot is loaded at construction.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// acquire takes one query slot, bounded by the acquire timeout.
func (s *Store) acquire(ctx context.Context) (func(), error) {
	if err := s.Ping(ctx); err != nil {
		return nil, err
	}
	actx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.slots.Acquire(actx, 1); err != nil {
		if ctx.Err() != nil {
			return nil, &db.Error{Op: db.OpAcquire, Err: ctx.Err()}
		}
		return nil, &db.Error{Op: db.OpAcquire, Err: db.ErrPoolExhausted}
	}
	return func() { s.slots.Release(1) }, nil
}

type candidate struct {
	item *catalog.Item
	key  ranking.Key
}

// SearchCatalog filters, ranks and windows the catalog.
func (s *Store) SearchCatalog(ctx context.Context, q *db.CatalogQuery) (*db.SearchResult, error) {
	if q == nil {
		return nil, &db.Error{Op: db.OpSearchCatalog, Err: errors.New("nil query")}
	}
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	p := q.Predicate
	matchers := make(map[string]matcher, len(p.Strategies()))
	for _, st := range p.Strategies() {
		m, err := matcherFor(st)
		if err != nil {
			return nil, &db.Error{Op: db.OpSearchCatalog, Err: err}
		}
		matchers[string(st)] = m
	}
	policy := ranking.NewPolicy(q.Demoted)
	phrase := q.Phrase
	if p.FoldsAccents() {
		phrase = query.FoldAccents(phrase)
	}

	var cands []candidate
	for i := range s.items {
		if err := ctx.Err(); err != nil {
			return nil, &db.Error{Op: db.OpSearchCatalog, Err: err}
		}
		it := &s.items[i]
		value := fieldValue(p, it)
		ok := p.Eval(value, func(m predicate.Match, v string) bool {
			return matchers[string(m.Strategy())].match(m, v)
		})
		if !ok {
			continue
		}
		cands = append(cands, candidate{item: it, key: ranking.Key{
			FullMatch: ranking.FullMatch(phrase, value(catalog.FieldTitle)),
			Demoted:   policy.IsDemoted(it.Category),
			Relevance: relevance(p, matchers, value),
			Title:     it.Title,
			ID:        it.ID,
		}})
	}
	ranking.Sort(cands, func(c *candidate) ranking.Key { return c.key })

	res := &db.SearchResult{Total: len(cands)}
	start := min(max(q.Offset, 0), len(cands))
	end := len(cands)
	if q.Limit >= 0 && start+q.Limit < end {
		end = start + q.Limit
	}
	for _, c := range cands[start:end] {
		res.Entries = append(res.Entries, db.SearchEntry{
			Key:       c.item.ID,
			Score:     c.key.Relevance,
			FullMatch: c.key.FullMatch,
			Demoted:   c.key.Demoted,
			Fields:    itemFields(c.item),
		})
	}
	return res, nil
}

// fieldValue reads item fields as the predicate expects to see them.
func fieldValue(p predicate.Predicate, it *catalog.Item) func(catalog.Field) string {
	if !p.FoldsAccents() {
		return it.Text
	}
	return func(f catalog.Field) string { return query.FoldAccents(it.Text(f)) }
}

func relevance(p predicate.Predicate, matchers map[string]matcher, value func(catalog.Field) string) float64 {
	values := make([]string, 0, len(p.Fields()))
	for _, f := range p.Fields() {
		values = append(values, value(f))
	}
	total := 0.0
	for _, st := range p.Strategies() {
		m := matchers[string(st)]
		for _, tok := range p.Tokens() {
			total += m.relevance(tok, values)
		}
	}
	return total
}

func itemFields(it *catalog.Item) map[string]string {
	f := map[string]string{
		db.FieldTitle:    it.Title,
		db.FieldHandle:   it.Handle,
		db.FieldURL:      it.URL,
		db.FieldCategory: it.Category,
		db.FieldTags:     it.Tags,
		db.FieldSKU:      it.SKU,
		db.FieldImageURL: it.ImageURL,
	}
	if it.Price != nil {
		f[db.FieldPrice] = strconv.FormatFloat(*it.Price, 'f', -1, 64)
	}
	return f
}

// SearchDictionary returns up to K terms with positive similarity to the token,
// most similar first, ties broken by term.
func (s *Store) SearchDictionary(ctx context.Context, q *db.DictionaryQuery) (*db.SearchResult, error) {
	if q == nil || q.K <= 0 {
		return nil, &db.Error{Op: db.OpSearchDictionary, Err: fmt.Errorf("k must be positive")}
	}
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var entries []db.SearchEntry
	for _, term := range s.terms {
		if sc := similarity(q.Token, term); sc > 0 {
			entries = append(entries, db.SearchEntry{Key: term, Score: sc})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Key < entries[j].Key
	})
	if len(entries) > q.K {
		entries = entries[:q.K]
	}
	return &db.SearchResult{Total: len(entries), Entries: entries}, nil
}
