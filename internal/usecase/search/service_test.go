package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kailas-cloud/shopsearch/internal/domain"
	"github.com/kailas-cloud/shopsearch/internal/domain/catalog"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/result"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/strategy"
)

func TestNew_InvalidConfig(t *testing.T) {
	tests := map[string]func(*Config){
		"no fields":       func(c *Config) { c.Fields = nil },
		"unknown field":   func(c *Config) { c.Fields = []catalog.Field{"colour"} },
		"no strategies":   func(c *Config) { c.Strategies = nil },
		"bad threshold":   func(c *Config) { c.Threshold = 0 },
		"threshold above": func(c *Config) { c.Threshold = 1.5 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			if _, err := New(&mockCatalog{}, nil, cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSearch_PassesPredicateAndWindow(t *testing.T) {
	cat := &mockCatalog{total: 45, hits: []result.Hit{result.NewHit(catalog.Item{ID: "1"}, 1, false, false)}}
	svc := newTestService(t, cat, &mockDictionary{})

	res, err := svc.Search(context.Background(), mustRequest(t, "  Watch7 Strap ", 2, 20))
	if err != nil {
		t.Fatal(err)
	}
	if len(cat.calls) != 1 {
		t.Fatalf("catalog calls = %d", len(cat.calls))
	}
	call := cat.calls[0]
	tokens := call.pred.Tokens()
	if fmt.Sprint(tokens) != "[watch 7 strap]" {
		t.Errorf("tokens = %v", tokens)
	}
	if call.phrase != "Watch7 Strap" {
		t.Errorf("phrase = %q, want trimmed raw query", call.phrase)
	}
	if call.offset != 40 || call.limit != 20 {
		t.Errorf("window = %d+%d", call.offset, call.limit)
	}
	if !call.policy.IsDemoted("Accessories") {
		t.Error("default demotion policy not applied")
	}
	if res.Total() != 45 || res.Page() != 2 || res.PageSize() != 20 || len(res.Hits()) != 1 {
		t.Errorf("result = total %d page %d size %d hits %d", res.Total(), res.Page(), res.PageSize(), len(res.Hits()))
	}
	if res.Suggested() {
		t.Error("suggestions must only run on zero matches")
	}
}

func TestSearch_NoTokensIsEmptyResult(t *testing.T) {
	cat := &mockCatalog{}
	dict := &mockDictionary{}

	// A request cannot be built from blank input, so use a non-blank query that
	// normalizes to nothing under symbol dropping.
	cfg := DefaultConfig()
	cfg.Normalize.DropSymbolTokens = true
	svc, err := New(cat, dict, cfg)
	if err != nil {
		t.Fatal(err)
	}

	res, err := svc.Search(context.Background(), mustRequest(t, "!!! ---", 0, 20))
	if err != nil {
		t.Fatal(err)
	}
	if res.Total() != 0 || len(res.Hits()) != 0 || res.Suggested() {
		t.Errorf("expected empty result without suggestions, got total=%d suggested=%v", res.Total(), res.Suggested())
	}
	if len(cat.calls) != 0 || len(dict.calls) != 0 {
		t.Error("no collaborator may be called for an empty token list")
	}
}

func TestSearch_ZeroMatchesSuggests(t *testing.T) {
	dict := &mockDictionary{terms: map[string][]string{
		"zyxqq": {"zipper", "zoom", "zinc", "zebra"},
	}}
	svc := newTestService(t, &mockCatalog{}, dict)

	res, err := svc.Search(context.Background(), mustRequest(t, "zyxqq qqq", 0, 20))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Suggested() {
		t.Fatal("expected suggestions on zero matches")
	}
	dym := res.DidYouMean()
	if len(dym) != 1 {
		t.Fatalf("didYouMean = %+v, want one correction (qqq has no hits)", dym)
	}
	if dym[0].Original() != "zyxqq" || len(dym[0].Suggestions()) != DefaultSuggestionCount {
		t.Errorf("correction = %s %v", dym[0].Original(), dym[0].Suggestions())
	}
	if fmt.Sprint(dict.calls) != "[zyxqq qqq]" {
		t.Errorf("lookups = %v, want token order", dict.calls)
	}
}

func TestSearch_SuggestionFailureDegrades(t *testing.T) {
	dict := &mockDictionary{err: fmt.Errorf("dict: %w", domain.ErrResourceUnavailable)}
	svc := newTestService(t, &mockCatalog{}, dict)

	res, err := svc.Search(context.Background(), mustRequest(t, "zyxqq", 0, 20))
	if err != nil {
		t.Fatalf("suggestion failure must not fail the search: %v", err)
	}
	if !res.Suggested() || res.DidYouMean() == nil || len(res.DidYouMean()) != 0 {
		t.Errorf("expected empty didYouMean, got %+v", res.DidYouMean())
	}
}

func TestSearch_NilDictionary(t *testing.T) {
	svc := newTestService(t, &mockCatalog{}, nil)
	res, err := svc.Search(context.Background(), mustRequest(t, "zyxqq", 0, 20))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.DidYouMean()) != 0 {
		t.Errorf("didYouMean = %+v", res.DidYouMean())
	}
}

func TestSearch_PageBeyondEndDoesNotSuggest(t *testing.T) {
	dict := &mockDictionary{}
	svc := newTestService(t, &mockCatalog{total: 3}, dict)
	res, err := svc.Search(context.Background(), mustRequest(t, "iphone", 10, 20))
	if err != nil {
		t.Fatal(err)
	}
	if res.Total() != 3 || len(res.Hits()) != 0 || res.Suggested() || len(dict.calls) != 0 {
		t.Errorf("unexpected result: total=%d hits=%d suggested=%v", res.Total(), len(res.Hits()), res.Suggested())
	}
}

func TestSearch_StorageErrorsPropagate(t *testing.T) {
	for _, sentinel := range []error{domain.ErrResourceUnavailable, domain.ErrCollaboratorFault} {
		t.Run(sentinel.Error(), func(t *testing.T) {
			dict := &mockDictionary{}
			cat := &mockCatalog{err: fmt.Errorf("search catalog: %w", sentinel)}
			svc := newTestService(t, cat, dict)

			_, err := svc.Search(context.Background(), mustRequest(t, "iphone", 0, 20))
			if !errors.Is(err, sentinel) {
				t.Fatalf("got %v, want %v", err, sentinel)
			}
			if len(dict.calls) != 0 {
				t.Error("failed search must not look up suggestions")
			}
		})
	}
}

func TestSuggest(t *testing.T) {
	dict := &mockDictionary{terms: map[string][]string{"iphnoe": {"iphone"}}}
	svc := newTestService(t, &mockCatalog{}, dict)

	got, err := svc.Suggest(context.Background(), "iPhnoe")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Suggestions()[0] != "iphone" {
		t.Errorf("corrections = %+v", got)
	}

	if _, err := svc.Suggest(context.Background(), "  "); !errors.Is(err, domain.ErrEmptyQuery) {
		t.Errorf("blank input: got %v, want ErrEmptyQuery", err)
	}

	dict.err = errors.New("down")
	if _, err := svc.Suggest(context.Background(), "x"); err == nil {
		t.Error("Suggest must surface dictionary errors")
	}
}

func TestStrategies(t *testing.T) {
	svc := newTestService(t, &mockCatalog{}, nil)
	if svc.Strategies().String() != strategy.Default().String() {
		t.Errorf("strategies = %s", svc.Strategies())
	}
}
