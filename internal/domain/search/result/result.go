package result

import "github.com/kailas-cloud/shopsearch/internal/domain/catalog"

// Hit is a single ranked catalog item.
type Hit struct {
	item      catalog.Item
	score     float64
	fullMatch bool
	demoted   bool
}

// NewHit creates a hit. The description is dropped: hits carry a projection of the item.
func NewHit(item catalog.Item, score float64, fullMatch, demoted bool) Hit {
	item.Description = ""
	return Hit{item: item, score: score, fullMatch: fullMatch, demoted: demoted}
}

// Item returns the projected catalog item.
func (h *Hit) Item() catalog.Item { return h.item }

// Score returns the strategy-dependent relevance.
func (h *Hit) Score() float64 { return h.score }

// FullMatch reports whether the whole query appears in the title.
func (h *Hit) FullMatch() bool { return h.fullMatch }

// Demoted reports whether the item's category is demoted.
func (h *Hit) Demoted() bool { return h.demoted }

// Correction lists spelling suggestions for one query token.
type Correction struct {
	original    string
	suggestions []string
}

// NewCorrection creates a correction for token original.
func NewCorrection(original string, suggestions []string) Correction {
	return Correction{original: original, suggestions: suggestions}
}

// Original returns the normalized token the suggestions replace.
func (c *Correction) Original() string { return c.original }

// Suggestions returns the suggested terms, most similar first.
func (c *Correction) Suggestions() []string { return c.suggestions }

// Result is one page of a search.
type Result struct {
	hits       []Hit
	page       int
	pageSize   int
	total      int
	didYouMean []Correction
	suggested  bool
}

// New creates a result page. hits is never nil in the returned value.
func New(hits []Hit, page, pageSize, total int) Result {
	if hits == nil {
		hits = []Hit{}
	}
	return Result{hits: hits, page: page, pageSize: pageSize, total: total}
}

// WithDidYouMean attaches suggestions; an empty list still marks the result as suggested.
func (r Result) WithDidYouMean(corrections []Correction) Result {
	if corrections == nil {
		corrections = []Correction{}
	}
	r.didYouMean = corrections
	r.suggested = true
	return r
}

// Hits returns the ranked hits of the page.
func (r *Result) Hits() []Hit { return r.hits }

// Page returns the zero-based page number.
func (r *Result) Page() int { return r.page }

// PageSize returns the requested page size.
func (r *Result) PageSize() int { return r.pageSize }

// Total returns the number of matches across all pages.
func (r *Result) Total() int { return r.total }

// DidYouMean returns spelling suggestions; nil unless the search had zero matches.
func (r *Result) DidYouMean() []Correction { return r.didYouMean }

// Suggested reports whether DidYouMean is part of the result.
func (r *Result) Suggested() bool { return r.suggested }
