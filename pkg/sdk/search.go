package shopsearch

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/shopsearch/internal/domain/search/request"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/result"
)

// Search runs a product search. page is zero-based; out-of-range page and
// pageSize values are clamped, never rejected. A blank query returns ErrEmptyQuery.
func (c *Client) Search(ctx context.Context, query string, page, pageSize int) (out SearchPage, err error) {
	start := time.Now()
	defer func() { c.obs.searched(query, start, &out, err) }()

	req, err := request.New(query, page, pageSize, c.limits)
	if err != nil {
		return SearchPage{}, fmt.Errorf("search: %w", err)
	}

	res, err := c.searchSvc.Search(ctx, req)
	if err != nil {
		return SearchPage{}, fmt.Errorf("search: %w", err)
	}
	return pageFromResult(&res), nil
}

// Suggest returns dictionary corrections for every token of text, regardless
// of whether it matches the catalog.
func (c *Client) Suggest(ctx context.Context, text string) (_ []Correction, err error) {
	start := time.Now()
	defer func() { c.obs.observe("suggest", start, err) }()

	corrections, err := c.searchSvc.Suggest(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return correctionsFromResult(corrections), nil
}

func pageFromResult(res *result.Result) SearchPage {
	hits := res.Hits()
	products := make([]Product, len(hits))
	for i := range hits {
		it := hits[i].Item()
		products[i] = Product{
			ID:       it.ID,
			Title:    it.Title,
			Handle:   it.Handle,
			URL:      it.URL,
			Category: it.Category,
			Tags:     it.Tags,
			SKU:      it.SKU,
			Price:    it.Price,
			ImageURL: it.ImageURL,
			Score:    hits[i].Score(),
		}
	}

	page := SearchPage{
		Results:  products,
		Page:     res.Page(),
		PageSize: res.PageSize(),
		Total:    res.Total(),
	}
	if res.Suggested() {
		page.DidYouMean = correctionsFromResult(res.DidYouMean())
	}
	return page
}

func correctionsFromResult(cs []result.Correction) []Correction {
	out := make([]Correction, len(cs))
	for i := range cs {
		out[i] = Correction{Original: cs[i].Original(), Suggestions: cs[i].Suggestions()}
	}
	return out
}
