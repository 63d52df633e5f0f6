package chi

import (
	"github.com/kailas-cloud/shopsearch/internal/domain/search/result"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.Code.
const (
	ErrorCodeEmptyQuery         ErrorCode = "empty_query"
	ErrorCodeUnauthorized       ErrorCode = "unauthorized"
	ErrorCodeServiceUnavailable ErrorCode = "service_unavailable"
	ErrorCodeInternalError      ErrorCode = "internal_error"
	ErrorCodeNotFound           ErrorCode = "not_found"
	ErrorCodeMethodNotAllowed   ErrorCode = "method_not_allowed"
)

const missingQueryParameterMessage = "Missing 'q' query parameter."

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Product is a catalog item projection. The description is never returned.
type Product struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Handle   string   `json:"handle"`
	URL      string   `json:"url"`
	Category string   `json:"category"`
	Tags     string   `json:"tags"`
	SKU      string   `json:"sku"`
	Price    *float64 `json:"price"`
	ImageURL string   `json:"image_url"`
	Score    float64  `json:"score"`
}

// Correction lists suggested replacements for one query token.
type Correction struct {
	Original    string   `json:"original"`
	Suggestions []string `json:"suggestions"`
}

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Results    []Product     `json:"results"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	Total      int           `json:"total"`
	DidYouMean *[]Correction `json:"did_you_mean,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func searchResponseFromResult(res *result.Result) SearchResponse {
	hits := res.Hits()
	products := make([]Product, len(hits))
	for i := range hits {
		products[i] = productFromHit(&hits[i])
	}

	resp := SearchResponse{
		Results:  products,
		Page:     res.Page(),
		PageSize: res.PageSize(),
		Total:    res.Total(),
	}
	if res.Suggested() {
		dym := res.DidYouMean()
		corrections := make([]Correction, len(dym))
		for i := range dym {
			corrections[i] = Correction{
				Original:    dym[i].Original(),
				Suggestions: dym[i].Suggestions(),
			}
			if corrections[i].Suggestions == nil {
				corrections[i].Suggestions = []string{}
			}
		}
		resp.DidYouMean = &corrections
	}
	return resp
}

func productFromHit(h *result.Hit) Product {
	it := h.Item()
	return Product{
		ID:       it.ID,
		Title:    it.Title,
		Handle:   it.Handle,
		URL:      it.URL,
		Category: it.Category,
		Tags:     it.Tags,
		SKU:      it.SKU,
		Price:    it.Price,
		ImageURL: it.ImageURL,
		Score:    h.Score(),
	}
}
