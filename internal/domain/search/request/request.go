package request

import (
	"strings"

	"github.com/kailas-cloud/shopsearch/internal/domain"
)

// Paging defaults.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxOffset bounds page*pageSize so the window always fits the storage driver's integer type.
	MaxOffset = 1<<31 - 1
)

// Limits configures page size clamping.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultLimits returns the built-in paging limits.
func DefaultLimits() Limits {
	return Limits{DefaultPageSize: DefaultPageSize, MaxPageSize: MaxPageSize}
}

// Request is a validated search query.
type Request struct {
	query    string
	page     int
	pageSize int
}

// New validates the query and clamps the window. Out-of-range page and pageSize never fail:
// page < 0 becomes 0, pageSize < 1 becomes the default, pageSize above the maximum becomes the maximum.
func New(rawQuery string, page, pageSize int, limits Limits) (Request, error) {
	q := strings.TrimSpace(rawQuery)
	if q == "" {
		return Request{}, domain.ErrEmptyQuery
	}

	if limits.DefaultPageSize <= 0 {
		limits.DefaultPageSize = DefaultPageSize
	}
	if limits.MaxPageSize <= 0 {
		limits.MaxPageSize = MaxPageSize
	}
	if limits.DefaultPageSize > limits.MaxPageSize {
		limits.DefaultPageSize = limits.MaxPageSize
	}

	if pageSize < 1 {
		pageSize = limits.DefaultPageSize
	}
	if pageSize > limits.MaxPageSize {
		pageSize = limits.MaxPageSize
	}
	if page < 0 {
		page = 0
	}
	if page > MaxOffset/pageSize {
		page = MaxOffset / pageSize
	}

	return Request{query: q, page: page, pageSize: pageSize}, nil
}

// Query returns the trimmed, otherwise untransformed query text.
func (r *Request) Query() string { return r.query }

// Page returns the zero-based page number.
func (r *Request) Page() int { return r.page }

// PageSize returns the number of hits per page.
func (r *Request) PageSize() int { return r.pageSize }

// Offset returns the index of the first hit of the page.
func (r *Request) Offset() int { return r.page * r.pageSize }
