// Package ranking defines the composite ordering of search hits.
package ranking

import (
	"slices"
	"strings"
)

// DefaultDemotedCategories is the business policy applied when none is configured.
var DefaultDemotedCategories = []string{"Accessories"}

// Policy holds the category demotion rule. The zero value demotes nothing.
type Policy struct {
	demoted []string
}

// NewPolicy creates a policy demoting the given categories (exact, case-sensitive match).
func NewPolicy(categories []string) Policy {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if c != "" {
			out = append(out, c)
		}
	}
	return Policy{demoted: out}
}

// Categories returns the demoted categories.
func (p Policy) Categories() []string { return p.demoted }

// IsDemoted reports whether items of category sort after all others.
func (p Policy) IsDemoted(category string) bool {
	for _, c := range p.demoted {
		if c == category {
			return true
		}
	}
	return false
}

// FullMatch reports whether phrase appears verbatim, case-insensitively, in title.
func FullMatch(phrase, title string) bool {
	if phrase == "" {
		return false
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(phrase))
}

// Key is the sort key of a candidate.
type Key struct {
	FullMatch bool
	Demoted   bool
	Relevance float64
	Title     string
	ID        string
}

// Less orders by full match first, then non-demoted, then relevance descending,
// then title and id ascending (byte order).
func Less(a, b Key) bool {
	if a.FullMatch != b.FullMatch {
		return a.FullMatch
	}
	if a.Demoted != b.Demoted {
		return !a.Demoted
	}
	if a.Relevance != b.Relevance {
		return a.Relevance > b.Relevance
	}
	if a.Title != b.Title {
		return a.Title < b.Title
	}
	return a.ID < b.ID
}

// Sort orders items in place by the key returned for each.
func Sort[T any](items []T, key func(*T) Key) {
	slices.SortStableFunc(items, func(a, b T) int {
		ka, kb := key(&a), key(&b)
		switch {
		case Less(ka, kb):
			return -1
		case Less(kb, ka):
			return 1
		default:
			return 0
		}
	})
}
