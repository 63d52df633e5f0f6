package memory

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/shopsearch/internal/domain/search/predicate"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/strategy"
)

// matcher decides single predicate leaves and scores tokens for one strategy.
type matcher interface {
	match(m predicate.Match, value string) bool
	relevance(token string, values []string) float64
}

func matcherFor(s strategy.Strategy) (matcher, error) {
	switch s {
	case strategy.Substring:
		return substringMatcher{}, nil
	case strategy.Prefix:
		return prefixMatcher{}, nil
	case strategy.Fuzzy:
		return fuzzyMatcher{}, nil
	default:
		return nil, fmt.Errorf("unsupported strategy %q", s)
	}
}

type substringMatcher struct{}

func (substringMatcher) match(m predicate.Match, value string) bool {
	return strings.Contains(strings.ToLower(value), m.Token())
}

// relevance counts the fields containing the token.
func (substringMatcher) relevance(token string, values []string) float64 {
	n := 0
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), token) {
			n++
		}
	}
	return float64(n)
}

// prefixMatcher requires every alphanumeric part of the token to start some word of the value.
type prefixMatcher struct{}

func (prefixMatcher) match(m predicate.Match, value string) bool {
	parts := words(m.Token())
	if len(parts) == 0 {
		return false
	}
	ws := words(value)
	for _, p := range parts {
		if !anyHasPrefix(ws, p) {
			return false
		}
	}
	return true
}

// relevance is the share of document words starting with a token part.
func (prefixMatcher) relevance(token string, values []string) float64 {
	parts := words(token)
	ws := words(strings.Join(values, " "))
	if len(parts) == 0 || len(ws) == 0 {
		return 0
	}
	hits := 0
	for _, w := range ws {
		for _, p := range parts {
			if strings.HasPrefix(w, p) {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(ws))
}

func anyHasPrefix(ws []string, p string) bool {
	for _, w := range ws {
		if strings.HasPrefix(w, p) {
			return true
		}
	}
	return false
}

type fuzzyMatcher struct{}

func (fuzzyMatcher) match(m predicate.Match, value string) bool {
	return wordSimilarity(m.Token(), value) >= m.Threshold()
}

// relevance is the best word similarity over the fields.
func (fuzzyMatcher) relevance(token string, values []string) float64 {
	best := 0.0
	for _, v := range values {
		if s := wordSimilarity(token, v); s > best {
			best = s
		}
	}
	return best
}
