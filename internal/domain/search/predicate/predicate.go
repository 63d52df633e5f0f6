// Package predicate models catalog matching as an AND of per-token OR groups.
package predicate

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/shopsearch/internal/domain/catalog"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/strategy"
)

// Match is a single leaf: one token tested against one field with one strategy.
type Match struct {
	field     catalog.Field
	token     string
	strategy  strategy.Strategy
	threshold float64
}

// Field returns the catalog field under test.
func (m Match) Field() catalog.Field { return m.field }

// Token returns the normalized token.
func (m Match) Token() string { return m.token }

// Strategy returns the matching strategy.
func (m Match) Strategy() strategy.Strategy { return m.strategy }

// Threshold returns the minimum similarity for fuzzy matches.
func (m Match) Threshold() float64 { return m.threshold }

// Clause is satisfied when any of its matches is.
type Clause struct {
	token   string
	matches []Match
}

// Token returns the token this clause tests.
func (c Clause) Token() string { return c.token }

// Matches returns the alternatives of the clause.
func (c Clause) Matches() []Match { return c.matches }

// Predicate is satisfied when every clause is.
type Predicate struct {
	clauses    []Clause
	fields     []catalog.Field
	strategies strategy.Set
	threshold  float64
	fold       bool
}

// Clauses returns the conjunction members, one per token in query order.
func (p Predicate) Clauses() []Clause { return p.clauses }

// Fields returns the searched fields.
func (p Predicate) Fields() []catalog.Field { return p.fields }

// Strategies returns the active strategy set.
func (p Predicate) Strategies() strategy.Set { return p.strategies }

// Threshold returns the fuzzy similarity threshold.
func (p Predicate) Threshold() float64 { return p.threshold }

// Tokens returns the clause tokens in order.
func (p Predicate) Tokens() []string {
	out := make([]string, len(p.clauses))
	for i, c := range p.clauses {
		out[i] = c.token
	}
	return out
}

// WithAccentFolding returns a copy whose field values must be accent-folded
// before matching, the same way the tokens were.
func (p Predicate) WithAccentFolding() Predicate {
	p.fold = true
	return p
}

// FoldsAccents reports whether field values are accent-folded before matching.
func (p Predicate) FoldsAccents() bool { return p.fold }

// IsEmpty reports whether the predicate has no clauses.
func (p Predicate) IsEmpty() bool { return len(p.clauses) == 0 }

// Build composes the predicate for tokens over fields, ORing every strategy in set per token.
func Build(tokens []string, fields []catalog.Field, set strategy.Set, threshold float64) (Predicate, error) {
	if len(fields) == 0 {
		return Predicate{}, errors.New("at least one search field is required")
	}
	for _, f := range fields {
		if !f.IsValid() {
			return Predicate{}, fmt.Errorf("unknown search field %q", f)
		}
	}
	if len(set) == 0 {
		return Predicate{}, errors.New("at least one match strategy is required")
	}
	for _, s := range set {
		if !s.IsValid() {
			return Predicate{}, fmt.Errorf("unknown match strategy %q", s)
		}
	}
	if set.Has(strategy.Fuzzy) && (threshold <= 0 || threshold > 1) {
		return Predicate{}, fmt.Errorf("fuzzy threshold must be in (0, 1], got %g", threshold)
	}

	clauses := make([]Clause, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		matches := make([]Match, 0, len(fields)*len(set))
		for _, s := range set {
			for _, f := range fields {
				matches = append(matches, Match{field: f, token: tok, strategy: s, threshold: threshold})
			}
		}
		clauses = append(clauses, Clause{token: tok, matches: matches})
	}

	return Predicate{
		clauses:    clauses,
		fields:     append([]catalog.Field(nil), fields...),
		strategies: append(strategy.Set(nil), set...),
		threshold:  threshold,
	}, nil
}

// Eval evaluates the predicate in-process. value resolves a field (missing values must be ""),
// match decides a single leaf. An empty predicate matches nothing.
func (p Predicate) Eval(value func(catalog.Field) string, match func(Match, string) bool) bool {
	if p.IsEmpty() {
		return false
	}
	for _, c := range p.clauses {
		if !c.eval(value, match) {
			return false
		}
	}
	return true
}

func (c Clause) eval(value func(catalog.Field) string, match func(Match, string) bool) bool {
	for _, m := range c.matches {
		if match(m, value(m.field)) {
			return true
		}
	}
	return false
}
