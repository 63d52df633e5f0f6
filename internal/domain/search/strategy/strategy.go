package strategy

import "fmt"

// Strategy is a per-field token matching technique.
type Strategy string

// Matching strategies.
const (
	// Substring matches when the field contains the token, case-insensitively.
	Substring Strategy = "substring"
	// Prefix matches when a word of the field's text-search representation starts with the token.
	Prefix Strategy = "prefix"
	// Fuzzy matches when the field is similar to the token above a threshold.
	Fuzzy Strategy = "fuzzy"
)

// DefaultThreshold is the fuzzy similarity cut-off (pg_trgm's default).
const DefaultThreshold = 0.3

// IsValid checks if the strategy is one of the supported values.
func (s Strategy) IsValid() bool {
	return s == Substring || s == Prefix || s == Fuzzy
}

// Set is an ordered, duplicate-free list of strategies ORed per token.
type Set []Strategy

// Default returns the strategy set used when none is configured.
func Default() Set {
	return Set{Prefix, Fuzzy}
}

// Parse validates names and returns a Set. Duplicates are dropped, order is kept.
func Parse(names []string) (Set, error) {
	if len(names) == 0 {
		return Default(), nil
	}
	seen := make(map[Strategy]bool, len(names))
	set := make(Set, 0, len(names))
	for _, n := range names {
		s := Strategy(n)
		if !s.IsValid() {
			return nil, fmt.Errorf("unknown match strategy %q", n)
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		set = append(set, s)
	}
	return set, nil
}

// Has reports whether s is part of the set.
func (set Set) Has(s Strategy) bool {
	for _, x := range set {
		if x == s {
			return true
		}
	}
	return false
}

// String renders the set as a metrics label, e.g. "prefix+fuzzy".
func (set Set) String() string {
	out := ""
	for i, s := range set {
		if i > 0 {
			out += "+"
		}
		out += string(s)
	}
	return out
}
