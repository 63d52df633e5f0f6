// Package query turns raw shopper input into search tokens.
package query

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Options toggles the optional normalization steps.
type Options struct {
	// SplitLetterDigit inserts a space where a lowercase letter is followed by a digit
	// ("watch7" -> "watch 7"), so model numbers tokenize on their own.
	SplitLetterDigit bool
	// FoldAccents strips combining marks ("café" -> "cafe").
	FoldAccents bool
	// DropSymbolTokens removes tokens without any letter or digit.
	DropSymbolTokens bool
}

// DefaultOptions enables only the letter/digit split.
func DefaultOptions() Options {
	return Options{SplitLetterDigit: true}
}

// Normalizer canonicalizes raw queries. The zero value lowercases and splits on whitespace.
type Normalizer struct {
	opts Options
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(opts Options) Normalizer {
	return Normalizer{opts: opts}
}

// Options returns the active normalization options.
func (n Normalizer) Options() Options { return n.opts }

// stripAccents builds a fresh chain per call; transformers carry state.
func stripAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// FoldAccents strips combining marks from s. Catalog values must go through it
// too whenever query tokens do, or folded tokens stop matching accented text.
func FoldAccents(s string) string {
	folded, _, err := transform.String(stripAccents(), s)
	if err != nil {
		return s
	}
	return folded
}

// Normalize returns the ordered, non-empty tokens of raw. Whitespace-only input yields no tokens.
func (n Normalizer) Normalize(raw string) []string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return []string{}
	}
	if n.opts.FoldAccents {
		s = FoldAccents(s)
	}
	if n.opts.SplitLetterDigit {
		s = splitLetterDigit(s)
	}

	fields := strings.Fields(s)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if n.opts.DropSymbolTokens && !hasLetterOrDigit(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// splitLetterDigit only looks at lowercase letters; it is not Unicode word segmentation.
func splitLetterDigit(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsLower(prev) && unicode.IsDigit(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
