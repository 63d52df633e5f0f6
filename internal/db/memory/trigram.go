package memory

import (
	"strings"
	"unicode"
)

// trigrams returns the set of padded trigrams of s the way pg_trgm extracts them:
// lowercase, split on non-alphanumerics, pad each word with two leading blanks
// and one trailing blank.
func trigrams(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range words(s) {
		addWordTrigrams(set, w)
	}
	return set
}

func addWordTrigrams(set map[string]struct{}, w string) {
	r := []rune("  " + w + " ")
	for i := 0; i+3 <= len(r); i++ {
		set[string(r[i:i+3])] = struct{}{}
	}
}

// words splits s into lowercase alphanumeric runs.
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func common(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}

// similarity is the trigram Jaccard index of a and b, in [0, 1].
func similarity(a, b string) float64 {
	ta, tb := trigrams(a), trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	c := common(ta, tb)
	return float64(c) / float64(len(ta)+len(tb)-c)
}

// wordSimilarity is the best share of token trigrams found in a single word of text.
// It approximates pg_trgm word_similarity, which also admits extents spanning words.
func wordSimilarity(token, text string) float64 {
	tt := trigrams(token)
	if len(tt) == 0 {
		return 0
	}
	best := 0.0
	for _, w := range words(text) {
		ws := make(map[string]struct{})
		addWordTrigrams(ws, w)
		if s := float64(common(tt, ws)) / float64(len(tt)); s > best {
			best = s
			if best == 1 {
				break
			}
		}
	}
	return best
}
