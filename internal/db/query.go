package db

import "github.com/kailas-cloud/shopsearch/internal/domain/search/predicate"

// Logical names of the fields returned for each catalog entry.
const (
	FieldID       = "id"
	FieldTitle    = "title"
	FieldHandle   = "handle"
	FieldURL      = "url"
	FieldCategory = "category"
	FieldTags     = "tags"
	FieldSKU      = "sku"
	FieldPrice    = "price"
	FieldImageURL = "image_url"
)

// CatalogQuery is the input for a ranked catalog search.
type CatalogQuery struct {
	Predicate predicate.Predicate
	// Phrase is the untokenized query; hits whose title contains it rank first.
	Phrase string
	// Demoted lists categories ranked after all others.
	Demoted []string
	Offset  int
	Limit   int
}

// DictionaryQuery is the input for a similarity-ranked term lookup.
type DictionaryQuery struct {
	Token string
	K     int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single hit. For dictionary lookups Key is the term and Fields is empty.
type SearchEntry struct {
	Key       string
	Score     float64
	FullMatch bool
	Demoted   bool
	Fields    map[string]string
}
