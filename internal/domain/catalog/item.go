// Package catalog holds the read-only catalog entities the search engine ranks.
package catalog

// Field is a logical, searchable catalog attribute.
type Field string

// Searchable catalog fields.
const (
	FieldTitle       Field = "title"
	FieldHandle      Field = "handle"
	FieldDescription Field = "description"
	FieldCategory    Field = "category"
	FieldTags        Field = "tags"
	FieldSKU         Field = "sku"
)

// DefaultSearchFields is the field set searched when none is configured.
var DefaultSearchFields = []Field{FieldTitle, FieldCategory, FieldTags, FieldSKU}

// IsValid reports whether f names a searchable field.
func (f Field) IsValid() bool {
	switch f {
	case FieldTitle, FieldHandle, FieldDescription, FieldCategory, FieldTags, FieldSKU:
		return true
	}
	return false
}

// Item is a catalog row as seen by the engine. Missing text attributes are empty strings.
type Item struct {
	ID          string
	Title       string
	Handle      string
	URL         string
	Description string
	Category    string
	Tags        string
	SKU         string
	Price       *float64
	ImageURL    string
}

// Text returns the value of a searchable field, or "" for an unknown field.
func (it *Item) Text(f Field) string {
	switch f {
	case FieldTitle:
		return it.Title
	case FieldHandle:
		return it.Handle
	case FieldDescription:
		return it.Description
	case FieldCategory:
		return it.Category
	case FieldTags:
		return it.Tags
	case FieldSKU:
		return it.SKU
	}
	return ""
}
