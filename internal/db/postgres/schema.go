package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kailas-cloud/shopsearch/internal/db"
	"github.com/kailas-cloud/shopsearch/internal/domain/catalog"
)

// Columns maps catalog attributes to column names. An empty name means the
// attribute is absent and reads as empty (or NULL for price).
type Columns struct {
	ID          string
	Title       string
	Handle      string
	URL         string
	Description string
	Category    string
	Tags        string
	SKU         string
	Price       string
	ImageURL    string
}

// Schema describes where the catalog and dictionary live.
type Schema struct {
	Table            string
	Columns          Columns
	DictionaryTable  string
	DictionaryColumn string
	// TextSearchConfig is the regconfig used by prefix matching, e.g. "english".
	TextSearchConfig string
}

// DefaultSchema matches the products table of the storefront database.
func DefaultSchema() Schema {
	return Schema{
		Table: "products",
		Columns: Columns{
			ID:          "product_id",
			Title:       "title",
			Handle:      "handle",
			URL:         "url",
			Description: "description",
			Category:    "product_type",
			Tags:        "tags",
			SKU:         "sku",
			Price:       "price",
			ImageURL:    "image_url",
		},
		DictionaryTable:  "dictionary",
		DictionaryColumn: "term",
		TextSearchConfig: "english",
	}
}

// Validate checks that every configured name is a plain identifier.
func (s Schema) Validate() error {
	required := map[string]string{
		"table":              s.Table,
		"columns.id":         s.Columns.ID,
		"columns.title":      s.Columns.Title,
		"dictionary_table":   s.DictionaryTable,
		"dictionary_column":  s.DictionaryColumn,
		"text_search_config": s.TextSearchConfig,
	}
	for name, v := range required {
		if !db.IsValidIdentifier(v) {
			return fmt.Errorf("catalog.%s: invalid identifier %q", name, v)
		}
	}
	optional := map[string]string{
		"columns.handle":      s.Columns.Handle,
		"columns.url":         s.Columns.URL,
		"columns.description": s.Columns.Description,
		"columns.category":    s.Columns.Category,
		"columns.tags":        s.Columns.Tags,
		"columns.sku":         s.Columns.SKU,
		"columns.price":       s.Columns.Price,
		"columns.image_url":   s.Columns.ImageURL,
	}
	for name, v := range optional {
		if v != "" && !db.IsValidIdentifier(v) {
			return fmt.Errorf("catalog.%s: invalid identifier %q", name, v)
		}
	}
	return nil
}

// column returns the column bound to a searchable field.
func (s Schema) column(f catalog.Field) string {
	switch f {
	case catalog.FieldTitle:
		return s.Columns.Title
	case catalog.FieldHandle:
		return s.Columns.Handle
	case catalog.FieldDescription:
		return s.Columns.Description
	case catalog.FieldCategory:
		return s.Columns.Category
	case catalog.FieldTags:
		return s.Columns.Tags
	case catalog.FieldSKU:
		return s.Columns.SKU
	}
	return ""
}

// text renders a NULL-safe text expression for a column.
func text(col string) string {
	if col == "" {
		return "''"
	}
	return "coalesce(" + ident(col) + "::text, '')"
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func (s Schema) regconfig() string {
	return "'" + s.TextSearchConfig + "'::regconfig"
}
