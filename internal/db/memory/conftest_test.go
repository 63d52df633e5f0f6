package memory

import (
	"github.com/kailas-cloud/shopsearch/internal/domain/catalog"
)

func price(v float64) *float64 { return &v }

func testItems() []catalog.Item {
	return []catalog.Item{
		{ID: "1", Title: "iPhone 14", Category: "Phones", Tags: "apple, smartphone", SKU: "APL-14", Price: price(799)},
		{ID: "2", Title: "iPhone 14 Case", Category: "Accessories", Tags: "apple, case", SKU: "CASE-14", Price: price(29.5)},
		{ID: "3", Title: "Galaxy S23", Category: "Phones", Tags: "samsung, smartphone", SKU: "SMS-23"},
		{ID: "4", Title: "USB-C Cable", Category: "Accessories", Tags: "cable", SKU: "USBC-1"},
		{ID: "5", Title: "Watch 7", Category: "Wearables", Tags: "smartwatch", SKU: "W7"},
	}
}

func newTestStore() *Store {
	return NewStore(Config{}, testItems(), []string{"zipper", "zoom", "zinc", "iphone", "galaxy"})
}
