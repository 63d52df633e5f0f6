package shopsearch

// Columns maps catalog attributes to PostgreSQL columns. Empty optional
// columns are treated as absent.
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

// Schema names the PostgreSQL catalog and dictionary tables.
type Schema struct {
	Table            string
	Columns          Columns
	DictionaryTable  string
	DictionaryColumn string
	TextSearchConfig string
}

// Product is a ranked catalog item. Descriptions are never returned.
type Product struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Handle   string   `json:"handle"`
	URL      string   `json:"url"`
	Category string   `json:"category"`
	Tags     string   `json:"tags"`
	SKU      string   `json:"sku"`
	Price    *float64 `json:"price"`
	ImageURL string   `json:"image_url"`
	Score    float64  `json:"score"`
}

// Correction lists suggested replacements for one query token.
type Correction struct {
	Original    string   `json:"original"`
	Suggestions []string `json:"suggestions"`
}

// SearchPage is one page of results.
type SearchPage struct {
	Results  []Product `json:"results"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Total    int       `json:"total"`
	// DidYouMean is non-nil only when the query matched nothing; it may be
	// empty when suggestions were unavailable.
	DidYouMean []Correction `json:"did_you_mean,omitempty"`
}
