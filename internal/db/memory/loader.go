package memory

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/shopsearch/internal/domain/catalog"
)

type fixture struct {
	Items      []fixtureItem `yaml:"items"`
	Dictionary []string      `yaml:"dictionary"`
}

type fixtureItem struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Handle      string   `yaml:"handle"`
	URL         string   `yaml:"url"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Tags        string   `yaml:"tags"`
	SKU         string   `yaml:"sku"`
	Price       *float64 `yaml:"price"`
	ImageURL    string   `yaml:"image_url"`
}

// LoadFile reads a YAML catalog fixture and builds a store from it.
func LoadFile(path string, cfg Config) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	items, terms, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	return NewStore(cfg, items, terms), nil
}

// Parse decodes a fixture. Item ids must be unique and non-empty.
// When the fixture has no dictionary, one is derived from the words of
// the items' titles, categories and tags.
func Parse(data []byte) ([]catalog.Item, []string, error) {
	var fx fixture
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		return nil, nil, err
	}

	seen := make(map[string]struct{}, len(fx.Items))
	items := make([]catalog.Item, 0, len(fx.Items))
	for i, fi := range fx.Items {
		if fi.ID == "" {
			return nil, nil, fmt.Errorf("item %d: id is required", i)
		}
		if _, dup := seen[fi.ID]; dup {
			return nil, nil, fmt.Errorf("item %d: duplicate id %q", i, fi.ID)
		}
		seen[fi.ID] = struct{}{}
		items = append(items, catalog.Item{
			ID:          fi.ID,
			Title:       fi.Title,
			Handle:      fi.Handle,
			URL:         fi.URL,
			Description: fi.Description,
			Category:    fi.Category,
			Tags:        fi.Tags,
			SKU:         fi.SKU,
			Price:       fi.Price,
			ImageURL:    fi.ImageURL,
		})
	}
	if len(items) == 0 && len(fx.Dictionary) == 0 {
		return nil, nil, errors.New("fixture is empty")
	}

	terms := fx.Dictionary
	if len(terms) == 0 {
		terms = deriveTerms(items)
	}
	return items, dedupe(terms), nil
}

func deriveTerms(items []catalog.Item) []string {
	var out []string
	for i := range items {
		for _, f := range []catalog.Field{catalog.FieldTitle, catalog.FieldCategory, catalog.FieldTags} {
			for _, w := range words(items[i].Text(f)) {
				if len([]rune(w)) >= 3 {
					out = append(out, w)
				}
			}
		}
	}
	return out
}

func dedupe(terms []string) []string {
	set := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		if _, ok := set[t]; ok {
			continue
		}
		set[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
