package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validMemoryConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: DriverMemory, CatalogFile: "config/catalog.yaml"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validMemoryConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for port 0")
	}

	cfg.HTTP.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for port 70000")
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validMemoryConfig()
	cfg.Database.Driver = "sqlite"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	expected := `database.driver must be postgres or memory, got "sqlite"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %s\nwant: %s", err.Error(), expected)
	}
}

func TestValidate_PostgresRequiresDSN(t *testing.T) {
	cfg := validMemoryConfig()
	cfg.Database.Driver = DriverPostgres

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing dsn")
	}

	cfg.Database.DSN = "postgres://localhost/shop"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MemoryRequiresCatalogFile(t *testing.T) {
	cfg := validMemoryConfig()
	cfg.Database.CatalogFile = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing catalog_file")
	}
}

func TestValidate_CatalogIdentifiers(t *testing.T) {
	cfg := validMemoryConfig()
	cfg.Database.Driver = DriverPostgres
	cfg.Database.DSN = "postgres://localhost/shop"
	cfg.Catalog.Table = "products; DROP TABLE products"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unsafe table name")
	}
	if !strings.Contains(err.Error(), "catalog.table") {
		t.Errorf("error should name the key, got %v", err)
	}

	// Optional columns may be left empty.
	cfg.Catalog.Table = "products"
	cfg.Catalog.Columns.ImageURL = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Search(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SearchConfig)
	}{
		{"unknown field", func(s *SearchConfig) { s.Fields = []string{"title", "color"} }},
		{"unknown strategy", func(s *SearchConfig) { s.Strategies = []string{"semantic"} }},
		{"threshold too high", func(s *SearchConfig) { s.FuzzyThreshold = 1.5 }},
		{"threshold negative", func(s *SearchConfig) { s.FuzzyThreshold = -0.1 }},
		{"default above max", func(s *SearchConfig) { s.DefaultPageSize = 200 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validMemoryConfig()
			tt.mutate(&cfg.Search)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidate_ThresholdIgnoredWithoutFuzzy(t *testing.T) {
	cfg := validMemoryConfig()
	cfg.Search.Strategies = []string{"substring"}
	cfg.Search.FuzzyThreshold = 5

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Cache(t *testing.T) {
	cfg := validMemoryConfig()
	cfg.Cache.Driver = CacheValkey

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for valkey cache without addrs")
	}

	cfg.Cache.Addrs = []string{"localhost:6379"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Cache.Driver = "memcached"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown cache driver")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "*" {
		t.Errorf("expected CORSOrigins=[*], got %v", cfg.HTTP.CORSOrigins)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("expected Driver=postgres, got %s", cfg.Database.Driver)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("expected MaxConns=10, got %d", cfg.Database.MaxConns)
	}
	if cfg.Database.AcquireTimeoutMs != 2000 {
		t.Errorf("expected AcquireTimeoutMs=2000, got %d", cfg.Database.AcquireTimeoutMs)
	}
	if cfg.Catalog.Table != "products" || cfg.Catalog.Columns.ID != "product_id" || cfg.Catalog.Columns.Category != "product_type" {
		t.Errorf("unexpected catalog defaults: %+v", cfg.Catalog)
	}
	if cfg.Catalog.Columns.Price != "" || cfg.Catalog.Columns.ImageURL != "" {
		t.Errorf("price and image_url have no default column, got %+v", cfg.Catalog.Columns)
	}
	if got := strings.Join(cfg.Search.Fields, ","); got != "title,category,tags,sku" {
		t.Errorf("expected default fields, got %s", got)
	}
	if got := strings.Join(cfg.Search.Strategies, ","); got != "prefix,fuzzy" {
		t.Errorf("expected default strategies, got %s", got)
	}
	if cfg.Search.FuzzyThreshold != 0.3 {
		t.Errorf("expected FuzzyThreshold=0.3, got %g", cfg.Search.FuzzyThreshold)
	}
	if cfg.Search.SplitLetterDigit == nil || !*cfg.Search.SplitLetterDigit {
		t.Error("expected SplitLetterDigit=true")
	}
	if len(cfg.Search.DemotedCategories) != 1 || cfg.Search.DemotedCategories[0] != "Accessories" {
		t.Errorf("expected DemotedCategories=[Accessories], got %v", cfg.Search.DemotedCategories)
	}
	if cfg.Search.DefaultPageSize != 20 || cfg.Search.MaxPageSize != 100 {
		t.Errorf("expected page sizes 20/100, got %d/%d", cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	}
	if cfg.Search.SuggestionCount != 3 {
		t.Errorf("expected SuggestionCount=3, got %d", cfg.Search.SuggestionCount)
	}
	if cfg.Cache.Driver != CacheNone || cfg.Cache.TTLSec != 3600 {
		t.Errorf("unexpected cache defaults: %+v", cfg.Cache)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	off := false
	cfg := Config{
		Database: DatabaseConfig{MaxConns: 4},
		Search: SearchConfig{
			SplitLetterDigit:  &off,
			DemotedCategories: []string{},
			MaxPageSize:       50,
		},
		Cache: CacheConfig{TTLSec: 60},
	}
	cfg.ApplyDefaults()

	if cfg.Database.MaxConns != 4 {
		t.Errorf("expected MaxConns=4, got %d", cfg.Database.MaxConns)
	}
	if *cfg.Search.SplitLetterDigit {
		t.Error("SplitLetterDigit should stay false")
	}
	if cfg.Search.DemotedCategories == nil || len(cfg.Search.DemotedCategories) != 0 {
		t.Errorf("explicit empty demotion list must be kept, got %v", cfg.Search.DemotedCategories)
	}
	if cfg.Search.MaxPageSize != 50 {
		t.Errorf("expected MaxPageSize=50, got %d", cfg.Search.MaxPageSize)
	}
	if cfg.Cache.TTLSec != 60 {
		t.Errorf("expected TTLSec=60, got %d", cfg.Cache.TTLSec)
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("SHOPSEARCH_TEST_DSN", "postgres://db/shop")

	data := []byte(`
http:
  port: ${SHOPSEARCH_TEST_PORT:-9090}
database:
  driver: postgres
  dsn: ${SHOPSEARCH_TEST_DSN}
search:
  demoted_categories: []
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port from default, got %d", cfg.HTTP.Port)
	}
	if cfg.Database.DSN != "postgres://db/shop" {
		t.Errorf("expected expanded dsn, got %q", cfg.Database.DSN)
	}
	if len(cfg.Search.DemotedCategories) != 0 {
		t.Errorf("expected demotion disabled, got %v", cfg.Search.DemotedCategories)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")
	data := "http:\n  port: 8081\ndatabase:\n  driver: memory\n  catalog_file: catalog.yaml\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 8081 || cfg.Database.Driver != DriverMemory {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("expected local, got %s", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("expected prod, got %s", got)
	}
}
