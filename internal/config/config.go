package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/shopsearch/internal/db"
	"github.com/kailas-cloud/shopsearch/internal/domain/catalog"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/strategy"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Cache drivers.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheValkey = "valkey"
)

// Config holds the shopsearch API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Search   SearchConfig   `yaml:"search"`
	Cache    CacheConfig    `yaml:"cache"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec"`
	ShutdownSec     int      `yaml:"shutdown_timeout_sec"`
	CORSOrigins     []string `yaml:"cors_origins"`
}

// DatabaseConfig holds catalog store settings.
type DatabaseConfig struct {
	Driver           string `yaml:"driver"` // postgres, memory (default: postgres)
	DSN              string `yaml:"dsn"`
	MaxConns         int    `yaml:"max_conns"`
	AcquireTimeoutMs int    `yaml:"acquire_timeout_ms"`
	ReadinessTimeout int    `yaml:"readiness_timeout_sec"`
	CatalogFile      string `yaml:"catalog_file"` // memory driver fixture
}

// ColumnsConfig maps catalog attributes to table columns. Empty optional
// columns are treated as absent.
type ColumnsConfig struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Handle      string `yaml:"handle"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Tags        string `yaml:"tags"`
	SKU         string `yaml:"sku"`
	Price       string `yaml:"price"`
	ImageURL    string `yaml:"image_url"`
}

// CatalogConfig describes the postgres tables.
type CatalogConfig struct {
	Table            string        `yaml:"table"`
	Columns          ColumnsConfig `yaml:"columns"`
	DictionaryTable  string        `yaml:"dictionary_table"`
	DictionaryColumn string        `yaml:"dictionary_column"`
	TextSearchConfig string        `yaml:"text_search_config"`
}

// SearchConfig holds matching and ranking settings.
type SearchConfig struct {
	Fields           []string `yaml:"fields"`
	Strategies       []string `yaml:"strategies"`
	FuzzyThreshold   float64  `yaml:"fuzzy_threshold"`
	SplitLetterDigit *bool    `yaml:"split_letter_digit"` // default true
	FoldAccents      bool     `yaml:"fold_accents"`
	DropSymbolTokens bool     `yaml:"drop_symbol_tokens"`
	// DemotedCategories defaults to ["Accessories"] when absent; an explicit [] disables demotion.
	DemotedCategories []string `yaml:"demoted_categories"`
	DefaultPageSize   int      `yaml:"default_page_size"`
	MaxPageSize       int      `yaml:"max_page_size"`
	SuggestionCount   int      `yaml:"suggestion_count"`
	TimeoutMs         int      `yaml:"timeout_ms"`
}

// CacheConfig holds suggestion cache settings.
type CacheConfig struct {
	Driver   string   `yaml:"driver"` // none, memory, valkey (default: none)
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	TTLSec   int      `yaml:"ttl_sec"`
	Size     int      `yaml:"size"` // memory driver entries
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse expands ${VAR} references, decodes, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	c.applyHTTPDefaults()
	c.applyDatabaseDefaults()
	c.applyCatalogDefaults()
	c.applySearchDefaults()
	c.applyCacheDefaults()
}

func (c *Config) applyHTTPDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if len(c.HTTP.CORSOrigins) == 0 {
		c.HTTP.CORSOrigins = []string{"*"}
	}
}

func (c *Config) applyDatabaseDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Database.MaxConns <= 0 {
		c.Database.MaxConns = 10
	}
	if c.Database.AcquireTimeoutMs <= 0 {
		c.Database.AcquireTimeoutMs = 2000
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
}

func (c *Config) applyCatalogDefaults() {
	cc := &c.Catalog
	defaults := []struct {
		field *string
		value string
	}{
		{&cc.Table, "products"},
		{&cc.Columns.ID, "product_id"},
		{&cc.Columns.Title, "title"},
		{&cc.Columns.Handle, "handle"},
		{&cc.Columns.URL, "url"},
		{&cc.Columns.Description, "description"},
		{&cc.Columns.Category, "product_type"},
		{&cc.Columns.Tags, "tags"},
		{&cc.Columns.SKU, "sku"},
		{&cc.DictionaryTable, "dictionary"},
		{&cc.DictionaryColumn, "term"},
		{&cc.TextSearchConfig, "english"},
	}
	for _, d := range defaults {
		if *d.field == "" {
			*d.field = d.value
		}
	}
}

func (c *Config) applySearchDefaults() {
	s := &c.Search
	if len(s.Fields) == 0 {
		for _, f := range catalog.DefaultSearchFields {
			s.Fields = append(s.Fields, string(f))
		}
	}
	if len(s.Strategies) == 0 {
		for _, st := range strategy.Default() {
			s.Strategies = append(s.Strategies, string(st))
		}
	}
	if s.FuzzyThreshold == 0 {
		s.FuzzyThreshold = strategy.DefaultThreshold
	}
	if s.SplitLetterDigit == nil {
		on := true
		s.SplitLetterDigit = &on
	}
	if s.DemotedCategories == nil {
		s.DemotedCategories = []string{"Accessories"}
	}
	if s.DefaultPageSize <= 0 {
		s.DefaultPageSize = 20
	}
	if s.MaxPageSize <= 0 {
		s.MaxPageSize = 100
	}
	if s.SuggestionCount <= 0 {
		s.SuggestionCount = 3
	}
	if s.TimeoutMs <= 0 {
		s.TimeoutMs = 5000
	}
}

func (c *Config) applyCacheDefaults() {
	if c.Cache.Driver == "" {
		c.Cache.Driver = CacheNone
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 3600
	}
	if c.Cache.Size <= 0 {
		c.Cache.Size = 10000
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	switch c.Cache.Driver {
	case CacheNone, CacheMemory:
	case CacheValkey:
		if len(c.Cache.Addrs) == 0 {
			return errors.New("cache.addrs is required for the valkey cache")
		}
	default:
		return fmt.Errorf("cache.driver must be none, memory or valkey, got %q", c.Cache.Driver)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" {
			return errors.New("database.dsn is required for the postgres driver")
		}
		return c.validateCatalog()
	case DriverMemory:
		if c.Database.CatalogFile == "" {
			return errors.New("database.catalog_file is required for the memory driver")
		}
		return nil
	default:
		return fmt.Errorf("database.driver must be postgres or memory, got %q", c.Database.Driver)
	}
}

func (c *Config) validateCatalog() error {
	cc := c.Catalog
	names := []struct {
		key, value string
		optional   bool
	}{
		{"catalog.table", cc.Table, false},
		{"catalog.columns.id", cc.Columns.ID, false},
		{"catalog.columns.title", cc.Columns.Title, false},
		{"catalog.columns.handle", cc.Columns.Handle, true},
		{"catalog.columns.url", cc.Columns.URL, true},
		{"catalog.columns.description", cc.Columns.Description, true},
		{"catalog.columns.category", cc.Columns.Category, true},
		{"catalog.columns.tags", cc.Columns.Tags, true},
		{"catalog.columns.sku", cc.Columns.SKU, true},
		{"catalog.columns.price", cc.Columns.Price, true},
		{"catalog.columns.image_url", cc.Columns.ImageURL, true},
		{"catalog.dictionary_table", cc.DictionaryTable, false},
		{"catalog.dictionary_column", cc.DictionaryColumn, false},
		{"catalog.text_search_config", cc.TextSearchConfig, false},
	}
	for _, n := range names {
		if n.optional && n.value == "" {
			continue
		}
		if !db.IsValidIdentifier(n.value) {
			return fmt.Errorf("%s must be a plain identifier, got %q", n.key, n.value)
		}
	}
	return nil
}

func (c *Config) validateSearch() error {
	s := c.Search
	for _, f := range s.Fields {
		if !catalog.Field(f).IsValid() {
			return fmt.Errorf("search.fields: unknown field %q", f)
		}
	}
	set, err := strategy.Parse(s.Strategies)
	if err != nil {
		return fmt.Errorf("search.strategies: %w", err)
	}
	if set.Has(strategy.Fuzzy) && (s.FuzzyThreshold <= 0 || s.FuzzyThreshold > 1) {
		return fmt.Errorf("search.fuzzy_threshold must be in (0, 1], got %g", s.FuzzyThreshold)
	}
	if s.DefaultPageSize > s.MaxPageSize {
		return fmt.Errorf("search.default_page_size (%d) exceeds max_page_size (%d)", s.DefaultPageSize, s.MaxPageSize)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
