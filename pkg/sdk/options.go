package shopsearch

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver      string // "postgres" or "memory"
	dsn         string
	catalogFile string
	schema      *Schema

	maxConns       int
	acquireTimeout time.Duration

	cacheDriver   string // "", "valkey" or "memory"
	cacheAddrs    []string
	cachePassword string
	cacheSize     int
	cacheTTL      time.Duration

	fields           []string
	strategies       []string
	threshold        float64
	demoted          []string
	demotedSet       bool
	noLetterDigit    bool
	foldAccents      bool
	defaultPageSize  int
	maxPageSize      int
	suggestionCount  int
	readinessTimeout time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithPostgres serves the catalog from PostgreSQL. The pg_trgm extension is
// required for fuzzy matching and suggestions, and unaccent for WithAccentFolding.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "postgres"
		c.dsn = dsn
	})
}

// WithCatalogFile serves the catalog from a YAML fixture held in memory.
func WithCatalogFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "memory"
		c.catalogFile = path
	})
}

// WithSchema overrides the PostgreSQL table and column names.
func WithSchema(s Schema) Option {
	return optionFunc(func(c *clientConfig) {
		c.schema = &s
	})
}

// WithPool bounds concurrent storage queries and how long a query waits for a slot.
// Defaults: 10 connections, 2s.
func WithPool(maxConns int, acquireTimeout time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxConns = maxConns
		c.acquireTimeout = acquireTimeout
	})
}

// WithValkeyCache caches dictionary lookups in Valkey.
func WithValkeyCache(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheDriver = "valkey"
		c.cacheAddrs = []string{addr}
		c.cachePassword = password
	})
}

// WithMemoryCache caches dictionary lookups in a process-local LRU.
func WithMemoryCache(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheDriver = "memory"
		c.cacheSize = size
	})
}

// WithCacheTTL sets how long cached suggestions live. Default: 1h.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithSearchFields selects the searched catalog fields:
// title, handle, description, category, tags, sku.
func WithSearchFields(fields ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.fields = fields
	})
}

// WithStrategies selects the match strategies ORed per token: substring, prefix, fuzzy.
func WithStrategies(strategies ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.strategies = strategies
	})
}

// WithFuzzyThreshold sets the minimum trigram word similarity. Default: 0.3.
func WithFuzzyThreshold(t float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.threshold = t
	})
}

// WithDemotedCategories ranks items of these categories below the rest.
// Call with no arguments to disable demotion. Default: Accessories.
func WithDemotedCategories(categories ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.demoted = categories
		c.demotedSet = true
	})
}

// WithoutLetterDigitSplit keeps tokens like "watch7" whole.
func WithoutLetterDigitSplit() Option {
	return optionFunc(func(c *clientConfig) {
		c.noLetterDigit = true
	})
}

// WithAccentFolding matches "cafe" against "café".
func WithAccentFolding() Option {
	return optionFunc(func(c *clientConfig) {
		c.foldAccents = true
	})
}

// WithPageLimits sets the default and maximum page size. Defaults: 20, 100.
func WithPageLimits(defaultSize, maxSize int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultPageSize = defaultSize
		c.maxPageSize = maxSize
	})
}

// WithSuggestionCount sets how many terms are proposed per token. Default: 3.
func WithSuggestionCount(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.suggestionCount = n
	})
}

// WithReadinessTimeout bounds the initial connectivity check. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
