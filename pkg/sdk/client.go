package shopsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/shopsearch/internal/db"
	"github.com/kailas-cloud/shopsearch/internal/db/lrucache"
	"github.com/kailas-cloud/shopsearch/internal/db/memory"
	"github.com/kailas-cloud/shopsearch/internal/db/postgres"
	dbValkey "github.com/kailas-cloud/shopsearch/internal/db/valkey"
	"github.com/kailas-cloud/shopsearch/internal/domain/catalog"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/request"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/result"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/strategy"
	catalogrepo "github.com/kailas-cloud/shopsearch/internal/repository/catalog"
	dictionaryrepo "github.com/kailas-cloud/shopsearch/internal/repository/dictionary"
	"github.com/kailas-cloud/shopsearch/internal/repository/suggestcache"
	healthuc "github.com/kailas-cloud/shopsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/shopsearch/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultMemoryCacheSize  = 10000
)

// Internal interfaces, swapped for mocks in tests.
type searchUseCase interface {
	Search(ctx context.Context, req request.Request) (result.Result, error)
	Suggest(ctx context.Context, raw string) ([]result.Correction, error)
}

// Client is the shopsearch SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store
	cache     db.Cache
	searchSvc searchUseCase
	healthSvc healthUseCase
	limits    request.Limits
	obs       *observer
}

// New creates a Client and checks that the catalog store is reachable.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("shopsearch: catalog source required (use WithPostgres or WithCatalogFile)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	readiness := cfg.readinessTimeout
	if readiness <= 0 {
		readiness = defaultReadinessTimeout
	}
	if err := store.WaitForReady(ctx, readiness); err != nil {
		store.Close()
		return nil, fmt.Errorf("shopsearch: catalog store not ready: %w", err)
	}

	cache, err := createCache(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	c, err := wireClient(store, cache, cfg, obs)
	if err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func createStore(ctx context.Context, cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "postgres":
		schema := postgres.DefaultSchema()
		if cfg.schema != nil {
			schema = schemaToInternal(*cfg.schema)
		}
		s, err := postgres.NewStore(ctx, postgres.Config{
			DSN:            cfg.dsn,
			MaxConns:       int32(cfg.maxConns), //nolint:gosec // small pool sizes only
			AcquireTimeout: cfg.acquireTimeout,
			Schema:         schema,
		})
		if err != nil {
			return nil, fmt.Errorf("shopsearch: create postgres store: %w", err)
		}
		return s, nil
	case "memory":
		s, err := memory.LoadFile(cfg.catalogFile, memory.Config{
			MaxConcurrent:  cfg.maxConns,
			AcquireTimeout: cfg.acquireTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("shopsearch: load catalog: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("shopsearch: unknown driver %q", cfg.driver)
	}
}

func createCache(cfg *clientConfig) (db.Cache, error) {
	switch cfg.cacheDriver {
	case "":
		return nil, nil //nolint:nilnil // cache disabled
	case "valkey":
		s, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("shopsearch: create valkey cache: %w", err)
		}
		return s, nil
	case "memory":
		size := cfg.cacheSize
		if size <= 0 {
			size = defaultMemoryCacheSize
		}
		ttl := cfg.cacheTTL
		if ttl <= 0 {
			ttl = suggestcache.DefaultTTL
		}
		s, err := lrucache.NewStore(size, ttl)
		if err != nil {
			return nil, fmt.Errorf("shopsearch: create memory cache: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("shopsearch: unknown cache driver %q", cfg.cacheDriver)
	}
}

func wireClient(store db.Store, cache db.Cache, cfg *clientConfig, obs *observer) (*Client, error) {
	c := &Client{
		store: store,
		cache: cache,
		limits: request.Limits{
			DefaultPageSize: cfg.defaultPageSize,
			MaxPageSize:     cfg.maxPageSize,
		},
		obs: obs,
	}

	searchCfg, err := searchConfig(cfg)
	if err != nil {
		return c, err
	}

	var dict searchuc.Dictionary = dictionaryrepo.New(store)
	var cachePinger healthuc.Pinger
	if cache != nil {
		// The SDK logs through slog; the cache decorator stays quiet.
		dict = suggestcache.New(dict, cache, cfg.cacheTTL, nil, zap.NewNop())
		cachePinger = cache
	}

	svc, err := searchuc.New(catalogrepo.New(store), dict, searchCfg)
	if err != nil {
		return c, fmt.Errorf("shopsearch: %w", err)
	}

	c.searchSvc = svc
	c.healthSvc = healthuc.New(store, cachePinger)
	return c, nil
}

func searchConfig(cfg *clientConfig) (searchuc.Config, error) {
	sc := searchuc.DefaultConfig()
	if len(cfg.fields) > 0 {
		sc.Fields = make([]catalog.Field, len(cfg.fields))
		for i, f := range cfg.fields {
			sc.Fields[i] = catalog.Field(f)
		}
	}
	if len(cfg.strategies) > 0 {
		set, err := strategy.Parse(cfg.strategies)
		if err != nil {
			return searchuc.Config{}, fmt.Errorf("shopsearch: %w", err)
		}
		sc.Strategies = set
	}
	if cfg.threshold > 0 {
		sc.Threshold = cfg.threshold
	}
	if cfg.demotedSet {
		sc.DemotedCategories = cfg.demoted
	}
	if cfg.noLetterDigit {
		sc.Normalize.SplitLetterDigit = false
	}
	sc.Normalize.FoldAccents = cfg.foldAccents
	if cfg.suggestionCount > 0 {
		sc.SuggestionCount = cfg.suggestionCount
	}
	return sc, nil
}

func schemaToInternal(s Schema) postgres.Schema {
	return postgres.Schema{
		Table: s.Table,
		Columns: postgres.Columns{
			ID:          s.Columns.ID,
			Title:       s.Columns.Title,
			Handle:      s.Columns.Handle,
			URL:         s.Columns.URL,
			Description: s.Columns.Description,
			Category:    s.Columns.Category,
			Tags:        s.Columns.Tags,
			SKU:         s.Columns.SKU,
			Price:       s.Columns.Price,
			ImageURL:    s.Columns.ImageURL,
		},
		DictionaryTable:  s.DictionaryTable,
		DictionaryColumn: s.DictionaryColumn,
		TextSearchConfig: s.TextSearchConfig,
	}
}

// Close releases the catalog store and the cache.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks catalog store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
