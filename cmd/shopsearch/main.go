package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/shopsearch/internal/config"
	"github.com/kailas-cloud/shopsearch/internal/db"
	"github.com/kailas-cloud/shopsearch/internal/db/lrucache"
	"github.com/kailas-cloud/shopsearch/internal/db/memory"
	"github.com/kailas-cloud/shopsearch/internal/db/postgres"
	dbValkey "github.com/kailas-cloud/shopsearch/internal/db/valkey"
	"github.com/kailas-cloud/shopsearch/internal/domain/catalog"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/query"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/request"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/strategy"
	logpkg "github.com/kailas-cloud/shopsearch/internal/logger"
	"github.com/kailas-cloud/shopsearch/internal/metrics"
	catalogrepo "github.com/kailas-cloud/shopsearch/internal/repository/catalog"
	dictionaryrepo "github.com/kailas-cloud/shopsearch/internal/repository/dictionary"
	"github.com/kailas-cloud/shopsearch/internal/repository/suggestcache"
	chiTransport "github.com/kailas-cloud/shopsearch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/shopsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/shopsearch/internal/usecase/search"
	"github.com/kailas-cloud/shopsearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting shopsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.Strings("strategies", cfg.Search.Strategies),
	)

	ctx := context.Background()

	// Catalog store: the process-scoped pool, closed on shutdown
	store, err := newStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to create catalog store", zap.Error(err))
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to catalog store")

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterSearchMetrics()
	if src, ok := store.(metrics.StatsSource); ok {
		metrics.RegisterPoolMetrics(prometheus.DefaultRegisterer, src)
	}

	// Suggestion cache (optional)
	cache, err := newCache(cfg)
	if err != nil {
		logger.Fatal("Failed to create suggestion cache", zap.Error(err))
	}
	if cache != nil {
		defer cache.Close()
	}

	// Repositories
	catRepo := catalogrepo.New(store)
	var dict searchuc.Dictionary = dictionaryrepo.New(store)
	if cache != nil {
		dict = suggestcache.New(dict, cache,
			time.Duration(cfg.Cache.TTLSec)*time.Second, metrics.SuggestionCacheTotal, logger)
	}

	// Use cases
	searchCfg, err := searchConfig(cfg.Search)
	if err != nil {
		logger.Fatal("Invalid search configuration", zap.Error(err))
	}
	searchSvc, err := searchuc.New(catRepo, dict, searchCfg)
	if err != nil {
		logger.Fatal("Failed to create search service", zap.Error(err))
	}
	searcher := searchuc.NewInstrumented(searchSvc, searchSvc.Strategies())

	// A nil *Store wrapped in the interface would not be nil.
	var cachePinger healthuc.Pinger
	if cache != nil {
		cachePinger = cache
	}
	healthSvc := healthuc.New(store, cachePinger)

	server := chiTransport.NewServer(searcher, healthSvc, chiTransport.Config{
		Limits: request.Limits{
			DefaultPageSize: cfg.Search.DefaultPageSize,
			MaxPageSize:     cfg.Search.MaxPageSize,
		},
		Timeout: time.Duration(cfg.Search.TimeoutMs) * time.Millisecond,
	}, logger)

	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		APIKeys:     cfg.Auth.APIKeys,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func newStore(ctx context.Context, cfg config.Config) (db.Store, error) {
	acquire := time.Duration(cfg.Database.AcquireTimeoutMs) * time.Millisecond
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		s, err := postgres.NewStore(ctx, postgres.Config{
			DSN:            cfg.Database.DSN,
			MaxConns:       int32(cfg.Database.MaxConns), //nolint:gosec // bounded by config validation
			AcquireTimeout: acquire,
			Schema:         postgresSchema(cfg.Catalog),
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres store: %w", err)
		}
		return s, nil
	case config.DriverMemory:
		s, err := memory.LoadFile(cfg.Database.CatalogFile, memory.Config{
			MaxConcurrent:  cfg.Database.MaxConns,
			AcquireTimeout: acquire,
		})
		if err != nil {
			return nil, fmt.Errorf("create memory store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

func newCache(cfg config.Config) (db.Cache, error) {
	switch cfg.Cache.Driver {
	case config.CacheValkey:
		s, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("create valkey cache: %w", err)
		}
		return s, nil
	case config.CacheMemory:
		s, err := lrucache.NewStore(cfg.Cache.Size, time.Duration(cfg.Cache.TTLSec)*time.Second)
		if err != nil {
			return nil, fmt.Errorf("create memory cache: %w", err)
		}
		return s, nil
	default:
		return nil, nil //nolint:nilnil // no cache configured
	}
}

func postgresSchema(c config.CatalogConfig) postgres.Schema {
	return postgres.Schema{
		Table: c.Table,
		Columns: postgres.Columns{
			ID:          c.Columns.ID,
			Title:       c.Columns.Title,
			Handle:      c.Columns.Handle,
			URL:         c.Columns.URL,
			Description: c.Columns.Description,
			Category:    c.Columns.Category,
			Tags:        c.Columns.Tags,
			SKU:         c.Columns.SKU,
			Price:       c.Columns.Price,
			ImageURL:    c.Columns.ImageURL,
		},
		DictionaryTable:  c.DictionaryTable,
		DictionaryColumn: c.DictionaryColumn,
		TextSearchConfig: c.TextSearchConfig,
	}
}

func searchConfig(s config.SearchConfig) (searchuc.Config, error) {
	set, err := strategy.Parse(s.Strategies)
	if err != nil {
		return searchuc.Config{}, fmt.Errorf("parse strategies: %w", err)
	}
	fields := make([]catalog.Field, len(s.Fields))
	for i, f := range s.Fields {
		fields[i] = catalog.Field(f)
	}
	split := true
	if s.SplitLetterDigit != nil {
		split = *s.SplitLetterDigit
	}
	return searchuc.Config{
		Fields:     fields,
		Strategies: set,
		Threshold:  s.FuzzyThreshold,
		Normalize: query.Options{
			SplitLetterDigit: split,
			FoldAccents:      s.FoldAccents,
			DropSymbolTokens: s.DropSymbolTokens,
		},
		DemotedCategories: s.DemotedCategories,
		SuggestionCount:   s.SuggestionCount,
	}, nil
}
