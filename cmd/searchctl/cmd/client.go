package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kailas-cloud/shopsearch/internal/config"
	shopsearch "github.com/kailas-cloud/shopsearch/pkg/sdk"
)

func loadConfig(opts *globalOptions) (config.Config, error) {
	if opts.configPath != "" {
		cfg, err := config.LoadFile(opts.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	env := opts.env
	if env == "" {
		env = config.GetEnv()
	}
	cfg, err := config.Load(env)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func openClient(ctx context.Context, opts *globalOptions) (*shopsearch.Client, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	var logger *slog.Logger
	if opts.verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	client, err := shopsearch.New(ctx, append(clientOptions(cfg), shopsearch.WithLogger(logger))...)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	return client, nil
}

// clientOptions maps server configuration onto SDK options.
func clientOptions(cfg config.Config) []shopsearch.Option {
	var opts []shopsearch.Option

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		cc := cfg.Catalog
		opts = append(opts,
			shopsearch.WithPostgres(cfg.Database.DSN),
			shopsearch.WithSchema(shopsearch.Schema{
				Table: cc.Table,
				Columns: shopsearch.Columns{
					ID:          cc.Columns.ID,
					Title:       cc.Columns.Title,
					Handle:      cc.Columns.Handle,
					URL:         cc.Columns.URL,
					Description: cc.Columns.Description,
					Category:    cc.Columns.Category,
					Tags:        cc.Columns.Tags,
					SKU:         cc.Columns.SKU,
					Price:       cc.Columns.Price,
					ImageURL:    cc.Columns.ImageURL,
				},
				DictionaryTable:  cc.DictionaryTable,
				DictionaryColumn: cc.DictionaryColumn,
				TextSearchConfig: cc.TextSearchConfig,
			}),
		)
	case config.DriverMemory:
		opts = append(opts, shopsearch.WithCatalogFile(cfg.Database.CatalogFile))
	}

	switch cfg.Cache.Driver {
	case config.CacheValkey:
		opts = append(opts, shopsearch.WithValkeyCache(cfg.Cache.Addrs[0], cfg.Cache.Password))
	case config.CacheMemory:
		opts = append(opts, shopsearch.WithMemoryCache(cfg.Cache.Size))
	}

	s := cfg.Search
	opts = append(opts,
		shopsearch.WithPool(cfg.Database.MaxConns, time.Duration(cfg.Database.AcquireTimeoutMs)*time.Millisecond),
		shopsearch.WithReadinessTimeout(time.Duration(cfg.Database.ReadinessTimeout)*time.Second),
		shopsearch.WithCacheTTL(time.Duration(cfg.Cache.TTLSec)*time.Second),
		shopsearch.WithSearchFields(s.Fields...),
		shopsearch.WithStrategies(s.Strategies...),
		shopsearch.WithFuzzyThreshold(s.FuzzyThreshold),
		shopsearch.WithDemotedCategories(s.DemotedCategories...),
		shopsearch.WithPageLimits(s.DefaultPageSize, s.MaxPageSize),
		shopsearch.WithSuggestionCount(s.SuggestionCount),
	)
	if s.SplitLetterDigit != nil && !*s.SplitLetterDigit {
		opts = append(opts, shopsearch.WithoutLetterDigitSplit())
	}
	if s.FoldAccents {
		opts = append(opts, shopsearch.WithAccentFolding())
	}
	return opts
}
