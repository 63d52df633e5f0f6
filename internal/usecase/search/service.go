package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/shopsearch/internal/domain/catalog"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/predicate"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/query"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/ranking"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/request"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/result"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/strategy"
	"github.com/kailas-cloud/shopsearch/internal/logger"
)

// DefaultSuggestionCount is the number of terms proposed per token.
const DefaultSuggestionCount = 3

// Config selects how queries are matched and ranked.
type Config struct {
	Fields            []catalog.Field
	Strategies        strategy.Set
	Threshold         float64
	Normalize         query.Options
	DemotedCategories []string
	SuggestionCount   int
}

// DefaultConfig returns the storefront defaults.
func DefaultConfig() Config {
	return Config{
		Fields:            catalog.DefaultSearchFields,
		Strategies:        strategy.Default(),
		Threshold:         strategy.DefaultThreshold,
		Normalize:         query.DefaultOptions(),
		DemotedCategories: ranking.DefaultDemotedCategories,
		SuggestionCount:   DefaultSuggestionCount,
	}
}

// Service runs a query through normalization, matching, ranking, pagination
// and, when nothing matches, spelling suggestions. It holds no per-request state.
type Service struct {
	catalog     Catalog
	dict        Dictionary
	normalizer  query.Normalizer
	fields      []catalog.Field
	strategies  strategy.Set
	threshold   float64
	policy      ranking.Policy
	suggestions int
}

// New creates a search service. dict may be nil to disable suggestions.
func New(cat Catalog, dict Dictionary, cfg Config) (*Service, error) {
	// An empty token list exercises every configuration check without matching anything.
	if _, err := predicate.Build(nil, cfg.Fields, cfg.Strategies, cfg.Threshold); err != nil {
		return nil, fmt.Errorf("invalid search config: %w", err)
	}
	if cfg.SuggestionCount <= 0 {
		cfg.SuggestionCount = DefaultSuggestionCount
	}
	return &Service{
		catalog:     cat,
		dict:        dict,
		normalizer:  query.NewNormalizer(cfg.Normalize),
		fields:      append([]catalog.Field(nil), cfg.Fields...),
		strategies:  append(strategy.Set(nil), cfg.Strategies...),
		threshold:   cfg.Threshold,
		policy:      ranking.NewPolicy(cfg.DemotedCategories),
		suggestions: cfg.SuggestionCount,
	}, nil
}

// Strategies returns the active strategy set.
func (s *Service) Strategies() strategy.Set { return s.strategies }

// Search executes one request. Storage errors abort the request; suggestion
// failures only empty the did-you-mean list.
func (s *Service) Search(ctx context.Context, req request.Request) (result.Result, error) {
	log := logger.FromContext(ctx)

	tokens := s.normalizer.Normalize(req.Query())
	if len(tokens) == 0 {
		log.Debug("Query normalized to no tokens", zap.String("query", req.Query()))
		return result.New(nil, req.Page(), req.PageSize(), 0), nil
	}

	p, err := predicate.Build(tokens, s.fields, s.strategies, s.threshold)
	if err != nil {
		return result.Result{}, fmt.Errorf("build predicate: %w", err)
	}
	if s.normalizer.Options().FoldAccents {
		p = p.WithAccentFolding()
	}

	hits, total, err := s.catalog.Search(ctx, p, req.Query(), s.policy, req.Offset(), req.PageSize())
	if err != nil {
		return result.Result{}, fmt.Errorf("search %q: %w", req.Query(), err)
	}

	res := result.New(hits, req.Page(), req.PageSize(), total)
	if total == 0 {
		res = res.WithDidYouMean(s.suggest(ctx, tokens))
	}
	return res, nil
}
