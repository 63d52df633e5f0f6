package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/shopsearch/internal/domain"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/result"
	"github.com/kailas-cloud/shopsearch/internal/logger"
	"github.com/kailas-cloud/shopsearch/internal/metrics"
)

// Suggest returns corrections for every token of raw. Unlike the did-you-mean
// step of Search, dictionary errors are returned to the caller.
func (s *Service) Suggest(ctx context.Context, raw string) ([]result.Correction, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, domain.ErrEmptyQuery
	}
	return s.corrections(ctx, s.normalizer.Normalize(raw))
}

// suggest is the best-effort variant used after a zero-match search.
func (s *Service) suggest(ctx context.Context, tokens []string) []result.Correction {
	out, err := s.corrections(ctx, tokens)
	if err != nil {
		metrics.SuggestionFailuresTotal.Inc()
		logger.FromContext(ctx).Warn("Suggestions unavailable, returning none",
			zap.Strings("tokens", tokens),
			zap.Error(err),
		)
		return []result.Correction{}
	}
	return out
}

// corrections looks tokens up in order; tokens without hits are omitted.
func (s *Service) corrections(ctx context.Context, tokens []string) ([]result.Correction, error) {
	out := make([]result.Correction, 0, len(tokens))
	if s.dict == nil {
		return out, nil
	}
	for _, tok := range tokens {
		terms, err := s.dict.Similar(ctx, tok, s.suggestions)
		if err != nil {
			return nil, fmt.Errorf("suggest for %q: %w", tok, err)
		}
		if len(terms) == 0 {
			continue
		}
		if len(terms) > s.suggestions {
			terms = terms[:s.suggestions]
		}
		out = append(out, result.NewCorrection(tok, terms))
	}
	return out, nil
}
