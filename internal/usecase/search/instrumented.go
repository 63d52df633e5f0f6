package search

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/shopsearch/internal/domain"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/request"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/result"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/strategy"
	"github.com/kailas-cloud/shopsearch/internal/logger"
	"github.com/kailas-cloud/shopsearch/internal/metrics"
)

// Instrumented wraps a Searcher with outcome metrics and a final-state log line.
type Instrumented struct {
	inner    Searcher
	strategy string
}

// NewInstrumented wraps inner. The strategy set labels the duration histogram.
func NewInstrumented(inner Searcher, set strategy.Set) *Instrumented {
	return &Instrumented{inner: inner, strategy: set.String()}
}

// Search delegates to the inner searcher and records how the request ended.
func (i *Instrumented) Search(ctx context.Context, req request.Request) (result.Result, error) {
	ctx = logger.With(ctx, zap.String("strategy", i.strategy))
	start := time.Now()
	res, err := i.inner.Search(ctx, req)
	duration := time.Since(start)

	outcome := Outcome(res, err)
	metrics.SearchRequestsTotal.WithLabelValues(outcome).Inc()
	metrics.SearchDuration.WithLabelValues(i.strategy).Observe(duration.Seconds())
	if outcome == metrics.OutcomeNoMatch {
		metrics.SearchZeroResultsTotal.Inc()
	}

	log := logger.FromContext(ctx)
	fields := []zap.Field{
		zap.String("query", req.Query()),
		zap.Int("page", req.Page()),
		zap.Int("page_size", req.PageSize()),
		zap.String("outcome", outcome),
		zap.Duration("duration", duration),
	}
	switch outcome {
	case metrics.OutcomeFault:
		log.Error("Search failed", append(fields, zap.Error(err))...)
	case metrics.OutcomeUnavailable:
		log.Warn("Search failed", append(fields, zap.Error(err))...)
	default:
		log.Debug("Search completed", append(fields,
			zap.Int("total", res.Total()),
			zap.Int("returned", len(res.Hits())),
			zap.Int("corrections", len(res.DidYouMean())),
		)...)
	}
	return res, err
}

// Outcome names the final state of a search for metrics and logs.
func Outcome(res result.Result, err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		return metrics.OutcomeInvalid
	case errors.Is(err, domain.ErrResourceUnavailable):
		return metrics.OutcomeUnavailable
	case err != nil:
		return metrics.OutcomeFault
	case res.Total() > 0:
		return metrics.OutcomeMatched
	case res.Suggested():
		return metrics.OutcomeNoMatch
	default:
		return metrics.OutcomeEmpty
	}
}
