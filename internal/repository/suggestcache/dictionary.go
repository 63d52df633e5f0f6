// Package suggestcache caches dictionary lookups in a key-value store.
package suggestcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/shopsearch/internal/db"
	"github.com/kailas-cloud/shopsearch/internal/domain"
)

var cacheKeyPrefix = domain.KeyPrefix + "suggest:"

// DefaultTTL is how long cached suggestions live.
const DefaultTTL = time.Hour

// store is the consumer interface for the suggestion cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Dictionary is the wrapped lookup.
type Dictionary interface {
	Similar(ctx context.Context, token string, k int) ([]string, error)
}

// CachedDictionary caches Similar results. Cache failures never fail a lookup.
type CachedDictionary struct {
	inner      Dictionary
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Dictionary,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedDictionary {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedDictionary{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Similar returns cached terms or asks the inner dictionary and caches its answer.
// Inner errors are returned uncached.
func (c *CachedDictionary) Similar(ctx context.Context, token string, k int) ([]string, error) {
	key := cacheKey(token, k)

	if terms, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return terms, nil
	}

	c.incCache("miss")

	terms, err := c.inner.Similar(ctx, token, k)
	if err != nil {
		return nil, fmt.Errorf("similar terms: %w", err)
	}
	if terms == nil {
		terms = []string{}
	}

	c.putToCache(ctx, key, terms)
	return terms, nil
}

func (c *CachedDictionary) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(token string, k int) string {
	return cacheKeyPrefix + strconv.Itoa(k) + ":" + token
}

func (c *CachedDictionary) getFromCache(ctx context.Context, key string) ([]string, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Suggestion cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	terms := []string{}
	if err := json.Unmarshal(data, &terms); err != nil {
		c.logger.Warn("Failed to parse cached suggestions", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return terms, true
}

func (c *CachedDictionary) putToCache(ctx context.Context, key string, terms []string) {
	data, err := json.Marshal(terms)
	if err != nil {
		c.logger.Warn("Failed to encode suggestions", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache suggestions", zap.String("key", key), zap.Error(err))
	}
}
