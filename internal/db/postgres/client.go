// Package postgres implements db.Store on PostgreSQL.
//
// Required extensions: pg_trgm (fuzzy matching and suggestions) and, when
// accent folding is enabled, unaccent. A gin_trgm_ops index on each searched
// column lets the fuzzy <% operator avoid sequential scans.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kailas-cloud/shopsearch/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Defaults for pool sizing.
const (
	DefaultMaxConns       = 10
	DefaultAcquireTimeout = 2 * time.Second
)

// Config holds connection and schema parameters.
type Config struct {
	DSN            string
	MaxConns       int32
	AcquireTimeout time.Duration
	Schema         Schema
}

// Store implements db.Store over a bounded pgxpool.
type Store struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
	render         renderer
}

// NewStore creates the pool. Connections are opened lazily.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, errors.New("dsn is required")
	}
	if err := cfg.Schema.Validate(); err != nil {
		return nil, err
	}
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = DefaultMaxConns
	}
	if cfg.AcquireTimeout <= 0 {
		cfg.AcquireTimeout = DefaultAcquireTimeout
	}

	pcfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pcfg.MaxConns = cfg.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	return &Store{
		pool:           pool,
		acquireTimeout: cfg.AcquireTimeout,
		render:         renderer{schema: cfg.Schema, matchers: newMatchers(cfg.Schema)},
	}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return classify(db.OpPing, err)
	}
	return nil
}

// Close closes all pool connections.
func (s *Store) Close() {
	s.pool.Close()
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Stats reports pool usage.
func (s *Store) Stats() db.PoolStats {
	st := s.pool.Stat()
	return db.PoolStats{
		Acquired: int(st.AcquiredConns()),
		Idle:     int(st.IdleConns()),
		Total:    int(st.TotalConns()),
		Max:      int(st.MaxConns()),
	}
}

// acquire takes a connection, waiting at most the acquire timeout.
// The caller must Release it.
func (s *Store) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	actx, cancel := context.WithTimeout(ctx, s.acquireTimeout)
	defer cancel()

	conn, err := s.pool.Acquire(actx)
	if err != nil {
		return nil, classifyAcquire(ctx, err)
	}
	return conn, nil
}
