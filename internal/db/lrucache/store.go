// Package lrucache is an in-process db.Cache backed by an expirable LRU.
package lrucache

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/kailas-cloud/shopsearch/internal/db"
)

var _ db.Cache = (*Store)(nil)

// Store keeps at most Size entries, each living for TTL after insertion.
// The per-call ttl of SetWithTTL is ignored: expiry is fixed at construction.
type Store struct {
	lru *expirable.LRU[string, []byte]
}

// NewStore creates an in-process cache.
func NewStore(size int, ttl time.Duration) (*Store, error) {
	if size <= 0 {
		return nil, errors.New("size must be positive")
	}
	return &Store{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}, nil
}

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.lru.Get(key)
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

// SetWithTTL stores a value.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.lru.Add(key, value)
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close drops all entries.
func (s *Store) Close() { s.lru.Purge() }

// Len returns the number of live entries.
func (s *Store) Len() int { return s.lru.Len() }
