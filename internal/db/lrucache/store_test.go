package lrucache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/shopsearch/internal/db"
)

func TestNewStore_InvalidSize(t *testing.T) {
	if _, err := NewStore(0, time.Minute); err == nil {
		t.Fatal("expected error for zero size")
	}
}

func TestStore_SetGet(t *testing.T) {
	s, err := NewStore(8, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if err := s.SetWithTTL(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatal(err)
	}
	v, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(v) != "v" {
		t.Errorf("got %q, want v", v)
	}
}

func TestStore_Evicts(t *testing.T) {
	s, _ := NewStore(2, time.Minute)
	ctx := context.Background()
	_ = s.SetWithTTL(ctx, "a", []byte("1"), 0)
	_ = s.SetWithTTL(ctx, "b", []byte("2"), 0)
	_ = s.SetWithTTL(ctx, "c", []byte("3"), 0)

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if _, err := s.Get(ctx, "a"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Error("oldest entry should be evicted")
	}
}

func TestStore_Close(t *testing.T) {
	s, _ := NewStore(2, time.Minute)
	_ = s.SetWithTTL(context.Background(), "a", []byte("1"), 0)
	s.Close()
	if s.Len() != 0 {
		t.Errorf("Len() after Close = %d", s.Len())
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}
