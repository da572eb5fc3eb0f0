// internal/store/memory.go
//
// In-memory round store.
// Rounds are live objects mutated by presentation events, so the store
// also serialises those mutations through Update.
//
// Characteristics:
//   - Stores *game.Round objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Missing IDs yield ErrNotFound.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/guessing/internal/game"
)

// ErrNotFound is returned for unknown round IDs.
var ErrNotFound = errors.New("store: round not found")

// Store defines the persistence interface for live rounds.
type Store interface {
	// Save persists or replaces a round.
	Save(ctx context.Context, r *game.Round) error

	// Get retrieves a round by ID.
	Get(ctx context.Context, id string) (*game.Round, error)

	// Update runs fn on the stored round while holding its write lock.
	// The error from fn is returned unchanged.
	Update(ctx context.Context, id string, fn func(*game.Round) error) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex           // guards rounds and every round's fields
	rounds map[string]*game.Round // keyed by Round.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{rounds: make(map[string]*game.Round)}
}

func (m *memory) Save(ctx context.Context, r *game.Round) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[r.ID] = r
	return nil
}

// Get returns a copy so readers never race with Update.
func (m *memory) Get(ctx context.Context, id string) (*game.Round, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rounds[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(*game.Round) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rounds[id]
	if !ok {
		return ErrNotFound
	}
	return fn(r)
}
