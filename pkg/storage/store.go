// Package storage keeps the per-owner records of the team builder: the
// roster being edited, saved rosters and favorites.
package storage

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("record not found")

// Storer is a durable key-value store scoped by owner. Writes replace the
// whole value.
type Storer interface {
	Get(ctx context.Context, owner string, key Key) ([]byte, error)
	Put(ctx context.Context, owner string, key Key, value []byte) error
	Delete(ctx context.Context, owner string, key Key) error
	Close() error
}

type record struct {
	owner string
	key   Key
}

// MemStore is an in-memory Storer for tests and ephemeral runs.
type MemStore struct {
	mu      sync.RWMutex
	records map[record][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{records: make(map[record][]byte)}
}

func (s *MemStore) Get(_ context.Context, owner string, key Key) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.records[record{owner, key}]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *MemStore) Put(_ context.Context, owner string, key Key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.records[record{owner, key}] = stored
	return nil
}

func (s *MemStore) Delete(_ context.Context, owner string, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, record{owner, key})
	return nil
}

func (s *MemStore) Close() error {
	return nil
}
