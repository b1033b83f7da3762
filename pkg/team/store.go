package team

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Resolver turns a creature reference (identifier, name or URL) into a full
// record.
type Resolver interface {
	CreatureDetail(ctx context.Context, ref string) (*Creature, error)
}

var (
	ErrUnresolved      = errors.New("could not resolve creature")
	ErrStaleAssignment = errors.New("slot was reassigned while resolving")
)

// Store owns the current roster. Writes are serialized; resolution runs
// outside the lock.
type Store struct {
	resolver Resolver

	// Ordered drops assignment results that were overtaken by a newer
	// assignment to the same slot. Off by default: last write wins.
	Ordered bool

	mu     sync.Mutex
	roster Roster
	tokens [Size]uint64
	loaded *int
}

func NewStore(resolver Resolver) *Store {
	return &Store{resolver: resolver}
}

func (s *Store) Roster() Roster {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.roster.clone()
}

func (s *Store) Slot(index int) (*Creature, error) {
	err := checkSlot(index)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.roster[index]
	if c == nil {
		return nil, nil
	}
	return c.Clone(), nil
}

// Loaded returns the index of the saved roster the current roster was loaded
// from, if any.
func (s *Store) Loaded() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded == nil {
		return 0, false
	}
	return *s.loaded, true
}

func (s *Store) SetLoaded(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = &index
}

func (s *Store) ClearLoaded() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = nil
}

func (s *Store) begin(index int) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[index]++
	return s.tokens[index]
}

// AssignSlot resolves ref and puts the result in the slot. An empty ref is a
// no-op. On failure the slot is left unchanged.
func (s *Store) AssignSlot(ctx context.Context, index int, ref string) error {
	err := checkSlot(index)
	if err != nil {
		return err
	}
	if ref == "" {
		return nil
	}

	token := s.begin(index)
	c, err := s.resolver.CreatureDetail(ctx, ref)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrUnresolved, ref, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Ordered && s.tokens[index] != token {
		return fmt.Errorf("slot %d: %w", index, ErrStaleAssignment)
	}
	s.roster[index] = c.Clone()

	return nil
}

func (s *Store) ClearSlot(index int) error {
	err := checkSlot(index)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[index]++
	s.roster[index] = nil

	return nil
}

// Reset empties every slot and forgets the loaded saved roster.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tokens {
		s.tokens[i]++
	}
	s.roster = Roster{}
	s.loaded = nil
}

func (s *Store) ToMinimal() []Creature {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.roster.Minimal()
}

// Rehydrate replaces the roster with the entries of a minimal roster. Entries
// with full detail are used as they are, the rest are re-fetched. Entries
// that cannot be resolved become empty slots; their number is returned.
func (s *Store) Rehydrate(ctx context.Context, minimal []Creature) int {
	var next Roster
	failed := 0
	for i, entry := range minimal {
		if i >= Size {
			failed += len(minimal) - Size
			break
		}

		if entry.Complete() {
			next[i] = entry.Clone()
			continue
		}

		ref := entry.Key()
		if ref == "" {
			failed++
			continue
		}

		c, err := s.resolver.CreatureDetail(ctx, ref)
		if err != nil {
			failed++
			continue
		}
		next[i] = c.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tokens {
		s.tokens[i]++
	}
	s.roster = next

	return failed
}
