// Package session keeps the per-user team builder state: the roster being
// edited, the saved rosters and the favorites, written through to storage.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/notjagan/teamdex/pkg/catalog"
	"github.com/notjagan/teamdex/pkg/storage"
	"github.com/notjagan/teamdex/pkg/team"
)

var ErrEmptySlot = errors.New("slot is empty")

type Session struct {
	owner   string
	catalog *catalog.Catalog
	gateway *storage.Gateway
	store   *team.Store

	open sync.Once

	mu        sync.Mutex
	favorites team.Favorites
}

// View is a snapshot of the roster with its analysis.
type View struct {
	Slots   team.Roster
	Summary team.Summary
	Loaded  *int
}

func newSession(owner string, cat *catalog.Catalog, resolver team.Resolver, gw *storage.Gateway) *Session {
	return &Session{
		owner:     owner,
		catalog:   cat,
		gateway:   gw,
		store:     team.NewStore(resolver),
		favorites: team.Favorites{},
	}
}

func (s *Session) load(ctx context.Context) {
	s.open.Do(func() {
		cur := s.gateway.CurrentRoster(ctx, s.owner)
		failed := s.store.Rehydrate(ctx, cur.Team)
		if failed > 0 {
			log.Printf("could not restore %d creature(s) for owner %q", failed, s.owner)
		}
		if cur.Index != nil {
			s.store.SetLoaded(*cur.Index)
		}

		s.mu.Lock()
		s.favorites = s.gateway.Favorites(ctx, s.owner)
		s.mu.Unlock()
	})
}

func (s *Session) loaded() *int {
	index, ok := s.store.Loaded()
	if !ok {
		return nil
	}
	return &index
}

// persist writes the current roster record. Callers hold s.mu so snapshots
// reach storage in order.
func (s *Session) persist(ctx context.Context) error {
	cur := team.CurrentRoster{Team: s.store.ToMinimal(), Index: s.loaded()}
	err := s.gateway.PutCurrentRoster(ctx, s.owner, cur)
	if err != nil {
		return fmt.Errorf("could not save current roster: %w", err)
	}

	return nil
}

// Assign resolves a creature by catalog name, or by any reference the
// provider accepts, and puts it in the slot.
func (s *Session) Assign(ctx context.Context, slot int, name string) error {
	err := s.store.AssignSlot(ctx, slot, s.catalog.Ref(name))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persist(ctx)
}

func (s *Session) Clear(ctx context.Context, slot int) error {
	err := s.store.ClearSlot(slot)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persist(ctx)
}

// NewTeam empties the roster and forgets the durable record of it.
func (s *Session) NewTeam(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Reset()
	return s.gateway.DeleteCurrentRoster(ctx, s.owner)
}

// Save stores the roster over the saved roster it was loaded from, or as a
// new one, and returns the index written.
func (s *Session) Save(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.gateway.SavedRosters(ctx, s.owner)
	next, index := saved.Save(s.store.ToMinimal(), s.loaded())
	err := s.gateway.PutSavedRosters(ctx, s.owner, next)
	if err != nil {
		return 0, fmt.Errorf("could not save roster: %w", err)
	}

	s.store.SetLoaded(index)
	return index, s.persist(ctx)
}

func (s *Session) SavedRosters(ctx context.Context) team.SavedRosters {
	return s.gateway.SavedRosters(ctx, s.owner)
}

// Load replaces the roster with a saved one and returns how many of its
// entries could not be restored.
func (s *Session) Load(ctx context.Context, index int) (int, error) {
	entry, err := s.SavedRosters(ctx).At(index)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	err = s.gateway.PutCurrentRoster(ctx, s.owner, team.CurrentRoster{Team: entry, Index: &index})
	s.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("could not save current roster: %w", err)
	}

	failed := s.store.Rehydrate(ctx, entry)
	s.store.SetLoaded(index)

	return failed, nil
}

// DeleteSaved removes a saved roster. A roster loaded from it is detached,
// and one loaded from a later entry follows its new index.
func (s *Session) DeleteSaved(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.gateway.SavedRosters(ctx, s.owner).Remove(index)
	if err != nil {
		return err
	}
	err = s.gateway.PutSavedRosters(ctx, s.owner, next)
	if err != nil {
		return fmt.Errorf("could not delete saved roster: %w", err)
	}

	loaded, ok := s.store.Loaded()
	switch {
	case !ok:
		return nil
	case loaded == index:
		s.store.ClearLoaded()
	case loaded > index:
		s.store.SetLoaded(loaded - 1)
	default:
		return nil
	}

	return s.persist(ctx)
}

// ToggleFavorite adds the creature in the slot to the favorites, or removes
// it if it is already there. It reports whether the creature is now a
// favorite.
func (s *Session) ToggleFavorite(ctx context.Context, slot int) (*team.Creature, bool, error) {
	c, err := s.store.Slot(slot)
	if err != nil {
		return nil, false, err
	}
	if c == nil {
		return nil, false, fmt.Errorf("slot %d: %w", slot, ErrEmptySlot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.favorites.Toggle(*c)
	err = s.gateway.PutFavorites(ctx, s.owner, next)
	if err != nil {
		return nil, false, fmt.Errorf("could not save favorites: %w", err)
	}
	s.favorites = next

	return c, next.Contains(*c), nil
}

func (s *Session) Favorites() team.Favorites {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs := make(team.Favorites, len(s.favorites))
	copy(favs, s.favorites)
	return favs
}

func (s *Session) IsFavorite(c team.Creature) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.favorites.Contains(c)
}

func (s *Session) View() View {
	roster := s.store.Roster()
	return View{
		Slots:   roster,
		Summary: team.Analyze(roster, s.catalog.Chart()),
		Loaded:  s.loaded(),
	}
}
