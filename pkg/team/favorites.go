package team

import (
	"errors"
	"fmt"
	"slices"
)

// Favorites is an ordered set of creature records keyed by Creature.Key.
type Favorites []Creature

func (favs Favorites) index(key string) int {
	return slices.IndexFunc(favs, func(c Creature) bool {
		return c.Key() == key
	})
}

func (favs Favorites) Contains(c Creature) bool {
	key := c.Key()
	return key != "" && favs.index(key) >= 0
}

// Toggle removes the record sharing c's key, or appends a copy of c whose ID
// is set to that key. The receiver is not modified.
func (favs Favorites) Toggle(c Creature) Favorites {
	key := c.Key()
	if key == "" {
		return slices.Clone(favs)
	}

	if i := favs.index(key); i >= 0 {
		return slices.Delete(slices.Clone(favs), i, i+1)
	}

	added := *c.Clone()
	added.ID = key
	return append(slices.Clone(favs), added)
}

var ErrNoSavedRoster = errors.New("no saved roster at index")

// SavedRosters is the ordered list of minimal rosters a user saved.
type SavedRosters [][]Creature

func (saved SavedRosters) At(index int) ([]Creature, error) {
	if index < 0 || index >= len(saved) {
		return nil, fmt.Errorf("saved roster %d: %w", index, ErrNoSavedRoster)
	}

	return slices.Clone(saved[index]), nil
}

// Save overwrites the roster at index when index refers to an existing
// entry and appends otherwise. It returns the new list and the index
// written.
func (saved SavedRosters) Save(minimal []Creature, index *int) (SavedRosters, int) {
	next := slices.Clone(saved)
	entry := slices.Clone(minimal)
	if entry == nil {
		entry = []Creature{}
	}

	if index != nil && *index >= 0 && *index < len(next) {
		next[*index] = entry
		return next, *index
	}

	return append(next, entry), len(next)
}

func (saved SavedRosters) Remove(index int) (SavedRosters, error) {
	if index < 0 || index >= len(saved) {
		return nil, fmt.Errorf("saved roster %d: %w", index, ErrNoSavedRoster)
	}

	return slices.Delete(slices.Clone(saved), index, index+1), nil
}

// CurrentRoster is the durable record of the roster being edited.
type CurrentRoster struct {
	Team  []Creature `json:"team"`
	Index *int       `json:"index"`
}
