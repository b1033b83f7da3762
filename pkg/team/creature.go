package team

import (
	"slices"

	"github.com/notjagan/teamdex/pkg/typechart"
)

// Creature is the summary of a single creature as used by the roster. Only
// ID and Name survive in a minimal roster.
type Creature struct {
	ID      string               `json:"id"`
	Name    string               `json:"name"`
	Types   []typechart.TypeName `json:"types,omitempty"`
	Moves   []string             `json:"moves,omitempty"`
	Ability string               `json:"ability,omitempty"`
	Sprite  string               `json:"sprite,omitempty"`
}

// Key is the identity used for favorites and minimal rosters: the ID, or the
// name when the ID is missing.
func (c Creature) Key() string {
	if c.ID != "" {
		return c.ID
	}

	return c.Name
}

// Complete reports whether the record carries full detail and needs no
// re-fetch.
func (c Creature) Complete() bool {
	return len(c.Types) > 0 && len(c.Moves) > 0 && c.Sprite != ""
}

func (c Creature) Minimal() Creature {
	return Creature{ID: c.Key(), Name: c.Name}
}

func (c Creature) HasType(name typechart.TypeName) bool {
	return slices.Contains(c.Types, name)
}

func (c Creature) Clone() *Creature {
	c.Types = slices.Clone(c.Types)
	c.Moves = slices.Clone(c.Moves)
	return &c
}
