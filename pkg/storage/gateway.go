package storage

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/goccy/go-json"

	"github.com/notjagan/teamdex/pkg/team"
)

// Gateway reads and writes the typed records of an owner. Absent, unreadable
// or malformed records read as their empty default.
type Gateway struct {
	store Storer
}

func NewGateway(store Storer) *Gateway {
	return &Gateway{store: store}
}

func (g *Gateway) Close() error {
	return g.store.Close()
}

func (g *Gateway) read(ctx context.Context, owner string, key Key, v any) bool {
	data, err := g.store.Get(ctx, owner, key)
	if errors.Is(err, ErrNotFound) {
		return false
	} else if err != nil {
		log.Printf("could not read %q for owner %q: %v", key, owner, err)
		return false
	}

	err = json.Unmarshal(data, v)
	if err != nil {
		log.Printf("discarding malformed %q for owner %q: %v", key, owner, err)
		return false
	}

	return true
}

func (g *Gateway) write(ctx context.Context, owner string, key Key, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}

	err = g.store.Put(ctx, owner, key, data)
	if err != nil {
		return fmt.Errorf("failed to store %q: %w", key, err)
	}

	return nil
}

func (g *Gateway) CurrentRoster(ctx context.Context, owner string) team.CurrentRoster {
	var cur team.CurrentRoster
	if !g.read(ctx, owner, KeyCurrentRoster, &cur) {
		return team.CurrentRoster{Team: []team.Creature{}}
	}
	if cur.Team == nil {
		cur.Team = []team.Creature{}
	}

	return cur
}

func (g *Gateway) PutCurrentRoster(ctx context.Context, owner string, cur team.CurrentRoster) error {
	if cur.Team == nil {
		cur.Team = []team.Creature{}
	}

	return g.write(ctx, owner, KeyCurrentRoster, cur)
}

func (g *Gateway) DeleteCurrentRoster(ctx context.Context, owner string) error {
	err := g.store.Delete(ctx, owner, KeyCurrentRoster)
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", KeyCurrentRoster, err)
	}

	return nil
}

func (g *Gateway) SavedRosters(ctx context.Context, owner string) team.SavedRosters {
	var saved team.SavedRosters
	if !g.read(ctx, owner, KeySavedRosters, &saved) || saved == nil {
		return team.SavedRosters{}
	}

	return saved
}

func (g *Gateway) PutSavedRosters(ctx context.Context, owner string, saved team.SavedRosters) error {
	if saved == nil {
		saved = team.SavedRosters{}
	}

	return g.write(ctx, owner, KeySavedRosters, saved)
}

func (g *Gateway) Favorites(ctx context.Context, owner string) team.Favorites {
	var favs team.Favorites
	if !g.read(ctx, owner, KeyFavorites, &favs) || favs == nil {
		return team.Favorites{}
	}

	return favs
}

func (g *Gateway) PutFavorites(ctx context.Context, owner string, favs team.Favorites) error {
	if favs == nil {
		favs = team.Favorites{}
	}

	return g.write(ctx, owner, KeyFavorites, favs)
}
