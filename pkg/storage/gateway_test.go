package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notjagan/teamdex/pkg/team"
	"github.com/notjagan/teamdex/pkg/typechart"
)

func TestGatewayDefaults(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(NewMemStore())

	cur := g.CurrentRoster(ctx, "user-1")
	assert.Equal(t, []team.Creature{}, cur.Team)
	assert.Nil(t, cur.Index)
	assert.Equal(t, team.SavedRosters{}, g.SavedRosters(ctx, "user-1"))
	assert.Equal(t, team.Favorites{}, g.Favorites(ctx, "user-1"))
}

func TestGatewayMalformedReadsAsDefault(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	g := NewGateway(store)

	require.NoError(t, store.Put(ctx, "user-1", KeyCurrentRoster, []byte(`{"team": 12`)))
	require.NoError(t, store.Put(ctx, "user-1", KeySavedRosters, []byte(`"nope"`)))
	require.NoError(t, store.Put(ctx, "user-1", KeyFavorites, []byte(`null`)))

	assert.Empty(t, g.CurrentRoster(ctx, "user-1").Team)
	assert.Equal(t, team.SavedRosters{}, g.SavedRosters(ctx, "user-1"))
	assert.Equal(t, team.Favorites{}, g.Favorites(ctx, "user-1"))
}

func TestGatewayRoundTrip(t *testing.T) {
	runTestsForAllStores(t, "GatewayRoundTrip", func(t *testing.T, store Storer) {
		ctx := context.Background()
		g := NewGateway(store)

		index := 1
		cur := team.CurrentRoster{
			Team:  []team.Creature{{ID: "25", Name: "pikachu"}},
			Index: &index,
		}
		require.NoError(t, g.PutCurrentRoster(ctx, "user-1", cur))
		assert.Equal(t, cur, g.CurrentRoster(ctx, "user-1"))

		saved := team.SavedRosters{{{ID: "6", Name: "charizard"}}, {}}
		require.NoError(t, g.PutSavedRosters(ctx, "user-1", saved))
		assert.Equal(t, saved, g.SavedRosters(ctx, "user-1"))

		favs := team.Favorites{{
			ID:      "6",
			Name:    "charizard",
			Types:   []typechart.TypeName{"fire", "flying"},
			Moves:   []string{"mega-punch"},
			Ability: "blaze",
			Sprite:  "https://example.test/6.png",
		}}
		require.NoError(t, g.PutFavorites(ctx, "user-1", favs))
		assert.Equal(t, favs, g.Favorites(ctx, "user-1"))

		require.NoError(t, g.DeleteCurrentRoster(ctx, "user-1"))
		assert.Empty(t, g.CurrentRoster(ctx, "user-1").Team)
	})
}

func TestGatewayMinimalEncoding(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	g := NewGateway(store)

	require.NoError(t, g.PutCurrentRoster(ctx, "user-1", team.CurrentRoster{}))
	data, err := store.Get(ctx, "user-1", KeyCurrentRoster)
	require.NoError(t, err)
	assert.JSONEq(t, `{"team": [], "index": null}`, string(data))

	require.NoError(t, g.PutCurrentRoster(ctx, "user-1", team.CurrentRoster{
		Team: []team.Creature{{ID: "25", Name: "pikachu"}},
	}))
	data, err = store.Get(ctx, "user-1", KeyCurrentRoster)
	require.NoError(t, err)
	assert.JSONEq(t, `{"team": [{"id": "25", "name": "pikachu"}], "index": null}`, string(data))
}
