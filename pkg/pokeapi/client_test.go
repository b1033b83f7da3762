package pokeapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notjagan/teamdex/pkg/typechart"
)

const charizardJSON = `{
	"id": 6,
	"name": "charizard",
	"types": [
		{"slot": 2, "type": {"name": "flying", "url": "https://pokeapi.co/api/v2/type/3/"}},
		{"slot": 1, "type": {"name": "fire", "url": "https://pokeapi.co/api/v2/type/10/"}}
	],
	"moves": [
		{"move": {"name": "mega-punch"}},
		{"move": {"name": "fire-punch"}},
		{"move": {"name": "thunder-punch"}},
		{"move": {"name": "scratch"}},
		{"move": {"name": "swords-dance"}}
	],
	"abilities": [
		{"ability": {"name": "blaze"}, "is_hidden": false, "slot": 1},
		{"ability": {"name": "solar-power"}, "is_hidden": true, "slot": 3}
	],
	"sprites": {"front_default": "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/6.png"}
}`

const waterJSON = `{
	"name": "water",
	"damage_relations": {
		"double_damage_to": [{"name": "ground"}, {"name": "rock"}, {"name": "fire"}],
		"half_damage_to": [{"name": "water"}, {"name": "grass"}, {"name": "dragon"}],
		"no_damage_to": []
	}
}`

func newTestServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		fmt.Fprint(w, `{"count": 1302, "results": [
			{"name": "bulbasaur", "url": "https://pokeapi.co/api/v2/pokemon/1/"},
			{"name": "ivysaur", "url": "https://pokeapi.co/api/v2/pokemon/2/"},
			{"name": "venusaur", "url": "https://pokeapi.co/api/v2/pokemon/3/"}
		]}`)
	})
	mux.HandleFunc("/pokemon/charizard", func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		fmt.Fprint(w, charizardJSON)
	})
	mux.HandleFunc("/pokemon/6/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, charizardJSON)
	})
	mux.HandleFunc("/type", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"count": 4, "results": [
			{"name": "normal"}, {"name": "water"}, {"name": "unknown"}, {"name": "shadow"}
		]}`)
	})
	mux.HandleFunc("/type/water", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, waterJSON)
	})
	mux.HandleFunc("/type/broken", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name": "broken", "damage_relations": [`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestListCreatures(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(Options{BaseURL: srv.URL + "/", Limit: 3})

	entries, err := c.ListCreatures(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "bulbasaur", entries[0].Name)
	assert.Equal(t, "https://pokeapi.co/api/v2/pokemon/1/", entries[0].Ref)
}

func TestCreatureDetail(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(Options{BaseURL: srv.URL})

	creature, err := c.CreatureDetail(context.Background(), "Charizard")
	require.NoError(t, err)

	assert.Equal(t, "6", creature.ID)
	assert.Equal(t, "charizard", creature.Name)
	assert.Equal(t, []typechart.TypeName{"fire", "flying"}, creature.Types)
	assert.Equal(t, []string{"mega-punch", "fire-punch", "thunder-punch", "scratch"}, creature.Moves)
	assert.Equal(t, "blaze", creature.Ability)
	assert.Equal(t, "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/6.png", creature.Sprite)
	assert.True(t, creature.Complete())
}

func TestCreatureDetailByURL(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(Options{BaseURL: "http://unused.invalid"})

	creature, err := c.CreatureDetail(context.Background(), srv.URL+"/pokemon/6/")
	require.NoError(t, err)
	assert.Equal(t, "charizard", creature.Name)
}

func TestCreatureDetailIsCached(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	c := New(Options{BaseURL: srv.URL})
	ctx := context.Background()

	first, err := c.CreatureDetail(ctx, "charizard")
	require.NoError(t, err)
	first.Types[0] = "ice"

	second, err := c.CreatureDetail(ctx, "charizard")
	require.NoError(t, err)
	_, err = c.CreatureDetail(ctx, "6")
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, typechart.TypeName("fire"), second.Types[0])

	c.ClearCache()
	_, err = c.CreatureDetail(ctx, "charizard")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCreatureDetailNotFound(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(Options{BaseURL: srv.URL})

	_, err := c.CreatureDetail(context.Background(), "missingno")
	assert.ErrorIs(t, err, ErrStatus)
}

func TestListTypes(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(Options{BaseURL: srv.URL})

	names, err := c.ListTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []typechart.TypeName{"normal", "water", "unknown", "shadow"}, names)
}

func TestTypeRelations(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(Options{BaseURL: srv.URL})

	rels, err := c.TypeRelations(context.Background(), "water")
	require.NoError(t, err)
	assert.Equal(t, []typechart.TypeName{"ground", "rock", "fire"}, rels.DoubleDamageTo)
	assert.Equal(t, []typechart.TypeName{"water", "grass", "dragon"}, rels.HalfDamageTo)
	assert.Empty(t, rels.NoDamageTo)
}

func TestTypeRelationsMalformed(t *testing.T) {
	srv := newTestServer(t, nil)
	c := New(Options{BaseURL: srv.URL})

	_, err := c.TypeRelations(context.Background(), "broken")
	assert.Error(t, err)
}
