// Package pokeapi is a catalog provider backed by the PokeAPI REST service.
package pokeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/notjagan/teamdex/pkg/catalog"
	"github.com/notjagan/teamdex/pkg/team"
	"github.com/notjagan/teamdex/pkg/typechart"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2"
	DefaultLimit   = 500

	moveLimit = 4
	typeLimit = 100
)

var ErrStatus = errors.New("unexpected response status")

// Client fetches creature and type data. Creature details are cached for the
// lifetime of the client.
type Client struct {
	client  *http.Client
	baseURL string
	limit   int

	mu    sync.RWMutex
	cache map[string]*team.Creature
}

type Options struct {
	BaseURL string
	Limit   int
	Timeout time.Duration
}

func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	return &Client{
		client: &http.Client{
			Timeout: opts.Timeout,
		},
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		limit:   opts.Limit,
		cache:   make(map[string]*team.Creature),
	}
}

func (c *Client) get(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %q: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%q returned %d: %w", rawURL, resp.StatusCode, ErrStatus)
	}

	err = json.NewDecoder(resp.Body).Decode(v)
	if err != nil {
		return fmt.Errorf("failed to parse %q: %w", rawURL, err)
	}

	return nil
}

func (c *Client) ListCreatures(ctx context.Context) ([]catalog.Entry, error) {
	var list resourceList
	u := fmt.Sprintf("%s/pokemon?limit=%d&offset=0", c.baseURL, c.limit)
	err := c.get(ctx, u, &list)
	if err != nil {
		return nil, fmt.Errorf("error while listing pokemon: %w", err)
	}

	entries := make([]catalog.Entry, len(list.Results))
	for i, res := range list.Results {
		entries[i] = catalog.Entry{Name: res.Name, Ref: res.URL}
	}

	return entries, nil
}

func (c *Client) creatureURL(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}

	return fmt.Sprintf("%s/pokemon/%s", c.baseURL, url.PathEscape(strings.ToLower(ref)))
}

func (c *Client) cached(ref string) (*team.Creature, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	creature, ok := c.cache[ref]
	return creature, ok
}

// CreatureDetail fetches a creature by id, name or resource URL.
func (c *Client) CreatureDetail(ctx context.Context, ref string) (*team.Creature, error) {
	if creature, ok := c.cached(ref); ok {
		return creature.Clone(), nil
	}

	var p pokemon
	err := c.get(ctx, c.creatureURL(ref), &p)
	if err != nil {
		return nil, fmt.Errorf("error while getting pokemon %q: %w", ref, err)
	}

	creature := toCreature(p)

	c.mu.Lock()
	c.cache[ref] = creature
	c.cache[creature.ID] = creature
	c.cache[creature.Name] = creature
	c.mu.Unlock()

	return creature.Clone(), nil
}

func (c *Client) ListTypes(ctx context.Context) ([]typechart.TypeName, error) {
	var list resourceList
	u := fmt.Sprintf("%s/type?limit=%d&offset=0", c.baseURL, typeLimit)
	err := c.get(ctx, u, &list)
	if err != nil {
		return nil, fmt.Errorf("error while listing types: %w", err)
	}

	names := make([]typechart.TypeName, len(list.Results))
	for i, res := range list.Results {
		names[i] = typechart.TypeName(res.Name)
	}

	return names, nil
}

func (c *Client) TypeRelations(ctx context.Context, name typechart.TypeName) (typechart.RawRelations, error) {
	var detail typeDetail
	u := fmt.Sprintf("%s/type/%s", c.baseURL, url.PathEscape(string(name)))
	err := c.get(ctx, u, &detail)
	if err != nil {
		return typechart.RawRelations{}, fmt.Errorf("error while getting relations for type %q: %w", name, err)
	}

	dr := detail.DamageRelations
	return typechart.RawRelations{
		DoubleDamageTo: typeNames(dr.DoubleDamageTo),
		HalfDamageTo:   typeNames(dr.HalfDamageTo),
		NoDamageTo:     typeNames(dr.NoDamageTo),
	}, nil
}

func (c *Client) ClearCache() {
	c.mu.Lock()
	c.cache = make(map[string]*team.Creature)
	c.mu.Unlock()
}

func typeNames(resources []namedResource) []typechart.TypeName {
	names := make([]typechart.TypeName, len(resources))
	for i, res := range resources {
		names[i] = typechart.TypeName(res.Name)
	}

	return names
}

func toCreature(p pokemon) *team.Creature {
	slots := slices.Clone(p.Types)
	slices.SortStableFunc(slots, func(a, b pokemonType) int {
		return a.Slot - b.Slot
	})

	creature := &team.Creature{
		ID:    strconv.Itoa(p.ID),
		Name:  p.Name,
		Types: make([]typechart.TypeName, len(slots)),
		Moves: make([]string, 0, moveLimit),
	}
	for i, s := range slots {
		creature.Types[i] = typechart.TypeName(s.Type.Name)
	}
	for _, m := range p.Moves {
		if len(creature.Moves) == moveLimit {
			break
		}
		creature.Moves = append(creature.Moves, m.Move.Name)
	}
	if len(p.Abilities) > 0 {
		creature.Ability = p.Abilities[0].Ability.Name
	}
	if p.Sprites.FrontDefault != nil {
		creature.Sprite = *p.Sprites.FrontDefault
	}

	return creature
}
