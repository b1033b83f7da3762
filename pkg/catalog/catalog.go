// Package catalog loads the session-wide, read-only data the team builder
// needs from a provider: the creature index and the type chart.
package catalog

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/notjagan/teamdex/pkg/team"
	"github.com/notjagan/teamdex/pkg/typechart"
)

// Entry is one creature in the provider's index.
type Entry struct {
	Name string
	Ref  string
}

// Provider supplies creature and type data from a remote or local source.
type Provider interface {
	ListCreatures(ctx context.Context) ([]Entry, error)
	CreatureDetail(ctx context.Context, ref string) (*team.Creature, error)
	ListTypes(ctx context.Context) ([]typechart.TypeName, error)
	TypeRelations(ctx context.Context, name typechart.TypeName) (typechart.RawRelations, error)
}

const DefaultWorkers = 8

type Catalog struct {
	entries []Entry
	byName  map[string]Entry
	chart   *typechart.Chart
}

// Load bootstraps a catalog. Failures degrade the result instead of aborting
// it: no creature index, a chart that is not ready, or neutral types.
func Load(ctx context.Context, p Provider, workers int) *Catalog {
	cat := &Catalog{byName: make(map[string]Entry)}

	entries, err := p.ListCreatures(ctx)
	if err != nil {
		log.Printf("could not load creature index: %v", err)
	}
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		if _, ok := cat.byName[e.Name]; ok {
			continue
		}
		cat.entries = append(cat.entries, e)
		cat.byName[e.Name] = e
	}

	names, err := p.ListTypes(ctx)
	if err != nil {
		log.Printf("could not load type list: %v", err)
		cat.chart = typechart.Build(nil, nil)
		return cat
	}
	types := typechart.Playable(names)

	cat.chart = typechart.Build(types, loadRelations(ctx, p, types, workers))
	log.Printf("Loaded %d creatures and %d types.", len(cat.entries), len(types))

	return cat
}

func loadRelations(
	ctx context.Context,
	p Provider,
	types []typechart.TypeName,
	workers int,
) map[typechart.TypeName]typechart.RawRelations {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var mu sync.Mutex
	raw := make(map[typechart.TypeName]typechart.RawRelations, len(types))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, typ := range types {
		typ := typ
		g.Go(func() error {
			rels, err := p.TypeRelations(gctx, typ)
			if err != nil {
				log.Printf("treating type %q as neutral: %v", typ, err)
				return nil
			}

			mu.Lock()
			raw[typ] = rels
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return raw
}

func (cat *Catalog) Chart() *typechart.Chart {
	return cat.chart
}

func (cat *Catalog) Len() int {
	return len(cat.entries)
}

// Ref returns the provider reference for a known creature name and the input
// itself otherwise.
func (cat *Catalog) Ref(name string) string {
	if e, ok := cat.byName[name]; ok && e.Ref != "" {
		return e.Ref
	}

	return name
}

func (cat *Catalog) Has(name string) bool {
	_, ok := cat.byName[name]
	return ok
}

// Search returns up to limit entries whose name starts with prefix, ordered
// by name.
func (cat *Catalog) Search(prefix string, limit int) []Entry {
	prefix = strings.ToLower(prefix)
	matches := make([]Entry, 0, max(limit, 0))
	for _, e := range cat.entries {
		if strings.HasPrefix(strings.ToLower(e.Name), prefix) {
			matches = append(matches, e)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Name < matches[j].Name
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return matches
}
