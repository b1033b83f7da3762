package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/notjagan/teamdex/pkg/catalog"
)

type searcher[T any] interface {
	Search(context.Context) ([]T, error)
	Label(T) string
	Value(T) any
}

type creatureSearcher struct {
	catalog   *catalog.Catalog
	formatter formatter
	prefix    string
	limit     int
}

func (s creatureSearcher) Search(context.Context) ([]catalog.Entry, error) {
	return s.catalog.Search(s.prefix, s.limit), nil
}

func (s creatureSearcher) Label(e catalog.Entry) string {
	return s.formatter.name(e.Name)
}

func (creatureSearcher) Value(e catalog.Entry) any {
	return e.Name
}

func searchChoices[T any](ctx context.Context, s searcher[T]) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	results, err := s.Search(ctx)
	if err != nil {
		return nil, fmt.Errorf("error while searching for matching resources: %w", err)
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(results))
	for i, res := range results {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{
			Name:  s.Label(res),
			Value: s.Value(res),
		}
	}

	return choices, nil
}
