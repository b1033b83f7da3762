package model

import (
	"context"
	"fmt"
	"strconv"

	"github.com/notjagan/teamdex/pkg/model/sprite"
	"github.com/notjagan/teamdex/pkg/team"
	"github.com/notjagan/teamdex/pkg/typechart"
)

type Pokemon struct {
	model *Model

	ID        int    `db:"id"`
	Name      string `db:"name"`
	SpeciesID int    `db:"pokemon_species_id"`

	sprites   *sprite.PokemonSprites
	abilities []PokemonAbility
	types     []*Type
}

func (pokemon *Pokemon) Types(ctx context.Context) ([]*Type, error) {
	if pokemon.types == nil {
		types, err := pokemon.model.pokemonTypes(ctx, pokemon)
		if err != nil {
			return nil, fmt.Errorf("error while getting types for pokemon: %w", err)
		}
		pokemon.types = types
	}

	return pokemon.types, nil
}

func (pokemon *Pokemon) Sprites(ctx context.Context) (*sprite.PokemonSprites, error) {
	if pokemon.sprites == nil {
		sprites, err := pokemon.model.pokemonSprites(ctx, pokemon)
		if err != nil {
			return nil, fmt.Errorf("error while getting sprites for pokemon: %w", err)
		}
		pokemon.sprites = sprites
	}

	return pokemon.sprites, nil
}

func (pokemon *Pokemon) Abilities(ctx context.Context) ([]PokemonAbility, error) {
	if pokemon.abilities == nil {
		abilities, err := pokemon.model.pokemonAbilities(ctx, pokemon)
		if err != nil {
			return nil, fmt.Errorf("error while getting abilities for pokemon: %w", err)
		}
		pokemon.abilities = abilities
	}

	return pokemon.abilities, nil
}

func (pokemon *Pokemon) Moves(ctx context.Context, limit int) ([]PokemonMove, error) {
	return pokemon.model.pokemonMoves(ctx, pokemon, limit)
}

// Creature assembles the roster summary of the pokemon: its types in slot
// order, its first moves, its first ability and its default front sprite.
func (pokemon *Pokemon) Creature(ctx context.Context) (*team.Creature, error) {
	creature := &team.Creature{
		ID:   strconv.Itoa(pokemon.ID),
		Name: pokemon.Name,
	}

	types, err := pokemon.Types(ctx)
	if err != nil {
		return nil, err
	}
	for _, typ := range types {
		creature.Types = append(creature.Types, typechart.TypeName(typ.Name))
	}

	pms, err := pokemon.Moves(ctx, moveLimit)
	if err != nil {
		return nil, err
	}
	for i := range pms {
		move, err := pms[i].Move(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not get move for pokemon %q: %w", pokemon.Name, err)
		}
		creature.Moves = append(creature.Moves, move.Name)
	}

	abilities, err := pokemon.Abilities(ctx)
	if err != nil {
		return nil, err
	}
	if len(abilities) > 0 {
		creature.Ability = abilities[0].Name
	}

	sprites, err := pokemon.Sprites(ctx)
	if err != nil {
		return nil, err
	}
	if sprites.Front.Default != nil {
		creature.Sprite = sprites.Front.Default.URL(pokemon.model.spriteURL)
	}

	return creature, nil
}
