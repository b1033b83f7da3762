// Package model is a catalog provider reading the PokeAPI SQLite dump.
package model

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/notjagan/teamdex/pkg/catalog"
	"github.com/notjagan/teamdex/pkg/model/sprite"
	"github.com/notjagan/teamdex/pkg/team"
	"github.com/notjagan/teamdex/pkg/typechart"
)

const (
	DefaultLimit     = 500
	DefaultSpriteURL = "https://raw.githubusercontent.com/PokeAPI/sprites/master"

	moveLimit = 4
)

type Model struct {
	db *sqlx.DB

	limit     int
	spriteURL string
}

type Options struct {
	Limit     int
	SpriteURL string
}

func New(ctx context.Context, dbPath string, opts Options) (*Model, error) {
	db, err := sqlx.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to read from database: %w", err)
	}

	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.SpriteURL == "" {
		opts.SpriteURL = DefaultSpriteURL
	}

	return &Model{
		db:        db,
		limit:     opts.Limit,
		spriteURL: strings.TrimRight(opts.SpriteURL, "/"),
	}, nil
}

func (m *Model) Close() error {
	return m.db.Close()
}

func (m *Model) PokemonByID(ctx context.Context, id int) (*Pokemon, error) {
	pokemon := Pokemon{model: m}
	err := m.db.QueryRowxContext(ctx,
		/* sql */ `
		SELECT id, name, pokemon_species_id
		FROM pokemon_v2_pokemon
		WHERE id = ?
	`, id).StructScan(&pokemon)
	if err != nil {
		return nil, fmt.Errorf("no matching pokemon found: %w", err)
	}

	return &pokemon, nil
}

func (m *Model) PokemonByName(ctx context.Context, name string) (*Pokemon, error) {
	pokemon := Pokemon{model: m}
	err := m.db.QueryRowxContext(ctx,
		/* sql */ `
		SELECT id, name, pokemon_species_id
		FROM pokemon_v2_pokemon
		WHERE name = ?
	`, strings.ToLower(name)).StructScan(&pokemon)
	if err != nil {
		return nil, fmt.Errorf("no matching pokemon found: %w", err)
	}

	return &pokemon, nil
}

func (m *Model) ListCreatures(ctx context.Context) ([]catalog.Entry, error) {
	var ps []Pokemon
	err := m.db.SelectContext(ctx, &ps,
		/* sql */ `
		SELECT id, name, pokemon_species_id
		FROM pokemon_v2_pokemon
		ORDER BY id
		LIMIT ?
	`, m.limit)
	if err != nil {
		return nil, fmt.Errorf("error while listing pokemon: %w", err)
	}

	entries := make([]catalog.Entry, len(ps))
	for i, p := range ps {
		entries[i] = catalog.Entry{Name: p.Name, Ref: strconv.Itoa(p.ID)}
	}

	return entries, nil
}

// CreatureDetail resolves a pokemon by numeric id or by name.
func (m *Model) CreatureDetail(ctx context.Context, ref string) (*team.Creature, error) {
	var pokemon *Pokemon
	var err error
	if id, convErr := strconv.Atoi(ref); convErr == nil {
		pokemon, err = m.PokemonByID(ctx, id)
	} else {
		pokemon, err = m.PokemonByName(ctx, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get pokemon %q: %w", ref, err)
	}

	return pokemon.Creature(ctx)
}

func (m *Model) ListTypes(ctx context.Context) ([]typechart.TypeName, error) {
	var types []Type
	err := m.db.SelectContext(ctx, &types,
		/* sql */ `
		SELECT id, generation_id, name
		FROM pokemon_v2_type
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("error while listing types: %w", err)
	}

	names := make([]typechart.TypeName, len(types))
	for i, typ := range types {
		names[i] = typechart.TypeName(typ.Name)
	}

	return names, nil
}

func (m *Model) TypeRelations(ctx context.Context, name typechart.TypeName) (typechart.RawRelations, error) {
	typ, err := m.TypeByName(ctx, string(name))
	if err != nil {
		return typechart.RawRelations{}, fmt.Errorf("could not get type %q: %w", name, err)
	}

	effs, err := typ.AttackingEfficacies(ctx)
	if err != nil {
		return typechart.RawRelations{}, fmt.Errorf("could not get efficacies for type %q: %w", name, err)
	}

	var raw typechart.RawRelations
	for _, te := range effs {
		opp, err := te.OpposingType(ctx)
		if err != nil {
			return typechart.RawRelations{}, fmt.Errorf("could not resolve efficacy of type %q: %w", name, err)
		}
		target := typechart.TypeName(opp.Name)

		switch te.EfficacyLevel() {
		case SuperEffective:
			raw.DoubleDamageTo = append(raw.DoubleDamageTo, target)
		case NotVeryEffective:
			raw.HalfDamageTo = append(raw.HalfDamageTo, target)
		case Immune:
			raw.NoDamageTo = append(raw.NoDamageTo, target)
		case NormalEffective:
		default:
			return typechart.RawRelations{}, fmt.Errorf("damage factor %d of type %q: %w", te.DamageFactor, name, ErrEfficacyLevel)
		}
	}

	return raw, nil
}

var ErrEfficacyLevel = errors.New("unexpected type efficacy level")

func (m *Model) typeByID(ctx context.Context, ID int) (*Type, error) {
	typ := Type{model: m}
	err := m.db.QueryRowxContext(ctx,
		/* sql */ `
		SELECT id, generation_id, name
		FROM pokemon_v2_type
		WHERE id = ?
	`, ID).StructScan(&typ)
	if err != nil {
		return nil, fmt.Errorf("no matching type found: %w", err)
	}

	return &typ, nil
}

func (m *Model) TypeByName(ctx context.Context, name string) (*Type, error) {
	typ := Type{model: m}
	err := m.db.QueryRowxContext(ctx,
		/* sql */ `
		SELECT id, generation_id, name
		FROM pokemon_v2_type
		WHERE name = ?
	`, name).StructScan(&typ)
	if err != nil {
		return nil, fmt.Errorf("no matching type found: %w", err)
	}

	return &typ, nil
}

func (m *Model) attackingTypeEfficacies(ctx context.Context, typ *Type) ([]TypeEfficacy, error) {
	var effs []TypeEfficacy
	err := m.db.SelectContext(ctx, &effs,
		/* sql */ `
		SELECT damage_factor, target_type_id AS opposing_type_id
		FROM pokemon_v2_typeefficacy
		WHERE damage_type_id = ?
		ORDER BY target_type_id
	`, typ.ID)
	if err != nil {
		return nil, fmt.Errorf("error while getting efficacies for type %q: %w", typ.Name, err)
	}

	for i := range effs {
		effs[i].model = m
	}

	return effs, nil
}

func (m *Model) pokemonTypes(ctx context.Context, pokemon *Pokemon) ([]*Type, error) {
	var types []*Type
	err := m.db.SelectContext(ctx, &types,
		/* sql */ `
		SELECT t.id, t.generation_id, t.name
		FROM pokemon_v2_pokemontype pt
		JOIN pokemon_v2_type t
			ON pt.type_id = t.id
		WHERE pt.pokemon_id = ?
		ORDER BY pt.slot
	`, pokemon.ID)
	if err != nil {
		return nil, fmt.Errorf("error while getting types for pokemon %q: %w", pokemon.Name, err)
	}

	for i := range types {
		types[i].model = m
	}

	return types, nil
}

func (m *Model) pokemonMoves(ctx context.Context, pokemon *Pokemon, limit int) ([]PokemonMove, error) {
	var moves []PokemonMove
	err := m.db.SelectContext(ctx, &moves,
		/* sql */ `
		SELECT MIN(id) AS id, move_id
		FROM pokemon_v2_pokemonmove
		WHERE pokemon_id = ?
		GROUP BY move_id
		ORDER BY MIN(id)
		LIMIT ?
	`, pokemon.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("error while getting moves for pokemon %q: %w", pokemon.Name, err)
	}

	for i := range moves {
		moves[i].model = m
	}

	return moves, nil
}

func (m *Model) moveByID(ctx context.Context, ID int) (*Move, error) {
	var move Move
	err := m.db.QueryRowxContext(ctx,
		/* sql */ `
		SELECT id, power, pp, accuracy, type_id, name
		FROM pokemon_v2_move
		WHERE id = ?
	`, ID).StructScan(&move)
	if err != nil {
		return nil, fmt.Errorf("no matching move found: %w", err)
	}

	return &move, nil
}

func (m *Model) pokemonAbilities(ctx context.Context, pokemon *Pokemon) ([]PokemonAbility, error) {
	var abilities []PokemonAbility
	err := m.db.SelectContext(ctx, &abilities,
		/* sql */ `
		SELECT a.id, a.name, pa.is_hidden, pa.slot
		FROM pokemon_v2_pokemonability pa
		JOIN pokemon_v2_ability a
			ON pa.ability_id = a.id
		WHERE pa.pokemon_id = ?
		ORDER BY pa.slot
	`, pokemon.ID)
	if err != nil {
		return nil, fmt.Errorf("error while getting abilities for pokemon %q: %w", pokemon.Name, err)
	}

	return abilities, nil
}

func (m *Model) pokemonSprites(ctx context.Context, pokemon *Pokemon) (*sprite.PokemonSprites, error) {
	var raw string
	err := m.db.QueryRowxContext(ctx,
		/* sql */ `
		SELECT sprites
		FROM pokemon_v2_pokemonsprites
		WHERE pokemon_id = ?
	`, pokemon.ID).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("no sprites found for pokemon %q: %w", pokemon.Name, err)
	}

	sprites, err := sprite.Parse([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("malformed sprites for pokemon %q: %w", pokemon.Name, err)
	}

	return sprites, nil
}
