package model

type PokemonAbility struct {
	ID       int    `db:"id"`
	Name     string `db:"name"`
	IsHidden bool   `db:"is_hidden"`
	Slot     int    `db:"slot"`
}
