package model

import "context"

type Type struct {
	model *Model

	ID           int    `db:"id"`
	GenerationID *int   `db:"generation_id"`
	Name         string `db:"name"`
}

func (typ *Type) AttackingEfficacies(ctx context.Context) ([]TypeEfficacy, error) {
	return typ.model.attackingTypeEfficacies(ctx, typ)
}
