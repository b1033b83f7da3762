package model

import (
	"context"
	"fmt"
)

type PokemonMove struct {
	model *Model

	ID     int `db:"id"`
	MoveID int `db:"move_id"`

	move *Move
}

func (pm *PokemonMove) Move(ctx context.Context) (*Move, error) {
	if pm.move == nil {
		move, err := pm.model.moveByID(ctx, pm.MoveID)
		if err != nil {
			return nil, fmt.Errorf("error while getting move: %w", err)
		}
		pm.move = move
	}

	return pm.move, nil
}
