package sprite

import (
	"fmt"

	"github.com/goccy/go-json"
)

type Sprites struct {
	Front
	*Back
}

type PokemonSprites struct {
	Sprites
	Other map[string]Sprites `json:"other"`
}

func Parse(data []byte) (*PokemonSprites, error) {
	var sprites PokemonSprites
	err := json.Unmarshal(data, &sprites)
	if err != nil {
		return nil, fmt.Errorf("could not decode sprites: %w", err)
	}

	return &sprites, nil
}
