package pokeapi

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type resourceList struct {
	Count   int             `json:"count"`
	Results []namedResource `json:"results"`
}

type pokemonType struct {
	Slot int           `json:"slot"`
	Type namedResource `json:"type"`
}

type pokemon struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Types []pokemonType `json:"types"`
	Moves []struct {
		Move namedResource `json:"move"`
	} `json:"moves"`
	Abilities []struct {
		Ability  namedResource `json:"ability"`
		IsHidden bool          `json:"is_hidden"`
		Slot     int           `json:"slot"`
	} `json:"abilities"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
	} `json:"sprites"`
}

type typeDetail struct {
	Name            string `json:"name"`
	DamageRelations struct {
		DoubleDamageTo []namedResource `json:"double_damage_to"`
		HalfDamageTo   []namedResource `json:"half_damage_to"`
		NoDamageTo     []namedResource `json:"no_damage_to"`
	} `json:"damage_relations"`
}
