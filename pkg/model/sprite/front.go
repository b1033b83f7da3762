package sprite

type Front struct {
	Default     *Sprite `json:"front_default"`
	Female      *Sprite `json:"front_female"`
	Shiny       *Sprite `json:"front_shiny"`
	ShinyFemale *Sprite `json:"front_shiny_female"`
}
