package command

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/notjagan/teamdex/pkg/session"
	"github.com/notjagan/teamdex/pkg/team"
	"github.com/notjagan/teamdex/pkg/typechart"
)

// panelRows caps the rows per embed field so a panel drawn with emojis stays
// under the field value limit.
const panelRows = 9

type formatter struct {
	language language.Tag
	emojis   Emojis
}

func (f formatter) name(name string) string {
	return cases.Title(f.language).String(strings.ReplaceAll(name, "-", " "))
}

func (f formatter) typeLabel(name typechart.TypeName) string {
	emoji, err := f.emojis.Emoji(string(name))
	if err != nil {
		return f.name(string(name))
	}

	return emoji
}

func signed(v int) string {
	if v == 0 {
		return "0"
	}

	return fmt.Sprintf("%+d", v)
}

func ephemeral(content string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}
}

func (f formatter) creatureSummary(c team.Creature) string {
	values := make([]string, 0, 3)

	types := make([]string, len(c.Types))
	for i, typ := range c.Types {
		types[i] = f.typeLabel(typ)
	}
	if len(types) > 0 {
		values = append(values, strings.Join(types, " "))
	}

	if c.Ability != "" {
		values = append(values, fmt.Sprintf("`ABILITY` %s", f.name(c.Ability)))
	}

	if len(c.Moves) > 0 {
		moves := make([]string, len(c.Moves))
		for i, move := range c.Moves {
			moves[i] = f.name(move)
		}
		values = append(values, strings.Join(moves, " ▸ "))
	}

	if len(values) == 0 {
		return "_No details_"
	}
	return strings.Join(values, "\n")
}

func (f formatter) slotField(slot int, c *team.Creature, favorite bool) *discordgo.MessageEmbedField {
	if c == nil {
		return &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%d ▸ Empty", slot+1),
			Value:  "_Use /team set to fill this slot_",
			Inline: true,
		}
	}

	name := f.name(c.Name)
	if favorite {
		name += " ★"
	}

	return &discordgo.MessageEmbedField{
		Name:   fmt.Sprintf("%d ▸ %s", slot+1, name),
		Value:  f.creatureSummary(*c),
		Inline: true,
	}
}

func (f formatter) panelFields(title string, types []typechart.TypeName, values map[typechart.TypeName]int, format func(int) string) []*discordgo.MessageEmbedField {
	fields := make([]*discordgo.MessageEmbedField, 0, (len(types)+panelRows-1)/panelRows)
	for start := 0; start < len(types); start += panelRows {
		end := min(start+panelRows, len(types))

		rows := make([]string, 0, end-start)
		for _, typ := range types[start:end] {
			rows = append(rows, fmt.Sprintf("%s `%s`", f.typeLabel(typ), format(values[typ])))
		}

		name := title
		if start > 0 {
			name = "\u200b"
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  strings.Join(rows, "\n"),
			Inline: true,
		})
	}

	return fields
}

func (f formatter) summaryFields(summary team.Summary) []*discordgo.MessageEmbedField {
	if len(summary.Types) == 0 {
		return []*discordgo.MessageEmbedField{
			{
				Name:  "Type chart",
				Value: "_Type data is unavailable_",
			},
		}
	}

	fields := f.panelFields("Defense", summary.Types, summary.Defense, signed)
	return append(fields, f.panelFields("Coverage", summary.Types, summary.Coverage, func(v int) string {
		return fmt.Sprint(v)
	})...)
}

// rosterEmbed draws the slots of the roster followed by its defense and
// coverage panels.
func (f formatter) rosterEmbed(view session.View, isFavorite func(team.Creature) bool) *discordgo.MessageEmbed {
	title := "Team"
	if view.Loaded != nil {
		title = fmt.Sprintf("Team #%d", *view.Loaded+1)
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: fmt.Sprintf("%d/%d Pokemon", view.Slots.Occupied(), team.Size),
	}

	for i, c := range view.Slots {
		favorite := c != nil && isFavorite(*c)
		embed.Fields = append(embed.Fields, f.slotField(i, c, favorite))

		if c != nil && c.Sprite != "" && embed.Thumbnail == nil {
			embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: c.Sprite}
		}
	}
	embed.Fields = append(embed.Fields, f.summaryFields(view.Summary)...)

	return embed
}

func (f formatter) rosterList(roster []team.Creature) string {
	if len(roster) == 0 {
		return "_Empty_"
	}

	names := make([]string, len(roster))
	for i, c := range roster {
		names[i] = f.name(c.Name)
	}
	return strings.Join(names, ", ")
}
