package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notjagan/teamdex/pkg/catalog"
	"github.com/notjagan/teamdex/pkg/config"
	"github.com/notjagan/teamdex/pkg/session"
	"github.com/notjagan/teamdex/pkg/storage"
	"github.com/notjagan/teamdex/pkg/team"
	"github.com/notjagan/teamdex/pkg/typechart"
)

var creatures = []team.Creature{
	{ID: "6", Name: "charizard", Types: []typechart.TypeName{"fire", "flying"}, Moves: []string{"flamethrower", "air-slash"}, Ability: "blaze", Sprite: "https://sprites.test/6.png"},
	{ID: "7", Name: "squirtle", Types: []typechart.TypeName{"water"}, Moves: []string{"bubble"}, Sprite: "https://sprites.test/7.png"},
	{ID: "122", Name: "mr-mime", Types: []typechart.TypeName{"psychic"}, Moves: []string{"confusion"}, Sprite: "https://sprites.test/122.png"},
}

type fakeProvider struct{}

func (fakeProvider) ListCreatures(context.Context) ([]catalog.Entry, error) {
	entries := make([]catalog.Entry, len(creatures))
	for i, c := range creatures {
		entries[i] = catalog.Entry{Name: c.Name, Ref: c.ID}
	}
	return entries, nil
}

func (fakeProvider) CreatureDetail(_ context.Context, ref string) (*team.Creature, error) {
	for _, c := range creatures {
		if c.ID == ref || c.Name == ref {
			return c.Clone(), nil
		}
	}
	return nil, errors.New("not found")
}

func (fakeProvider) ListTypes(context.Context) ([]typechart.TypeName, error) {
	return []typechart.TypeName{"normal", "fire", "water", "grass", "flying", "psychic"}, nil
}

func (fakeProvider) TypeRelations(_ context.Context, name typechart.TypeName) (typechart.RawRelations, error) {
	if name == "water" {
		return typechart.RawRelations{
			DoubleDamageTo: []typechart.TypeName{"fire"},
			HalfDamageTo:   []typechart.TypeName{"water", "grass"},
		}, nil
	}
	return typechart.RawRelations{}, nil
}

type fixture struct {
	commands map[string]Command
	user     *session.Session
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	cat := catalog.Load(ctx, fakeProvider{}, 1)
	cfg := config.Default()
	cfg.Commands.PageLimit = 2

	cmds, err := All(ctx, cat, cfg)
	require.NoError(t, err)

	mgr := session.NewManager(cat, fakeProvider{}, storage.NewGateway(storage.NewMemStore()))
	return fixture{
		commands: cmds,
		user:     mgr.Get(ctx, "ash"),
	}
}

func (f fixture) team(t *testing.T, opt teamOptions) *discordgo.InteractionResponseData {
	t.Helper()

	cmd, ok := f.commands["team"].(command[teamOptions])
	require.True(t, ok)
	data, err := cmd.responseBody(context.Background(), f.user, nil, nil, opt)
	require.NoError(t, err)
	return data
}

func (f fixture) paginate(t *testing.T, name string, opt any, page Page) *discordgo.InteractionResponseData {
	t.Helper()
	ctx := context.Background()

	var data *discordgo.InteractionResponseData
	var err error
	switch opt := opt.(type) {
	case teamsOptions:
		cmd := f.commands[name].(command[teamsOptions])
		data, err = cmd.pager.Paginate(ctx, f.user, nil, nil, paginator[teamsOptions]{Options: opt, Page: page})
	case favoriteOptions:
		cmd := f.commands[name].(command[favoriteOptions])
		data, err = cmd.pager.Paginate(ctx, f.user, nil, nil, paginator[favoriteOptions]{Options: opt, Page: page})
	default:
		t.Fatalf("unexpected options %T", opt)
	}
	require.NoError(t, err)
	return data
}

func setOptions(slot int, name string) teamOptions {
	opt := teamOptions{Set: &struct {
		Slot    int                  `option:"slot"`
		Pokemon discordField[string] `option:"pokemon"`
	}{}}
	opt.Set.Slot = slot
	opt.Set.Pokemon.Value = name
	return opt
}

func fieldValue(t *testing.T, embed *discordgo.MessageEmbed, name string) string {
	t.Helper()

	for _, field := range embed.Fields {
		if field.Name == name {
			return field.Value
		}
	}
	t.Fatalf("no field %q in embed", name)
	return ""
}

func TestAll(t *testing.T) {
	f := newFixture(t)

	assert.Len(t, f.commands, 3)
	for _, name := range []string{"team", "teams", "favorite"} {
		cmd, ok := f.commands[name]
		require.True(t, ok, name)
		assert.Equal(t, name, cmd.ApplicationCommand().Name)
	}
}

func TestDecodeOptions(t *testing.T) {
	options := []*discordgo.ApplicationCommandInteractionDataOption{
		{
			Name: "set",
			Type: discordgo.ApplicationCommandOptionSubCommand,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "slot", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(3)},
				{Name: "pokemon", Type: discordgo.ApplicationCommandOptionString, Value: "char", Focused: true},
			},
		},
	}

	var opt teamOptions
	require.NoError(t, decodeOptions(options, &opt))
	require.NotNil(t, opt.Set)
	assert.Nil(t, opt.Show)
	assert.Equal(t, 3, opt.Set.Slot)
	assert.Equal(t, "char", opt.Set.Pokemon.Value)
	assert.True(t, opt.Set.Pokemon.Focused)

	var show teamOptions
	require.NoError(t, decodeOptions([]*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "show", Type: discordgo.ApplicationCommandOptionSubCommand},
	}, &show))
	assert.NotNil(t, show.Show)

	err := decodeOptions([]*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "bogus", Type: discordgo.ApplicationCommandOptionSubCommand},
	}, &show)
	assert.ErrorIs(t, err, ErrDecodeOption)

	err = decodeOptions([]*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "load", Type: discordgo.ApplicationCommandOptionSubCommand, Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Name: "number", Type: discordgo.ApplicationCommandOptionString, Value: "one"},
		}},
	}, &teamsOptions{})
	assert.ErrorIs(t, err, ErrDecodeOption)
}

func TestButtonCustomID(t *testing.T) {
	f := newFixture(t)

	p := paginator[teamsOptions]{
		Options: teamsOptions{List: &struct{}{}},
		Page:    Page{Limit: 2, Offset: 4},
	}
	id, err := customID(p, "teams")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(id), 100)

	reader := strings.NewReader(id)
	name, err := ButtonCommand(reader)
	require.NoError(t, err)
	assert.Equal(t, "teams", name)

	action, err := reader.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, paginator[teamsOptions]{}.Name(), action)

	state, err := buttonState[paginator[teamsOptions]](reader)
	require.NoError(t, err)
	assert.Equal(t, p, *state)

	cmd, err := optionCommand[teamsOptions](f.commands)
	require.NoError(t, err)
	assert.Equal(t, "teams", cmd.Name())

	_, err = optionCommand[struct{}](f.commands)
	assert.ErrorIs(t, err, ErrNoCommand)
}

func TestFormatting(t *testing.T) {
	f := formatter{language: config.Default().Language()}

	assert.Equal(t, "+1", signed(1))
	assert.Equal(t, "-2", signed(-2))
	assert.Equal(t, "0", signed(0))
	assert.Equal(t, "Mr Mime", f.name("mr-mime"))
	assert.Equal(t, "Fire", f.typeLabel("fire"))

	f.emojis = Emojis{
		"fire1": {ID: "1", Name: "fire1"},
		"fire2": {ID: "2", Name: "fire2"},
	}
	assert.Equal(t, "<:fire1:1><:fire2:2>", f.typeLabel("fire"))
	assert.Equal(t, "Water", f.typeLabel("water"))
}

func TestPageOf(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, hasNext := pageOf(items, Page{Limit: 2, Offset: 0})
	assert.Equal(t, []int{1, 2}, page)
	assert.True(t, hasNext)

	page, hasNext = pageOf(items, Page{Limit: 2, Offset: 4})
	assert.Equal(t, []int{5}, page)
	assert.False(t, hasNext)

	page, hasNext = pageOf(items, Page{Limit: 2, Offset: 10})
	assert.Empty(t, page)
	assert.False(t, hasNext)
}

func TestTeamCommand(t *testing.T) {
	f := newFixture(t)

	data := f.team(t, showTeamOptions())
	require.Len(t, data.Embeds, 1)
	assert.Equal(t, "0/6 Pokemon", data.Embeds[0].Description)

	data = f.team(t, setOptions(1, "charizard"))
	embed := data.Embeds[0]
	assert.Equal(t, "1/6 Pokemon", embed.Description)
	assert.Equal(t, "https://sprites.test/6.png", embed.Thumbnail.URL)
	assert.Contains(t, fieldValue(t, embed, "1 ▸ Charizard"), "Flamethrower ▸ Air Slash")
	assert.Contains(t, fieldValue(t, embed, "Defense"), "Water `+1`")
	assert.Contains(t, fieldValue(t, embed, "Defense"), "Normal `0`")
	assert.Contains(t, fieldValue(t, embed, "Coverage"), "Fire `1`")

	data = f.team(t, setOptions(2, "missingno"))
	assert.Equal(t, discordgo.MessageFlagsEphemeral, data.Flags)
	assert.Contains(t, data.Content, "missingno")

	data = f.team(t, setOptions(7, "squirtle"))
	assert.Equal(t, discordgo.MessageFlagsEphemeral, data.Flags)

	data = f.team(t, teamOptions{Save: &struct{}{}})
	assert.Equal(t, "Saved as team #1.", data.Content)
	assert.Equal(t, "Team #1", data.Embeds[0].Title)

	clearSlot := teamOptions{Clear: &struct {
		Slot int `option:"slot"`
	}{Slot: 1}}
	data = f.team(t, clearSlot)
	assert.Equal(t, "0/6 Pokemon", data.Embeds[0].Description)

	data = f.team(t, teamOptions{New: &struct{}{}})
	assert.Equal(t, "Team", data.Embeds[0].Title)
}

func TestTeamAutocomplete(t *testing.T) {
	f := newFixture(t)
	cmd := f.commands["team"].(command[teamOptions])

	opt := setOptions(1, "M")
	opt.Set.Pokemon.Focused = true
	choices, err := cmd.autocompleter.Autocomplete(context.Background(), f.user, nil, nil, &opt)
	require.NoError(t, err)
	require.Len(t, choices, 1)
	assert.Equal(t, "Mr Mime", choices[0].Name)
	assert.Equal(t, "mr-mime", choices[0].Value)

	_, err = cmd.autocompleter.Autocomplete(context.Background(), f.user, nil, nil, &teamOptions{Show: &struct{}{}})
	assert.ErrorIs(t, err, ErrCommandFormat)
}

func TestTeamsCommand(t *testing.T) {
	f := newFixture(t)
	list := teamsOptions{List: &struct{}{}}

	data := f.paginate(t, "teams", list, Page{Limit: 2})
	assert.Equal(t, discordgo.MessageFlagsEphemeral, data.Flags)

	for _, name := range []string{"charizard", "squirtle", "mr-mime"} {
		f.team(t, teamOptions{New: &struct{}{}})
		f.team(t, setOptions(1, name))
		f.team(t, teamOptions{Save: &struct{}{}})
	}

	data = f.paginate(t, "teams", list, Page{Limit: 2})
	embed := data.Embeds[0]
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "#1", embed.Fields[0].Name)
	assert.Equal(t, "Charizard", embed.Fields[0].Value)
	require.Len(t, data.Components, 1)

	data = f.paginate(t, "teams", list, Page{Limit: 2, Offset: 2})
	require.Len(t, data.Embeds[0].Fields, 1)
	assert.Equal(t, "#3 (loaded)", data.Embeds[0].Fields[0].Name)

	load := teamsOptions{Load: &struct {
		Number int `option:"number"`
	}{Number: 2}}
	data = f.paginate(t, "teams", load, Page{})
	assert.Equal(t, "Loaded team #2.", data.Content)
	assert.Equal(t, "Team #2", data.Embeds[0].Title)

	del := teamsOptions{Delete: &struct {
		Number int `option:"number"`
	}{Number: 9}}
	data = f.paginate(t, "teams", del, Page{})
	assert.Equal(t, discordgo.MessageFlagsEphemeral, data.Flags)

	del.Delete.Number = 1
	data = f.paginate(t, "teams", del, Page{})
	assert.Equal(t, "Deleted team #1.", data.Content)
	assert.Len(t, f.user.SavedRosters(context.Background()), 2)
}

func TestFavoriteCommand(t *testing.T) {
	f := newFixture(t)
	toggle := favoriteOptions{Toggle: &struct {
		Slot int `option:"slot"`
	}{Slot: 1}}

	data := f.paginate(t, "favorite", toggle, Page{})
	assert.Equal(t, discordgo.MessageFlagsEphemeral, data.Flags)

	f.team(t, setOptions(1, "squirtle"))
	data = f.paginate(t, "favorite", toggle, Page{})
	assert.Equal(t, "Added Squirtle to favorites.", data.Content)

	row := data.Components[0].(discordgo.ActionsRow)
	button := row.Components[0].(discordgo.Button)
	reader := strings.NewReader(button.CustomID)
	name, err := ButtonCommand(reader)
	require.NoError(t, err)
	assert.Equal(t, "team", name)
	action, err := reader.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, followUp[teamOptions]{}.Name(), action)
	state, err := buttonState[followUp[teamOptions]](reader)
	require.NoError(t, err)
	assert.NotNil(t, state.Options.Show)

	show := f.team(t, state.Options)
	assert.Equal(t, "1 ▸ Squirtle ★", show.Embeds[0].Fields[0].Name)

	data = f.paginate(t, "favorite", favoriteOptions{List: &struct{}{}}, Page{Limit: 2})
	require.Len(t, data.Embeds[0].Fields, 1)
	assert.Equal(t, "Squirtle", data.Embeds[0].Fields[0].Name)
	assert.Empty(t, data.Components)

	data = f.paginate(t, "favorite", toggle, Page{})
	assert.Equal(t, "Removed Squirtle from favorites.", data.Content)
}
