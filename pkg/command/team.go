package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/notjagan/teamdex/pkg/catalog"
	"github.com/notjagan/teamdex/pkg/session"
	"github.com/notjagan/teamdex/pkg/team"
)

type teamOptions struct {
	Show *struct{} `option:"show"`
	Set  *struct {
		Slot    int                  `option:"slot"`
		Pokemon discordField[string] `option:"pokemon"`
	} `option:"set"`
	Clear *struct {
		Slot int `option:"slot"`
	} `option:"clear"`
	New  *struct{} `option:"new"`
	Save *struct{} `option:"save"`
}

func showTeamOptions() teamOptions {
	return teamOptions{Show: &struct{}{}}
}

type teamResponder struct {
	catalog           *catalog.Catalog
	autocompleteLimit int
	format            func(*discordgo.Session) formatter
}

func (resp teamResponder) view(
	user *session.Session,
	sess *discordgo.Session,
	content string,
) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: content,
		Embeds: []*discordgo.MessageEmbed{
			resp.format(sess).rosterEmbed(user.View(), user.IsFavorite),
		},
	}
}

func slotError(slot int, err error) (*discordgo.InteractionResponseData, error) {
	if errors.Is(err, team.ErrSlotOutOfRange) {
		return ephemeral(fmt.Sprintf("Slot %d does not exist; pick a slot from 1 to %d.", slot, team.Size)), nil
	}

	return nil, err
}

func (resp teamResponder) Handle(
	ctx context.Context,
	user *session.Session,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	opt *teamOptions,
) (*discordgo.InteractionResponseData, error) {
	switch {
	case opt.Show != nil:
		return resp.view(user, sess, ""), nil

	case opt.Set != nil:
		name := opt.Set.Pokemon.Value
		err := user.Assign(ctx, opt.Set.Slot-1, name)
		if errors.Is(err, team.ErrUnresolved) {
			return ephemeral(fmt.Sprintf("No Pokemon found with the name %q.", name)), nil
		} else if errors.Is(err, team.ErrStaleAssignment) {
			return ephemeral(fmt.Sprintf("Slot %d was changed while %q was loading.", opt.Set.Slot, name)), nil
		} else if err != nil {
			return slotError(opt.Set.Slot, err)
		}

		return resp.view(user, sess, ""), nil

	case opt.Clear != nil:
		err := user.Clear(ctx, opt.Clear.Slot-1)
		if err != nil {
			return slotError(opt.Clear.Slot, err)
		}

		return resp.view(user, sess, ""), nil

	case opt.New != nil:
		err := user.NewTeam(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not start new team: %w", err)
		}

		return resp.view(user, sess, "Started a new team."), nil

	case opt.Save != nil:
		index, err := user.Save(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not save team: %w", err)
		}

		return resp.view(user, sess, fmt.Sprintf("Saved as team #%d.", index+1)), nil

	default:
		return nil, fmt.Errorf("unrecognized subcommand for command \"team\": %w", ErrCommandFormat)
	}
}

func (resp teamResponder) Autocomplete(
	ctx context.Context,
	user *session.Session,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	opt *teamOptions,
) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	switch {
	case opt.Set != nil:
		if opt.Set.Pokemon.Focused {
			s := creatureSearcher{
				catalog:   resp.catalog,
				formatter: resp.format(sess),
				prefix:    opt.Set.Pokemon.Value,
				limit:     resp.autocompleteLimit,
			}
			return searchChoices[catalog.Entry](ctx, s)
		}
	default:
		return nil, fmt.Errorf("no recognized subcommand in focus: %w", ErrCommandFormat)
	}

	return nil, fmt.Errorf("no recognized field in focus: %w", ErrCommandFormat)
}

func slotOption() *discordgo.ApplicationCommandOption {
	minSlot := 1.

	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "slot",
		Description: "Team slot",
		Required:    true,
		MinValue:    &minSlot,
		MaxValue:    float64(team.Size),
	}
}

func (builder *Builder) team(ctx context.Context) (Command, error) {
	resp := teamResponder{
		catalog:           builder.catalog,
		autocompleteLimit: builder.autocompleteLimit,
		format:            builder.formatter,
	}

	return command[teamOptions]{
		handler:       resp,
		autocompleter: resp,
		command: discordgo.ApplicationCommand{
			Name:        "team",
			Description: "Build a team of Pokemon.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Show the current team with its defense and coverage",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Put a Pokemon in a team slot",
					Options: []*discordgo.ApplicationCommandOption{
						slotOption(),
						{
							Type:         discordgo.ApplicationCommandOptionString,
							Name:         "pokemon",
							Description:  "Name of the Pokemon",
							Required:     true,
							Autocomplete: true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "clear",
					Description: "Empty a team slot",
					Options: []*discordgo.ApplicationCommandOption{
						slotOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "new",
					Description: "Start a new team",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "save",
					Description: "Save the current team",
				},
			},
		},
	}, nil
}
