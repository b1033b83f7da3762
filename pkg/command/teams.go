package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/notjagan/teamdex/pkg/session"
	"github.com/notjagan/teamdex/pkg/team"
)

type teamsOptions struct {
	List *struct{} `option:"list"`
	Load *struct {
		Number int `option:"number"`
	} `option:"load"`
	Delete *struct {
		Number int `option:"number"`
	} `option:"delete"`
}

type teamsResponder struct {
	pageLimit int
	commands  commands
	format    func(*discordgo.Session) formatter
}

func (resp teamsResponder) list(
	ctx context.Context,
	user *session.Session,
	sess *discordgo.Session,
	p paginator[teamsOptions],
) (*discordgo.InteractionResponseData, error) {
	saved := user.SavedRosters(ctx)
	if len(saved) == 0 {
		return ephemeral("You have no saved teams. Use /team save to save one."), nil
	}

	f := resp.format(sess)
	loaded := user.View().Loaded
	rosters, hasNext := pageOf(saved, p.Page)
	fields := make([]*discordgo.MessageEmbedField, len(rosters))
	for i, roster := range rosters {
		index := p.Page.Offset + i

		name := fmt.Sprintf("#%d", index+1)
		if loaded != nil && *loaded == index {
			name += " (loaded)"
		}
		fields[i] = &discordgo.MessageEmbedField{
			Name:  name,
			Value: f.rosterList(roster),
		}
	}

	buttons, err := p.pageButtons(hasNext, resp.commands)
	if err != nil {
		return nil, fmt.Errorf("failed to generate pagination buttons: %w", err)
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "Saved teams",
				Description: fmt.Sprintf("%d saved", len(saved)),
				Fields:      fields,
			},
		},
		Components: pageComponents(buttons),
	}, nil
}

func (resp teamsResponder) Paginate(
	ctx context.Context,
	user *session.Session,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	p paginator[teamsOptions],
) (*discordgo.InteractionResponseData, error) {
	switch {
	case p.Options.List != nil:
		return resp.list(ctx, user, sess, p)

	case p.Options.Load != nil:
		number := p.Options.Load.Number
		failed, err := user.Load(ctx, number-1)
		if errors.Is(err, team.ErrNoSavedRoster) {
			return ephemeral(fmt.Sprintf("There is no saved team #%d.", number)), nil
		} else if err != nil {
			return nil, fmt.Errorf("could not load team #%d: %w", number, err)
		}

		content := fmt.Sprintf("Loaded team #%d.", number)
		if failed > 0 {
			content += fmt.Sprintf(" %d Pokemon could not be restored.", failed)
		}
		return &discordgo.InteractionResponseData{
			Content: content,
			Embeds: []*discordgo.MessageEmbed{
				resp.format(sess).rosterEmbed(user.View(), user.IsFavorite),
			},
		}, nil

	case p.Options.Delete != nil:
		number := p.Options.Delete.Number
		err := user.DeleteSaved(ctx, number-1)
		if errors.Is(err, team.ErrNoSavedRoster) {
			return ephemeral(fmt.Sprintf("There is no saved team #%d.", number)), nil
		} else if err != nil {
			return nil, fmt.Errorf("could not delete team #%d: %w", number, err)
		}

		return &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Deleted team #%d.", number),
		}, nil

	default:
		return nil, fmt.Errorf("unrecognized subcommand for command \"teams\": %w", ErrCommandFormat)
	}
}

func (resp teamsResponder) Initial() Page {
	return Page{
		Offset: 0,
		Limit:  resp.pageLimit,
	}
}

func numberOption() *discordgo.ApplicationCommandOption {
	minNumber := 1.

	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "number",
		Description: "Number of the saved team",
		Required:    true,
		MinValue:    &minNumber,
	}
}

func (builder *Builder) teams(ctx context.Context) (Command, error) {
	resp := teamsResponder{
		pageLimit: builder.pageLimit,
		commands:  builder.commands,
		format:    builder.formatter,
	}

	return command[teamsOptions]{
		pager: resp,
		command: discordgo.ApplicationCommand{
			Name:        "teams",
			Description: "Manage saved teams.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List saved teams",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "load",
					Description: "Replace the current team with a saved one",
					Options: []*discordgo.ApplicationCommandOption{
						numberOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete a saved team",
					Options: []*discordgo.ApplicationCommandOption{
						numberOption(),
					},
				},
			},
		},
	}, nil
}
