package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/notjagan/teamdex/pkg/session"
)

type favoriteOptions struct {
	Toggle *struct {
		Slot int `option:"slot"`
	} `option:"toggle"`
	List *struct{} `option:"list"`
}

type favoriteResponder struct {
	pageLimit int
	commands  commands
	format    func(*discordgo.Session) formatter
}

func (resp favoriteResponder) toggle(
	ctx context.Context,
	user *session.Session,
	sess *discordgo.Session,
	slot int,
) (*discordgo.InteractionResponseData, error) {
	c, added, err := user.ToggleFavorite(ctx, slot-1)
	if errors.Is(err, session.ErrEmptySlot) {
		return ephemeral(fmt.Sprintf("Slot %d is empty.", slot)), nil
	} else if err != nil {
		return slotError(slot, err)
	}

	name := resp.format(sess).name(c.Name)
	content := fmt.Sprintf("Removed %s from favorites.", name)
	if added {
		content = fmt.Sprintf("Added %s to favorites.", name)
	}

	showButton, err := followUpButton(resp.commands, showTeamOptions(), discordgo.Button{
		Label: "Show team",
	})
	if err != nil {
		return nil, fmt.Errorf("could not create follow-up button for team: %w", err)
	}

	return &discordgo.InteractionResponseData{
		Content: content,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					showButton,
				},
			},
		},
	}, nil
}

func (resp favoriteResponder) list(
	user *session.Session,
	sess *discordgo.Session,
	p paginator[favoriteOptions],
) (*discordgo.InteractionResponseData, error) {
	favs := user.Favorites()
	if len(favs) == 0 {
		return ephemeral("You have no favorites yet. Use /favorite toggle to add one."), nil
	}

	f := resp.format(sess)
	page, hasNext := pageOf(favs, p.Page)
	fields := make([]*discordgo.MessageEmbedField, len(page))
	for i, c := range page {
		fields[i] = &discordgo.MessageEmbedField{
			Name:   f.name(c.Name),
			Value:  f.creatureSummary(c),
			Inline: true,
		}
	}

	buttons, err := p.pageButtons(hasNext, resp.commands)
	if err != nil {
		return nil, fmt.Errorf("failed to generate pagination buttons: %w", err)
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "Favorites",
				Description: fmt.Sprintf("%d favorite Pokemon", len(favs)),
				Fields:      fields,
			},
		},
		Components: pageComponents(buttons),
	}, nil
}

func (resp favoriteResponder) Paginate(
	ctx context.Context,
	user *session.Session,
	sess *discordgo.Session,
	interaction *discordgo.InteractionCreate,
	p paginator[favoriteOptions],
) (*discordgo.InteractionResponseData, error) {
	switch {
	case p.Options.Toggle != nil:
		return resp.toggle(ctx, user, sess, p.Options.Toggle.Slot)
	case p.Options.List != nil:
		return resp.list(user, sess, p)
	default:
		return nil, fmt.Errorf("unrecognized subcommand for command \"favorite\": %w", ErrCommandFormat)
	}
}

func (resp favoriteResponder) Initial() Page {
	return Page{
		Offset: 0,
		Limit:  resp.pageLimit,
	}
}

func (builder *Builder) favorite(ctx context.Context) (Command, error) {
	resp := favoriteResponder{
		pageLimit: builder.pageLimit,
		commands:  builder.commands,
		format:    builder.formatter,
	}

	return command[favoriteOptions]{
		pager: resp,
		command: discordgo.ApplicationCommand{
			Name:        "favorite",
			Description: "Keep track of favorite Pokemon.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "toggle",
					Description: "Add or remove the Pokemon in a team slot",
					Options: []*discordgo.ApplicationCommandOption{
						slotOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List favorite Pokemon",
				},
			},
		},
	}, nil
}
