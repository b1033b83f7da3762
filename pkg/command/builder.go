package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"

	"github.com/notjagan/teamdex/pkg/catalog"
	"github.com/notjagan/teamdex/pkg/config"
)

type commandFunc func(*Builder, context.Context) (Command, error)

type Builder struct {
	catalog *catalog.Catalog

	funcs             []commandFunc
	commands          commands
	emojis            *emojiCache
	language          language.Tag
	autocompleteLimit int
	pageLimit         int
}

func NewBuilder(cat *catalog.Catalog, cfg config.Config) *Builder {
	return &Builder{
		catalog: cat,
		funcs: []commandFunc{
			(*Builder).team,
			(*Builder).teams,
			(*Builder).favorite,
		},
		commands:          make(commands),
		emojis:            &emojiCache{guildID: cfg.Discord.ResourceGuildID},
		language:          cfg.Language(),
		autocompleteLimit: cfg.Commands.AutocompleteLimit,
		pageLimit:         max(cfg.Commands.PageLimit, 1),
	}
}

var ErrCommandFormat = errors.New("invalid command format")

func (builder *Builder) formatter(sess *discordgo.Session) formatter {
	return formatter{
		language: builder.language,
		emojis:   builder.emojis.get(sess),
	}
}

func (builder *Builder) all(ctx context.Context) (map[string]Command, error) {
	for _, f := range builder.funcs {
		cmd, err := f(builder, ctx)
		if err != nil {
			return nil, fmt.Errorf("error while creating command: %w", err)
		}
		builder.commands[cmd.Name()] = cmd
	}

	return builder.commands, nil
}

func All(ctx context.Context, cat *catalog.Catalog, cfg config.Config) (map[string]Command, error) {
	return NewBuilder(cat, cfg).all(ctx)
}
