package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/notjagan/teamdex/pkg/command"
	"github.com/notjagan/teamdex/pkg/config"
	"github.com/notjagan/teamdex/pkg/session"
)

type Bot struct {
	config   config.Config
	session  *discordgo.Session
	manager  *session.Manager
	commands map[string]command.Command
}

func New(ctx context.Context, cfg config.Config, mgr *session.Manager) (*Bot, error) {
	cmds, err := command.All(ctx, mgr.Catalog(), cfg)
	if err != nil {
		return nil, fmt.Errorf("error while getting all commands for bot: %w", err)
	}

	return &Bot{
		config:   cfg,
		manager:  mgr,
		commands: cmds,
	}, nil
}

func (bot *Bot) Close() {
	log.Println("Shutting down.")
	err := bot.manager.Close()
	if err != nil {
		log.Printf("error while closing session storage: %v", err)
	}
	err = bot.session.Close()
	if err != nil {
		log.Printf("error while closing discord session: %v", err)
	}
}

var ErrNoMatchingCommand = errors.New("no matching command")

func (bot *Bot) command(name string) (command.Command, error) {
	cmd, ok := bot.commands[name]
	if !ok {
		return nil, fmt.Errorf("could not find command %q: %w", name, ErrNoMatchingCommand)
	}

	return cmd, nil
}

// owner is the user a team belongs to; in guilds the user is only set on the
// member.
func owner(interaction *discordgo.InteractionCreate) (*discordgo.User, bool) {
	if interaction.Member != nil && interaction.Member.User != nil {
		return interaction.Member.User, true
	}
	if interaction.User != nil {
		return interaction.User, true
	}

	return nil, false
}

func (bot *Bot) interact(ctx context.Context, sess *discordgo.Session, interaction *discordgo.InteractionCreate) error {
	user, ok := owner(interaction)
	if !ok {
		return fmt.Errorf("interaction %q has no user", interaction.ID)
	}
	team := bot.manager.Get(ctx, user.ID)

	switch interaction.Type {
	case discordgo.InteractionApplicationCommand:
		name := interaction.ApplicationCommandData().Name
		cmd, err := bot.command(name)
		if err != nil {
			return err
		}

		log.Printf("COMMAND %q by USER %q", name, user.Username)
		return cmd.Handle(ctx, team, sess, interaction)

	case discordgo.InteractionApplicationCommandAutocomplete:
		cmd, err := bot.command(interaction.ApplicationCommandData().Name)
		if err != nil {
			return err
		}

		return cmd.Autocomplete(ctx, team, sess, interaction)

	case discordgo.InteractionMessageComponent:
		reader := strings.NewReader(interaction.MessageComponentData().CustomID)
		name, err := command.ButtonCommand(reader)
		if err != nil {
			return fmt.Errorf("could not read button: %w", err)
		}
		cmd, err := bot.command(name)
		if err != nil {
			return err
		}

		log.Printf("BUTTON %q by USER %q", name, user.Username)
		return cmd.Button(ctx, team, sess, interaction, reader)

	default:
		return fmt.Errorf("unsupported interaction type %v: %w", interaction.Type, command.ErrUnrecognizedInteraction)
	}
}

func (bot *Bot) initialize(ctx context.Context) error {
	sess, err := discordgo.New("Bot " + bot.config.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed to instantiate discord bot: %w", err)
	}
	sess.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildEmojis
	bot.session = sess

	bot.session.AddHandler(func(sess *discordgo.Session, interaction *discordgo.InteractionCreate) {
		err := bot.interact(ctx, sess, interaction)
		if err != nil {
			log.Printf("error while handling interaction: %v", err)
		}
	})

	err = bot.session.Open()
	if err != nil {
		return fmt.Errorf("failed to start discord session: %w", err)
	}

	err = bot.registerCommands(ctx)
	if err != nil {
		return fmt.Errorf("error while registering commands: %w", err)
	}

	return nil
}

func (bot *Bot) Run(ctx context.Context) error {
	err := bot.initialize(ctx)
	if err != nil {
		return fmt.Errorf("error while initializing bot: %w", err)
	}

	log.Println("Hosting team builder bot.")
	defer bot.Close()
	<-ctx.Done()

	return nil
}

func (bot *Bot) register(ctx context.Context, cmd command.Command) error {
	_, err := bot.session.ApplicationCommandCreate(bot.session.State.User.ID, "", cmd.ApplicationCommand(), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to create command %q: %w", cmd.Name(), err)
	}

	return nil
}

func (bot *Bot) registerCommands(ctx context.Context) error {
	for _, cmd := range bot.commands {
		err := bot.register(ctx, cmd)
		if err != nil {
			return fmt.Errorf("failed to register command %q: %w", cmd.Name(), err)
		}
	}

	return nil
}
