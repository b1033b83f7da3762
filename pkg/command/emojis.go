package command

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Emojis holds the custom emojis of the resource guild. A type is drawn as
// the pair named "<type>1" and "<type>2".
type Emojis map[string]*discordgo.Emoji

var ErrNoEmoji = errors.New("no matching emoji")

func (emojis Emojis) Emoji(name string) (string, error) {
	emoji1, ok := emojis[name+"1"]
	if !ok {
		return "", fmt.Errorf("could not find first emoji for resource %q: %w", name, ErrNoEmoji)
	}

	emoji2, ok := emojis[name+"2"]
	if !ok {
		return "", fmt.Errorf("could not find second emoji for resource %q: %w", name, ErrNoEmoji)
	}

	return fmt.Sprintf("<:%v:%v><:%v:%v>", emoji1.Name, emoji1.ID, emoji2.Name, emoji2.ID), nil
}

var ErrMissingResourceGuild = errors.New("resource guild not found")

// emojiCache reads the resource guild's emojis from the session state the
// first time they are available.
type emojiCache struct {
	guildID string

	mu     sync.Mutex
	emojis Emojis
}

func (c *emojiCache) get(sess *discordgo.Session) Emojis {
	if c.guildID == "" || sess == nil || sess.State == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.emojis == nil {
		guild, err := sess.State.Guild(c.guildID)
		if err != nil {
			log.Printf("could not load emojis: %v", fmt.Errorf("guild %q: %w", c.guildID, ErrMissingResourceGuild))
			return nil
		}

		emojis := make(Emojis, len(guild.Emojis))
		for _, emoji := range guild.Emojis {
			emojis[strings.ToLower(emoji.Name)] = emoji
		}
		c.emojis = emojis
	}

	return c.emojis
}
