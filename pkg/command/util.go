package command

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// pageOf returns the items on the page and whether any follow it.
func pageOf[E any](items []E, page Page) ([]E, bool) {
	start := min(max(page.Offset, 0), len(items))
	end := min(start+max(page.Limit, 1), len(items))

	return items[start:end], end < len(items)
}

func (p paginator[T]) pageButtons(hasNext bool, cmds commands) (*discordgo.ActionsRow, error) {
	cmd, err := optionCommand[T](cmds)
	if err != nil {
		return nil, fmt.Errorf("could not find command in registry: %w", err)
	}

	if p.Page.Offset == 0 && !hasNext {
		return nil, nil
	}

	phome := paginator[T]{
		Options: p.Options,
		Page: Page{
			Limit:  p.Page.Limit,
			Offset: 0,
		},
	}
	homeID, err := customID(phome, cmd.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to create home button: %w", err)
	}
	homeButton := discordgo.Button{
		Style:    discordgo.PrimaryButton,
		Label:    "⏮",
		CustomID: homeID,
		Disabled: p.Page.Offset == 0,
	}

	prevOffset := p.Page.Offset - p.Page.Limit
	pprev := paginator[T]{
		Options: p.Options,
		Page: Page{
			Limit:  p.Page.Limit,
			Offset: max(prevOffset, 0),
		},
	}
	prevID, err := customID(pprev, cmd.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to create previous button: %w", err)
	}
	prevButton := discordgo.Button{
		Style:    discordgo.PrimaryButton,
		Label:    "⏴",
		CustomID: prevID,
		Disabled: prevOffset < 0,
	}

	pnext := paginator[T]{
		Options: p.Options,
		Page: Page{
			Limit:  p.Page.Limit,
			Offset: p.Page.Offset + p.Page.Limit,
		},
	}
	nextID, err := customID(pnext, cmd.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to create next button: %w", err)
	}
	nextButton := discordgo.Button{
		Style:    discordgo.PrimaryButton,
		Label:    "⏵",
		CustomID: nextID,
		Disabled: !hasNext,
	}

	return &discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			homeButton,
			prevButton,
			nextButton,
		},
	}, nil
}

func pageComponents(buttons *discordgo.ActionsRow) []discordgo.MessageComponent {
	if buttons == nil {
		return []discordgo.MessageComponent{}
	}

	return []discordgo.MessageComponent{buttons}
}
