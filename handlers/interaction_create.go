package handlers

import (
	"strings"

	"confession-bot/bot"

	"github.com/bwmarrin/discordgo"
)

// InteractionCreate handles slash command, button, select menu and modal
// interactions.
func InteractionCreate(b *bot.Bot) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		// Everything the bot does is guild-scoped.
		if i.GuildID == "" || i.Member == nil {
			return
		}
		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			commandDispatcher(b, s, i)
		case discordgo.InteractionMessageComponent:
			componentDispatcher(b, s, i)
		case discordgo.InteractionModalSubmit:
			modalDispatcher(b, s, i)
		}
	}
}

func commandDispatcher(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "panel":
		HandlePanel(b, s, i)
	case "setchannel":
		HandleSetChannel(b, s, i)
	case "status":
		HandleStatus(b, s, i)
	case "rebuildmap":
		HandleRebuildMap(b, s, i)
	}
}

func componentDispatcher(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.MessageComponentData().CustomID {
	case "confess:submit":
		OpenConfessionModal(s, i)
	case "confess:reply":
		OpenReplyModal(b, s, i)
	case "suggest:submit":
		OpenSuggestionModal(s, i)
	case "suggest:upvote":
		HandleVote(b, s, i, true)
	case "suggest:downvote":
		HandleVote(b, s, i, false)
	case "suggest:image":
		HandleImageButton(b, s, i)
	case "suggest:status":
		HandleStatusSelect(b, s, i)
	}
}

func modalDispatcher(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.ModalSubmitData().CustomID
	switch {
	case customID == "confess_modal":
		HandleConfessionSubmit(b, s, i)
	case strings.HasPrefix(customID, "reply_modal:"):
		HandleReplySubmit(b, s, i)
	case customID == "suggest_modal":
		HandleSuggestionSubmit(b, s, i)
	}
}

// modalInput extracts the value of the nth text input of a submitted modal.
func modalInput(data discordgo.ModalSubmitInteractionData, n int) string {
	if n >= len(data.Components) {
		return ""
	}
	row, ok := data.Components[n].(*discordgo.ActionsRow)
	if !ok || len(row.Components) == 0 {
		return ""
	}
	input, ok := row.Components[0].(*discordgo.TextInput)
	if !ok {
		return ""
	}
	return input.Value
}
