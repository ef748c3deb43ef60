package handlers

import (
	"errors"
	"fmt"
	"log"

	"confession-bot/bot"
	"confession-bot/ledger"
	"confession-bot/models"

	"github.com/bwmarrin/discordgo"
)

// OpenSuggestionModal shows the suggestion title/body modal.
func OpenSuggestionModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "suggest_modal",
			Title:    "Make a Suggestion",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "title",
							Label:       "Title",
							Style:       discordgo.TextInputShort,
							Placeholder: "A short summary...",
							Required:    true,
							MaxLength:   100,
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "suggestion",
							Label:       "Your Suggestion",
							Style:       discordgo.TextInputParagraph,
							Placeholder: "Describe your suggestion here...",
							Required:    true,
							MaxLength:   1200,
						},
					},
				},
			},
		},
	})
	if err != nil {
		log.Printf("Error opening suggestion modal: %v", err)
	}
}

// HandleSuggestionSubmit mirrors the confession flow: reserve, post, commit,
// roll back on a failed post.
func HandleSuggestionSubmit(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	channelID, err := b.Ledger.SuggestionChannel(i.GuildID)
	if err != nil {
		respondEphemeral(s, i, "❌ No suggestion channel configured. Ask a moderator to run /setchannel.")
		return
	}

	user := i.Member.User
	data := i.ModalSubmitData()

	rec, err := b.Ledger.BeginSuggestion(i.GuildID, user.ID, user.String(), modalInput(data, 0), modalInput(data, 1))
	if err != nil {
		if errors.Is(err, ledger.ErrEmptyInput) {
			respondEphemeral(s, i, "❌ Empty suggestion.")
			return
		}
		log.Printf("Error reserving suggestion: %v", err)
		respondEphemeral(s, i, "❌ Could not save your suggestion. Please try again.")
		return
	}

	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{suggestionEmbed(rec)},
		Components: suggestionComponents(),
	})
	if err != nil {
		log.Printf("Error posting suggestion #%d: %v", rec.ID, err)
		if abortErr := b.Ledger.AbortSuggestion(rec.ID); abortErr != nil {
			log.Printf("Error rolling back suggestion #%d: %v", rec.ID, abortErr)
		}
		respondEphemeral(s, i, "❌ Could not post the suggestion. Check my channel permissions.")
		return
	}

	rec, err = b.Ledger.CommitSuggestion(rec.ID, msg.ID, channelID, jumpURL(i.GuildID, channelID, msg.ID))
	if err != nil {
		log.Printf("Error committing suggestion #%d: %v", rec.ID, err)
		respondEphemeral(s, i, "⚠️ Suggestion posted, but saving it failed. A moderator may need to run /rebuildmap.")
		return
	}

	audit(b, models.AuditEntry{
		GuildID:  i.GuildID,
		Kind:     "suggestion",
		EntityID: rec.ID,
		Action:   "submit",
		UserID:   user.ID,
		Username: user.String(),
		Content:  rec.Title + "\n" + rec.Content,
		Detail:   rec.JumpURL,
	})
	sendToLogChannel(b, s, i.GuildID, suggestionLogEmbed(rec))

	respondEphemeral(s, i, "✅ Suggestion submitted.")
}

// resolveSuggestion finds the suggestion behind a component interaction's
// message, index first, embed title as fallback.
func resolveSuggestion(b *bot.Bot, i *discordgo.InteractionCreate) (int64, bool) {
	if id, ok := b.Ledger.ResolveSuggestion(i.Message.ID); ok {
		return id, true
	}
	return parseEntityID(i.Message)
}

// HandleVote toggles the caller's vote and refreshes the tallies shown on
// the suggestion message.
func HandleVote(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, up bool) {
	id, ok := resolveSuggestion(b, i)
	if !ok {
		respondEphemeral(s, i, "❌ I can't detect which suggestion this is.")
		return
	}

	dir := ledger.VoteDown
	if up {
		dir = ledger.VoteUp
	}
	if _, err := b.Ledger.ToggleVote(id, i.Member.User.ID, dir); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			respondEphemeral(s, i, "❌ Suggestion not found in data.")
			return
		}
		log.Printf("Error toggling vote on suggestion #%d: %v", id, err)
		respondEphemeral(s, i, "❌ Could not record your vote. Please try again.")
		return
	}

	updateSuggestionMessage(b, s, i, id)
}

// HandleImageButton toggles the image-attachment request: first press arms
// a 30-minute window in which the requester's next image upload in the
// suggestion channel is attached; second press cancels it.
func HandleImageButton(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	id, ok := resolveSuggestion(b, i)
	if !ok {
		respondEphemeral(s, i, "❌ I can't detect which suggestion this is.")
		return
	}

	user := i.Member.User
	isMod := b.Auth.IsModerator(i.Member)

	if b.Ledger.HasPendingImage(id) {
		err := b.Ledger.CancelImage(id, user.ID, isMod)
		switch {
		case errors.Is(err, ledger.ErrForbidden):
			respondEphemeral(s, i, "❌ Only the suggestion's author or a moderator can do that.")
		case err != nil:
			respondEphemeral(s, i, "❌ Suggestion not found in data.")
		default:
			respondEphemeral(s, i, "✅ Image request cancelled.")
		}
		return
	}

	err := b.Ledger.RequestImage(id, user.ID, isMod)
	switch {
	case errors.Is(err, ledger.ErrForbidden):
		respondEphemeral(s, i, "❌ Only the suggestion's author or a moderator can attach an image.")
	case err != nil:
		respondEphemeral(s, i, "❌ Suggestion not found in data.")
	default:
		respondEphemeral(s, i, "🖼️ Post your image in this channel within 30 minutes and I'll attach it. "+
			"Replying to the suggestion message works too. Press the button again to cancel.")
	}
}

// HandleStatusSelect applies a status chosen from the message's select menu.
func HandleStatusSelect(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	id, ok := resolveSuggestion(b, i)
	if !ok {
		respondEphemeral(s, i, "❌ I can't detect which suggestion this is.")
		return
	}

	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return
	}
	applyStatusChange(b, s, i, id, models.SuggestionStatus(values[0]))
}

// applyStatusChange is shared by the /status command and the select menu.
func applyStatusChange(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, id int64, status models.SuggestionStatus) {
	user := i.Member.User
	rec, err := b.Ledger.SetStatus(id, status, b.Auth.IsModerator(i.Member))
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			respondEphemeral(s, i, "❌ Suggestion not found in data.")
		case errors.Is(err, ledger.ErrForbidden):
			respondEphemeral(s, i, "❌ Only moderators can change a suggestion's status.")
		case errors.Is(err, ledger.ErrInvalidStatus):
			respondEphemeral(s, i, "❌ Unknown status.")
		default:
			log.Printf("Error setting status of suggestion #%d: %v", id, err)
			respondEphemeral(s, i, "❌ Could not save the status change. Please try again.")
		}
		return
	}

	editSuggestionMessage(s, rec)
	audit(b, models.AuditEntry{
		GuildID:  rec.GuildID,
		Kind:     "suggestion",
		EntityID: rec.ID,
		Action:   "status",
		UserID:   user.ID,
		Username: user.String(),
		Detail:   string(status),
	})
	respondEphemeral(s, i, fmt.Sprintf("✅ Suggestion #%d is now **%s**.", rec.ID, rec.Status))
}

// updateSuggestionMessage answers a component interaction by replacing the
// suggestion message with its refreshed embed.
func updateSuggestionMessage(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, id int64) {
	rec, ok := b.Ledger.Suggestion(id)
	if !ok {
		respondEphemeral(s, i, "❌ Suggestion not found in data.")
		return
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{suggestionEmbed(rec)},
			Components: suggestionComponents(),
		},
	})
	if err != nil {
		log.Printf("Error updating suggestion message #%d: %v", id, err)
	}
}

// editSuggestionMessage rewrites the posted suggestion message out-of-band,
// used when the change did not originate from a component on that message.
func editSuggestionMessage(s *discordgo.Session, rec *models.Suggestion) {
	if rec.MessageID == "" {
		return
	}
	embeds := []*discordgo.MessageEmbed{suggestionEmbed(rec)}
	components := suggestionComponents()
	_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    rec.ChannelID,
		ID:         rec.MessageID,
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		log.Printf("Error editing suggestion message #%d: %v", rec.ID, err)
	}
}
