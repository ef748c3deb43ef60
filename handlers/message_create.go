package handlers

import (
	"log"
	"strings"

	"confession-bot/bot"
	"confession-bot/models"

	"github.com/bwmarrin/discordgo"
)

// MessageCreate watches for image uploads and correlates them with a
// pending attach request. A reply to the suggestion message is used as an
// explicit reference when present; otherwise the poster's most recent
// request in the channel wins.
func MessageCreate(b *bot.Bot) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		// Ignore all messages created by the bot itself
		if m.Author.ID == s.State.User.ID {
			return
		}
		if m.GuildID == "" {
			return
		}

		imageURL := firstImageURL(m.Attachments)
		if imageURL == "" {
			return
		}

		var explicitRef string
		if m.MessageReference != nil {
			explicitRef = m.MessageReference.MessageID
		}

		rec, matched, err := b.Ledger.AttachImage(m.GuildID, m.ChannelID, m.Author.ID, imageURL, explicitRef)
		if err != nil {
			log.Printf("Error attaching image in channel %s: %v", m.ChannelID, err)
			return
		}
		if !matched {
			return
		}

		editSuggestionMessage(s, rec)
		audit(b, models.AuditEntry{
			GuildID:  m.GuildID,
			Kind:     "suggestion",
			EntityID: rec.ID,
			Action:   "image",
			UserID:   m.Author.ID,
			Username: m.Author.String(),
			Detail:   imageURL,
		})

		if err := s.MessageReactionAdd(m.ChannelID, m.ID, "✅"); err != nil {
			log.Printf("Error acknowledging image upload: %v", err)
		}
	}
}

// firstImageURL returns the URL of the first image attachment, if any.
func firstImageURL(attachments []*discordgo.MessageAttachment) string {
	for _, a := range attachments {
		if strings.HasPrefix(a.ContentType, "image/") {
			return a.URL
		}
	}
	return ""
}
