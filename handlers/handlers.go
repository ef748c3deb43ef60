package handlers

import (
	"fmt"
	"log"

	"confession-bot/bot"
	"confession-bot/database"
	"confession-bot/models"
	"confession-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// Register all handlers to the bot.
func Register(b *bot.Bot) {
	// Register event handlers
	b.Session.AddHandler(InteractionCreate(b))
	b.Session.AddHandler(MessageCreate(b))

	// Add a ready handler to log when the bot is connected.
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})
}

// respondEphemeral answers an interaction with a message only the caller
// can see.
func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error responding to interaction: %v", err)
	}
}

// audit records one action in the private audit log. Audit failures are
// logged but never block the user-facing flow.
func audit(b *bot.Bot, entry models.AuditEntry) {
	if b.Audit == nil {
		return
	}
	if err := database.InsertAuditEntry(b.Audit, entry); err != nil {
		utils.Error("Audit", "Insert", err.Error())
	}
}

// sendToLogChannel posts an audit embed to the guild's log channel, if one
// is configured.
func sendToLogChannel(b *bot.Bot, s *discordgo.Session, guildID string, embed *discordgo.MessageEmbed) {
	cfg := b.Ledger.GuildConfig(guildID)
	if cfg.LogChannelID == "" {
		return
	}
	if _, err := s.ChannelMessageSendEmbed(cfg.LogChannelID, embed); err != nil {
		utils.Warn("LogChannel", "Send", fmt.Sprintf("guild %s channel %s: %v", guildID, cfg.LogChannelID, err))
	}
}
