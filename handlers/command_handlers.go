package handlers

import (
	"fmt"
	"log"

	"confession-bot/bot"
	"confession-bot/ledger"
	"confession-bot/models"
	"confession-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// HandlePanel handles the logic for the /panel command.
func HandlePanel(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.Auth.IsModerator(i.Member) {
		respondEphemeral(s, i, "❌ You need moderator permissions to post a panel.")
		return
	}

	var embed *discordgo.MessageEmbed
	var components []discordgo.MessageComponent
	switch i.ApplicationCommandData().Options[0].StringValue() {
	case "suggestion":
		embed = suggestionPanelEmbed()
		components = suggestionSubmitComponents()
	default:
		embed = confessionPanelEmbed()
		components = confessionComponents()
	}

	_, err := s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		log.Printf("Error posting panel in channel %s: %v", i.ChannelID, err)
		respondEphemeral(s, i, "❌ Could not post the panel here. Check my channel permissions.")
		return
	}
	respondEphemeral(s, i, "✅ Panel posted.")
}

// HandleSetChannel handles the logic for the /setchannel command.
func HandleSetChannel(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.Auth.IsModerator(i.Member) {
		respondEphemeral(s, i, "❌ You need moderator permissions to configure channels.")
		return
	}

	role := ledger.ChannelRole(i.ApplicationCommandData().Options[0].StringValue())
	if err := b.Ledger.SetGuildChannel(i.GuildID, role, i.ChannelID); err != nil {
		log.Printf("Error setting %s channel for guild %s: %v", role, i.GuildID, err)
		respondEphemeral(s, i, "❌ Could not save the channel configuration.")
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("✅ This channel is now the **%s** channel.", role))
}

// HandleStatus handles the logic for the /status command.
func HandleStatus(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	optionMap := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		optionMap[opt.Name] = opt
	}

	var id int64
	var status string
	if opt, ok := optionMap["id"]; ok {
		id = opt.IntValue()
	}
	if opt, ok := optionMap["status"]; ok {
		status = opt.StringValue()
	}

	applyStatusChange(b, s, i, id, models.SuggestionStatus(status))
}

// HandleRebuildMap handles the logic for the /rebuildmap command.
func HandleRebuildMap(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.Auth.IsModerator(i.Member) {
		respondEphemeral(s, i, "❌ You need moderator permissions to rebuild the index.")
		return
	}

	kind := ledger.EntityKind(i.ApplicationCommandData().Options[0].StringValue())
	rebuilt, err := b.Ledger.RebuildIndex(kind)
	if err != nil {
		log.Printf("Error rebuilding %s index: %v", kind, err)
		respondEphemeral(s, i, "❌ Index rebuild failed. Check the logs.")
		return
	}
	utils.Info("RebuildMap", "Rebuild", fmt.Sprintf("guild %s: reindexed %d %s records", i.GuildID, rebuilt, kind))
	respondEphemeral(s, i, fmt.Sprintf("✅ Rebuilt mapping for `%d` %ss.", rebuilt, kind))
}
