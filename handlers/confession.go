package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"confession-bot/bot"
	"confession-bot/ledger"
	"confession-bot/models"

	"github.com/bwmarrin/discordgo"
)

// OpenConfessionModal shows the confession text modal.
func OpenConfessionModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "confess_modal",
			Title:    "Submit an Anonymous Confession",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "confession",
							Label:       "Your Confession",
							Style:       discordgo.TextInputParagraph,
							Placeholder: "Type your confession here...",
							Required:    true,
							MaxLength:   1200,
						},
					},
				},
			},
		},
	})
	if err != nil {
		log.Printf("Error opening confession modal: %v", err)
	}
}

// HandleConfessionSubmit runs the two-phase confession creation: reserve the
// ID and record, post the embed without holding the ledger lock, then commit
// the posted message ID back into the index. A failed post rolls the record
// back so no un-indexed confession survives.
func HandleConfessionSubmit(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	channelID, err := b.Ledger.ConfessionChannel(i.GuildID)
	if err != nil {
		respondEphemeral(s, i, "❌ No confession channel configured. Ask a moderator to run /setchannel.")
		return
	}

	user := i.Member.User
	accountCreated, _ := discordgo.SnowflakeTimestamp(user.ID)
	text := modalInput(i.ModalSubmitData(), 0)

	rec, err := b.Ledger.BeginConfession(i.GuildID, user.ID, user.String(), accountCreated, text)
	if err != nil {
		if errors.Is(err, ledger.ErrEmptyInput) {
			respondEphemeral(s, i, "❌ Empty confession.")
			return
		}
		log.Printf("Error reserving confession: %v", err)
		respondEphemeral(s, i, "❌ Could not save your confession. Please try again.")
		return
	}

	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{confessionEmbed(rec)},
		Components: confessionComponents(),
	})
	if err != nil {
		log.Printf("Error posting confession #%d: %v", rec.ID, err)
		if abortErr := b.Ledger.AbortConfession(rec.ID); abortErr != nil {
			log.Printf("Error rolling back confession #%d: %v", rec.ID, abortErr)
		}
		respondEphemeral(s, i, "❌ Could not post the confession. Check my channel permissions.")
		return
	}

	rec, err = b.Ledger.CommitConfession(rec.ID, msg.ID, channelID, jumpURL(i.GuildID, channelID, msg.ID))
	if err != nil {
		log.Printf("Error committing confession #%d: %v", rec.ID, err)
		respondEphemeral(s, i, "⚠️ Confession posted, but saving it failed. A moderator may need to run /rebuildmap.")
		return
	}

	audit(b, models.AuditEntry{
		GuildID:  i.GuildID,
		Kind:     "confession",
		EntityID: rec.ID,
		Action:   "submit",
		UserID:   user.ID,
		Username: user.String(),
		Content:  rec.Content,
		Detail:   rec.JumpURL,
	})
	sendToLogChannel(b, s, i.GuildID, confessionLogEmbed(rec))

	respondEphemeral(s, i, "✅ Confession submitted anonymously.")
}

// OpenReplyModal resolves which confession the pressed message belongs to
// and shows the reply modal. Resolution tries the message index first and
// falls back to the number in the embed title.
func OpenReplyModal(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	cid, ok := b.Ledger.ResolveConfession(i.Message.ID)
	if !ok {
		cid, ok = parseEntityID(i.Message)
	}
	if !ok {
		respondEphemeral(s, i, "❌ I can't detect which confession this is.")
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: fmt.Sprintf("reply_modal:%d", cid),
			Title:    "Reply Anonymously",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "reply",
							Label:       "Your Reply",
							Style:       discordgo.TextInputParagraph,
							Placeholder: "Type your reply here...",
							Required:    true,
							MaxLength:   800,
						},
					},
				},
			},
		},
	})
	if err != nil {
		log.Printf("Error opening reply modal: %v", err)
	}
}

// HandleReplySubmit records the reply, then posts it into the confession's
// reply thread, creating the thread on first use. When posting fails the
// reply is still recorded and the user is told it was saved but not posted.
func HandleReplySubmit(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	cid, err := strconv.ParseInt(strings.TrimPrefix(data.CustomID, "reply_modal:"), 10, 64)
	if err != nil {
		respondEphemeral(s, i, "❌ I can't detect which confession this is.")
		return
	}

	user := i.Member.User
	rec, err := b.Ledger.AddReply(cid, user.ID, user.String(), modalInput(data, 0))
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrEmptyInput):
			respondEphemeral(s, i, "❌ Empty reply.")
		case errors.Is(err, ledger.ErrNotFound):
			respondEphemeral(s, i, "❌ Confession not found in data.")
		default:
			log.Printf("Error saving reply to confession #%d: %v", cid, err)
			respondEphemeral(s, i, "❌ Could not save your reply. Please try again.")
		}
		return
	}
	reply := rec.Replies[len(rec.Replies)-1]

	posted := postReply(b, s, rec, reply.Content)

	audit(b, models.AuditEntry{
		GuildID:  rec.GuildID,
		Kind:     "confession",
		EntityID: rec.ID,
		Action:   "reply",
		UserID:   user.ID,
		Username: user.String(),
		Content:  reply.Content,
		Detail:   rec.JumpURL,
	})
	sendToLogChannel(b, s, rec.GuildID, replyLogEmbed(rec, reply))

	if posted {
		respondEphemeral(s, i, "💬 Reply sent anonymously.")
	} else {
		respondEphemeral(s, i, "✅ Reply saved, but I couldn't post it (missing thread/channel permissions).")
	}
}

// postReply delivers the reply embed to the confession's thread, creating
// the thread lazily, and falls back to the confession channel.
func postReply(b *bot.Bot, s *discordgo.Session, rec *models.Confession, text string) bool {
	embed := replyEmbed(rec.ID, text)

	threadID := rec.ThreadID
	if threadID == "" {
		thread, err := s.MessageThreadStartComplex(rec.ChannelID, rec.MessageID, &discordgo.ThreadStart{
			Name:                fmt.Sprintf("Replies #%d", rec.ID),
			AutoArchiveDuration: 1440,
		})
		if err != nil {
			log.Printf("Error creating reply thread for confession #%d: %v", rec.ID, err)
		} else {
			threadID = thread.ID
			if err := b.Ledger.SetConfessionThread(rec.ID, threadID); err != nil {
				log.Printf("Error saving thread for confession #%d: %v", rec.ID, err)
			}
		}
	}

	if threadID != "" {
		_, err := s.ChannelMessageSendEmbed(threadID, embed)
		if err == nil {
			return true
		}
		log.Printf("Error posting reply in thread %s: %v", threadID, err)
	}

	// Fallback: post in the confession channel itself.
	if _, err := s.ChannelMessageSendEmbed(rec.ChannelID, embed); err != nil {
		log.Printf("Error posting reply in channel %s: %v", rec.ChannelID, err)
		return false
	}
	return true
}
