package handlers

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"

	"confession-bot/models"

	"github.com/bwmarrin/discordgo"
)

const (
	colorConfession = 0x5865F2
	colorReply      = 0x99AAB5
	colorPanel      = 0x57F287
	colorLog        = 0xED4245
	colorPending    = 0x95A5A6
	colorApproved   = 0x57F287
	colorDenied     = 0xED4245
	colorYellow     = 0xFEE75C
)

// entityIDPattern extracts the "#N" number from an embed title. It is the
// fallback when the message index has no entry for a message, e.g. after
// manual snapshot edits that were not followed by /rebuildmap.
var entityIDPattern = regexp.MustCompile(`#(\d+)`)

// parseEntityID pulls the entity number out of the first embed's title.
func parseEntityID(msg *discordgo.Message) (int64, bool) {
	if msg == nil || len(msg.Embeds) == 0 {
		return 0, false
	}
	m := entityIDPattern.FindStringSubmatch(msg.Embeds[0].Title)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func confessionPanelEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "💌 Anonymous Confessions",
		Description: "Click **Submit a confession!** to post anonymously.\n" +
			"Use **Reply** under a confession to reply anonymously.",
		Color: colorPanel,
	}
}

func suggestionPanelEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "💡 Suggestions",
		Description: "Click **Make a suggestion!** to submit one.\n" +
			"Vote with the buttons under each suggestion.",
		Color: colorPanel,
	}
}

func confessionEmbed(rec *models.Confession) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Anonymous Confession (#%d)", rec.ID),
		Description: fmt.Sprintf("“%s”", rec.Content),
		Color:       colorConfession,
		Timestamp:   rec.CreatedAt.Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Use the buttons below to submit or reply anonymously.",
		},
	}
}

func confessionComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Submit a confession!",
					Emoji:    &discordgo.ComponentEmoji{Name: "📝"},
					Style:    discordgo.PrimaryButton,
					CustomID: "confess:submit",
				},
				discordgo.Button{
					Label:    "Reply",
					Emoji:    &discordgo.ComponentEmoji{Name: "💬"},
					Style:    discordgo.SecondaryButton,
					CustomID: "confess:reply",
				},
			},
		},
	}
}

func replyEmbed(confessionID int64, text string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Anonymous Reply → Confession #%d", confessionID),
		Description: fmt.Sprintf("“%s”", text),
		Color:       colorReply,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

func statusColor(status models.SuggestionStatus) int {
	switch status {
	case models.StatusApproved:
		return colorApproved
	case models.StatusDenied:
		return colorDenied
	case models.StatusImplemented:
		return colorYellow
	default:
		return colorPending
	}
}

func suggestionEmbed(rec *models.Suggestion) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Suggestion #%d: %s", rec.ID, rec.Title),
		Description: rec.Content,
		Color:       statusColor(rec.Status),
		Timestamp:   rec.CreatedAt.Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Status",
				Value:  string(rec.Status),
				Inline: true,
			},
			{
				Name:   "Votes",
				Value:  fmt.Sprintf("👍 %d  |  👎 %d", len(rec.Upvotes), len(rec.Downvotes)),
				Inline: true,
			},
		},
	}
	if rec.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: rec.ImageURL}
	}
	return embed
}

func suggestionComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Upvote",
					Emoji:    &discordgo.ComponentEmoji{Name: "👍"},
					Style:    discordgo.SecondaryButton,
					CustomID: "suggest:upvote",
				},
				discordgo.Button{
					Label:    "Downvote",
					Emoji:    &discordgo.ComponentEmoji{Name: "👎"},
					Style:    discordgo.SecondaryButton,
					CustomID: "suggest:downvote",
				},
				discordgo.Button{
					Label:    "Attach image",
					Emoji:    &discordgo.ComponentEmoji{Name: "🖼️"},
					Style:    discordgo.SecondaryButton,
					CustomID: "suggest:image",
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    "suggest:status",
					Placeholder: "Set status (moderators)",
					Options: []discordgo.SelectMenuOption{
						{Label: "Pending", Value: "pending"},
						{Label: "Approved", Value: "approved"},
						{Label: "Denied", Value: "denied"},
						{Label: "Implemented", Value: "implemented"},
					},
				},
			},
		},
	}
}

func suggestionSubmitComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Make a suggestion!",
					Emoji:    &discordgo.ComponentEmoji{Name: "💡"},
					Style:    discordgo.PrimaryButton,
					CustomID: "suggest:submit",
				},
			},
		},
	}
}

func confessionLogEmbed(rec *models.Confession) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("🔒 Confession #%d — Log", rec.ID),
		Color:     colorLog,
		Timestamp: rec.CreatedAt.Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "User",
				Value: fmt.Sprintf("%s (`%s`)", rec.Username, rec.UserID),
			},
			{
				Name:   "Account Created",
				Value:  rec.AccountCreated.Format("2006-01-02"),
				Inline: true,
			},
			{
				Name:  "Confession",
				Value: truncate(rec.Content, 1024),
			},
			{
				Name:  "Message Link",
				Value: fmt.Sprintf("[Jump to confession](%s)", rec.JumpURL),
			},
		},
	}
}

func replyLogEmbed(rec *models.Confession, reply models.Reply) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("🔒 Reply to Confession #%d — Log", rec.ID),
		Color:     colorYellow,
		Timestamp: reply.CreatedAt.Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "User",
				Value: fmt.Sprintf("%s (`%s`)", reply.Username, reply.UserID),
			},
			{
				Name:  "Reply",
				Value: truncate(reply.Content, 1024),
			},
			{
				Name:  "Confession Link",
				Value: fmt.Sprintf("[Jump](%s)", rec.JumpURL),
			},
		},
	}
}

func suggestionLogEmbed(rec *models.Suggestion) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("🔒 Suggestion #%d — Log", rec.ID),
		Color:     colorLog,
		Timestamp: rec.CreatedAt.Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "User",
				Value: fmt.Sprintf("%s (`%s`)", rec.Username, rec.UserID),
			},
			{
				Name:  "Title",
				Value: truncate(rec.Title, 256),
			},
			{
				Name:  "Suggestion",
				Value: truncate(rec.Content, 1024),
			},
			{
				Name:  "Message Link",
				Value: fmt.Sprintf("[Jump to suggestion](%s)", rec.JumpURL),
			},
		},
	}
}

// truncate cuts s to at most max bytes without splitting a UTF-8 sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func jumpURL(guildID, channelID, messageID string) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildID, channelID, messageID)
}
