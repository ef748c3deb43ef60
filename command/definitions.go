package command

import "github.com/bwmarrin/discordgo"

// PanelCommand defines the structure for the /panel command.
type PanelCommand struct{}

// Definition returns the application command definition.
func (c *PanelCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "panel",
		Description: "Post the submission panel in this channel",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "kind",
				Description: "Which panel to post",
				Type:        discordgo.ApplicationCommandOptionString,
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{
						Name:  "Confessions",
						Value: "confession",
					},
					{
						Name:  "Suggestions",
						Value: "suggestion",
					},
				},
			},
		},
	}
}

// SetChannelCommand defines the structure for the /setchannel command.
type SetChannelCommand struct{}

// Definition returns the application command definition.
func (c *SetChannelCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "setchannel",
		Description: "Use the current channel for a bot role",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "role",
				Description: "What this channel should be used for",
				Type:        discordgo.ApplicationCommandOptionString,
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{
						Name:  "Confession channel",
						Value: "confession",
					},
					{
						Name:  "Suggestion channel",
						Value: "suggestion",
					},
					{
						Name:  "Log channel",
						Value: "log",
					},
				},
			},
		},
	}
}

// StatusCommand defines the structure for the /status command.
type StatusCommand struct{}

// Definition returns the application command definition.
func (c *StatusCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "status",
		Description: "Change a suggestion's status (moderators only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "id",
				Description: "The suggestion number",
				Type:        discordgo.ApplicationCommandOptionInteger,
				Required:    true,
			},
			{
				Name:        "status",
				Description: "The new status",
				Type:        discordgo.ApplicationCommandOptionString,
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{
						Name:  "Pending",
						Value: "pending",
					},
					{
						Name:  "Approved",
						Value: "approved",
					},
					{
						Name:  "Denied",
						Value: "denied",
					},
					{
						Name:  "Implemented",
						Value: "implemented",
					},
				},
			},
		},
	}
}

// RebuildMapCommand defines the structure for the /rebuildmap command.
type RebuildMapCommand struct{}

// Definition returns the application command definition.
func (c *RebuildMapCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "rebuildmap",
		Description: "Rebuild the message index after manual data edits",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "kind",
				Description: "Which index to rebuild",
				Type:        discordgo.ApplicationCommandOptionString,
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{
						Name:  "Confessions",
						Value: "confession",
					},
					{
						Name:  "Suggestions",
						Value: "suggestion",
					},
				},
			},
		},
	}
}
