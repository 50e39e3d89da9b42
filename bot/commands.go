package bot

import (
	"fmt"

	"warden/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func permission(action entities.ModerationAction) *int64 {
	perm := action.RequiredPermission()
	return &perm
}

func reasonOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "reason",
		Description: "Reason shown in the audit log and the direct message",
		Required:    false,
	}
}

func memberOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "member",
		Description: description,
		Required:    true,
	}
}

// commandDefinitions returns every slash command the bot serves
func commandDefinitions() []*discordgo.ApplicationCommand {
	guildOnly := false

	return []*discordgo.ApplicationCommand{
		{
			Name:                     "autorole",
			Description:              "Setup autorole",
			DefaultMemberPermissions: permission(entities.ActionAutorole),
			DMPermission:             &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role_member",
					Description: "Role granted to new members",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role_bot",
					Description: "Role granted to new bots",
					Required:    true,
				},
			},
		},
		{
			Name:                     "kick",
			Description:              "Kick member",
			DefaultMemberPermissions: permission(entities.ActionKick),
			DMPermission:             &guildOnly,
			Options:                  []*discordgo.ApplicationCommandOption{memberOption("Member to kick"), reasonOption()},
		},
		{
			Name:                     "ban",
			Description:              "Ban member",
			DefaultMemberPermissions: permission(entities.ActionBan),
			DMPermission:             &guildOnly,
			Options:                  []*discordgo.ApplicationCommandOption{memberOption("Member to ban"), reasonOption()},
		},
		{
			Name:                     "unban",
			Description:              "Unban user",
			DefaultMemberPermissions: permission(entities.ActionUnban),
			DMPermission:             &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to unban",
					Required:    true,
				},
				reasonOption(),
			},
		},
		{
			Name:                     "mute",
			Description:              "Mute (timeout) member",
			DefaultMemberPermissions: permission(entities.ActionMute),
			DMPermission:             &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				memberOption("Member to mute"),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "duration",
					Description: "Duration such as 1d2h30m, at most 28d",
					Required:    true,
				},
				reasonOption(),
			},
		},
		{
			Name:                     "unmute",
			Description:              "Unmute member",
			DefaultMemberPermissions: permission(entities.ActionUnmute),
			DMPermission:             &guildOnly,
			Options:                  []*discordgo.ApplicationCommandOption{memberOption("Member to unmute"), reasonOption()},
		},
		{
			Name:                     "purge",
			Description:              "Purge messages",
			DefaultMemberPermissions: permission(entities.ActionPurge),
			DMPermission:             &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "limit",
					Description: "Number of recent messages to delete",
					Required:    true,
				},
				reasonOption(),
			},
		},
		{
			Name:                     "logs",
			Description:              "Set channel for logs",
			DefaultMemberPermissions: permission(entities.ActionLogs),
			DMPermission:             &guildOnly,
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	if b.session.State.User == nil {
		return fmt.Errorf("session is not ready")
	}

	created, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, "", commandDefinitions())
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	log.WithField("count", len(created)).Info("Registered slash commands")
	return nil
}
