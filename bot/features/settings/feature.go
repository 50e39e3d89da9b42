package settings

import (
	"warden/bot/common"
	"warden/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// GuildLookup resolves a guild from the state cache
type GuildLookup func(guildID string) (*discordgo.Guild, error)

// ChannelLookup resolves a channel from the state cache
type ChannelLookup func(channelID string) (*discordgo.Channel, error)

// Feature handles guild configuration commands
type Feature struct {
	service  interfaces.ModerationService
	guilds   GuildLookup
	channels ChannelLookup
}

// NewFeature creates a new settings feature instance
func NewFeature(service interfaces.ModerationService, guilds GuildLookup, channels ChannelLookup) *Feature {
	return &Feature{
		service:  service,
		guilds:   guilds,
		channels: channels,
	}
}

// HandleCommand routes settings commands to appropriate handlers
func (f *Feature) HandleCommand(s common.Responder, i *discordgo.InteractionCreate) error {
	switch i.ApplicationCommandData().Name {
	case "autorole":
		return f.handleAutorole(s, i)
	case "logs":
		return f.handleLogs(s, i)
	}
	return nil
}
