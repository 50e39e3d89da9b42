package moderation

import (
	"warden/bot/common"
	"warden/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// GuildLookup resolves a guild from the state cache
type GuildLookup func(guildID string) (*discordgo.Guild, error)

// Feature handles the member moderation commands
type Feature struct {
	service interfaces.ModerationService
	guilds  GuildLookup
}

// NewFeature creates a new moderation feature instance
func NewFeature(service interfaces.ModerationService, guilds GuildLookup) *Feature {
	return &Feature{
		service: service,
		guilds:  guilds,
	}
}

// HandleCommand routes moderation commands to the matching handler.
// The returned error reports the outcome; the invoker has already been answered.
func (f *Feature) HandleCommand(s common.Responder, i *discordgo.InteractionCreate) error {
	switch i.ApplicationCommandData().Name {
	case "kick":
		return f.handleMemberAction(s, i, f.service.Kick)
	case "ban":
		return f.handleMemberAction(s, i, f.service.Ban)
	case "unban":
		return f.handleMemberAction(s, i, f.service.Unban)
	case "mute":
		return f.handleMemberAction(s, i, f.service.Mute)
	case "unmute":
		return f.handleMemberAction(s, i, f.service.Unmute)
	case "purge":
		return f.handlePurge(s, i)
	}
	return nil
}
