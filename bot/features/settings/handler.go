package settings

import (
	"context"

	"warden/bot/common"
	"warden/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// invokerRequest builds the request shared by the settings commands
func (f *Feature) invokerRequest(i *discordgo.InteractionCreate) (entities.ModerationRequest, error) {
	if i.Member == nil || i.Member.User == nil {
		return entities.ModerationRequest{}, common.NewUserError("This command can only be used in a server", "command invoked outside a guild")
	}

	guild, err := f.guilds(i.GuildID)
	if err != nil {
		return entities.ModerationRequest{}, common.NewSystemError(err, "guild not in state")
	}

	return entities.ModerationRequest{
		GuildID:   entities.ParseID(i.GuildID),
		GuildName: guild.Name,
		ChannelID: entities.ParseID(i.ChannelID),
		Invoker:   common.BuildActor(i.Member.User, i.Member, guild.Roles, common.InvokerPermissions(guild, i.Member)),
	}, nil
}

// handleAutorole handles the /autorole command
func (f *Feature) handleAutorole(s common.Responder, i *discordgo.InteractionCreate) error {
	req, err := f.invokerRequest(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return err
	}

	opts := common.ParseOptions(i.ApplicationCommandData().Options)
	memberRoleID := entities.ParseID(opts.ID("role_member"))
	botRoleID := entities.ParseID(opts.ID("role_bot"))

	result, err := f.service.ConfigureAutorole(context.Background(), req, memberRoleID, botRoleID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return err
	}

	if err := common.RespondEphemeral(s, i, result.Reply); err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
	return nil
}

// handleLogs handles the /logs command
func (f *Feature) handleLogs(s common.Responder, i *discordgo.InteractionCreate) error {
	req, err := f.invokerRequest(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return err
	}

	channelName := i.ChannelID
	if channel, err := f.channels(i.ChannelID); err == nil {
		channelName = channel.Name
	} else {
		log.WithError(err).WithField("channel_id", i.ChannelID).Debug("Channel not in state, using ID as name")
	}

	result, err := f.service.ConfigureLogs(context.Background(), req, channelName)
	if err != nil {
		common.HandleError(s, i, err, false)
		return err
	}

	if err := common.RespondEphemeral(s, i, result.Reply); err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
	return nil
}
