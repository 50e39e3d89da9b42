package services

import (
	"context"
	"errors"
	"fmt"

	"warden/domain"
	"warden/domain/entities"
	"warden/domain/events"
	"warden/domain/interfaces"
	"warden/domain/utils"

	log "github.com/sirupsen/logrus"
)

// AuditKind groups audit lines by the entity they describe
type AuditKind string

const (
	AuditKindCommand AuditKind = "command"
	AuditKindAutoMod AuditKind = "automod"
	AuditKindChannel AuditKind = "channel"
	AuditKindGroup   AuditKind = "group"
	AuditKindGuild   AuditKind = "guild"
	AuditKindMember  AuditKind = "member"
	AuditKindBan     AuditKind = "ban"
	AuditKindMessage AuditKind = "message"
	AuditKindRole    AuditKind = "role"
	AuditKindThread  AuditKind = "thread"
	AuditKindVoice   AuditKind = "voice"
)

// auditService implements the AuditService interface
type auditService struct {
	configService  interfaces.GuildConfigService
	sender         interfaces.MessageSender
	eventPublisher interfaces.EventPublisher
}

// NewAuditService creates a new audit service
func NewAuditService(
	configService interfaces.GuildConfigService,
	sender interfaces.MessageSender,
	eventPublisher interfaces.EventPublisher,
) interfaces.AuditService {
	return &auditService{
		configService:  configService,
		sender:         sender,
		eventPublisher: eventPublisher,
	}
}

func (s *auditService) CommandCompleted(ctx context.Context, guildID int64, command string) error {
	return s.deliver(ctx, guildID, AuditKindCommand,
		fmt.Sprintf("**%s** command has successfully completed without error", command))
}

func (s *auditService) CommandPermissionsUpdated(ctx context.Context, guildID int64) error {
	return s.deliver(ctx, guildID, AuditKindCommand, "Application command permissions are updated")
}

func (s *auditService) AutoModRuleCreated(ctx context.Context, rule entities.AutoModRuleSnapshot) error {
	return s.deliver(ctx, rule.GuildID, AuditKindAutoMod, fmt.Sprintf("**%s** rule is created", rule.Name))
}

func (s *auditService) AutoModRuleDeleted(ctx context.Context, rule entities.AutoModRuleSnapshot) error {
	return s.deliver(ctx, rule.GuildID, AuditKindAutoMod, fmt.Sprintf("**%s** rule is deleted", rule.Name))
}

func (s *auditService) AutoModRuleUpdated(ctx context.Context, rule entities.AutoModRuleSnapshot) error {
	return s.deliver(ctx, rule.GuildID, AuditKindAutoMod, fmt.Sprintf("**%s** rule is updated", rule.Name))
}

func (s *auditService) AutoModActionExecuted(ctx context.Context, execution entities.AutoModExecution) error {
	return s.deliver(ctx, execution.GuildID, AuditKindAutoMod,
		fmt.Sprintf("**%s**'s message has triggered the rule. Result: %s\nMessage:\n%s",
			execution.MemberName, execution.Action, execution.Content))
}

func (s *auditService) ChannelCreated(ctx context.Context, channel entities.ChannelSnapshot) error {
	return s.deliver(ctx, channel.GuildID, AuditKindChannel, fmt.Sprintf("**%s** channel is created", channel.Name))
}

func (s *auditService) ChannelDeleted(ctx context.Context, channel entities.ChannelSnapshot) error {
	return s.deliver(ctx, channel.GuildID, AuditKindChannel, fmt.Sprintf("**%s** channel is deleted", channel.Name))
}

func (s *auditService) ChannelUpdated(ctx context.Context, before, after entities.ChannelSnapshot) error {
	return s.deliver(ctx, after.GuildID, AuditKindChannel, RenderChannelUpdate(before, after))
}

// GroupChannelUpdated only reaches a log channel when the group is tied to a guild.
func (s *auditService) GroupChannelUpdated(ctx context.Context, before, after entities.GroupChannelSnapshot) error {
	return s.deliver(ctx, after.GuildID, AuditKindGroup, RenderGroupChannelUpdate(before, after))
}

func (s *auditService) GuildAvailable(ctx context.Context, guild entities.GuildSnapshot) error {
	return s.deliver(ctx, guild.ID, AuditKindGuild, fmt.Sprintf("%s server has become available", guild.Name))
}

func (s *auditService) GuildUnavailable(ctx context.Context, guild entities.GuildSnapshot) error {
	return s.deliver(ctx, guild.ID, AuditKindGuild, fmt.Sprintf("%s server has become unavailable", guild.Name))
}

func (s *auditService) GuildJoined(ctx context.Context, guild entities.GuildSnapshot) error {
	return s.deliver(ctx, guild.ID, AuditKindGuild, fmt.Sprintf("%s server was joined", guild.Name))
}

func (s *auditService) GuildRemoved(ctx context.Context, guild entities.GuildSnapshot) error {
	return s.deliver(ctx, guild.ID, AuditKindGuild, fmt.Sprintf("%s server was removed", guild.Name))
}

func (s *auditService) GuildUpdated(ctx context.Context, before, after entities.GuildSnapshot) error {
	return s.deliver(ctx, after.ID, AuditKindGuild, RenderGuildUpdate(before, after))
}

func (s *auditService) MemberJoined(ctx context.Context, member entities.MemberSnapshot) error {
	return s.deliver(ctx, member.GuildID, AuditKindMember, fmt.Sprintf("%s has joined the server", member.User.Mention()))
}

func (s *auditService) MemberLeft(ctx context.Context, member entities.MemberSnapshot) error {
	return s.deliver(ctx, member.GuildID, AuditKindMember, fmt.Sprintf("%s has left the server", member.User.Mention()))
}

func (s *auditService) MemberUpdated(ctx context.Context, before, after entities.MemberSnapshot) error {
	return s.deliver(ctx, after.GuildID, AuditKindMember, RenderMemberUpdate(before, after))
}

func (s *auditService) MemberBanned(ctx context.Context, guildID int64, user entities.UserRef) error {
	return s.deliver(ctx, guildID, AuditKindBan, fmt.Sprintf("%s was banned", user.Mention()))
}

func (s *auditService) MemberUnbanned(ctx context.Context, guildID int64, user entities.UserRef) error {
	return s.deliver(ctx, guildID, AuditKindBan, fmt.Sprintf("%s was unbanned", user.Mention()))
}

func (s *auditService) MessageEdited(ctx context.Context, before, after entities.MessageSnapshot) error {
	return s.deliver(ctx, after.GuildID, AuditKindMessage,
		fmt.Sprintf("%s has changed their message in %s\nBefore:\n%s\nAfter:\n%s",
			after.Author.Mention(), after.Channel.Mention(), before.Content, after.Content))
}

func (s *auditService) MessageDeleted(ctx context.Context, message entities.MessageSnapshot) error {
	return s.deliver(ctx, message.GuildID, AuditKindMessage,
		fmt.Sprintf("%s has deleted their message in %s\nMessage:\n%s",
			message.Author.Mention(), message.Channel.Mention(), message.Content))
}

func (s *auditService) RoleCreated(ctx context.Context, guildID int64, role entities.RoleRef) error {
	return s.deliver(ctx, guildID, AuditKindRole, fmt.Sprintf("%s role was created", role.Mention()))
}

func (s *auditService) RoleDeleted(ctx context.Context, guildID int64, role entities.RoleRef) error {
	return s.deliver(ctx, guildID, AuditKindRole, fmt.Sprintf("%s role was deleted", role.Mention()))
}

func (s *auditService) RoleUpdated(ctx context.Context, before, after entities.RoleSnapshot) error {
	return s.deliver(ctx, after.GuildID, AuditKindRole, RenderRoleUpdate(before, after))
}

func (s *auditService) ThreadCreated(ctx context.Context, thread entities.ThreadSnapshot) error {
	return s.deliver(ctx, thread.GuildID, AuditKindThread,
		fmt.Sprintf("%s was created in %s", thread.Thread.Mention(), thread.Parent.Mention()))
}

// ThreadJoined logs the bot being added to a thread that already existed
func (s *auditService) ThreadJoined(ctx context.Context, thread entities.ThreadSnapshot) error {
	return s.deliver(ctx, thread.GuildID, AuditKindThread,
		fmt.Sprintf("%s was joined in %s", thread.Thread.Mention(), thread.Parent.Mention()))
}

// ThreadRemoved logs the bot's own membership of a thread ending
func (s *auditService) ThreadRemoved(ctx context.Context, thread entities.ThreadSnapshot) error {
	return s.deliver(ctx, thread.GuildID, AuditKindThread,
		fmt.Sprintf("%s was removed from %s", thread.Thread.Mention(), thread.Parent.Mention()))
}

func (s *auditService) ThreadDeleted(ctx context.Context, thread entities.ThreadSnapshot) error {
	return s.deliver(ctx, thread.GuildID, AuditKindThread,
		fmt.Sprintf("%s was deleted from %s", thread.Label(), thread.Parent.Mention()))
}

// VoiceStateUpdated logs joins and leaves. Moves between channels and mute or
// deafen changes produce nothing.
func (s *auditService) VoiceStateUpdated(ctx context.Context, member entities.MemberSnapshot, before, after entities.VoiceStateSnapshot) error {
	switch {
	case !before.Connected() && after.Connected():
		return s.deliver(ctx, member.GuildID, AuditKindVoice,
			fmt.Sprintf("%s has joined %s channel", member.User.Mention(), after.Channel.Mention()))
	case before.Connected() && !after.Connected():
		return s.deliver(ctx, member.GuildID, AuditKindVoice,
			fmt.Sprintf("%s has left %s channel", member.User.Mention(), before.Channel.Mention()))
	default:
		return nil
	}
}

// logChannel resolves the guild's log channel or returns ErrConfigurationAbsent
func (s *auditService) logChannel(ctx context.Context, guildID int64) (int64, error) {
	if guildID == 0 {
		return 0, domain.ErrConfigurationAbsent
	}

	config, err := s.configService.GetConfig(ctx, guildID)
	if err != nil {
		return 0, err
	}
	if config == nil || !config.HasLogChannel() {
		return 0, domain.ErrConfigurationAbsent
	}
	return *config.LogChannelID, nil
}

// deliver sends content to the guild's log channel, split to the message limit
func (s *auditService) deliver(ctx context.Context, guildID int64, kind AuditKind, content string) error {
	channelID, err := s.logChannel(ctx, guildID)
	if errors.Is(err, domain.ErrConfigurationAbsent) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to resolve log channel for guild %d: %w", guildID, err)
	}

	for _, chunk := range utils.SplitMessage(content, utils.MessageLimit) {
		if err := s.sender.SendChannelMessage(ctx, channelID, chunk); err != nil {
			return fmt.Errorf("failed to deliver %s audit line to channel %d: %w", kind, channelID, err)
		}
	}

	if err := s.eventPublisher.Publish(events.AuditEntryEvent{
		GuildID:   guildID,
		ChannelID: channelID,
		Kind:      string(kind),
		Content:   content,
	}); err != nil {
		log.WithError(err).WithField("kind", kind).Warn("Failed to publish audit entry event")
	}

	return nil
}
