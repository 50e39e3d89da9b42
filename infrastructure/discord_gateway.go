package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"warden/domain"
	"warden/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const (
	// messagesPerPage is the page size of the message history endpoint
	messagesPerPage = 100
	// bulkDeleteMaxAge is the age after which messages must be deleted one by one
	bulkDeleteMaxAge = 14*24*time.Hour - time.Minute
)

// DiscordSession is the subset of *discordgo.Session the gateway calls
type DiscordSession interface {
	GuildMemberDeleteWithReason(guildID, userID, reason string, options ...discordgo.RequestOption) error
	GuildBanCreateWithReason(guildID, userID, reason string, days int, options ...discordgo.RequestOption) error
	GuildBanDelete(guildID, userID string, options ...discordgo.RequestOption) error
	GuildMemberTimeout(guildID, userID string, until *time.Time, options ...discordgo.RequestOption) error
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	ChannelMessagesBulkDelete(channelID string, messages []string, options ...discordgo.RequestOption) error
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildMemberMove(guildID, userID string, channelID *string, options ...discordgo.RequestOption) error
	ChannelDelete(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// DiscordGateway implements interfaces.ModerationGateway over the Discord REST API
type DiscordGateway struct {
	session DiscordSession
	now     func() time.Time
}

// NewDiscordGateway creates a gateway backed by session
func NewDiscordGateway(session DiscordSession) *DiscordGateway {
	return &DiscordGateway{
		session: session,
		now:     time.Now,
	}
}

func requestOptions(ctx context.Context, reason string) []discordgo.RequestOption {
	opts := []discordgo.RequestOption{discordgo.WithContext(ctx)}
	if reason != "" {
		opts = append(opts, discordgo.WithAuditLogReason(reason))
	}
	return opts
}

// KickMember removes a member from the guild
func (g *DiscordGateway) KickMember(ctx context.Context, guildID, userID int64, reason string) error {
	return g.session.GuildMemberDeleteWithReason(
		entities.FormatID(guildID), entities.FormatID(userID), reason, discordgo.WithContext(ctx))
}

// BanMember bans a user without deleting their message history
func (g *DiscordGateway) BanMember(ctx context.Context, guildID, userID int64, reason string) error {
	return g.session.GuildBanCreateWithReason(
		entities.FormatID(guildID), entities.FormatID(userID), reason, 0, discordgo.WithContext(ctx))
}

// UnbanUser lifts a ban, mapping the platform's unknown ban error to domain.ErrNotBanned
func (g *DiscordGateway) UnbanUser(ctx context.Context, guildID, userID int64, reason string) error {
	err := g.session.GuildBanDelete(entities.FormatID(guildID), entities.FormatID(userID), requestOptions(ctx, reason)...)
	if isUnknownBan(err) {
		return fmt.Errorf("%w: %v", domain.ErrNotBanned, err)
	}
	return err
}

func isUnknownBan(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownBan {
		return true
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}

// TimeoutMember sets the member's timeout, or clears it when until is nil
func (g *DiscordGateway) TimeoutMember(ctx context.Context, guildID, userID int64, until *time.Time, reason string) error {
	return g.session.GuildMemberTimeout(entities.FormatID(guildID), entities.FormatID(userID), until, requestOptions(ctx, reason)...)
}

// AddMemberRole grants a role to a member
func (g *DiscordGateway) AddMemberRole(ctx context.Context, guildID, userID, roleID int64) error {
	return g.session.GuildMemberRoleAdd(
		entities.FormatID(guildID), entities.FormatID(userID), entities.FormatID(roleID),
		requestOptions(ctx, "Autorole")...)
}

// SendDirectMessage opens a DM channel with the user and posts content
func (g *DiscordGateway) SendDirectMessage(ctx context.Context, userID int64, content string) error {
	channel, err := g.session.UserChannelCreate(entities.FormatID(userID), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}
	if _, err := g.session.ChannelMessageSend(channel.ID, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send DM: %w", err)
	}
	return nil
}

// SendChannelMessage posts content to a channel
func (g *DiscordGateway) SendChannelMessage(ctx context.Context, channelID int64, content string) error {
	_, err := g.session.ChannelMessageSend(entities.FormatID(channelID), content, discordgo.WithContext(ctx))
	return err
}

// PurgeMessages deletes up to limit of the newest messages in a channel. Messages
// young enough are bulk deleted; older ones are deleted one at a time.
func (g *DiscordGateway) PurgeMessages(ctx context.Context, channelID int64, limit int, reason string) (int, error) {
	channel := entities.FormatID(channelID)
	cutoff := g.now().Add(-bulkDeleteMaxAge)
	opts := requestOptions(ctx, reason)

	deleted := 0
	before := ""
	for deleted < limit {
		page := min(messagesPerPage, limit-deleted)
		messages, err := g.session.ChannelMessages(channel, page, before, "", "", discordgo.WithContext(ctx))
		if err != nil {
			return deleted, fmt.Errorf("failed to fetch messages: %w", err)
		}
		if len(messages) == 0 {
			break
		}

		var recent, old []string
		for _, message := range messages {
			created, err := discordgo.SnowflakeTimestamp(message.ID)
			if err == nil && created.After(cutoff) {
				recent = append(recent, message.ID)
			} else {
				old = append(old, message.ID)
			}
		}

		switch {
		case len(recent) >= 2:
			if err := g.session.ChannelMessagesBulkDelete(channel, recent, opts...); err != nil {
				return deleted, fmt.Errorf("failed to bulk delete messages: %w", err)
			}
			deleted += len(recent)
		case len(recent) == 1:
			old = append(recent, old...)
		}

		for _, id := range old {
			if err := g.session.ChannelMessageDelete(channel, id, opts...); err != nil {
				return deleted, fmt.Errorf("failed to delete message %s: %w", id, err)
			}
			deleted++
		}

		before = messages[len(messages)-1].ID
		if len(messages) < page {
			break
		}
	}

	log.WithFields(log.Fields{
		"channel_id": channelID,
		"requested":  limit,
		"deleted":    deleted,
	}).Info("Purged messages")

	return deleted, nil
}

// CreateVoiceChannel creates a voice channel, under categoryID when non-zero
func (g *DiscordGateway) CreateVoiceChannel(ctx context.Context, guildID int64, name string, categoryID int64) (int64, error) {
	data := discordgo.GuildChannelCreateData{
		Name: name,
		Type: discordgo.ChannelTypeGuildVoice,
	}
	if categoryID != 0 {
		data.ParentID = entities.FormatID(categoryID)
	}

	channel, err := g.session.GuildChannelCreateComplex(entities.FormatID(guildID), data, discordgo.WithContext(ctx))
	if err != nil {
		return 0, err
	}
	return entities.ParseID(channel.ID), nil
}

// MoveMember moves a connected member to a voice channel
func (g *DiscordGateway) MoveMember(ctx context.Context, guildID, userID, channelID int64) error {
	target := entities.FormatID(channelID)
	return g.session.GuildMemberMove(entities.FormatID(guildID), entities.FormatID(userID), &target, discordgo.WithContext(ctx))
}

// DeleteChannel deletes a channel
func (g *DiscordGateway) DeleteChannel(ctx context.Context, channelID int64) error {
	_, err := g.session.ChannelDelete(entities.FormatID(channelID), discordgo.WithContext(ctx))
	return err
}
