package interfaces

import (
	"context"
	"time"
)

// MemberModerator performs member-level mutations on the platform
type MemberModerator interface {
	// KickMember removes a member from the guild
	KickMember(ctx context.Context, guildID, userID int64, reason string) error

	// BanMember bans a user from the guild
	BanMember(ctx context.Context, guildID, userID int64, reason string) error

	// UnbanUser lifts a ban. Returns domain.ErrNotBanned when no ban exists.
	UnbanUser(ctx context.Context, guildID, userID int64, reason string) error

	// TimeoutMember sets or, with a nil until, clears a member's timeout
	TimeoutMember(ctx context.Context, guildID, userID int64, until *time.Time, reason string) error

	// AddMemberRole grants a role to a member
	AddMemberRole(ctx context.Context, guildID, userID, roleID int64) error
}

// MessageSender delivers text to users and channels
type MessageSender interface {
	// SendDirectMessage sends a private message to a user
	SendDirectMessage(ctx context.Context, userID int64, content string) error

	// SendChannelMessage posts a message to a channel
	SendChannelMessage(ctx context.Context, channelID int64, content string) error
}

// ChannelManager manages channels and their messages
type ChannelManager interface {
	// PurgeMessages deletes up to limit of the most recent messages and returns the count deleted
	PurgeMessages(ctx context.Context, channelID int64, limit int, reason string) (int, error)

	// CreateVoiceChannel creates a voice channel under an optional category and returns its ID
	CreateVoiceChannel(ctx context.Context, guildID int64, name string, categoryID int64) (int64, error)

	// MoveMember moves a connected member to a voice channel
	MoveMember(ctx context.Context, guildID, userID, channelID int64) error

	// DeleteChannel deletes a channel
	DeleteChannel(ctx context.Context, channelID int64) error
}

// ModerationGateway is the complete outbound surface of the platform client
type ModerationGateway interface {
	MemberModerator
	MessageSender
	ChannelManager
}
