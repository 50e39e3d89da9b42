package interfaces

import (
	"context"

	"warden/domain/entities"
	"warden/domain/events"
)

// GuildConfigService defines the interface for guild config operations
type GuildConfigService interface {
	// GetConfig retrieves the config for a guild
	GetConfig(ctx context.Context, guildID int64) (*entities.GuildConfig, error)

	// UpdateLogChannel sets the channel that receives audit lines
	UpdateLogChannel(ctx context.Context, guildID int64, channelID *int64) error

	// UpdateAutoroles sets the roles granted to new members and bots
	UpdateAutoroles(ctx context.Context, guildID int64, memberRoleID, botRoleID *int64) error

	// ListConfigs returns every stored config
	ListConfigs(ctx context.Context) ([]*entities.GuildConfig, error)
}

// ModerationService runs permission and rank gated moderation commands
type ModerationService interface {
	Kick(ctx context.Context, req entities.ModerationRequest) (*entities.ModerationResult, error)
	Ban(ctx context.Context, req entities.ModerationRequest) (*entities.ModerationResult, error)
	Unban(ctx context.Context, req entities.ModerationRequest) (*entities.ModerationResult, error)
	Mute(ctx context.Context, req entities.ModerationRequest) (*entities.ModerationResult, error)
	Unmute(ctx context.Context, req entities.ModerationRequest) (*entities.ModerationResult, error)
	Purge(ctx context.Context, req entities.ModerationRequest) (*entities.ModerationResult, error)
	ConfigureAutorole(ctx context.Context, req entities.ModerationRequest, memberRoleID, botRoleID int64) (*entities.ModerationResult, error)
	ConfigureLogs(ctx context.Context, req entities.ModerationRequest, channelName string) (*entities.ModerationResult, error)
}

// AuditService renders platform events into audit lines and delivers them to
// the guild's log channel. Guilds without a log channel are skipped silently.
type AuditService interface {
	CommandCompleted(ctx context.Context, guildID int64, command string) error
	CommandPermissionsUpdated(ctx context.Context, guildID int64) error

	AutoModRuleCreated(ctx context.Context, rule entities.AutoModRuleSnapshot) error
	AutoModRuleDeleted(ctx context.Context, rule entities.AutoModRuleSnapshot) error
	AutoModRuleUpdated(ctx context.Context, rule entities.AutoModRuleSnapshot) error
	AutoModActionExecuted(ctx context.Context, execution entities.AutoModExecution) error

	ChannelCreated(ctx context.Context, channel entities.ChannelSnapshot) error
	ChannelDeleted(ctx context.Context, channel entities.ChannelSnapshot) error
	ChannelUpdated(ctx context.Context, before, after entities.ChannelSnapshot) error
	GroupChannelUpdated(ctx context.Context, before, after entities.GroupChannelSnapshot) error

	GuildAvailable(ctx context.Context, guild entities.GuildSnapshot) error
	GuildUnavailable(ctx context.Context, guild entities.GuildSnapshot) error
	GuildJoined(ctx context.Context, guild entities.GuildSnapshot) error
	GuildRemoved(ctx context.Context, guild entities.GuildSnapshot) error
	GuildUpdated(ctx context.Context, before, after entities.GuildSnapshot) error

	MemberJoined(ctx context.Context, member entities.MemberSnapshot) error
	MemberLeft(ctx context.Context, member entities.MemberSnapshot) error
	MemberUpdated(ctx context.Context, before, after entities.MemberSnapshot) error
	MemberBanned(ctx context.Context, guildID int64, user entities.UserRef) error
	MemberUnbanned(ctx context.Context, guildID int64, user entities.UserRef) error

	MessageEdited(ctx context.Context, before, after entities.MessageSnapshot) error
	MessageDeleted(ctx context.Context, message entities.MessageSnapshot) error

	RoleCreated(ctx context.Context, guildID int64, role entities.RoleRef) error
	RoleDeleted(ctx context.Context, guildID int64, role entities.RoleRef) error
	RoleUpdated(ctx context.Context, before, after entities.RoleSnapshot) error

	ThreadCreated(ctx context.Context, thread entities.ThreadSnapshot) error
	ThreadJoined(ctx context.Context, thread entities.ThreadSnapshot) error
	ThreadRemoved(ctx context.Context, thread entities.ThreadSnapshot) error
	ThreadDeleted(ctx context.Context, thread entities.ThreadSnapshot) error

	VoiceStateUpdated(ctx context.Context, member entities.MemberSnapshot, before, after entities.VoiceStateSnapshot) error
}

// AutoroleService grants configured roles to newly joined members
type AutoroleService interface {
	// ApplyAutorole grants the member or bot role, if configured. Returns the role granted, or zero.
	ApplyAutorole(ctx context.Context, member entities.MemberSnapshot) (int64, error)
}

// VoiceLobbyService manages the "Create channel" voice lobby
type VoiceLobbyService interface {
	// SetupLobby creates the lobby channel in a newly joined guild
	SetupLobby(ctx context.Context, guildID int64) error

	// HandleVoiceStateUpdate creates a personal channel when a member enters the
	// lobby and deletes it when they leave
	HandleVoiceStateUpdate(ctx context.Context, member entities.MemberSnapshot, before, after entities.VoiceStateSnapshot) error
}

// ModerationLogService keeps a history of completed moderation actions
type ModerationLogService interface {
	// RecordAction stores a completed moderation action
	RecordAction(ctx context.Context, event events.ModerationActionEvent) (*entities.ModerationLogEntry, error)

	// Recent returns the newest entries for a guild
	Recent(ctx context.Context, guildID int64, limit int) ([]*entities.ModerationLogEntry, error)
}
