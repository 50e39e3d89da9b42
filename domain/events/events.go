package events

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeModerationAction   EventType = "moderation_action"
	EventTypeAuditEntry         EventType = "audit_entry"
	EventTypeGuildConfigUpdated EventType = "guild_config_updated"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// ModerationActionEvent is published after a moderation command mutates the guild
type ModerationActionEvent struct {
	GuildID   int64  `json:"guild_id"`
	Action    string `json:"action"`
	InvokerID int64  `json:"invoker_id"`
	TargetID  int64  `json:"target_id,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Deleted   int    `json:"deleted,omitempty"`
}

func (e ModerationActionEvent) Type() EventType {
	return EventTypeModerationAction
}

// AuditEntryEvent is published after an audit line is delivered to a log channel
type AuditEntryEvent struct {
	GuildID   int64  `json:"guild_id"`
	ChannelID int64  `json:"channel_id"`
	Kind      string `json:"kind"`
	Content   string `json:"content"`
}

func (e AuditEntryEvent) Type() EventType {
	return EventTypeAuditEntry
}

// GuildConfigUpdatedEvent is published when the autorole or log channel settings change
type GuildConfigUpdatedEvent struct {
	GuildID          int64  `json:"guild_id"`
	LogChannelID     *int64 `json:"log_channel_id,omitempty"`
	AutoroleMemberID *int64 `json:"autorole_member_id,omitempty"`
	AutoroleBotID    *int64 `json:"autorole_bot_id,omitempty"`
}

func (e GuildConfigUpdatedEvent) Type() EventType {
	return EventTypeGuildConfigUpdated
}
