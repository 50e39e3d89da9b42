package entities

import "time"

// ModerationAction names a moderation command.
type ModerationAction string

const (
	ActionAutorole ModerationAction = "autorole"
	ActionKick     ModerationAction = "kick"
	ActionBan      ModerationAction = "ban"
	ActionUnban    ModerationAction = "unban"
	ActionMute     ModerationAction = "mute"
	ActionUnmute   ModerationAction = "unmute"
	ActionPurge    ModerationAction = "purge"
	ActionLogs     ModerationAction = "logs"
)

// RequiredPermission returns the permission an invoker needs for the action.
func (a ModerationAction) RequiredPermission() int64 {
	switch a {
	case ActionKick:
		return PermissionKickMembers
	case ActionBan, ActionUnban:
		return PermissionBanMembers
	case ActionMute, ActionUnmute:
		return PermissionModerateMembers
	case ActionPurge:
		return PermissionManageMessages
	default:
		return PermissionAdministrator
	}
}

// TargetsMember reports whether the action is rank-checked against a guild member.
func (a ModerationAction) TargetsMember() bool {
	switch a {
	case ActionKick, ActionBan, ActionMute, ActionUnmute:
		return true
	default:
		return false
	}
}

// Actor is a user taking part in a moderation command.
type Actor struct {
	ID              int64
	Name            string
	Permissions     int64
	TopRolePosition int
	Bot             bool
}

// Can reports whether the actor holds perm.
func (a Actor) Can(perm int64) bool {
	return HasPermission(a.Permissions, perm)
}

// Outranks reports whether the actor's top role is strictly above other's.
func (a Actor) Outranks(other Actor) bool {
	return a.TopRolePosition > other.TopRolePosition
}

// ModerationRequest is one invocation of a moderation command.
type ModerationRequest struct {
	Action    ModerationAction
	GuildID   int64
	GuildName string
	ChannelID int64
	Invoker   Actor
	Target    Actor
	Reason    string
	Duration  string
	Limit     int
}

// ModerationResult is the outcome of a completed moderation command.
type ModerationResult struct {
	Action  ModerationAction
	Reply   string
	Deleted int
}

// ModerationLogEntry is a persisted record of a completed moderation action
type ModerationLogEntry struct {
	ID        int64            `db:"id" json:"id"`
	GuildID   int64            `db:"guild_id" json:"guild_id"`
	Action    ModerationAction `db:"action" json:"action"`
	InvokerID int64            `db:"invoker_id" json:"invoker_id"`
	TargetID  *int64           `db:"target_id" json:"target_id,omitempty"` // Nullable - purge has no target
	Reason    string           `db:"reason" json:"reason,omitempty"`
	Deleted   int              `db:"deleted" json:"deleted,omitempty"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}
