package entities

import (
	"fmt"
	"strconv"
)

// ChannelRef identifies a channel. The zero value means no channel.
type ChannelRef int64

// Mention returns the channel mention.
func (c ChannelRef) Mention() string {
	return fmt.Sprintf("<#%d>", int64(c))
}

// RoleRef identifies a role. The zero value means no role.
type RoleRef int64

// Mention returns the role mention.
func (r RoleRef) Mention() string {
	return fmt.Sprintf("<@&%d>", int64(r))
}

// UserRef identifies a user. The zero value means no user.
type UserRef int64

// Mention returns the user mention.
func (u UserRef) Mention() string {
	return fmt.Sprintf("<@%d>", int64(u))
}

// EmojiRef identifies a custom or unicode emoji.
type EmojiRef struct {
	ID       int64
	Name     string
	Animated bool
}

// Mention returns the emoji in message format.
func (e EmojiRef) Mention() string {
	if e.ID == 0 {
		return e.Name
	}
	prefix := ""
	if e.Animated {
		prefix = "a"
	}
	return fmt.Sprintf("<%s:%s:%d>", prefix, e.Name, e.ID)
}

// ParseID converts a snowflake string into an int64. Empty or invalid input yields zero.
func ParseID(id string) int64 {
	v, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatID converts an int64 snowflake back to its string form.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
