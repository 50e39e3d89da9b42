package entities

import (
	"fmt"
	"time"
)

// Color is a 24-bit RGB role color.
type Color int

func (c Color) String() string {
	return fmt.Sprintf("#%06x", int(c))
}

// GuildSnapshot captures the audited fields of a guild.
type GuildSnapshot struct {
	ID                        int64
	Name                      string
	Emojis                    []EmojiRef
	Stickers                  []string
	AFKTimeout                int
	Owner                     UserRef
	Unavailable               bool
	MaxPresences              int
	MaxMembers                int
	MaxVideoChannelUsers      int
	Description               string
	VerificationLevel         string
	VanityURLCode             string
	ExplicitContentFilter     string
	DefaultNotifications      string
	Features                  []string
	PremiumTier               string
	PremiumSubscriptionCount  int
	PreferredLocale           string
	NSFWLevel                 string
	MFALevel                  string
	ApproximateMemberCount    int
	ApproximatePresenceCount  int
	PremiumProgressBarEnabled bool
	WidgetEnabled             bool
	Channels                  []ChannelRef
	Threads                   []ChannelRef
	Large                     bool
	VoiceChannels             []ChannelRef
	StageChannels             []ChannelRef
	TextChannels              []ChannelRef
	Categories                []ChannelRef
	Forums                    []ChannelRef
	AFKChannel                ChannelRef
	SystemChannel             ChannelRef
	RulesChannel              ChannelRef
	PublicUpdatesChannel      ChannelRef
	WidgetChannel             ChannelRef
	EmojiLimit                int
	StickerLimit              int
	BitrateLimit              int
	FileSizeLimit             int
	Members                   []UserRef
	Boosters                  []UserRef
	Roles                     []RoleRef
	DefaultRole               RoleRef
	StageInstances            []ChannelRef
	Icon                      string
	Banner                    string
	Splash                    string
	DiscoverySplash           string
	MemberCount               int
	ShardID                   int
	CreatedAt                 time.Time
}

// ChannelSnapshot captures the audited fields of a guild channel.
type ChannelSnapshot struct {
	GuildID           int64
	Channel           ChannelRef
	Name              string
	GuildName         string
	Position          int
	OverwriteRoles    []RoleRef
	URL               string
	CreatedAt         time.Time
	Category          ChannelRef
	PermissionsSynced bool
}

// GroupChannelSnapshot captures the audited fields of a group direct message.
type GroupChannelSnapshot struct {
	GuildID    int64
	ID         int64
	Recipients []UserRef
	Owner      UserRef
	Name       string
	Type       string
	Icon       string
	CreatedAt  time.Time
	URL        string
}

// MemberSnapshot captures the audited fields of a guild member.
type MemberSnapshot struct {
	GuildID     int64
	User        UserRef
	Username    string
	GlobalName  string
	DisplayName string
	Roles       []RoleRef
	Bot         bool
}

// RoleSnapshot captures the audited fields of a role.
type RoleSnapshot struct {
	GuildID     int64
	Role        RoleRef
	Name        string
	Color       Color
	Permissions []string
	Hoist       bool
	Mentionable bool
	Position    int
}

// MessageSnapshot captures a message for edit and delete audit lines.
type MessageSnapshot struct {
	GuildID int64
	ID      int64
	Author  UserRef
	Channel ChannelRef
	Content string
}

// ThreadSnapshot captures a thread and its parent channel.
type ThreadSnapshot struct {
	GuildID int64
	Thread  ChannelRef
	Name    string
	Parent  ChannelRef
}

// Label returns the thread name, falling back to its mention.
func (t ThreadSnapshot) Label() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Thread.Mention()
}

// VoiceStateSnapshot is the voice channel a member is connected to, if any.
type VoiceStateSnapshot struct {
	Channel     ChannelRef
	ChannelName string
	Category    ChannelRef
}

// Connected reports whether the member is in a voice channel.
func (v VoiceStateSnapshot) Connected() bool {
	return v.Channel != 0
}

// AutoModRuleSnapshot identifies an automod rule.
type AutoModRuleSnapshot struct {
	GuildID int64
	ID      int64
	Name    string
}

// AutoModExecution describes an automod rule being triggered by a message.
type AutoModExecution struct {
	GuildID    int64
	RuleID     int64
	Member     UserRef
	MemberName string
	Action     string
	Content    string
}
