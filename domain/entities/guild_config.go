package entities

// GuildConfig represents per-guild moderation settings
type GuildConfig struct {
	GuildID          int64  `db:"guild_id" json:"guild_id"`
	LogChannelID     *int64 `db:"log_channel_id" json:"log_channel_id,omitempty"`         // Nullable - channel for audit lines
	AutoroleMemberID *int64 `db:"autorole_member_id" json:"autorole_member_id,omitempty"` // Nullable - role granted to new members
	AutoroleBotID    *int64 `db:"autorole_bot_id" json:"autorole_bot_id,omitempty"`       // Nullable - role granted to new bots
}

// HasLogChannel checks if a log channel is configured
func (gc *GuildConfig) HasLogChannel() bool {
	return gc.LogChannelID != nil && *gc.LogChannelID > 0
}

// HasAutoroles checks if autoroles are configured
func (gc *GuildConfig) HasAutoroles() bool {
	return gc.AutoroleMemberID != nil && gc.AutoroleBotID != nil
}

// AutoroleFor returns the role a newly joined account should receive
func (gc *GuildConfig) AutoroleFor(bot bool) (int64, bool) {
	if !gc.HasAutoroles() {
		return 0, false
	}
	if bot {
		return *gc.AutoroleBotID, true
	}
	return *gc.AutoroleMemberID, true
}

// SetLogChannel sets the log channel ID
func (gc *GuildConfig) SetLogChannel(channelID *int64) {
	gc.LogChannelID = channelID
}

// SetAutoroles sets both autorole IDs
func (gc *GuildConfig) SetAutoroles(memberRoleID, botRoleID *int64) {
	gc.AutoroleMemberID = memberRoleID
	gc.AutoroleBotID = botRoleID
}

// Clone returns a deep copy so cached values are never mutated by callers
func (gc *GuildConfig) Clone() *GuildConfig {
	if gc == nil {
		return nil
	}
	clone := &GuildConfig{GuildID: gc.GuildID}
	clone.LogChannelID = copyID(gc.LogChannelID)
	clone.AutoroleMemberID = copyID(gc.AutoroleMemberID)
	clone.AutoroleBotID = copyID(gc.AutoroleBotID)
	return clone
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
