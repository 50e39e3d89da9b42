package testutil

import "warden/domain/entities"

// CreateTestGuildConfig creates a guild config with every field set
func CreateTestGuildConfig(guildID, logChannelID, memberRoleID, botRoleID int64) *entities.GuildConfig {
	return &entities.GuildConfig{
		GuildID:          guildID,
		LogChannelID:     &logChannelID,
		AutoroleMemberID: &memberRoleID,
		AutoroleBotID:    &botRoleID,
	}
}

// CreateTestModerationLogEntry creates a log entry for a member-targeted action
func CreateTestModerationLogEntry(guildID int64, action entities.ModerationAction, invokerID, targetID int64) *entities.ModerationLogEntry {
	return &entities.ModerationLogEntry{
		GuildID:   guildID,
		Action:    action,
		InvokerID: invokerID,
		TargetID:  &targetID,
		Reason:    "test reason",
	}
}
