package interfaces

import (
	"context"

	"warden/domain/entities"
	"warden/domain/events"
)

// GuildConfigRepository defines the interface for guild config data access
type GuildConfigRepository interface {
	// GetGuildConfig retrieves the config for a guild. A guild with no stored
	// config yields an empty config with only GuildID set.
	GetGuildConfig(ctx context.Context, guildID int64) (*entities.GuildConfig, error)

	// UpsertGuildConfig creates or replaces the config for a guild
	UpsertGuildConfig(ctx context.Context, config *entities.GuildConfig) error

	// ListGuildConfigs returns every stored config
	ListGuildConfigs(ctx context.Context) ([]*entities.GuildConfig, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}

// ModerationLogRepository stores completed moderation actions
type ModerationLogRepository interface {
	// Record appends an entry and returns it with ID and CreatedAt set
	Record(ctx context.Context, entry *entities.ModerationLogEntry) (*entities.ModerationLogEntry, error)

	// ListRecent returns up to limit entries for a guild, newest first
	ListRecent(ctx context.Context, guildID int64, limit int) ([]*entities.ModerationLogEntry, error)
}
