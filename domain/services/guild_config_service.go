package services

import (
	"context"
	"fmt"

	"warden/domain/entities"
	"warden/domain/events"
	"warden/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// guildConfigService implements the GuildConfigService interface
type guildConfigService struct {
	guildConfigRepo interfaces.GuildConfigRepository
	eventPublisher  interfaces.EventPublisher
}

// NewGuildConfigService creates a new guild config service
func NewGuildConfigService(guildConfigRepo interfaces.GuildConfigRepository, eventPublisher interfaces.EventPublisher) interfaces.GuildConfigService {
	return &guildConfigService{
		guildConfigRepo: guildConfigRepo,
		eventPublisher:  eventPublisher,
	}
}

// GetConfig retrieves the config for a guild
func (s *guildConfigService) GetConfig(ctx context.Context, guildID int64) (*entities.GuildConfig, error) {
	config, err := s.guildConfigRepo.GetGuildConfig(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}
	return config, nil
}

// UpdateLogChannel sets the channel that receives audit lines
func (s *guildConfigService) UpdateLogChannel(ctx context.Context, guildID int64, channelID *int64) error {
	config, err := s.guildConfigRepo.GetGuildConfig(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get guild config: %w", err)
	}

	config.SetLogChannel(channelID)

	return s.save(ctx, config)
}

// UpdateAutoroles sets the roles granted to new members and bots
func (s *guildConfigService) UpdateAutoroles(ctx context.Context, guildID int64, memberRoleID, botRoleID *int64) error {
	config, err := s.guildConfigRepo.GetGuildConfig(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get guild config: %w", err)
	}

	config.SetAutoroles(memberRoleID, botRoleID)

	return s.save(ctx, config)
}

// ListConfigs returns every stored config
func (s *guildConfigService) ListConfigs(ctx context.Context) ([]*entities.GuildConfig, error) {
	configs, err := s.guildConfigRepo.ListGuildConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list guild configs: %w", err)
	}
	return configs, nil
}

func (s *guildConfigService) save(ctx context.Context, config *entities.GuildConfig) error {
	if err := s.guildConfigRepo.UpsertGuildConfig(ctx, config); err != nil {
		return fmt.Errorf("failed to update guild config: %w", err)
	}

	if err := s.eventPublisher.Publish(events.GuildConfigUpdatedEvent{
		GuildID:          config.GuildID,
		LogChannelID:     config.LogChannelID,
		AutoroleMemberID: config.AutoroleMemberID,
		AutoroleBotID:    config.AutoroleBotID,
	}); err != nil {
		log.WithError(err).WithField("guild_id", config.GuildID).Warn("Failed to publish guild config update")
	}

	return nil
}
