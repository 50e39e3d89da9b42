package services

import (
	"context"
	"fmt"

	"warden/domain/entities"
	"warden/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// autoroleService implements the AutoroleService interface
type autoroleService struct {
	configService interfaces.GuildConfigService
	members       interfaces.MemberModerator
}

// NewAutoroleService creates a new autorole service
func NewAutoroleService(configService interfaces.GuildConfigService, members interfaces.MemberModerator) interfaces.AutoroleService {
	return &autoroleService{
		configService: configService,
		members:       members,
	}
}

// ApplyAutorole grants the bot role to bots and the member role to everyone else
func (s *autoroleService) ApplyAutorole(ctx context.Context, member entities.MemberSnapshot) (int64, error) {
	config, err := s.configService.GetConfig(ctx, member.GuildID)
	if err != nil {
		return 0, fmt.Errorf("failed to get guild config: %w", err)
	}

	roleID, ok := config.AutoroleFor(member.Bot)
	if !ok {
		return 0, nil
	}

	if err := s.members.AddMemberRole(ctx, member.GuildID, int64(member.User), roleID); err != nil {
		return 0, fmt.Errorf("failed to grant autorole %d to %d: %w", roleID, member.User, err)
	}

	log.WithFields(log.Fields{
		"guild_id": member.GuildID,
		"user_id":  int64(member.User),
		"role_id":  roleID,
		"bot":      member.Bot,
	}).Info("Granted autorole")

	return roleID, nil
}
