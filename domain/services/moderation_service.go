package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"warden/domain"
	"warden/domain/entities"
	"warden/domain/events"
	"warden/domain/interfaces"
	"warden/domain/utils"

	log "github.com/sirupsen/logrus"
)

const (
	replyPermissionDenied = "You don't have permissions to do this"
	replyInvalidDuration  = "Invalid duration"
)

// moderationService implements the ModerationService interface
type moderationService struct {
	gateway        interfaces.ModerationGateway
	configService  interfaces.GuildConfigService
	eventPublisher interfaces.EventPublisher
	now            func() time.Time
}

// NewModerationService creates a new moderation service
func NewModerationService(
	gateway interfaces.ModerationGateway,
	configService interfaces.GuildConfigService,
	eventPublisher interfaces.EventPublisher,
) interfaces.ModerationService {
	return &moderationService{
		gateway:        gateway,
		configService:  configService,
		eventPublisher: eventPublisher,
		now:            time.Now,
	}
}

// Kick notifies the target and removes them from the guild
func (s *moderationService) Kick(ctx context.Context, req entities.ModerationRequest) (*entities.ModerationResult, error) {
	req.Action = entities.ActionKick
	if err := s.authorize(req); err != nil {
		return nil, err
	}

	s.notify(ctx, req, fmt.Sprintf("You were kicked from **%s** by **%s**%s",
		req.GuildName, req.Invoker.Name, utils.ReasonSuffix(req.Reason)))

	if err := s.gateway.KickMember(ctx, req.GuildID, req.Target.ID, req.Reason); err != nil {
		return nil, fmt.Errorf("failed to kick member %d: %w", req.Target.ID, err)
	}

	return s.complete(req, fmt.Sprintf("**%s** was kicked", req.Target.Name), 0), nil
}

// Ban notifies the target and bans them from the guild
func (s *moderationService) Ban(ctx context.Context, req entities.ModerationRequest) (*entities.ModerationResult, error) {
	req.Action = entities.ActionBan
	if err := s.authorize(req); err != nil {
		return nil, err
	}

	s.notify(ctx, req, fmt.Sprintf("You were banned from **%s** by **%s**%s",
		req.GuildName, req.Invoker.Name, utils.ReasonSuffix(req.Reason)))

	if err := s.gateway.BanMember(ctx, req.GuildID, req.Target.ID, req.Reason); err != nil {
		return nil, fmt.Errorf("failed to ban member %d: %w", req.Target.ID, err)
	}

	return s.complete(req, fmt.Sprintf("**%s** was banned", req.Target.Name), 0), nil
}

// Unban lifts a ban and then notifies the user
func (s *moderationService) Unban(ctx context.Context, req entities.ModerationRequest) (*entities.ModerationResult, error) {
	req.Action = entities.ActionUnban
	if err := s.authorize(req); err != nil {
		return nil, err
	}

	if err := s.gateway.UnbanUser(ctx, req.GuildID, req.Target.ID, req.Reason); err != nil {
		if errors.Is(err, domain.ErrNotBanned) {
			return nil, domain.Reject(domain.ErrNotBanned, fmt.Sprintf("**%s** is not banned", req.Target.Name))
		}
		return nil, fmt.Errorf("failed to unban user %d: %w", req.Target.ID, err)
	}

	s.notify(ctx, req, fmt.Sprintf("You were unbanned at **%s** by **%s**%s",
		req.GuildName, req.Invoker.Name, utils.ReasonSuffix(req.Reason)))

	return s.complete(req, fmt.Sprintf("**%s** was unbanned", req.Target.Name), 0), nil
}

// Mute times the target out for the parsed duration
func (s *moderationService) Mute(ctx context.Context, req entities.ModerationRequest) (*entities.ModerationResult, error) {
	req.Action = entities.ActionMute
	if err := s.authorize(req); err != nil {
		return nil, err
	}

	duration := utils.ParseTimeout(req.Duration)
	if duration == 0 {
		return nil, domain.Reject(domain.ErrInvalidDuration, replyInvalidDuration)
	}
	until := s.now().Add(duration)

	s.notify(ctx, req, fmt.Sprintf("You were muted at **%s** for **%s** by **%s**%s",
		req.GuildName, utils.FormatTimeout(duration), req.Invoker.Name, utils.ReasonSuffix(req.Reason)))

	if err := s.gateway.TimeoutMember(ctx, req.GuildID, req.Target.ID, &until, req.Reason); err != nil {
		return nil, fmt.Errorf("failed to mute member %d: %w", req.Target.ID, err)
	}

	return s.complete(req, fmt.Sprintf("**%s** was muted", req.Target.Name), 0), nil
}

// Unmute clears the target's timeout. Clearing an absent timeout succeeds.
func (s *moderationService) Unmute(ctx context.Context, req entities.ModerationRequest) (*entities.ModerationResult, error) {
	req.Action = entities.ActionUnmute
	if err := s.authorize(req); err != nil {
		return nil, err
	}

	s.notify(ctx, req, fmt.Sprintf("You were unmuted at **%s** by **%s**%s",
		req.GuildName, req.Invoker.Name, utils.ReasonSuffix(req.Reason)))

	if err := s.gateway.TimeoutMember(ctx, req.GuildID, req.Target.ID, nil, req.Reason); err != nil {
		return nil, fmt.Errorf("failed to unmute member %d: %w", req.Target.ID, err)
	}

	return s.complete(req, fmt.Sprintf("**%s** was unmuted", req.Target.Name), 0), nil
}

// Purge deletes up to req.Limit recent messages from the invoking channel
func (s *moderationService) Purge(ctx context.Context, req entities.ModerationRequest) (*entities.ModerationResult, error) {
	req.Action = entities.ActionPurge
	if err := s.authorize(req); err != nil {
		return nil, err
	}

	deleted := 0
	if req.Limit > 0 {
		var err error
		deleted, err = s.gateway.PurgeMessages(ctx, req.ChannelID, req.Limit, req.Reason)
		if err != nil {
			return nil, fmt.Errorf("failed to purge channel %d: %w", req.ChannelID, err)
		}
	}

	return s.complete(req, fmt.Sprintf("Deleted %d message(s)%s", deleted, utils.ReasonSuffix(req.Reason)), deleted), nil
}

// ConfigureAutorole stores the roles granted to new members and bots
func (s *moderationService) ConfigureAutorole(ctx context.Context, req entities.ModerationRequest, memberRoleID, botRoleID int64) (*entities.ModerationResult, error) {
	req.Action = entities.ActionAutorole
	if err := s.authorize(req); err != nil {
		return nil, err
	}

	if err := s.configService.UpdateAutoroles(ctx, req.GuildID, &memberRoleID, &botRoleID); err != nil {
		return nil, fmt.Errorf("failed to configure autorole: %w", err)
	}

	return s.complete(req, "Autorole is configured", 0), nil
}

// ConfigureLogs makes the invoking channel the guild's log channel
func (s *moderationService) ConfigureLogs(ctx context.Context, req entities.ModerationRequest, channelName string) (*entities.ModerationResult, error) {
	req.Action = entities.ActionLogs
	if err := s.authorize(req); err != nil {
		return nil, err
	}

	channelID := req.ChannelID
	if err := s.configService.UpdateLogChannel(ctx, req.GuildID, &channelID); err != nil {
		return nil, fmt.Errorf("failed to configure log channel: %w", err)
	}

	return s.complete(req, fmt.Sprintf("**%s** is now channel for logs", channelName), 0), nil
}

// authorize checks the invoker's permission and, for member targets, their rank
func (s *moderationService) authorize(req entities.ModerationRequest) error {
	if !req.Invoker.Can(req.Action.RequiredPermission()) {
		return domain.Reject(domain.ErrPermissionDenied, replyPermissionDenied)
	}
	if req.Action.TargetsMember() && !req.Invoker.Outranks(req.Target) {
		return domain.Reject(domain.ErrRankTooLow, fmt.Sprintf("Your top role is same/lower than **%s**'s", req.Target.Name))
	}
	return nil
}

// notify sends a best-effort direct message to the target
func (s *moderationService) notify(ctx context.Context, req entities.ModerationRequest, content string) {
	if err := s.gateway.SendDirectMessage(ctx, req.Target.ID, content); err != nil {
		log.WithFields(log.Fields{
			"guild_id": req.GuildID,
			"user_id":  req.Target.ID,
			"action":   req.Action,
			"error":    err,
		}).Debug("Direct message not delivered")
	}
}

func (s *moderationService) complete(req entities.ModerationRequest, reply string, deleted int) *entities.ModerationResult {
	if err := s.eventPublisher.Publish(events.ModerationActionEvent{
		GuildID:   req.GuildID,
		Action:    string(req.Action),
		InvokerID: req.Invoker.ID,
		TargetID:  req.Target.ID,
		Reason:    req.Reason,
		Deleted:   deleted,
	}); err != nil {
		log.WithError(err).WithField("action", req.Action).Warn("Failed to publish moderation event")
	}

	return &entities.ModerationResult{
		Action:  req.Action,
		Reply:   reply,
		Deleted: deleted,
	}
}
