package services

import (
	"context"
	"fmt"

	"warden/domain/entities"
	"warden/domain/events"
	"warden/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

const (
	defaultRecentLimit = 25
	maxRecentLimit     = 100
)

// moderationLogService implements the ModerationLogService interface
type moderationLogService struct {
	repo interfaces.ModerationLogRepository
}

// NewModerationLogService creates a new moderation log service
func NewModerationLogService(repo interfaces.ModerationLogRepository) interfaces.ModerationLogService {
	return &moderationLogService{repo: repo}
}

// RecordAction stores a completed moderation action
func (s *moderationLogService) RecordAction(ctx context.Context, event events.ModerationActionEvent) (*entities.ModerationLogEntry, error) {
	entry := &entities.ModerationLogEntry{
		GuildID:   event.GuildID,
		Action:    entities.ModerationAction(event.Action),
		InvokerID: event.InvokerID,
		Reason:    event.Reason,
		Deleted:   event.Deleted,
	}
	if event.TargetID != 0 {
		target := event.TargetID
		entry.TargetID = &target
	}

	recorded, err := s.repo.Record(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to record moderation action: %w", err)
	}

	log.WithFields(log.Fields{
		"guild_id": event.GuildID,
		"action":   event.Action,
		"entry_id": recorded.ID,
	}).Debug("Recorded moderation action")

	return recorded, nil
}

// Recent returns the newest entries for a guild. Out of range limits fall back to the default.
func (s *moderationLogService) Recent(ctx context.Context, guildID int64, limit int) ([]*entities.ModerationLogEntry, error) {
	if limit <= 0 || limit > maxRecentLimit {
		limit = defaultRecentLimit
	}

	entries, err := s.repo.ListRecent(ctx, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list moderation log: %w", err)
	}
	return entries, nil
}

// HandleModerationAction adapts RecordAction to a local event handler
func HandleModerationAction(service interfaces.ModerationLogService) func(context.Context, events.Event) error {
	return func(ctx context.Context, event events.Event) error {
		action, ok := event.(events.ModerationActionEvent)
		if !ok {
			return fmt.Errorf("unexpected event type %T", event)
		}
		_, err := service.RecordAction(ctx, action)
		return err
	}
}
