package services

import (
	"context"
	"fmt"

	"warden/domain/entities"
	"warden/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// LobbyChannelName is the voice channel that spawns personal channels
const LobbyChannelName = "Create channel"

// PersonalChannelName is the name of the voice channel created for a member
func PersonalChannelName(username string) string {
	return fmt.Sprintf("Created by %s", username)
}

// voiceLobbyService implements the VoiceLobbyService interface
type voiceLobbyService struct {
	channels interfaces.ChannelManager
}

// NewVoiceLobbyService creates a new voice lobby service
func NewVoiceLobbyService(channels interfaces.ChannelManager) interfaces.VoiceLobbyService {
	return &voiceLobbyService{channels: channels}
}

// SetupLobby creates the lobby channel at the top level of a guild
func (s *voiceLobbyService) SetupLobby(ctx context.Context, guildID int64) error {
	channelID, err := s.channels.CreateVoiceChannel(ctx, guildID, LobbyChannelName, 0)
	if err != nil {
		return fmt.Errorf("failed to create lobby channel: %w", err)
	}

	log.WithFields(log.Fields{
		"guild_id":   guildID,
		"channel_id": channelID,
	}).Info("Created voice lobby")
	return nil
}

// HandleVoiceStateUpdate moves a member entering the lobby into a new personal
// channel in the lobby's category, and deletes the personal channel they leave.
func (s *voiceLobbyService) HandleVoiceStateUpdate(ctx context.Context, member entities.MemberSnapshot, before, after entities.VoiceStateSnapshot) error {
	personal := PersonalChannelName(member.Username)

	if after.Connected() && after.ChannelName == LobbyChannelName {
		channelID, err := s.channels.CreateVoiceChannel(ctx, member.GuildID, personal, int64(after.Category))
		if err != nil {
			return fmt.Errorf("failed to create personal channel for %d: %w", member.User, err)
		}
		if err := s.channels.MoveMember(ctx, member.GuildID, int64(member.User), channelID); err != nil {
			return fmt.Errorf("failed to move %d to personal channel: %w", member.User, err)
		}
	}

	if before.Connected() && before.ChannelName == personal && before.Channel != after.Channel {
		if err := s.channels.DeleteChannel(ctx, int64(before.Channel)); err != nil {
			return fmt.Errorf("failed to delete personal channel %d: %w", before.Channel, err)
		}
	}

	return nil
}
