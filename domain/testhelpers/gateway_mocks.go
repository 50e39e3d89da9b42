package testhelpers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockModerationGateway is a mock implementation of ModerationGateway
type MockModerationGateway struct {
	mock.Mock
}

func (m *MockModerationGateway) KickMember(ctx context.Context, guildID, userID int64, reason string) error {
	args := m.Called(ctx, guildID, userID, reason)
	return args.Error(0)
}

func (m *MockModerationGateway) BanMember(ctx context.Context, guildID, userID int64, reason string) error {
	args := m.Called(ctx, guildID, userID, reason)
	return args.Error(0)
}

func (m *MockModerationGateway) UnbanUser(ctx context.Context, guildID, userID int64, reason string) error {
	args := m.Called(ctx, guildID, userID, reason)
	return args.Error(0)
}

func (m *MockModerationGateway) TimeoutMember(ctx context.Context, guildID, userID int64, until *time.Time, reason string) error {
	args := m.Called(ctx, guildID, userID, until, reason)
	return args.Error(0)
}

func (m *MockModerationGateway) AddMemberRole(ctx context.Context, guildID, userID, roleID int64) error {
	args := m.Called(ctx, guildID, userID, roleID)
	return args.Error(0)
}

func (m *MockModerationGateway) SendDirectMessage(ctx context.Context, userID int64, content string) error {
	args := m.Called(ctx, userID, content)
	return args.Error(0)
}

func (m *MockModerationGateway) SendChannelMessage(ctx context.Context, channelID int64, content string) error {
	args := m.Called(ctx, channelID, content)
	return args.Error(0)
}

func (m *MockModerationGateway) PurgeMessages(ctx context.Context, channelID int64, limit int, reason string) (int, error) {
	args := m.Called(ctx, channelID, limit, reason)
	return args.Int(0), args.Error(1)
}

func (m *MockModerationGateway) CreateVoiceChannel(ctx context.Context, guildID int64, name string, categoryID int64) (int64, error) {
	args := m.Called(ctx, guildID, name, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockModerationGateway) MoveMember(ctx context.Context, guildID, userID, channelID int64) error {
	args := m.Called(ctx, guildID, userID, channelID)
	return args.Error(0)
}

func (m *MockModerationGateway) DeleteChannel(ctx context.Context, channelID int64) error {
	args := m.Called(ctx, channelID)
	return args.Error(0)
}
