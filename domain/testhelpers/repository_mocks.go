package testhelpers

import (
	"context"

	"warden/domain/entities"
	"warden/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockGuildConfigRepository is a mock implementation of GuildConfigRepository
type MockGuildConfigRepository struct {
	mock.Mock
}

func (m *MockGuildConfigRepository) GetGuildConfig(ctx context.Context, guildID int64) (*entities.GuildConfig, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GuildConfig), args.Error(1)
}

func (m *MockGuildConfigRepository) UpsertGuildConfig(ctx context.Context, config *entities.GuildConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockGuildConfigRepository) ListGuildConfigs(ctx context.Context) ([]*entities.GuildConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.GuildConfig), args.Error(1)
}

// MockGuildConfigService is a mock implementation of GuildConfigService
type MockGuildConfigService struct {
	mock.Mock
}

func (m *MockGuildConfigService) GetConfig(ctx context.Context, guildID int64) (*entities.GuildConfig, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GuildConfig), args.Error(1)
}

func (m *MockGuildConfigService) UpdateLogChannel(ctx context.Context, guildID int64, channelID *int64) error {
	args := m.Called(ctx, guildID, channelID)
	return args.Error(0)
}

func (m *MockGuildConfigService) UpdateAutoroles(ctx context.Context, guildID int64, memberRoleID, botRoleID *int64) error {
	args := m.Called(ctx, guildID, memberRoleID, botRoleID)
	return args.Error(0)
}

func (m *MockGuildConfigService) ListConfigs(ctx context.Context) ([]*entities.GuildConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.GuildConfig), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockModerationLogRepository is a mock implementation of ModerationLogRepository
type MockModerationLogRepository struct {
	mock.Mock
}

func (m *MockModerationLogRepository) Record(ctx context.Context, entry *entities.ModerationLogEntry) (*entities.ModerationLogEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ModerationLogEntry), args.Error(1)
}

func (m *MockModerationLogRepository) ListRecent(ctx context.Context, guildID int64, limit int) ([]*entities.ModerationLogEntry, error) {
	args := m.Called(ctx, guildID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ModerationLogEntry), args.Error(1)
}
