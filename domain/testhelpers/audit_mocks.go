package testhelpers

import (
	"context"

	"warden/domain/entities"

	"github.com/stretchr/testify/mock"
)

// MockAuditService is a mock implementation of AuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) CommandCompleted(ctx context.Context, guildID int64, command string) error {
	return m.Called(ctx, guildID, command).Error(0)
}

func (m *MockAuditService) CommandPermissionsUpdated(ctx context.Context, guildID int64) error {
	return m.Called(ctx, guildID).Error(0)
}

func (m *MockAuditService) AutoModRuleCreated(ctx context.Context, rule entities.AutoModRuleSnapshot) error {
	return m.Called(ctx, rule).Error(0)
}

func (m *MockAuditService) AutoModRuleDeleted(ctx context.Context, rule entities.AutoModRuleSnapshot) error {
	return m.Called(ctx, rule).Error(0)
}

func (m *MockAuditService) AutoModRuleUpdated(ctx context.Context, rule entities.AutoModRuleSnapshot) error {
	return m.Called(ctx, rule).Error(0)
}

func (m *MockAuditService) AutoModActionExecuted(ctx context.Context, execution entities.AutoModExecution) error {
	return m.Called(ctx, execution).Error(0)
}

func (m *MockAuditService) ChannelCreated(ctx context.Context, channel entities.ChannelSnapshot) error {
	return m.Called(ctx, channel).Error(0)
}

func (m *MockAuditService) ChannelDeleted(ctx context.Context, channel entities.ChannelSnapshot) error {
	return m.Called(ctx, channel).Error(0)
}

func (m *MockAuditService) ChannelUpdated(ctx context.Context, before, after entities.ChannelSnapshot) error {
	return m.Called(ctx, before, after).Error(0)
}

func (m *MockAuditService) GroupChannelUpdated(ctx context.Context, before, after entities.GroupChannelSnapshot) error {
	return m.Called(ctx, before, after).Error(0)
}

func (m *MockAuditService) GuildAvailable(ctx context.Context, guild entities.GuildSnapshot) error {
	return m.Called(ctx, guild).Error(0)
}

func (m *MockAuditService) GuildUnavailable(ctx context.Context, guild entities.GuildSnapshot) error {
	return m.Called(ctx, guild).Error(0)
}

func (m *MockAuditService) GuildJoined(ctx context.Context, guild entities.GuildSnapshot) error {
	return m.Called(ctx, guild).Error(0)
}

func (m *MockAuditService) GuildRemoved(ctx context.Context, guild entities.GuildSnapshot) error {
	return m.Called(ctx, guild).Error(0)
}

func (m *MockAuditService) GuildUpdated(ctx context.Context, before, after entities.GuildSnapshot) error {
	return m.Called(ctx, before, after).Error(0)
}

func (m *MockAuditService) MemberJoined(ctx context.Context, member entities.MemberSnapshot) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockAuditService) MemberLeft(ctx context.Context, member entities.MemberSnapshot) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockAuditService) MemberUpdated(ctx context.Context, before, after entities.MemberSnapshot) error {
	return m.Called(ctx, before, after).Error(0)
}

func (m *MockAuditService) MemberBanned(ctx context.Context, guildID int64, user entities.UserRef) error {
	return m.Called(ctx, guildID, user).Error(0)
}

func (m *MockAuditService) MemberUnbanned(ctx context.Context, guildID int64, user entities.UserRef) error {
	return m.Called(ctx, guildID, user).Error(0)
}

func (m *MockAuditService) MessageEdited(ctx context.Context, before, after entities.MessageSnapshot) error {
	return m.Called(ctx, before, after).Error(0)
}

func (m *MockAuditService) MessageDeleted(ctx context.Context, message entities.MessageSnapshot) error {
	return m.Called(ctx, message).Error(0)
}

func (m *MockAuditService) RoleCreated(ctx context.Context, guildID int64, role entities.RoleRef) error {
	return m.Called(ctx, guildID, role).Error(0)
}

func (m *MockAuditService) RoleDeleted(ctx context.Context, guildID int64, role entities.RoleRef) error {
	return m.Called(ctx, guildID, role).Error(0)
}

func (m *MockAuditService) RoleUpdated(ctx context.Context, before, after entities.RoleSnapshot) error {
	return m.Called(ctx, before, after).Error(0)
}

func (m *MockAuditService) ThreadCreated(ctx context.Context, thread entities.ThreadSnapshot) error {
	return m.Called(ctx, thread).Error(0)
}

func (m *MockAuditService) ThreadJoined(ctx context.Context, thread entities.ThreadSnapshot) error {
	return m.Called(ctx, thread).Error(0)
}

func (m *MockAuditService) ThreadRemoved(ctx context.Context, thread entities.ThreadSnapshot) error {
	return m.Called(ctx, thread).Error(0)
}

func (m *MockAuditService) ThreadDeleted(ctx context.Context, thread entities.ThreadSnapshot) error {
	return m.Called(ctx, thread).Error(0)
}

func (m *MockAuditService) VoiceStateUpdated(ctx context.Context, member entities.MemberSnapshot, before, after entities.VoiceStateSnapshot) error {
	return m.Called(ctx, member, before, after).Error(0)
}
