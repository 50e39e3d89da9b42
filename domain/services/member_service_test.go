package services

import (
	"context"
	"errors"
	"testing"

	"warden/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func configuredAutoroles() *entities.GuildConfig {
	memberRole, botRole := TestMemberRoleID, TestBotRoleID
	return &entities.GuildConfig{GuildID: TestGuildID, AutoroleMemberID: &memberRole, AutoroleBotID: &botRole}
}

func TestAutoroleService_ApplyAutorole(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		bot      bool
		expected int64
	}{
		{"member receives member role", false, TestMemberRoleID},
		{"bot receives bot role", true, TestBotRoleID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := NewTestMocks()
			service := NewAutoroleService(mocks.ConfigService, mocks.Gateway)

			mocks.ConfigService.On("GetConfig", ctx, TestGuildID).Return(configuredAutoroles(), nil)
			mocks.Gateway.On("AddMemberRole", ctx, TestGuildID, TestTargetID, tt.expected).Return(nil).Once()

			roleID, err := service.ApplyAutorole(ctx, entities.MemberSnapshot{
				GuildID: TestGuildID, User: entities.UserRef(TestTargetID), Bot: tt.bot,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, roleID)
			mocks.AssertAllExpectations(t)
		})
	}
}

func TestAutoroleService_NotConfigured(t *testing.T) {
	ctx := context.Background()
	mocks := NewTestMocks()
	service := NewAutoroleService(mocks.ConfigService, mocks.Gateway)

	memberRole := TestMemberRoleID
	mocks.ConfigService.On("GetConfig", ctx, TestGuildID).
		Return(&entities.GuildConfig{GuildID: TestGuildID, AutoroleMemberID: &memberRole}, nil)

	roleID, err := service.ApplyAutorole(ctx, entities.MemberSnapshot{GuildID: TestGuildID, User: entities.UserRef(TestTargetID)})
	require.NoError(t, err)
	assert.Zero(t, roleID)
	mocks.Gateway.AssertNotCalled(t, "AddMemberRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAutoroleService_GrantFailure(t *testing.T) {
	ctx := context.Background()
	mocks := NewTestMocks()
	service := NewAutoroleService(mocks.ConfigService, mocks.Gateway)

	mocks.ConfigService.On("GetConfig", ctx, TestGuildID).Return(configuredAutoroles(), nil)
	mocks.Gateway.On("AddMemberRole", ctx, TestGuildID, TestTargetID, TestMemberRoleID).Return(errors.New("missing permissions"))

	_, err := service.ApplyAutorole(ctx, entities.MemberSnapshot{GuildID: TestGuildID, User: entities.UserRef(TestTargetID)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing permissions")
}
