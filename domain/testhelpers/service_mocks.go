package testhelpers

import (
	"context"

	"warden/domain/entities"

	"github.com/stretchr/testify/mock"
)

// MockModerationService is a mock implementation of ModerationService
type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) result(args mock.Arguments) (*entities.ModerationResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ModerationResult), args.Error(1)
}

func (m *MockModerationService) Kick(ctx context.Context, req entities.ModerationRequest) (*entities.ModerationResult, error) {
	return m.result(m.Called(ctx, req))
}

func (m *MockModerationService) Ban(ctx context.Context, req entities.ModerationRequest) (*entities.ModerationResult, error) {
	return m.result(m.Called(ctx, req))
}

func (m *MockModerationService) Unban(ctx context.Context, req entities.ModerationRequest) (*entities.ModerationResult, error) {
	return m.result(m.Called(ctx, req))
}

func (m *MockModerationService) Mute(ctx context.Context, req entities.ModerationRequest) (*entities.ModerationResult, error) {
	return m.result(m.Called(ctx, req))
}

func (m *MockModerationService) Unmute(ctx context.Context, req entities.ModerationRequest) (*entities.ModerationResult, error) {
	return m.result(m.Called(ctx, req))
}

func (m *MockModerationService) Purge(ctx context.Context, req entities.ModerationRequest) (*entities.ModerationResult, error) {
	return m.result(m.Called(ctx, req))
}

func (m *MockModerationService) ConfigureAutorole(ctx context.Context, req entities.ModerationRequest, memberRoleID, botRoleID int64) (*entities.ModerationResult, error) {
	return m.result(m.Called(ctx, req, memberRoleID, botRoleID))
}

func (m *MockModerationService) ConfigureLogs(ctx context.Context, req entities.ModerationRequest, channelName string) (*entities.ModerationResult, error) {
	return m.result(m.Called(ctx, req, channelName))
}
