package services

import (
	"testing"

	"warden/domain/entities"
	"warden/domain/testhelpers"

	"github.com/stretchr/testify/mock"
)

// Test constants for consistent test data
const (
	TestGuildID      = int64(555555555)
	TestChannelID    = int64(987654321)
	TestLogChannelID = int64(111111111)
	TestInvokerID    = int64(100)
	TestTargetID     = int64(200)
	TestMemberRoleID = int64(700)
	TestBotRoleID    = int64(800)
)

// TestMocks aggregates all mocks for testing
type TestMocks struct {
	GuildConfigRepo *testhelpers.MockGuildConfigRepository
	ConfigService   *testhelpers.MockGuildConfigService
	Gateway         *testhelpers.MockModerationGateway
	EventPublisher  *testhelpers.MockEventPublisher
}

// NewTestMocks creates a new set of mocks
func NewTestMocks() *TestMocks {
	return &TestMocks{
		GuildConfigRepo: &testhelpers.MockGuildConfigRepository{},
		ConfigService:   &testhelpers.MockGuildConfigService{},
		Gateway:         &testhelpers.MockModerationGateway{},
		EventPublisher:  &testhelpers.MockEventPublisher{},
	}
}

// AssertAllExpectations verifies all mock expectations were met
func (m *TestMocks) AssertAllExpectations(t *testing.T) {
	m.GuildConfigRepo.AssertExpectations(t)
	m.ConfigService.AssertExpectations(t)
	m.Gateway.AssertExpectations(t)
	m.EventPublisher.AssertExpectations(t)
}

// ExpectAnyPublish accepts any published event
func (m *TestMocks) ExpectAnyPublish() {
	m.EventPublisher.On("Publish", mock.Anything).Return(nil).Maybe()
}

// ExpectLogChannel makes the config service report a log channel for TestGuildID
func (m *TestMocks) ExpectLogChannel() {
	channelID := TestLogChannelID
	m.ConfigService.On("GetConfig", mock.Anything, TestGuildID).
		Return(&entities.GuildConfig{GuildID: TestGuildID, LogChannelID: &channelID}, nil)
}

// ExpectNoLogChannel makes the config service report an empty config for TestGuildID
func (m *TestMocks) ExpectNoLogChannel() {
	m.ConfigService.On("GetConfig", mock.Anything, TestGuildID).
		Return(&entities.GuildConfig{GuildID: TestGuildID}, nil)
}

func newInvoker(permissions int64, topRole int) entities.Actor {
	return entities.Actor{ID: TestInvokerID, Name: "moderator", Permissions: permissions, TopRolePosition: topRole}
}

func newTarget(topRole int) entities.Actor {
	return entities.Actor{ID: TestTargetID, Name: "troublemaker", TopRolePosition: topRole}
}

func newRequest(invoker, target entities.Actor) entities.ModerationRequest {
	return entities.ModerationRequest{
		GuildID:   TestGuildID,
		GuildName: "Test Guild",
		ChannelID: TestChannelID,
		Invoker:   invoker,
		Target:    target,
	}
}
