package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"warden/domain"
	"warden/domain/entities"
	"warden/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestModerationService(mocks *TestMocks, now time.Time) *moderationService {
	svc := NewModerationService(mocks.Gateway, mocks.ConfigService, mocks.EventPublisher).(*moderationService)
	svc.now = func() time.Time { return now }
	return svc
}

func requireRejection(t *testing.T, err error, reason error, reply string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, reason), "expected %v, got %v", reason, err)
	var rejection *domain.Rejection
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, reply, rejection.Reply)
}

func TestModerationService_Kick(t *testing.T) {
	ctx := context.Background()

	t.Run("notifies then kicks", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestModerationService(mocks, time.Now())

		req := newRequest(newInvoker(entities.PermissionKickMembers, 10), newTarget(5))
		req.Reason = "spam"

		dm := mocks.Gateway.On("SendDirectMessage", ctx, TestTargetID,
			"You were kicked from **Test Guild** by **moderator**. Reason: **spam**").Return(nil).Once()
		mocks.Gateway.On("KickMember", ctx, TestGuildID, TestTargetID, "spam").Return(nil).Once().NotBefore(dm)
		mocks.EventPublisher.On("Publish", events.ModerationActionEvent{
			GuildID: TestGuildID, Action: "kick", InvokerID: TestInvokerID, TargetID: TestTargetID, Reason: "spam",
		}).Return(nil).Once()

		result, err := svc.Kick(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "**troublemaker** was kicked", result.Reply)
		assert.Equal(t, entities.ActionKick, result.Action)
		mocks.AssertAllExpectations(t)
	})

	t.Run("direct message failure does not abort", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestModerationService(mocks, time.Now())
		mocks.ExpectAnyPublish()

		mocks.Gateway.On("SendDirectMessage", ctx, TestTargetID, mock.Anything).Return(errors.New("cannot send messages to this user"))
		mocks.Gateway.On("KickMember", ctx, TestGuildID, TestTargetID, "").Return(nil).Once()

		result, err := svc.Kick(ctx, newRequest(newInvoker(entities.PermissionKickMembers, 10), newTarget(5)))
		require.NoError(t, err)
		assert.Equal(t, "**troublemaker** was kicked", result.Reply)
		mocks.AssertAllExpectations(t)
	})

	t.Run("missing permission", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestModerationService(mocks, time.Now())

		_, err := svc.Kick(ctx, newRequest(newInvoker(entities.PermissionBanMembers, 10), newTarget(5)))
		requireRejection(t, err, domain.ErrPermissionDenied, "You don't have permissions to do this")
		mocks.Gateway.AssertNotCalled(t, "KickMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mocks.Gateway.AssertNotCalled(t, "SendDirectMessage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("platform failure propagates", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestModerationService(mocks, time.Now())

		mocks.Gateway.On("SendDirectMessage", ctx, TestTargetID, mock.Anything).Return(nil)
		mocks.Gateway.On("KickMember", ctx, TestGuildID, TestTargetID, "").Return(errors.New("missing access"))

		_, err := svc.Kick(ctx, newRequest(newInvoker(entities.PermissionKickMembers, 10), newTarget(5)))
		require.Error(t, err)
		var rejection *domain.Rejection
		assert.False(t, errors.As(err, &rejection))
		mocks.EventPublisher.AssertNotCalled(t, "Publish", mock.Anything)
	})
}

func TestModerationService_RankCheck(t *testing.T) {
	ctx := context.Background()
	allPermissions := entities.PermissionKickMembers | entities.PermissionBanMembers | entities.PermissionModerateMembers

	actions := map[string]func(*moderationService, entities.ModerationRequest) (*entities.ModerationResult, error){
		"kick":   func(s *moderationService, r entities.ModerationRequest) (*entities.ModerationResult, error) { return s.Kick(ctx, r) },
		"ban":    func(s *moderationService, r entities.ModerationRequest) (*entities.ModerationResult, error) { return s.Ban(ctx, r) },
		"mute":   func(s *moderationService, r entities.ModerationRequest) (*entities.ModerationResult, error) { return s.Mute(ctx, r) },
		"unmute": func(s *moderationService, r entities.ModerationRequest) (*entities.ModerationResult, error) { return s.Unmute(ctx, r) },
	}

	for name, run := range actions {
		for _, positions := range [][2]int{{5, 5}, {3, 5}} {
			t.Run(name, func(t *testing.T) {
				mocks := NewTestMocks()
				svc := newTestModerationService(mocks, time.Now())

				req := newRequest(newInvoker(allPermissions, positions[0]), newTarget(positions[1]))
				req.Duration = "1h"

				_, err := run(svc, req)
				requireRejection(t, err, domain.ErrRankTooLow, "Your top role is same/lower than **troublemaker**'s")
				assert.True(t, errors.Is(err, domain.ErrRankTooLow))
				assert.Empty(t, mocks.Gateway.Calls, "no platform call expected")
				assert.Empty(t, mocks.EventPublisher.Calls)
			})
		}
	}
}

func TestModerationService_AdministratorBypassesPermission(t *testing.T) {
	ctx := context.Background()
	mocks := NewTestMocks()
	svc := newTestModerationService(mocks, time.Now())
	mocks.ExpectAnyPublish()

	mocks.Gateway.On("SendDirectMessage", ctx, TestTargetID, mock.Anything).Return(nil)
	mocks.Gateway.On("BanMember", ctx, TestGuildID, TestTargetID, "").Return(nil).Once()

	result, err := svc.Ban(ctx, newRequest(newInvoker(entities.PermissionAdministrator, 10), newTarget(1)))
	require.NoError(t, err)
	assert.Equal(t, "**troublemaker** was banned", result.Reply)
	mocks.AssertAllExpectations(t)
}

func TestModerationService_Ban(t *testing.T) {
	ctx := context.Background()
	mocks := NewTestMocks()
	svc := newTestModerationService(mocks, time.Now())
	mocks.ExpectAnyPublish()

	dm := mocks.Gateway.On("SendDirectMessage", ctx, TestTargetID, "You were banned from **Test Guild** by **moderator**").Return(nil).Once()
	mocks.Gateway.On("BanMember", ctx, TestGuildID, TestTargetID, "").Return(nil).Once().NotBefore(dm)

	result, err := svc.Ban(ctx, newRequest(newInvoker(entities.PermissionBanMembers, 10), newTarget(1)))
	require.NoError(t, err)
	assert.Equal(t, "**troublemaker** was banned", result.Reply)
	mocks.AssertAllExpectations(t)
}

func TestModerationService_Unban(t *testing.T) {
	ctx := context.Background()

	t.Run("unbans then notifies", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestModerationService(mocks, time.Now())
		mocks.ExpectAnyPublish()

		req := newRequest(newInvoker(entities.PermissionBanMembers, 0), newTarget(0))
		req.Reason = "appeal accepted"

		unban := mocks.Gateway.On("UnbanUser", ctx, TestGuildID, TestTargetID, "appeal accepted").Return(nil).Once()
		mocks.Gateway.On("SendDirectMessage", ctx, TestTargetID,
			"You were unbanned at **Test Guild** by **moderator**. Reason: **appeal accepted**").Return(nil).Once().NotBefore(unban)

		result, err := svc.Unban(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "**troublemaker** was unbanned", result.Reply)
		mocks.AssertAllExpectations(t)
	})

	t.Run("user not banned", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestModerationService(mocks, time.Now())

		mocks.Gateway.On("UnbanUser", ctx, TestGuildID, TestTargetID, "").
			Return(errors.Join(domain.ErrNotBanned, errors.New("HTTP 404 Not Found"))).Once()

		_, err := svc.Unban(ctx, newRequest(newInvoker(entities.PermissionBanMembers, 0), newTarget(0)))
		requireRejection(t, err, domain.ErrNotBanned, "**troublemaker** is not banned")
		mocks.Gateway.AssertNotCalled(t, "SendDirectMessage", mock.Anything, mock.Anything, mock.Anything)
		mocks.EventPublisher.AssertNotCalled(t, "Publish", mock.Anything)
	})

	t.Run("requires ban permission", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestModerationService(mocks, time.Now())

		_, err := svc.Unban(ctx, newRequest(newInvoker(entities.PermissionKickMembers, 0), newTarget(0)))
		requireRejection(t, err, domain.ErrPermissionDenied, "You don't have permissions to do this")
	})
}

func TestModerationService_Mute(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		duration string
		until    time.Time
		dmSpan   string
	}{
		{"one day", "1d", now.Add(24 * time.Hour), "1d"},
		{"hours and minutes", "1h30m", now.Add(90 * time.Minute), "1h 30m"},
		{"clamped", "30d", now.Add(28 * 24 * time.Hour), "28d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := NewTestMocks()
			svc := newTestModerationService(mocks, now)
			mocks.ExpectAnyPublish()

			req := newRequest(newInvoker(entities.PermissionModerateMembers, 10), newTarget(1))
			req.Duration = tt.duration

			mocks.Gateway.On("SendDirectMessage", ctx, TestTargetID,
				"You were muted at **Test Guild** for **"+tt.dmSpan+"** by **moderator**").Return(nil).Once()
			mocks.Gateway.On("TimeoutMember", ctx, TestGuildID, TestTargetID, mock.MatchedBy(func(until *time.Time) bool {
				return until != nil && until.Equal(tt.until)
			}), "").Return(nil).Once()

			result, err := svc.Mute(ctx, req)
			require.NoError(t, err)
			assert.Equal(t, "**troublemaker** was muted", result.Reply)
			mocks.AssertAllExpectations(t)
		})
	}

	t.Run("zero duration is rejected", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestModerationService(mocks, now)

		req := newRequest(newInvoker(entities.PermissionModerateMembers, 10), newTarget(1))
		req.Duration = "soon"

		_, err := svc.Mute(ctx, req)
		requireRejection(t, err, domain.ErrInvalidDuration, "Invalid duration")
		assert.Empty(t, mocks.Gateway.Calls)
	})
}

func TestModerationService_Unmute(t *testing.T) {
	ctx := context.Background()

	t.Run("clears timeout", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestModerationService(mocks, time.Now())
		mocks.ExpectAnyPublish()

		mocks.Gateway.On("SendDirectMessage", ctx, TestTargetID, "You were unmuted at **Test Guild** by **moderator**").Return(nil)
		mocks.Gateway.On("TimeoutMember", ctx, TestGuildID, TestTargetID, (*time.Time)(nil), "").Return(nil).Once()

		result, err := svc.Unmute(ctx, newRequest(newInvoker(entities.PermissionModerateMembers, 10), newTarget(1)))
		require.NoError(t, err)
		assert.Equal(t, "**troublemaker** was unmuted", result.Reply)
		mocks.AssertAllExpectations(t)
	})

	t.Run("already unmuted member succeeds", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestModerationService(mocks, time.Now())
		mocks.ExpectAnyPublish()

		mocks.Gateway.On("SendDirectMessage", ctx, TestTargetID, mock.Anything).Return(nil)
		mocks.Gateway.On("TimeoutMember", ctx, TestGuildID, TestTargetID, (*time.Time)(nil), "").Return(nil).Twice()

		req := newRequest(newInvoker(entities.PermissionModerateMembers, 10), newTarget(1))
		_, err := svc.Unmute(ctx, req)
		require.NoError(t, err)
		_, err = svc.Unmute(ctx, req)
		require.NoError(t, err)
		mocks.AssertAllExpectations(t)
	})
}

func TestModerationService_Purge(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes and reports count", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestModerationService(mocks, time.Now())
		mocks.EventPublisher.On("Publish", events.ModerationActionEvent{
			GuildID: TestGuildID, Action: "purge", InvokerID: TestInvokerID, Reason: "raid", Deleted: 42,
		}).Return(nil).Once()

		req := newRequest(newInvoker(entities.PermissionManageMessages, 0), entities.Actor{})
		req.Limit = 50
		req.Reason = "raid"

		mocks.Gateway.On("PurgeMessages", ctx, TestChannelID, 50, "raid").Return(42, nil).Once()

		result, err := svc.Purge(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "Deleted 42 message(s). Reason: **raid**", result.Reply)
		assert.Equal(t, 42, result.Deleted)
		mocks.AssertAllExpectations(t)
	})

	t.Run("zero limit deletes nothing", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestModerationService(mocks, time.Now())
		mocks.ExpectAnyPublish()

		req := newRequest(newInvoker(entities.PermissionManageMessages, 0), entities.Actor{})

		result, err := svc.Purge(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "Deleted 0 message(s)", result.Reply)
		mocks.Gateway.AssertNotCalled(t, "PurgeMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("requires manage messages", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestModerationService(mocks, time.Now())

		req := newRequest(newInvoker(entities.PermissionKickMembers, 0), entities.Actor{})
		req.Limit = 10

		_, err := svc.Purge(ctx, req)
		requireRejection(t, err, domain.ErrPermissionDenied, "You don't have permissions to do this")
	})
}

func TestModerationService_ConfigureAutorole(t *testing.T) {
	ctx := context.Background()

	t.Run("administrator configures roles", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestModerationService(mocks, time.Now())
		mocks.ExpectAnyPublish()

		mocks.ConfigService.On("UpdateAutoroles", ctx, TestGuildID,
			mock.MatchedBy(func(id *int64) bool { return id != nil && *id == TestMemberRoleID }),
			mock.MatchedBy(func(id *int64) bool { return id != nil && *id == TestBotRoleID }),
		).Return(nil).Once()

		result, err := svc.ConfigureAutorole(ctx, newRequest(newInvoker(entities.PermissionAdministrator, 0), entities.Actor{}), TestMemberRoleID, TestBotRoleID)
		require.NoError(t, err)
		assert.Equal(t, "Autorole is configured", result.Reply)
		mocks.AssertAllExpectations(t)
	})

	t.Run("non administrator is refused", func(t *testing.T) {
		mocks := NewTestMocks()
		svc := newTestModerationService(mocks, time.Now())

		_, err := svc.ConfigureAutorole(ctx, newRequest(newInvoker(entities.PermissionManageGuild, 0), entities.Actor{}), 1, 2)
		requireRejection(t, err, domain.ErrPermissionDenied, "You don't have permissions to do this")
		mocks.ConfigService.AssertNotCalled(t, "UpdateAutoroles", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestModerationService_ConfigureLogs(t *testing.T) {
	ctx := context.Background()
	mocks := NewTestMocks()
	svc := newTestModerationService(mocks, time.Now())
	mocks.ExpectAnyPublish()

	mocks.ConfigService.On("UpdateLogChannel", ctx, TestGuildID,
		mock.MatchedBy(func(id *int64) bool { return id != nil && *id == TestChannelID }),
	).Return(nil).Once()

	result, err := svc.ConfigureLogs(ctx, newRequest(newInvoker(entities.PermissionAdministrator, 0), entities.Actor{}), "mod-log")
	require.NoError(t, err)
	assert.Equal(t, "**mod-log** is now channel for logs", result.Reply)
	mocks.AssertAllExpectations(t)
}
