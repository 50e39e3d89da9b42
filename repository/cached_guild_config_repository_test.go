package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"warden/domain/entities"
	"warden/domain/testhelpers"
	"warden/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCachedGuildConfigRepository_ReadsThroughOnce(t *testing.T) {
	ctx := context.Background()
	inner := &testhelpers.MockGuildConfigRepository{}
	repo := NewCachedGuildConfigRepository(inner, time.Minute)

	inner.On("GetGuildConfig", ctx, int64(1)).Return(testutil.CreateTestGuildConfig(1, 2, 3, 4), nil).Once()

	for range 3 {
		config, err := repo.GetGuildConfig(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), *config.LogChannelID)
	}
	inner.AssertExpectations(t)
}

func TestCachedGuildConfigRepository_UpsertRefreshesCache(t *testing.T) {
	ctx := context.Background()
	inner := &testhelpers.MockGuildConfigRepository{}
	repo := NewCachedGuildConfigRepository(inner, time.Minute)

	inner.On("GetGuildConfig", ctx, int64(1)).Return(&entities.GuildConfig{GuildID: 1}, nil).Once()
	inner.On("UpsertGuildConfig", ctx, mock.Anything).Return(nil).Once()

	_, err := repo.GetGuildConfig(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, repo.UpsertGuildConfig(ctx, testutil.CreateTestGuildConfig(1, 50, 3, 4)))

	config, err := repo.GetGuildConfig(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(50), *config.LogChannelID)
	inner.AssertExpectations(t)
}

func TestCachedGuildConfigRepository_FailedUpsertInvalidates(t *testing.T) {
	ctx := context.Background()
	inner := &testhelpers.MockGuildConfigRepository{}
	repo := NewCachedGuildConfigRepository(inner, time.Minute)

	inner.On("GetGuildConfig", ctx, int64(1)).Return(&entities.GuildConfig{GuildID: 1}, nil).Twice()
	inner.On("UpsertGuildConfig", ctx, mock.Anything).Return(errors.New("disk full")).Once()

	_, err := repo.GetGuildConfig(ctx, 1)
	require.NoError(t, err)

	assert.Error(t, repo.UpsertGuildConfig(ctx, testutil.CreateTestGuildConfig(1, 50, 3, 4)))

	_, err = repo.GetGuildConfig(ctx, 1)
	require.NoError(t, err)
	inner.AssertExpectations(t)
}

func TestCachedGuildConfigRepository_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	inner := &testhelpers.MockGuildConfigRepository{}
	repo := NewCachedGuildConfigRepository(inner, time.Minute)

	inner.On("GetGuildConfig", ctx, int64(1)).Return(nil, errors.New("timeout")).Once()
	inner.On("GetGuildConfig", ctx, int64(1)).Return(&entities.GuildConfig{GuildID: 1}, nil).Once()

	_, err := repo.GetGuildConfig(ctx, 1)
	require.Error(t, err)

	config, err := repo.GetGuildConfig(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), config.GuildID)
}
