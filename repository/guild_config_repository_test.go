package repository

import (
	"context"
	"testing"

	"warden/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuildConfigRepository_GetGuildConfig(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGuildConfigRepository(testDB.DB)
	ctx := context.Background()

	t.Run("missing guild yields empty config", func(t *testing.T) {
		config, err := repo.GetGuildConfig(ctx, 999999)
		require.NoError(t, err)
		require.NotNil(t, config)

		assert.Equal(t, int64(999999), config.GuildID)
		assert.Nil(t, config.LogChannelID)
		assert.False(t, config.HasAutoroles())
	})

	t.Run("stored guild", func(t *testing.T) {
		require.NoError(t, repo.UpsertGuildConfig(ctx, testutil.CreateTestGuildConfig(123, 456, 789, 1011)))

		config, err := repo.GetGuildConfig(ctx, 123)
		require.NoError(t, err)
		require.NotNil(t, config.LogChannelID)
		assert.Equal(t, int64(456), *config.LogChannelID)

		role, ok := config.AutoroleFor(true)
		assert.True(t, ok)
		assert.Equal(t, int64(1011), role)
	})
}

func TestGuildConfigRepository_UpsertGuildConfig(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGuildConfigRepository(testDB.DB)
	ctx := context.Background()

	config := testutil.CreateTestGuildConfig(123, 456, 789, 1011)
	require.NoError(t, repo.UpsertGuildConfig(ctx, config))

	t.Run("update replaces fields", func(t *testing.T) {
		newChannel := int64(999)
		config.LogChannelID = &newChannel
		config.AutoroleBotID = nil
		require.NoError(t, repo.UpsertGuildConfig(ctx, config))

		stored, err := repo.GetGuildConfig(ctx, 123)
		require.NoError(t, err)
		assert.Equal(t, int64(999), *stored.LogChannelID)
		assert.Nil(t, stored.AutoroleBotID)
		assert.False(t, stored.HasAutoroles())
	})

	t.Run("list returns every guild", func(t *testing.T) {
		require.NoError(t, repo.UpsertGuildConfig(ctx, testutil.CreateTestGuildConfig(100, 1, 2, 3)))

		configs, err := repo.ListGuildConfigs(ctx)
		require.NoError(t, err)
		require.Len(t, configs, 2)
		assert.Equal(t, int64(100), configs[0].GuildID)
		assert.Equal(t, int64(123), configs[1].GuildID)
	})
}

func TestGuildConfigRepository_WithTx(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	tx, err := testDB.DB.Begin(ctx)
	require.NoError(t, err)

	txRepo := NewGuildConfigRepositoryWithTx(tx)
	require.NoError(t, txRepo.UpsertGuildConfig(ctx, testutil.CreateTestGuildConfig(321, 1, 2, 3)))

	inside, err := txRepo.GetGuildConfig(ctx, 321)
	require.NoError(t, err)
	assert.NotNil(t, inside.LogChannelID)

	require.NoError(t, tx.Rollback(ctx))

	outside, err := NewGuildConfigRepository(testDB.DB).GetGuildConfig(ctx, 321)
	require.NoError(t, err)
	assert.Nil(t, outside.LogChannelID)
}
