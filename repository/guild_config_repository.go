package repository

import (
	"context"
	"errors"
	"fmt"

	"warden/database"
	"warden/domain/entities"
	"warden/infrastructure/observability"

	"github.com/jackc/pgx/v5"
)

// GuildConfigRepository implements the GuildConfigRepository interface over Postgres
type GuildConfigRepository struct {
	q Queryable
}

// NewGuildConfigRepository creates a new guild config repository
func NewGuildConfigRepository(db *database.DB) *GuildConfigRepository {
	return &GuildConfigRepository{q: db.Pool}
}

// NewGuildConfigRepositoryWithTx creates a new guild config repository with a transaction
func NewGuildConfigRepositoryWithTx(tx Queryable) *GuildConfigRepository {
	return &GuildConfigRepository{q: tx}
}

// GetGuildConfig retrieves the config for a guild, or an empty config if none is stored
func (r *GuildConfigRepository) GetGuildConfig(ctx context.Context, guildID int64) (*entities.GuildConfig, error) {
	defer observability.GetMetrics().MeasureDatabaseQuery("guild_config", "GetGuildConfig")()

	query := `
		SELECT guild_id, log_channel_id, autorole_member_id, autorole_bot_id
		FROM guild_config
		WHERE guild_id = $1
	`

	var config entities.GuildConfig
	err := r.q.QueryRow(ctx, query, guildID).Scan(
		&config.GuildID,
		&config.LogChannelID,
		&config.AutoroleMemberID,
		&config.AutoroleBotID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return &entities.GuildConfig{GuildID: guildID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config for guild %d: %w", guildID, err)
	}

	return &config, nil
}

// UpsertGuildConfig creates or replaces the config for a guild
func (r *GuildConfigRepository) UpsertGuildConfig(ctx context.Context, config *entities.GuildConfig) error {
	defer observability.GetMetrics().MeasureDatabaseQuery("guild_config", "UpsertGuildConfig")()

	query := `
		INSERT INTO guild_config (guild_id, log_channel_id, autorole_member_id, autorole_bot_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guild_id) DO UPDATE
		SET log_channel_id = EXCLUDED.log_channel_id,
		    autorole_member_id = EXCLUDED.autorole_member_id,
		    autorole_bot_id = EXCLUDED.autorole_bot_id,
		    updated_at = NOW()
	`

	_, err := r.q.Exec(ctx, query,
		config.GuildID,
		config.LogChannelID,
		config.AutoroleMemberID,
		config.AutoroleBotID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert guild config for guild %d: %w", config.GuildID, err)
	}

	return nil
}

// ListGuildConfigs returns every stored config ordered by guild id
func (r *GuildConfigRepository) ListGuildConfigs(ctx context.Context) ([]*entities.GuildConfig, error) {
	defer observability.GetMetrics().MeasureDatabaseQuery("guild_config", "ListGuildConfigs")()

	query := `
		SELECT guild_id, log_channel_id, autorole_member_id, autorole_bot_id
		FROM guild_config
		ORDER BY guild_id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list guild configs: %w", err)
	}

	configs, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entities.GuildConfig])
	if err != nil {
		return nil, fmt.Errorf("failed to scan guild configs: %w", err)
	}

	return configs, nil
}
