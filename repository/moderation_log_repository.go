package repository

import (
	"context"
	"fmt"

	"warden/database"
	"warden/domain/entities"
	"warden/infrastructure/observability"

	"github.com/jackc/pgx/v5"
)

// ModerationLogRepository implements the ModerationLogRepository interface over Postgres
type ModerationLogRepository struct {
	q Queryable
}

// NewModerationLogRepository creates a new moderation log repository
func NewModerationLogRepository(db *database.DB) *ModerationLogRepository {
	return &ModerationLogRepository{q: db.Pool}
}

// Record appends a moderation log entry
func (r *ModerationLogRepository) Record(ctx context.Context, entry *entities.ModerationLogEntry) (*entities.ModerationLogEntry, error) {
	defer observability.GetMetrics().MeasureDatabaseQuery("moderation_log", "Record")()

	query := `
		INSERT INTO moderation_log (guild_id, action, invoker_id, target_id, reason, deleted)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, guild_id, action, invoker_id, target_id, reason, deleted, created_at
	`

	rows, err := r.q.Query(ctx, query,
		entry.GuildID,
		string(entry.Action),
		entry.InvokerID,
		entry.TargetID,
		entry.Reason,
		entry.Deleted,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record %s for guild %d: %w", entry.Action, entry.GuildID, err)
	}

	recorded, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[entities.ModerationLogEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to scan recorded entry: %w", err)
	}

	return recorded, nil
}

// ListRecent returns up to limit entries for a guild, newest first
func (r *ModerationLogRepository) ListRecent(ctx context.Context, guildID int64, limit int) ([]*entities.ModerationLogEntry, error) {
	defer observability.GetMetrics().MeasureDatabaseQuery("moderation_log", "ListRecent")()

	query := `
		SELECT id, guild_id, action, invoker_id, target_id, reason, deleted, created_at
		FROM moderation_log
		WHERE guild_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list moderation log for guild %d: %w", guildID, err)
	}

	entries, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entities.ModerationLogEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to scan moderation log: %w", err)
	}

	return entries, nil
}
