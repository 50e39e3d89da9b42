package repository

import (
	"context"
	"strconv"
	"time"

	"warden/domain/entities"
	"warden/domain/interfaces"

	"github.com/patrickmn/go-cache"
)

// CachedGuildConfigRepository fronts another GuildConfigRepository with a
// read cache. Every event handler reads the config, so most reads are hits.
type CachedGuildConfigRepository struct {
	inner interfaces.GuildConfigRepository
	cache *cache.Cache
}

// NewCachedGuildConfigRepository wraps inner with a cache whose entries expire after ttl
func NewCachedGuildConfigRepository(inner interfaces.GuildConfigRepository, ttl time.Duration) *CachedGuildConfigRepository {
	return &CachedGuildConfigRepository{
		inner: inner,
		cache: cache.New(ttl, 2*ttl),
	}
}

// GetGuildConfig returns the cached config or loads it from the inner store
func (r *CachedGuildConfigRepository) GetGuildConfig(ctx context.Context, guildID int64) (*entities.GuildConfig, error) {
	key := cacheKey(guildID)
	if cached, ok := r.cache.Get(key); ok {
		return cached.(*entities.GuildConfig).Clone(), nil
	}

	config, err := r.inner.GetGuildConfig(ctx, guildID)
	if err != nil {
		return nil, err
	}

	r.cache.SetDefault(key, config.Clone())
	return config, nil
}

// UpsertGuildConfig writes through and refreshes the cached entry
func (r *CachedGuildConfigRepository) UpsertGuildConfig(ctx context.Context, config *entities.GuildConfig) error {
	if err := r.inner.UpsertGuildConfig(ctx, config); err != nil {
		r.invalidate(config.GuildID)
		return err
	}

	r.cache.SetDefault(cacheKey(config.GuildID), config.Clone())
	return nil
}

// ListGuildConfigs always reads the inner store
func (r *CachedGuildConfigRepository) ListGuildConfigs(ctx context.Context) ([]*entities.GuildConfig, error) {
	return r.inner.ListGuildConfigs(ctx)
}

// invalidate drops the cached config for a guild
func (r *CachedGuildConfigRepository) invalidate(guildID int64) {
	r.cache.Delete(cacheKey(guildID))
}

func cacheKey(guildID int64) string {
	return strconv.FormatInt(guildID, 10)
}
