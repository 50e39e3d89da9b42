package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"warden/domain/entities"

	log "github.com/sirupsen/logrus"
)

// FileGuildConfigRepository keeps guild configs in memory and writes a JSON
// snapshot to disk after every change. Used when no database is configured.
type FileGuildConfigRepository struct {
	path    string
	mu      sync.RWMutex
	configs map[int64]*entities.GuildConfig
}

// snapshot is the on-disk layout, keyed by guild id
type snapshot struct {
	Guilds map[string]*entities.GuildConfig `json:"guilds"`
}

// NewFileGuildConfigRepository loads the snapshot at path. A missing or
// unreadable snapshot starts an empty store.
func NewFileGuildConfigRepository(path string) (*FileGuildConfigRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	repo := &FileGuildConfigRepository{
		path:    path,
		configs: make(map[int64]*entities.GuildConfig),
	}
	repo.load()

	return repo, nil
}

func (r *FileGuildConfigRepository) load() {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.WithField("path", r.path).Info("No guild config snapshot found, starting empty")
		return
	}
	if err != nil {
		log.WithError(err).WithField("path", r.path).Warn("Failed to read guild config snapshot, starting empty")
		return
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.WithError(err).WithField("path", r.path).Warn("Corrupt guild config snapshot, starting empty")
		return
	}

	for key, config := range snap.Guilds {
		guildID, err := strconv.ParseInt(key, 10, 64)
		if err != nil || config == nil {
			log.WithField("key", key).Warn("Skipping invalid guild config entry")
			continue
		}
		config.GuildID = guildID
		r.configs[guildID] = config
	}

	log.WithFields(log.Fields{
		"path":   r.path,
		"guilds": len(r.configs),
	}).Info("Loaded guild config snapshot")
}

// GetGuildConfig retrieves the config for a guild, or an empty config if none is stored
func (r *FileGuildConfigRepository) GetGuildConfig(ctx context.Context, guildID int64) (*entities.GuildConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if config, ok := r.configs[guildID]; ok {
		return config.Clone(), nil
	}
	return &entities.GuildConfig{GuildID: guildID}, nil
}

// UpsertGuildConfig stores the config and rewrites the snapshot
func (r *FileGuildConfigRepository) UpsertGuildConfig(ctx context.Context, config *entities.GuildConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, existed := r.configs[config.GuildID]
	r.configs[config.GuildID] = config.Clone()

	if err := r.persist(); err != nil {
		if existed {
			r.configs[config.GuildID] = previous
		} else {
			delete(r.configs, config.GuildID)
		}
		return fmt.Errorf("failed to persist guild config for guild %d: %w", config.GuildID, err)
	}

	return nil
}

// ListGuildConfigs returns every stored config ordered by guild id
func (r *FileGuildConfigRepository) ListGuildConfigs(ctx context.Context) ([]*entities.GuildConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	configs := make([]*entities.GuildConfig, 0, len(r.configs))
	for _, config := range r.configs {
		configs = append(configs, config.Clone())
	}
	sort.Slice(configs, func(i, j int) bool {
		return configs[i].GuildID < configs[j].GuildID
	})

	return configs, nil
}

// persist writes the snapshot atomically. Callers hold the write lock.
func (r *FileGuildConfigRepository) persist() error {
	snap := snapshot{Guilds: make(map[string]*entities.GuildConfig, len(r.configs))}
	for guildID, config := range r.configs {
		snap.Guilds[strconv.FormatInt(guildID, 10)] = config
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	return nil
}
