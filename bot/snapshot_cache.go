package bot

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"warden/domain/entities"

	"github.com/patrickmn/go-cache"
)

const threadNameTTL = 24 * time.Hour

// snapshotCache remembers the last seen state of guilds and roles. The state
// cache is already updated when update handlers run, so the previous values
// needed for change lines are kept here.
type snapshotCache struct {
	// guards read-modify-write of guild snapshots
	mu    sync.Mutex
	cache *cache.Cache
}

func newSnapshotCache() *snapshotCache {
	return &snapshotCache{cache: cache.New(cache.NoExpiration, 10*time.Minute)}
}

func guildKey(guildID int64) string {
	return fmt.Sprintf("guild:%d", guildID)
}

func roleKey(guildID int64, roleID entities.RoleRef) string {
	return fmt.Sprintf("role:%d:%d", guildID, int64(roleID))
}

func threadKey(threadID entities.ChannelRef) string {
	return fmt.Sprintf("thread:%d", int64(threadID))
}

// swapGuild stores the new snapshot and returns the previous one, if any
func (c *snapshotCache) swapGuild(snapshot entities.GuildSnapshot) (entities.GuildSnapshot, bool) {
	return c.replaceGuild(snapshot.ID, func(entities.GuildSnapshot, bool) entities.GuildSnapshot {
		return snapshot
	})
}

// replaceGuild stores next(previous) and returns the previous snapshot, if any
func (c *snapshotCache) replaceGuild(guildID int64, next func(previous entities.GuildSnapshot, found bool) entities.GuildSnapshot) (entities.GuildSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := guildKey(guildID)
	var previous entities.GuildSnapshot
	cached, found := c.cache.Get(key)
	if found {
		previous = cached.(entities.GuildSnapshot)
	}
	c.cache.Set(key, next(previous, found), cache.NoExpiration)
	return previous, found
}

// refreshGuild edits a stored snapshot in place. Unknown guilds are skipped.
func (c *snapshotCache) refreshGuild(guildID int64, edit func(*entities.GuildSnapshot)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := guildKey(guildID)
	cached, ok := c.cache.Get(key)
	if !ok {
		return false
	}
	snapshot := cached.(entities.GuildSnapshot)
	edit(&snapshot)
	c.cache.Set(key, snapshot, cache.NoExpiration)
	return true
}

// addStageInstance and removeStageInstance track live stages, which the state
// cache drops on every guild update
func (c *snapshotCache) addStageInstance(guildID int64, channel entities.ChannelRef) {
	c.refreshGuild(guildID, func(g *entities.GuildSnapshot) {
		if !slices.Contains(g.StageInstances, channel) {
			g.StageInstances = append(slices.Clone(g.StageInstances), channel)
		}
	})
}

func (c *snapshotCache) removeStageInstance(guildID int64, channel entities.ChannelRef) {
	c.refreshGuild(guildID, func(g *entities.GuildSnapshot) {
		g.StageInstances = slices.DeleteFunc(slices.Clone(g.StageInstances), func(ref entities.ChannelRef) bool {
			return ref == channel
		})
	})
}

func (c *snapshotCache) forgetGuild(guildID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Delete(guildKey(guildID))
}

// swapRole stores the new snapshot and returns the previous one, if any
func (c *snapshotCache) swapRole(snapshot entities.RoleSnapshot) (entities.RoleSnapshot, bool) {
	key := roleKey(snapshot.GuildID, snapshot.Role)
	previous, ok := c.cache.Get(key)
	c.cache.Set(key, snapshot, cache.NoExpiration)
	if !ok {
		return entities.RoleSnapshot{}, false
	}
	return previous.(entities.RoleSnapshot), true
}

func (c *snapshotCache) forgetRole(guildID int64, roleID entities.RoleRef) {
	c.cache.Delete(roleKey(guildID, roleID))
}

// rememberThread keeps a thread's name and parent for its delete line
func (c *snapshotCache) rememberThread(thread entities.ThreadSnapshot) {
	c.cache.Set(threadKey(thread.Thread), thread, threadNameTTL)
}

// recallThread fills in what a thread delete payload leaves out and forgets
// the thread
func (c *snapshotCache) recallThread(thread entities.ThreadSnapshot) entities.ThreadSnapshot {
	thread = c.lookupThread(thread)
	c.cache.Delete(threadKey(thread.Thread))
	return thread
}

// lookupThread fills in a thread's name and parent from what was remembered
func (c *snapshotCache) lookupThread(thread entities.ThreadSnapshot) entities.ThreadSnapshot {
	cached, ok := c.cache.Get(threadKey(thread.Thread))
	if !ok {
		return thread
	}

	known := cached.(entities.ThreadSnapshot)
	if thread.Name == "" {
		thread.Name = known.Name
	}
	if thread.Parent == 0 {
		thread.Parent = known.Parent
	}
	return thread
}
