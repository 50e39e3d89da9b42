package bot

import (
	"context"
	"slices"

	"warden/domain/entities"
	"warden/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// registerHandlers subscribes to every gateway event the bot audits
func (b *Bot) registerHandlers() {
	s := b.session

	s.AddHandler(b.handleConnect)
	s.AddHandler(b.handleDisconnect)
	s.AddHandler(b.handleResumed)

	s.AddHandler(b.handleCommands)
	s.AddHandler(b.handleReady)
	s.AddHandler(b.handleApplicationCommandPermissionsUpdate)

	s.AddHandler(b.handleAutoModRuleCreate)
	s.AddHandler(b.handleAutoModRuleDelete)
	s.AddHandler(b.handleAutoModRuleUpdate)
	s.AddHandler(b.handleAutoModActionExecution)

	s.AddHandler(b.handleChannelCreate)
	s.AddHandler(b.handleChannelDelete)
	s.AddHandler(b.handleChannelUpdate)

	s.AddHandler(b.handleGuildCreate)
	s.AddHandler(b.handleGuildDelete)
	s.AddHandler(b.handleGuildUpdate)
	s.AddHandler(b.handleGuildContents)

	s.AddHandler(b.handleMemberAdd)
	s.AddHandler(b.handleMemberRemove)
	s.AddHandler(b.handleMemberUpdate)
	s.AddHandler(b.handleBanAdd)
	s.AddHandler(b.handleBanRemove)

	s.AddHandler(b.handleMessageUpdate)
	s.AddHandler(b.handleMessageDelete)

	s.AddHandler(b.handleRoleCreate)
	s.AddHandler(b.handleRoleDelete)
	s.AddHandler(b.handleRoleUpdate)

	s.AddHandler(b.handleThreadCreate)
	s.AddHandler(b.handleThreadDelete)
	s.AddHandler(b.handleThreadMembersUpdate)

	s.AddHandler(b.handleVoiceStateUpdate)
}

func entityID(id string) int64 {
	return entities.ParseID(id)
}

func logEventError(event, guildID string, err error) {
	log.WithFields(log.Fields{
		"event":    event,
		"guild_id": guildID,
		"error":    err,
	}).Error("Failed to handle gateway event")
}

// audit records the event and runs deliver, logging any failure
func audit(event, guildID string, deliver func(ctx context.Context) error) {
	observability.GetMetrics().RecordGatewayEvent(event)
	if err := deliver(context.Background()); err != nil {
		logEventError(event, guildID, err)
	}
}

func (b *Bot) lookupChannel(channelID string) *discordgo.Channel {
	ch, err := b.session.State.Channel(channelID)
	if err != nil {
		return nil
	}
	return ch
}

func (b *Bot) lookupGuild(guildID string) *discordgo.Guild {
	g, err := b.session.State.Guild(guildID)
	if err != nil {
		return nil
	}
	return g
}

// snapshotGuild reads a guild under the state lock
func (b *Bot) snapshotGuild(g *discordgo.Guild) entities.GuildSnapshot {
	b.session.State.RLock()
	snapshot := guildSnapshot(g)
	b.session.State.RUnlock()

	snapshot.ShardID = shardFor(snapshot.ID, b.session.ShardCount)
	return snapshot
}

// shardFor returns the gateway shard that receives a guild's events
func shardFor(guildID int64, shardCount int) int {
	if shardCount <= 1 {
		return 0
	}
	return int((guildID >> 22) % int64(shardCount))
}

// Connection

func (b *Bot) handleConnect(s *discordgo.Session, e *discordgo.Connect) {
	log.Info("Client has successfully connected to Discord")
}

func (b *Bot) handleDisconnect(s *discordgo.Session, e *discordgo.Disconnect) {
	log.Warn("Client has disconnected from Discord, or a connection attempt to Discord has failed")
}

func (b *Bot) handleResumed(s *discordgo.Session, e *discordgo.Resumed) {
	log.Info("Client has resumed a session")
}

// Ready

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	b.unavailableMu.Lock()
	for _, g := range r.Guilds {
		b.unavailable[g.ID] = struct{}{}
	}
	b.unavailableMu.Unlock()

	log.WithFields(log.Fields{
		"user":   r.User.Username,
		"guilds": len(r.Guilds),
	}).Info("Client is done preparing the data received from Discord")
}

// markAvailable reports whether the guild was waiting to become available
func (b *Bot) markAvailable(guildID string) bool {
	b.unavailableMu.Lock()
	defer b.unavailableMu.Unlock()

	if _, ok := b.unavailable[guildID]; ok {
		delete(b.unavailable, guildID)
		return true
	}
	return false
}

func (b *Bot) markUnavailable(guildID string) {
	b.unavailableMu.Lock()
	defer b.unavailableMu.Unlock()
	b.unavailable[guildID] = struct{}{}
}

// App commands

func (b *Bot) handleApplicationCommandPermissionsUpdate(s *discordgo.Session, e *discordgo.ApplicationCommandPermissionsUpdate) {
	audit("application_command_permissions_update", e.GuildID, func(ctx context.Context) error {
		return b.services.Audit.CommandPermissionsUpdated(ctx, entityID(e.GuildID))
	})
}

// AutoMod

func (b *Bot) handleAutoModRuleCreate(s *discordgo.Session, e *discordgo.AutoModerationRuleCreate) {
	audit("automod_rule_create", e.GuildID, func(ctx context.Context) error {
		return b.services.Audit.AutoModRuleCreated(ctx, autoModRuleSnapshot(e.AutoModerationRule))
	})
}

func (b *Bot) handleAutoModRuleDelete(s *discordgo.Session, e *discordgo.AutoModerationRuleDelete) {
	audit("automod_rule_delete", e.GuildID, func(ctx context.Context) error {
		return b.services.Audit.AutoModRuleDeleted(ctx, autoModRuleSnapshot(e.AutoModerationRule))
	})
}

func (b *Bot) handleAutoModRuleUpdate(s *discordgo.Session, e *discordgo.AutoModerationRuleUpdate) {
	audit("automod_rule_update", e.GuildID, func(ctx context.Context) error {
		return b.services.Audit.AutoModRuleUpdated(ctx, autoModRuleSnapshot(e.AutoModerationRule))
	})
}

func (b *Bot) handleAutoModActionExecution(s *discordgo.Session, e *discordgo.AutoModerationActionExecution) {
	audit("automod_action_execution", e.GuildID, func(ctx context.Context) error {
		name := e.UserID
		if member, err := s.State.Member(e.GuildID, e.UserID); err == nil && member.User != nil {
			name = member.User.Username
		}
		return b.services.Audit.AutoModActionExecuted(ctx, autoModExecution(e, name))
	})
}

// Channels

func (b *Bot) handleChannelCreate(s *discordgo.Session, e *discordgo.ChannelCreate) {
	if e.GuildID == "" {
		return
	}
	audit("channel_create", e.GuildID, func(ctx context.Context) error {
		return b.services.Audit.ChannelCreated(ctx, channelSnapshot(e.Channel, b.lookupGuild(e.GuildID), nil))
	})
}

func (b *Bot) handleChannelDelete(s *discordgo.Session, e *discordgo.ChannelDelete) {
	if e.GuildID == "" {
		return
	}
	audit("channel_delete", e.GuildID, func(ctx context.Context) error {
		return b.services.Audit.ChannelDeleted(ctx, channelSnapshot(e.Channel, b.lookupGuild(e.GuildID), nil))
	})
}

func (b *Bot) handleChannelUpdate(s *discordgo.Session, e *discordgo.ChannelUpdate) {
	if e.BeforeUpdate == nil {
		log.WithField("channel_id", e.ID).Debug("Channel update without cached state, skipping")
		return
	}

	if isGroupChannel(e.Channel) {
		audit("group_channel_update", e.GuildID, func(ctx context.Context) error {
			return b.services.Audit.GroupChannelUpdated(ctx, groupChannelSnapshot(e.BeforeUpdate), groupChannelSnapshot(e.Channel))
		})
		return
	}

	audit("channel_update", e.GuildID, func(ctx context.Context) error {
		guild := b.lookupGuild(e.GuildID)
		before := channelSnapshot(e.BeforeUpdate, guild, b.lookupChannel(e.BeforeUpdate.ParentID))
		after := channelSnapshot(e.Channel, guild, b.lookupChannel(e.ParentID))
		return b.services.Audit.ChannelUpdated(ctx, before, after)
	})
}

// Guilds

func (b *Bot) handleGuildCreate(s *discordgo.Session, e *discordgo.GuildCreate) {
	snapshot := b.snapshotGuild(e.Guild)
	b.snapshots.swapGuild(snapshot)
	for _, role := range e.Roles {
		b.snapshots.swapRole(roleSnapshot(e.ID, role))
	}

	if b.markAvailable(e.ID) {
		audit("guild_available", e.ID, func(ctx context.Context) error {
			return b.services.Audit.GuildAvailable(ctx, snapshot)
		})
		return
	}

	log.WithFields(log.Fields{"guild_id": e.ID, "guild": e.Name}).Info("Bot joined new guild")
	audit("guild_join", e.ID, func(ctx context.Context) error {
		if err := b.services.VoiceLobby.SetupLobby(ctx, snapshot.ID); err != nil {
			logEventError("guild_join", e.ID, err)
		}
		return b.services.Audit.GuildJoined(ctx, snapshot)
	})
}

func (b *Bot) handleGuildDelete(s *discordgo.Session, e *discordgo.GuildDelete) {
	source := e.Guild
	if e.BeforeDelete != nil {
		source = e.BeforeDelete
	}
	snapshot := b.snapshotGuild(source)

	if e.Unavailable {
		b.markUnavailable(e.ID)
		audit("guild_unavailable", e.ID, func(ctx context.Context) error {
			return b.services.Audit.GuildUnavailable(ctx, snapshot)
		})
		return
	}

	b.snapshots.forgetGuild(snapshot.ID)
	audit("guild_remove", e.ID, func(ctx context.Context) error {
		return b.services.Audit.GuildRemoved(ctx, snapshot)
	})
}

func (b *Bot) handleGuildUpdate(s *discordgo.Session, e *discordgo.GuildUpdate) {
	// The update payload carries no channels or members; the state cache has the merged guild
	current := e.Guild
	if cached := b.lookupGuild(e.ID); cached != nil {
		current = cached
	}

	after := b.snapshotGuild(current)
	before, ok := b.snapshots.replaceGuild(after.ID, func(previous entities.GuildSnapshot, found bool) entities.GuildSnapshot {
		if found {
			// The state cache resets these on every guild update
			after.Large = previous.Large
			after.StageInstances = previous.StageInstances
		}
		return after
	})
	if !ok {
		log.WithField("guild_id", e.ID).Debug("No previous guild snapshot, skipping update line")
		return
	}
	carryMembership(&before, after)

	audit("guild_update", e.ID, func(ctx context.Context) error {
		return b.services.Audit.GuildUpdated(ctx, before, after)
	})
}

// handleGuildContents keeps the stored guild snapshot in step with channel,
// member, role and expression events so the next guild update only reports
// changes carried by that update
func (b *Bot) handleGuildContents(s *discordgo.Session, e interface{}) {
	var guildID string
	switch ev := e.(type) {
	case *discordgo.ChannelCreate:
		guildID = ev.GuildID
	case *discordgo.ChannelUpdate:
		guildID = ev.GuildID
	case *discordgo.ChannelDelete:
		guildID = ev.GuildID
	case *discordgo.ThreadCreate:
		guildID = ev.GuildID
	case *discordgo.ThreadUpdate:
		guildID = ev.GuildID
	case *discordgo.ThreadDelete:
		guildID = ev.GuildID
	case *discordgo.ThreadListSync:
		guildID = ev.GuildID
	case *discordgo.GuildMemberAdd:
		guildID = ev.GuildID
	case *discordgo.GuildMemberUpdate:
		guildID = ev.GuildID
	case *discordgo.GuildMemberRemove:
		guildID = ev.GuildID
	case *discordgo.GuildMembersChunk:
		guildID = ev.GuildID
	case *discordgo.GuildRoleCreate:
		guildID = ev.GuildID
	case *discordgo.GuildRoleUpdate:
		guildID = ev.GuildID
	case *discordgo.GuildRoleDelete:
		guildID = ev.GuildID
	case *discordgo.GuildEmojisUpdate:
		guildID = ev.GuildID
	case *discordgo.GuildStickersUpdate:
		guildID = ev.GuildID
	case *discordgo.StageInstanceEventCreate:
		b.snapshots.addStageInstance(entityID(ev.GuildID), channelRef(ev.ChannelID))
		return
	case *discordgo.StageInstanceEventDelete:
		b.snapshots.removeStageInstance(entityID(ev.GuildID), channelRef(ev.ChannelID))
		return
	default:
		return
	}

	g := b.lookupGuild(guildID)
	if g == nil {
		return
	}
	current := b.snapshotGuild(g)
	b.snapshots.refreshGuild(current.ID, func(cached *entities.GuildSnapshot) {
		carryContents(cached, current)
	})
}

// Members

func (b *Bot) handleMemberAdd(s *discordgo.Session, e *discordgo.GuildMemberAdd) {
	member := memberSnapshot(e.GuildID, e.Member)
	audit("guild_member_add", e.GuildID, func(ctx context.Context) error {
		if _, err := b.services.Autorole.ApplyAutorole(ctx, member); err != nil {
			logEventError("guild_member_add", e.GuildID, err)
		}
		return b.services.Audit.MemberJoined(ctx, member)
	})
}

func (b *Bot) handleMemberRemove(s *discordgo.Session, e *discordgo.GuildMemberRemove) {
	audit("guild_member_remove", e.GuildID, func(ctx context.Context) error {
		return b.services.Audit.MemberLeft(ctx, memberSnapshot(e.GuildID, e.Member))
	})
}

func (b *Bot) handleMemberUpdate(s *discordgo.Session, e *discordgo.GuildMemberUpdate) {
	if e.BeforeUpdate == nil {
		log.WithField("guild_id", e.GuildID).Debug("Member update without cached state, skipping")
		return
	}
	audit("guild_member_update", e.GuildID, func(ctx context.Context) error {
		return b.services.Audit.MemberUpdated(ctx, memberSnapshot(e.GuildID, e.BeforeUpdate), memberSnapshot(e.GuildID, e.Member))
	})
}

func (b *Bot) handleBanAdd(s *discordgo.Session, e *discordgo.GuildBanAdd) {
	audit("guild_ban_add", e.GuildID, func(ctx context.Context) error {
		return b.services.Audit.MemberBanned(ctx, entityID(e.GuildID), userRef(e.User.ID))
	})
}

func (b *Bot) handleBanRemove(s *discordgo.Session, e *discordgo.GuildBanRemove) {
	audit("guild_ban_remove", e.GuildID, func(ctx context.Context) error {
		return b.services.Audit.MemberUnbanned(ctx, entityID(e.GuildID), userRef(e.User.ID))
	})
}

// Messages

func (b *Bot) handleMessageUpdate(s *discordgo.Session, e *discordgo.MessageUpdate) {
	// Only cached messages have a before state
	if e.BeforeUpdate == nil || e.GuildID == "" {
		return
	}
	// Embed unfurls arrive as updates with unchanged content
	if e.BeforeUpdate.Content == e.Content {
		return
	}

	before := messageSnapshot(e.BeforeUpdate)
	after := messageSnapshot(e.Message)
	if after.Author == 0 {
		after.Author = before.Author
	}

	audit("message_update", e.GuildID, func(ctx context.Context) error {
		return b.services.Audit.MessageEdited(ctx, before, after)
	})
}

func (b *Bot) handleMessageDelete(s *discordgo.Session, e *discordgo.MessageDelete) {
	if e.BeforeDelete == nil || e.GuildID == "" {
		return
	}
	message := messageSnapshot(e.BeforeDelete)
	message.GuildID = entityID(e.GuildID)

	audit("message_delete", e.GuildID, func(ctx context.Context) error {
		return b.services.Audit.MessageDeleted(ctx, message)
	})
}

// Roles

func (b *Bot) handleRoleCreate(s *discordgo.Session, e *discordgo.GuildRoleCreate) {
	snapshot := roleSnapshot(e.GuildID, e.Role)
	b.snapshots.swapRole(snapshot)

	audit("guild_role_create", e.GuildID, func(ctx context.Context) error {
		return b.services.Audit.RoleCreated(ctx, snapshot.GuildID, snapshot.Role)
	})
}

func (b *Bot) handleRoleDelete(s *discordgo.Session, e *discordgo.GuildRoleDelete) {
	guildID := entityID(e.GuildID)
	role := entities.RoleRef(entityID(e.RoleID))
	b.snapshots.forgetRole(guildID, role)

	audit("guild_role_delete", e.GuildID, func(ctx context.Context) error {
		return b.services.Audit.RoleDeleted(ctx, guildID, role)
	})
}

func (b *Bot) handleRoleUpdate(s *discordgo.Session, e *discordgo.GuildRoleUpdate) {
	after := roleSnapshot(e.GuildID, e.Role)
	before, ok := b.snapshots.swapRole(after)
	if !ok {
		log.WithField("guild_id", e.GuildID).Debug("No previous role snapshot, skipping update line")
		return
	}

	audit("guild_role_update", e.GuildID, func(ctx context.Context) error {
		return b.services.Audit.RoleUpdated(ctx, before, after)
	})
}

// Threads

func (b *Bot) handleThreadCreate(s *discordgo.Session, e *discordgo.ThreadCreate) {
	thread := threadSnapshot(e.Channel)
	b.snapshots.rememberThread(thread)

	// Being added to an existing thread also sends a create event
	if !e.NewlyCreated {
		audit("thread_join", e.GuildID, func(ctx context.Context) error {
			return b.services.Audit.ThreadJoined(ctx, thread)
		})
		return
	}
	audit("thread_create", e.GuildID, func(ctx context.Context) error {
		return b.services.Audit.ThreadCreated(ctx, thread)
	})
}

func (b *Bot) handleThreadDelete(s *discordgo.Session, e *discordgo.ThreadDelete) {
	thread := b.snapshots.recallThread(threadSnapshot(e.Channel))
	audit("thread_delete", e.GuildID, func(ctx context.Context) error {
		return b.services.Audit.ThreadDeleted(ctx, thread)
	})
}

// handleThreadMembersUpdate logs the bot itself leaving or being removed from a thread
func (b *Bot) handleThreadMembersUpdate(s *discordgo.Session, e *discordgo.ThreadMembersUpdate) {
	if s.State.User == nil || !slices.Contains(e.RemovedMembers, s.State.User.ID) {
		return
	}

	thread := entities.ThreadSnapshot{GuildID: entityID(e.GuildID), Thread: channelRef(e.ID)}
	if ch := b.lookupChannel(e.ID); ch != nil {
		thread = threadSnapshot(ch)
	}
	thread = b.snapshots.lookupThread(thread)

	audit("thread_remove", e.GuildID, func(ctx context.Context) error {
		return b.services.Audit.ThreadRemoved(ctx, thread)
	})
}

// Voice

func (b *Bot) handleVoiceStateUpdate(s *discordgo.Session, e *discordgo.VoiceStateUpdate) {
	if e.GuildID == "" {
		return
	}

	member := memberSnapshot(e.GuildID, e.Member)
	if e.Member == nil || e.Member.User == nil {
		if cached, err := s.State.Member(e.GuildID, e.UserID); err == nil {
			member = memberSnapshot(e.GuildID, cached)
		} else {
			member.User = userRef(e.UserID)
		}
	}

	before := voiceStateSnapshot(e.BeforeUpdate, b.lookupChannel)
	after := voiceStateSnapshot(e.VoiceState, b.lookupChannel)

	audit("voice_state_update", e.GuildID, func(ctx context.Context) error {
		if err := b.services.VoiceLobby.HandleVoiceStateUpdate(ctx, member, before, after); err != nil {
			logEventError("voice_state_update", e.GuildID, err)
		}
		return b.services.Audit.VoiceStateUpdated(ctx, member, before, after)
	})
}
