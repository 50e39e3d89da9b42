package bot

import (
	"fmt"
	"sort"

	"warden/domain/entities"

	"github.com/bwmarrin/discordgo"
)

var verificationLevels = map[discordgo.VerificationLevel]string{
	discordgo.VerificationLevelNone:     "none",
	discordgo.VerificationLevelLow:      "low",
	discordgo.VerificationLevelMedium:   "medium",
	discordgo.VerificationLevelHigh:     "high",
	discordgo.VerificationLevelVeryHigh: "highest",
}

var contentFilters = map[discordgo.ExplicitContentFilterLevel]string{
	discordgo.ExplicitContentFilterDisabled:            "disabled",
	discordgo.ExplicitContentFilterMembersWithoutRoles: "no_role",
	discordgo.ExplicitContentFilterAllMembers:          "all_members",
}

var notificationLevels = map[discordgo.MessageNotifications]string{
	discordgo.MessageNotificationsAllMessages:  "all_messages",
	discordgo.MessageNotificationsOnlyMentions: "only_mentions",
}

var nsfwLevels = map[discordgo.GuildNSFWLevel]string{
	discordgo.GuildNSFWLevelDefault:       "default",
	discordgo.GuildNSFWLevelExplicit:      "explicit",
	discordgo.GuildNSFWLevelSafe:          "safe",
	discordgo.GuildNSFWLevelAgeRestricted: "age_restricted",
}

var mfaLevels = map[discordgo.MfaLevel]string{
	discordgo.MfaLevelNone:     "disabled",
	discordgo.MfaLevelElevated: "require_2fa",
}

var autoModActions = map[discordgo.AutoModerationActionType]string{
	discordgo.AutoModerationRuleActionBlockMessage:     "block_message",
	discordgo.AutoModerationRuleActionSendAlertMessage: "send_alert_message",
	discordgo.AutoModerationRuleActionTimeout:          "timeout",
}

var channelTypes = map[discordgo.ChannelType]string{
	discordgo.ChannelTypeGuildText:     "text",
	discordgo.ChannelTypeDM:            "private",
	discordgo.ChannelTypeGuildVoice:    "voice",
	discordgo.ChannelTypeGroupDM:       "group",
	discordgo.ChannelTypeGuildCategory: "category",
	discordgo.ChannelTypeGuildNews:     "news",
	discordgo.ChannelTypeGuildForum:    "forum",
}

func label[K comparable](names map[K]string, value K) string {
	if name, ok := names[value]; ok {
		return name
	}
	return fmt.Sprint(value)
}

func channelRef(id string) entities.ChannelRef {
	return entities.ChannelRef(entities.ParseID(id))
}

func userRef(id string) entities.UserRef {
	return entities.UserRef(entities.ParseID(id))
}

func channelRefs(channels []*discordgo.Channel, keep func(*discordgo.Channel) bool) []entities.ChannelRef {
	var refs []entities.ChannelRef
	for _, ch := range channels {
		if keep(ch) {
			refs = append(refs, channelRef(ch.ID))
		}
	}
	return refs
}

func ofType(types ...discordgo.ChannelType) func(*discordgo.Channel) bool {
	return func(ch *discordgo.Channel) bool {
		for _, t := range types {
			if ch.Type == t {
				return true
			}
		}
		return false
	}
}

func anyChannel(*discordgo.Channel) bool { return true }

// guildSnapshot captures the audited fields of a guild
func guildSnapshot(g *discordgo.Guild) entities.GuildSnapshot {
	if g == nil {
		return entities.GuildSnapshot{}
	}

	snapshot := entities.GuildSnapshot{
		ID:                       entities.ParseID(g.ID),
		Name:                     g.Name,
		AFKTimeout:               g.AfkTimeout,
		Owner:                    userRef(g.OwnerID),
		Unavailable:              g.Unavailable,
		MaxPresences:             g.MaxPresences,
		MaxMembers:               g.MaxMembers,
		MaxVideoChannelUsers:     g.MaxVideoChannelUsers,
		Description:              g.Description,
		VerificationLevel:        label(verificationLevels, g.VerificationLevel),
		VanityURLCode:            g.VanityURLCode,
		ExplicitContentFilter:    label(contentFilters, g.ExplicitContentFilter),
		DefaultNotifications:     label(notificationLevels, g.DefaultMessageNotifications),
		PremiumTier:              fmt.Sprintf("tier_%d", int(g.PremiumTier)),
		PremiumSubscriptionCount: g.PremiumSubscriptionCount,
		PreferredLocale:          g.PreferredLocale,
		NSFWLevel:                label(nsfwLevels, g.NSFWLevel),
		MFALevel:                 label(mfaLevels, g.MfaLevel),
		ApproximateMemberCount:   g.ApproximateMemberCount,
		ApproximatePresenceCount: g.ApproximatePresenceCount,
		WidgetEnabled:            g.WidgetEnabled,
		Large:                    g.Large,
		AFKChannel:               channelRef(g.AfkChannelID),
		SystemChannel:            channelRef(g.SystemChannelID),
		RulesChannel:             channelRef(g.RulesChannelID),
		PublicUpdatesChannel:     channelRef(g.PublicUpdatesChannelID),
		WidgetChannel:            channelRef(g.WidgetChannelID),
		Icon:                     g.Icon,
		Banner:                   g.Banner,
		Splash:                   g.Splash,
		DiscoverySplash:          g.DiscoverySplash,
		MemberCount:              g.MemberCount,
	}

	for _, emoji := range g.Emojis {
		snapshot.Emojis = append(snapshot.Emojis, entities.EmojiRef{
			ID:       entities.ParseID(emoji.ID),
			Name:     emoji.Name,
			Animated: emoji.Animated,
		})
	}
	for _, sticker := range g.Stickers {
		snapshot.Stickers = append(snapshot.Stickers, sticker.Name)
	}
	for _, feature := range g.Features {
		snapshot.Features = append(snapshot.Features, string(feature))
	}

	channels := sortedChannels(g.Channels)
	snapshot.Channels = channelRefs(channels, anyChannel)
	snapshot.Threads = channelRefs(sortedChannels(g.Threads), anyChannel)
	snapshot.VoiceChannels = channelRefs(channels, ofType(discordgo.ChannelTypeGuildVoice))
	snapshot.StageChannels = channelRefs(channels, ofType(discordgo.ChannelTypeGuildStageVoice))
	snapshot.TextChannels = channelRefs(channels, ofType(discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews))
	snapshot.Categories = channelRefs(channels, ofType(discordgo.ChannelTypeGuildCategory))
	snapshot.Forums = channelRefs(channels, ofType(discordgo.ChannelTypeGuildForum))

	for _, role := range sortedRoles(g.Roles) {
		ref := entities.RoleRef(entities.ParseID(role.ID))
		snapshot.Roles = append(snapshot.Roles, ref)
		// @everyone shares the guild's ID
		if role.ID == g.ID {
			snapshot.DefaultRole = ref
		}
	}

	for _, member := range g.Members {
		if member.User == nil {
			continue
		}
		ref := userRef(member.User.ID)
		snapshot.Members = append(snapshot.Members, ref)
		if member.PremiumSince != nil {
			snapshot.Boosters = append(snapshot.Boosters, ref)
		}
	}
	for _, stage := range g.StageInstances {
		snapshot.StageInstances = append(snapshot.StageInstances, channelRef(stage.ChannelID))
	}

	limits := limitsFor(g.PremiumTier, g.Features)
	snapshot.EmojiLimit = limits.emojis
	snapshot.StickerLimit = limits.stickers
	snapshot.BitrateLimit = limits.bitrate
	snapshot.FileSizeLimit = limits.fileSize

	if createdAt, err := discordgo.SnowflakeTimestamp(g.ID); err == nil {
		snapshot.CreatedAt = createdAt.UTC()
	}

	return snapshot
}

type premiumLimits struct {
	emojis   int
	stickers int
	bitrate  int
	fileSize int
}

var tierLimits = map[discordgo.PremiumTier]premiumLimits{
	discordgo.PremiumTierNone: {emojis: 50, stickers: 5, bitrate: 96000, fileSize: 26214400},
	discordgo.PremiumTier1:    {emojis: 100, stickers: 15, bitrate: 128000, fileSize: 26214400},
	discordgo.PremiumTier2:    {emojis: 150, stickers: 30, bitrate: 256000, fileSize: 52428800},
	discordgo.PremiumTier3:    {emojis: 250, stickers: 60, bitrate: 384000, fileSize: 104857600},
}

// limitsFor returns the upload and expression limits of a boost tier. The
// MORE_EMOJI and MORE_STICKERS features raise the expression limits.
func limitsFor(tier discordgo.PremiumTier, features []discordgo.GuildFeature) premiumLimits {
	limits, ok := tierLimits[tier]
	if !ok {
		limits = tierLimits[discordgo.PremiumTierNone]
	}
	for _, feature := range features {
		switch feature {
		case "MORE_EMOJI":
			limits.emojis = max(limits.emojis, 200)
		case "MORE_STICKERS":
			limits.stickers = max(limits.stickers, 60)
		}
	}
	return limits
}

// carryMembership copies the fields a guild update payload never changes.
// Channel, thread and member events change them between updates.
func carryMembership(dst *entities.GuildSnapshot, src entities.GuildSnapshot) {
	dst.Channels = src.Channels
	dst.Threads = src.Threads
	dst.VoiceChannels = src.VoiceChannels
	dst.StageChannels = src.StageChannels
	dst.TextChannels = src.TextChannels
	dst.Categories = src.Categories
	dst.Forums = src.Forums
	dst.Members = src.Members
	dst.Boosters = src.Boosters
	dst.MemberCount = src.MemberCount
}

// carryContents also copies the fields kept current by role, emoji and
// sticker events
func carryContents(dst *entities.GuildSnapshot, src entities.GuildSnapshot) {
	carryMembership(dst, src)
	dst.Roles = src.Roles
	dst.DefaultRole = src.DefaultRole
	dst.Emojis = src.Emojis
	dst.Stickers = src.Stickers
}

func sortedChannels(channels []*discordgo.Channel) []*discordgo.Channel {
	sorted := make([]*discordgo.Channel, len(channels))
	copy(sorted, channels)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })
	return sorted
}

func sortedRoles(roles []*discordgo.Role) []*discordgo.Role {
	sorted := make([]*discordgo.Role, len(roles))
	copy(sorted, roles)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })
	return sorted
}

// channelSnapshot captures the audited fields of a guild channel. parent and
// guild may be nil when they are not in the state cache.
func channelSnapshot(ch *discordgo.Channel, guild *discordgo.Guild, parent *discordgo.Channel) entities.ChannelSnapshot {
	snapshot := entities.ChannelSnapshot{
		GuildID:  entities.ParseID(ch.GuildID),
		Channel:  channelRef(ch.ID),
		Name:     ch.Name,
		Position: ch.Position,
		URL:      fmt.Sprintf("https://discord.com/channels/%s/%s", ch.GuildID, ch.ID),
		Category: channelRef(ch.ParentID),
	}
	if guild != nil {
		snapshot.GuildName = guild.Name
	}
	if created, err := discordgo.SnowflakeTimestamp(ch.ID); err == nil {
		snapshot.CreatedAt = created.UTC()
	}
	for _, overwrite := range ch.PermissionOverwrites {
		if overwrite.Type == discordgo.PermissionOverwriteTypeRole {
			snapshot.OverwriteRoles = append(snapshot.OverwriteRoles, entities.RoleRef(entities.ParseID(overwrite.ID)))
		}
	}
	if parent != nil {
		snapshot.PermissionsSynced = overwritesEqual(ch.PermissionOverwrites, parent.PermissionOverwrites)
	}
	return snapshot
}

func overwritesEqual(a, b []*discordgo.PermissionOverwrite) bool {
	if len(a) != len(b) {
		return false
	}
	index := make(map[string]discordgo.PermissionOverwrite, len(a))
	for _, o := range a {
		index[o.ID] = *o
	}
	for _, o := range b {
		if other, ok := index[o.ID]; !ok || other != *o {
			return false
		}
	}
	return true
}

// groupChannelSnapshot captures the audited fields of a group direct message
func groupChannelSnapshot(ch *discordgo.Channel) entities.GroupChannelSnapshot {
	snapshot := entities.GroupChannelSnapshot{
		GuildID: entities.ParseID(ch.GuildID),
		ID:      entities.ParseID(ch.ID),
		Owner:   userRef(ch.OwnerID),
		Name:    ch.Name,
		Type:    label(channelTypes, ch.Type),
		Icon:    ch.Icon,
		URL:     fmt.Sprintf("https://discord.com/channels/@me/%s", ch.ID),
	}
	if created, err := discordgo.SnowflakeTimestamp(ch.ID); err == nil {
		snapshot.CreatedAt = created.UTC()
	}
	for _, recipient := range ch.Recipients {
		snapshot.Recipients = append(snapshot.Recipients, userRef(recipient.ID))
	}
	return snapshot
}

// memberSnapshot captures the audited fields of a guild member
func memberSnapshot(guildID string, m *discordgo.Member) entities.MemberSnapshot {
	snapshot := entities.MemberSnapshot{GuildID: entities.ParseID(guildID)}
	if m == nil {
		return snapshot
	}
	if m.User != nil {
		snapshot.User = userRef(m.User.ID)
		snapshot.Username = m.User.Username
		snapshot.GlobalName = m.User.GlobalName
		snapshot.Bot = m.User.Bot
		snapshot.DisplayName = m.DisplayName()
	}
	for _, id := range m.Roles {
		snapshot.Roles = append(snapshot.Roles, entities.RoleRef(entities.ParseID(id)))
	}
	return snapshot
}

// roleSnapshot captures the audited fields of a role
func roleSnapshot(guildID string, r *discordgo.Role) entities.RoleSnapshot {
	if r == nil {
		return entities.RoleSnapshot{GuildID: entities.ParseID(guildID)}
	}
	return entities.RoleSnapshot{
		GuildID:     entities.ParseID(guildID),
		Role:        entities.RoleRef(entities.ParseID(r.ID)),
		Name:        r.Name,
		Color:       entities.Color(r.Color),
		Permissions: entities.PermissionNames(r.Permissions),
		Hoist:       r.Hoist,
		Mentionable: r.Mentionable,
		Position:    r.Position,
	}
}

// messageSnapshot captures a message for edit and delete audit lines
func messageSnapshot(m *discordgo.Message) entities.MessageSnapshot {
	if m == nil {
		return entities.MessageSnapshot{}
	}
	snapshot := entities.MessageSnapshot{
		GuildID: entities.ParseID(m.GuildID),
		ID:      entities.ParseID(m.ID),
		Channel: channelRef(m.ChannelID),
		Content: m.Content,
	}
	if m.Author != nil {
		snapshot.Author = userRef(m.Author.ID)
	}
	return snapshot
}

// threadSnapshot captures a thread and its parent channel
func threadSnapshot(ch *discordgo.Channel) entities.ThreadSnapshot {
	return entities.ThreadSnapshot{
		GuildID: entities.ParseID(ch.GuildID),
		Thread:  channelRef(ch.ID),
		Name:    ch.Name,
		Parent:  channelRef(ch.ParentID),
	}
}

// voiceStateSnapshot resolves the connected channel's name and category
func voiceStateSnapshot(vs *discordgo.VoiceState, lookup func(string) *discordgo.Channel) entities.VoiceStateSnapshot {
	if vs == nil || vs.ChannelID == "" {
		return entities.VoiceStateSnapshot{}
	}
	snapshot := entities.VoiceStateSnapshot{Channel: channelRef(vs.ChannelID)}
	if ch := lookup(vs.ChannelID); ch != nil {
		snapshot.ChannelName = ch.Name
		snapshot.Category = channelRef(ch.ParentID)
	}
	return snapshot
}

func autoModRuleSnapshot(rule *discordgo.AutoModerationRule) entities.AutoModRuleSnapshot {
	return entities.AutoModRuleSnapshot{
		GuildID: entities.ParseID(rule.GuildID),
		ID:      entities.ParseID(rule.ID),
		Name:    rule.Name,
	}
}

func autoModExecution(e *discordgo.AutoModerationActionExecution, memberName string) entities.AutoModExecution {
	return entities.AutoModExecution{
		GuildID:    entities.ParseID(e.GuildID),
		RuleID:     entities.ParseID(e.RuleID),
		Member:     userRef(e.UserID),
		MemberName: memberName,
		Action:     label(autoModActions, e.Action.Type),
		Content:    e.Content,
	}
}

// isGroupChannel reports whether a channel update belongs to a group direct message
func isGroupChannel(ch *discordgo.Channel) bool {
	return ch.Type == discordgo.ChannelTypeGroupDM
}
