package services

import (
	"fmt"

	"warden/domain/changelog"
	"warden/domain/entities"
)

// RenderGuildUpdate renders the change log for a guild update.
func RenderGuildUpdate(before, after entities.GuildSnapshot) string {
	return changelog.NewBuilder(fmt.Sprintf("%s server is updated", after.Name)).Add(
		changelog.Field("Name", before.Name, after.Name),
		changelog.Set("Emojis", before.Emojis, after.Emojis),
		changelog.Set("Stickers", before.Stickers, after.Stickers),
		changelog.Field("AFK timeout (seconds)", before.AFKTimeout, after.AFKTimeout),
		changelog.Field("ID", before.ID, after.ID),
		changelog.Field("Owner", before.Owner, after.Owner),
		changelog.Field("Unavailability", before.Unavailable, after.Unavailable),
		changelog.Field("Maximum presences", before.MaxPresences, after.MaxPresences),
		changelog.Field("Maximum members", before.MaxMembers, after.MaxMembers),
		changelog.Field("Maximum users in a video channel", before.MaxVideoChannelUsers, after.MaxVideoChannelUsers),
		changelog.Field("Description", before.Description, after.Description),
		changelog.Field("Verification level", before.VerificationLevel, after.VerificationLevel),
		changelog.Field("URL code", before.VanityURLCode, after.VanityURLCode),
		changelog.Field("Explicit content filter", before.ExplicitContentFilter, after.ExplicitContentFilter),
		changelog.Field("Notifications", before.DefaultNotifications, after.DefaultNotifications),
		changelog.Set("Features", before.Features, after.Features),
		changelog.Field("Server Nitro level", before.PremiumTier, after.PremiumTier),
		changelog.Field("Boosts", before.PremiumSubscriptionCount, after.PremiumSubscriptionCount),
		changelog.Field("Locale", before.PreferredLocale, after.PreferredLocale),
		changelog.Field("NSFW level", before.NSFWLevel, after.NSFWLevel),
		changelog.Field("MFA level", before.MFALevel, after.MFALevel),
		changelog.Field("Approximate number of members", before.ApproximateMemberCount, after.ApproximateMemberCount),
		changelog.Field("Approximate number of presences", before.ApproximatePresenceCount, after.ApproximatePresenceCount),
		changelog.Field("Server Boost level progress bar", before.PremiumProgressBarEnabled, after.PremiumProgressBarEnabled),
		changelog.Field("Widget enabled", before.WidgetEnabled, after.WidgetEnabled),
		changelog.Set("Channels", before.Channels, after.Channels),
		changelog.Set("Threads", before.Threads, after.Threads),
		changelog.Field("Is large", before.Large, after.Large),
		changelog.Set("Voice channels", before.VoiceChannels, after.VoiceChannels),
		changelog.Set("Stage channels", before.StageChannels, after.StageChannels),
		changelog.Set("Text channels", before.TextChannels, after.TextChannels),
		changelog.Set("Categories", before.Categories, after.Categories),
		changelog.Set("Forums", before.Forums, after.Forums),
		changelog.Field("Inactive (AFK) channel", before.AFKChannel, after.AFKChannel),
		changelog.Field("System channel", before.SystemChannel, after.SystemChannel),
		changelog.Field("Rules channel", before.RulesChannel, after.RulesChannel),
		changelog.Field("Community updates channel", before.PublicUpdatesChannel, after.PublicUpdatesChannel),
		changelog.Field("Widget channel", before.WidgetChannel, after.WidgetChannel),
		changelog.Field("Emoji limit", before.EmojiLimit, after.EmojiLimit),
		changelog.Field("Sticker limit", before.StickerLimit, after.StickerLimit),
		changelog.Field("Bitrate limit", before.BitrateLimit, after.BitrateLimit),
		changelog.Field("File size limit (bytes)", before.FileSizeLimit, after.FileSizeLimit),
		changelog.Set("Members", before.Members, after.Members),
		changelog.Set("Boosters", before.Boosters, after.Boosters),
		changelog.Set("Roles", before.Roles, after.Roles),
		changelog.Field("Default role", before.DefaultRole, after.DefaultRole),
		changelog.Set("Stage instances", before.StageInstances, after.StageInstances),
		changelog.Field("Icon", before.Icon, after.Icon),
		changelog.Field("Banner", before.Banner, after.Banner),
		changelog.Field("Invite splash", before.Splash, after.Splash),
		changelog.Field("Discovery splash", before.DiscoverySplash, after.DiscoverySplash),
		changelog.Field("Number of members", before.MemberCount, after.MemberCount),
		changelog.Field("Shard ID", before.ShardID, after.ShardID),
		changelog.Field("Creation time", before.CreatedAt, after.CreatedAt),
	).String()
}

// RenderChannelUpdate renders the change log for a guild channel update.
func RenderChannelUpdate(before, after entities.ChannelSnapshot) string {
	return changelog.NewBuilder(fmt.Sprintf("%s channel is updated", after.Channel.Mention())).Add(
		changelog.Field("Name", before.Name, after.Name),
		changelog.Field("Guild", before.GuildName, after.GuildName),
		changelog.Field("Position", before.Position, after.Position),
		changelog.Set("Roles", before.OverwriteRoles, after.OverwriteRoles),
		changelog.Field("Mention", before.Channel.Mention(), after.Channel.Mention()),
		changelog.Field("URL", before.URL, after.URL),
		changelog.Field("Creation time", before.CreatedAt, after.CreatedAt),
		changelog.Field("Category", before.Category, after.Category),
		changelog.Field("Permissions synced", before.PermissionsSynced, after.PermissionsSynced),
	).String()
}

// RenderGroupChannelUpdate renders the change log for a group direct message update.
func RenderGroupChannelUpdate(before, after entities.GroupChannelSnapshot) string {
	return changelog.NewBuilder(fmt.Sprintf("%s group is updated", after.Name)).Add(
		changelog.Set("Recipients", before.Recipients, after.Recipients),
		changelog.Field("ID", before.ID, after.ID),
		changelog.Field("Owner", before.Owner, after.Owner),
		changelog.Field("Name", before.Name, after.Name),
		changelog.Field("Type", before.Type, after.Type),
		changelog.Field("Icon", before.Icon, after.Icon),
		changelog.Field("Creation time", before.CreatedAt, after.CreatedAt),
		changelog.Field("URL", before.URL, after.URL),
	).String()
}

// RenderMemberUpdate renders the change log for a member profile update.
func RenderMemberUpdate(before, after entities.MemberSnapshot) string {
	return changelog.NewBuilder(fmt.Sprintf("%s has updated their profile", after.User.Mention())).Add(
		changelog.Field("Name", before.Username, after.Username),
		changelog.Field("Global name", before.GlobalName, after.GlobalName),
		changelog.Field("Display name", before.DisplayName, after.DisplayName),
		changelog.Set("Roles", before.Roles, after.Roles),
	).String()
}

// RenderRoleUpdate renders the change log for a role update.
func RenderRoleUpdate(before, after entities.RoleSnapshot) string {
	return changelog.NewBuilder(fmt.Sprintf("%s role was updated", after.Role.Mention())).Add(
		changelog.Field("Name", before.Name, after.Name),
		changelog.Field("Color", before.Color, after.Color),
		changelog.Set("Permissions", before.Permissions, after.Permissions),
		changelog.Field("Hoisted", before.Hoist, after.Hoist),
		changelog.Field("Mentionable", before.Mentionable, after.Mentionable),
		changelog.Field("Position", before.Position, after.Position),
	).String()
}
