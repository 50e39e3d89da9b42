package entities

// Permission bits as defined by the platform.
const (
	PermissionCreateInstantInvite    int64 = 1 << 0
	PermissionKickMembers            int64 = 1 << 1
	PermissionBanMembers             int64 = 1 << 2
	PermissionAdministrator          int64 = 1 << 3
	PermissionManageChannels         int64 = 1 << 4
	PermissionManageGuild            int64 = 1 << 5
	PermissionAddReactions           int64 = 1 << 6
	PermissionViewAuditLog           int64 = 1 << 7
	PermissionPrioritySpeaker        int64 = 1 << 8
	PermissionStream                 int64 = 1 << 9
	PermissionViewChannel            int64 = 1 << 10
	PermissionSendMessages           int64 = 1 << 11
	PermissionSendTTSMessages        int64 = 1 << 12
	PermissionManageMessages         int64 = 1 << 13
	PermissionEmbedLinks             int64 = 1 << 14
	PermissionAttachFiles            int64 = 1 << 15
	PermissionReadMessageHistory     int64 = 1 << 16
	PermissionMentionEveryone        int64 = 1 << 17
	PermissionUseExternalEmojis      int64 = 1 << 18
	PermissionViewGuildInsights      int64 = 1 << 19
	PermissionConnect                int64 = 1 << 20
	PermissionSpeak                  int64 = 1 << 21
	PermissionMuteMembers            int64 = 1 << 22
	PermissionDeafenMembers          int64 = 1 << 23
	PermissionMoveMembers            int64 = 1 << 24
	PermissionUseVAD                 int64 = 1 << 25
	PermissionChangeNickname         int64 = 1 << 26
	PermissionManageNicknames        int64 = 1 << 27
	PermissionManageRoles            int64 = 1 << 28
	PermissionManageWebhooks         int64 = 1 << 29
	PermissionManageExpressions      int64 = 1 << 30
	PermissionUseApplicationCommands int64 = 1 << 31
	PermissionRequestToSpeak         int64 = 1 << 32
	PermissionManageEvents           int64 = 1 << 33
	PermissionManageThreads          int64 = 1 << 34
	PermissionCreatePublicThreads    int64 = 1 << 35
	PermissionCreatePrivateThreads   int64 = 1 << 36
	PermissionUseExternalStickers    int64 = 1 << 37
	PermissionSendMessagesInThreads  int64 = 1 << 38
	PermissionUseEmbeddedActivities  int64 = 1 << 39
	PermissionModerateMembers        int64 = 1 << 40
)

var permissionNames = []struct {
	bit  int64
	name string
}{
	{PermissionCreateInstantInvite, "create_instant_invite"},
	{PermissionKickMembers, "kick_members"},
	{PermissionBanMembers, "ban_members"},
	{PermissionAdministrator, "administrator"},
	{PermissionManageChannels, "manage_channels"},
	{PermissionManageGuild, "manage_guild"},
	{PermissionAddReactions, "add_reactions"},
	{PermissionViewAuditLog, "view_audit_log"},
	{PermissionPrioritySpeaker, "priority_speaker"},
	{PermissionStream, "stream"},
	{PermissionViewChannel, "view_channel"},
	{PermissionSendMessages, "send_messages"},
	{PermissionSendTTSMessages, "send_tts_messages"},
	{PermissionManageMessages, "manage_messages"},
	{PermissionEmbedLinks, "embed_links"},
	{PermissionAttachFiles, "attach_files"},
	{PermissionReadMessageHistory, "read_message_history"},
	{PermissionMentionEveryone, "mention_everyone"},
	{PermissionUseExternalEmojis, "use_external_emojis"},
	{PermissionViewGuildInsights, "view_guild_insights"},
	{PermissionConnect, "connect"},
	{PermissionSpeak, "speak"},
	{PermissionMuteMembers, "mute_members"},
	{PermissionDeafenMembers, "deafen_members"},
	{PermissionMoveMembers, "move_members"},
	{PermissionUseVAD, "use_voice_activation"},
	{PermissionChangeNickname, "change_nickname"},
	{PermissionManageNicknames, "manage_nicknames"},
	{PermissionManageRoles, "manage_roles"},
	{PermissionManageWebhooks, "manage_webhooks"},
	{PermissionManageExpressions, "manage_expressions"},
	{PermissionUseApplicationCommands, "use_application_commands"},
	{PermissionRequestToSpeak, "request_to_speak"},
	{PermissionManageEvents, "manage_events"},
	{PermissionManageThreads, "manage_threads"},
	{PermissionCreatePublicThreads, "create_public_threads"},
	{PermissionCreatePrivateThreads, "create_private_threads"},
	{PermissionUseExternalStickers, "use_external_stickers"},
	{PermissionSendMessagesInThreads, "send_messages_in_threads"},
	{PermissionUseEmbeddedActivities, "use_embedded_activities"},
	{PermissionModerateMembers, "moderate_members"},
}

// PermissionNames lists the names of the permissions set in bits, in bit order.
func PermissionNames(bits int64) []string {
	var names []string
	for _, p := range permissionNames {
		if bits&p.bit != 0 {
			names = append(names, p.name)
		}
	}
	return names
}

// HasPermission reports whether bits grant perm. Administrator grants everything.
func HasPermission(bits, perm int64) bool {
	if bits&PermissionAdministrator != 0 {
		return true
	}
	return bits&perm == perm
}
