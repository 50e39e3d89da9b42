package common

import (
	"warden/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// TopRolePosition returns the highest position among the member's roles.
// Members with no roles sit at the @everyone position, zero.
func TopRolePosition(guildRoles []*discordgo.Role, memberRoles []string) int {
	if len(memberRoles) == 0 {
		return 0
	}

	held := make(map[string]struct{}, len(memberRoles))
	for _, id := range memberRoles {
		held[id] = struct{}{}
	}

	top := 0
	for _, role := range guildRoles {
		if _, ok := held[role.ID]; ok && role.Position > top {
			top = role.Position
		}
	}
	return top
}

// MemberPermissions computes the guild-level permission bits of a member from its roles
func MemberPermissions(guild *discordgo.Guild, member *discordgo.Member) int64 {
	if member.User != nil && guild.OwnerID == member.User.ID {
		return entities.PermissionAdministrator
	}

	held := make(map[string]struct{}, len(member.Roles))
	for _, id := range member.Roles {
		held[id] = struct{}{}
	}

	var perms int64
	for _, role := range guild.Roles {
		// @everyone shares the guild ID
		if _, ok := held[role.ID]; ok || role.ID == guild.ID {
			perms |= role.Permissions
		}
	}
	return perms
}

// InvokerPermissions returns the permissions carried by the interaction. When
// the payload has none they are computed from the guild's roles.
func InvokerPermissions(guild *discordgo.Guild, member *discordgo.Member) int64 {
	if member.Permissions != 0 {
		return member.Permissions
	}
	return MemberPermissions(guild, member)
}

// Username returns the account name used in command replies
func Username(user *discordgo.User) string {
	if user == nil {
		return "Unknown"
	}
	return user.Username
}

// BuildActor converts a guild member into a moderation actor.
// permissions is taken as given; interaction payloads carry them precomputed.
func BuildActor(user *discordgo.User, member *discordgo.Member, guildRoles []*discordgo.Role, permissions int64) entities.Actor {
	actor := entities.Actor{
		Name:        Username(user),
		Permissions: permissions,
	}
	if user != nil {
		actor.ID = entities.ParseID(user.ID)
		actor.Bot = user.Bot
	}
	if member != nil {
		actor.TopRolePosition = TopRolePosition(guildRoles, member.Roles)
	}
	return actor
}
