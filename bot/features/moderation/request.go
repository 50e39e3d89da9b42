package moderation

import (
	"fmt"

	"warden/bot/common"
	"warden/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// targetOptions are the option names that carry the command target
var targetOptions = []string{"member", "user"}

// buildRequest converts a command invocation into a moderation request.
// requireMember rejects targets that are not members of the guild.
func buildRequest(i *discordgo.InteractionCreate, guild *discordgo.Guild, requireMember bool) (entities.ModerationRequest, error) {
	if i.Member == nil || i.Member.User == nil {
		return entities.ModerationRequest{}, common.NewUserError("This command can only be used in a server", "command invoked outside a guild")
	}

	data := i.ApplicationCommandData()
	opts := common.ParseOptions(data.Options)

	req := entities.ModerationRequest{
		GuildID:   entities.ParseID(i.GuildID),
		GuildName: guild.Name,
		ChannelID: entities.ParseID(i.ChannelID),
		Invoker:   common.BuildActor(i.Member.User, i.Member, guild.Roles, common.InvokerPermissions(guild, i.Member)),
		Reason:    opts.String("reason"),
		Duration:  opts.String("duration"),
		Limit:     int(opts.Int("limit")),
	}

	targetID := ""
	for _, name := range targetOptions {
		if id := opts.ID(name); id != "" {
			targetID = id
			break
		}
	}
	if targetID == "" {
		return req, nil
	}

	var user *discordgo.User
	var member *discordgo.Member
	if data.Resolved != nil {
		user = data.Resolved.Users[targetID]
		member = data.Resolved.Members[targetID]
	}
	if user == nil {
		user = &discordgo.User{ID: targetID}
	}
	if requireMember && member == nil {
		return req, common.NewUserError(
			fmt.Sprintf("**%s** is not a member of this server", common.Username(user)),
			"target is not a guild member",
		)
	}

	req.Target = common.BuildActor(user, member, guild.Roles, 0)
	return req, nil
}
