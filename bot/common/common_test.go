package common

import (
	"errors"
	"fmt"
	"testing"

	"warden/domain"
	"warden/domain/entities"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingResponder captures interaction replies
type recordingResponder struct {
	responses []*discordgo.InteractionResponse
	followups []*discordgo.WebhookParams
}

func (r *recordingResponder) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	r.responses = append(r.responses, resp)
	return nil
}

func (r *recordingResponder) FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	r.followups = append(r.followups, data)
	return &discordgo.Message{}, nil
}

func commandInteraction(name string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:    discordgo.InteractionApplicationCommand,
		GuildID: "1",
		Member:  &discordgo.Member{User: &discordgo.User{ID: "100"}},
		Data:    discordgo.ApplicationCommandInteractionData{Name: name},
	}}
}

func TestUserMessage(t *testing.T) {
	rejection := domain.Reject(domain.ErrPermissionDenied, "You don't have permissions to do this")

	assert.Equal(t, "You don't have permissions to do this", UserMessage(rejection))
	assert.Equal(t, "You don't have permissions to do this", UserMessage(fmt.Errorf("kick: %w", rejection)))
	assert.Equal(t, "Member not found", UserMessage(NewUserError("Member not found", "missing member")))
	assert.Equal(t, genericErrorMessage, UserMessage(errors.New("boom")))
}

func TestHandleError(t *testing.T) {
	t.Run("rejection replies ephemerally", func(t *testing.T) {
		responder := &recordingResponder{}
		HandleError(responder, commandInteraction("kick"), domain.Reject(domain.ErrRankTooLow, "Your top role is same/lower than **x**'s"), false)

		require.Len(t, responder.responses, 1)
		data := responder.responses[0].Data
		assert.Equal(t, "Your top role is same/lower than **x**'s", data.Content)
		assert.Equal(t, discordgo.MessageFlagsEphemeral, data.Flags)
	})

	t.Run("deferred errors follow up", func(t *testing.T) {
		responder := &recordingResponder{}
		HandleError(responder, commandInteraction("purge"), NewSystemError(errors.New("missing access"), "purge failed"), true)

		assert.Empty(t, responder.responses)
		require.Len(t, responder.followups, 1)
		assert.Equal(t, genericErrorMessage, responder.followups[0].Content)
	})
}

func TestTopRolePosition(t *testing.T) {
	roles := []*discordgo.Role{
		{ID: "1", Position: 0},
		{ID: "2", Position: 3},
		{ID: "3", Position: 7},
	}

	assert.Equal(t, 0, TopRolePosition(roles, nil))
	assert.Equal(t, 3, TopRolePosition(roles, []string{"2"}))
	assert.Equal(t, 7, TopRolePosition(roles, []string{"2", "3"}))
	assert.Equal(t, 0, TopRolePosition(roles, []string{"unknown"}))
}

func TestMemberPermissions(t *testing.T) {
	guild := &discordgo.Guild{
		ID:      "10",
		OwnerID: "1",
		Roles: []*discordgo.Role{
			{ID: "10", Permissions: discordgo.PermissionSendMessages},
			{ID: "20", Permissions: discordgo.PermissionKickMembers},
			{ID: "30", Permissions: discordgo.PermissionBanMembers},
		},
	}

	t.Run("roles and everyone are combined", func(t *testing.T) {
		perms := MemberPermissions(guild, &discordgo.Member{User: &discordgo.User{ID: "2"}, Roles: []string{"20"}})
		assert.True(t, entities.HasPermission(perms, entities.PermissionKickMembers))
		assert.True(t, entities.HasPermission(perms, entities.PermissionSendMessages))
		assert.False(t, entities.HasPermission(perms, entities.PermissionBanMembers))
	})

	t.Run("owner has everything", func(t *testing.T) {
		perms := MemberPermissions(guild, &discordgo.Member{User: &discordgo.User{ID: "1"}})
		assert.True(t, entities.HasPermission(perms, entities.PermissionBanMembers))
	})
}

func TestInvokerPermissions(t *testing.T) {
	guild := &discordgo.Guild{
		ID:    "10",
		Roles: []*discordgo.Role{{ID: "20", Permissions: discordgo.PermissionModerateMembers}},
	}

	t.Run("payload permissions win", func(t *testing.T) {
		member := &discordgo.Member{Roles: []string{"20"}, Permissions: discordgo.PermissionKickMembers}
		assert.Equal(t, int64(discordgo.PermissionKickMembers), InvokerPermissions(guild, member))
	})

	t.Run("missing permissions come from roles", func(t *testing.T) {
		member := &discordgo.Member{User: &discordgo.User{ID: "2"}, Roles: []string{"20"}}
		assert.Equal(t, int64(discordgo.PermissionModerateMembers), InvokerPermissions(guild, member))
	})
}

func TestBuildActor(t *testing.T) {
	roles := []*discordgo.Role{{ID: "5", Position: 4}}
	user := &discordgo.User{ID: "42", Username: "moderator", Bot: true}

	actor := BuildActor(user, &discordgo.Member{Roles: []string{"5"}}, roles, entities.PermissionKickMembers)

	assert.Equal(t, int64(42), actor.ID)
	assert.Equal(t, "moderator", actor.Name)
	assert.Equal(t, 4, actor.TopRolePosition)
	assert.True(t, actor.Bot)
	assert.True(t, actor.Can(entities.PermissionKickMembers))
}

func TestPermissionBitsMatchPlatform(t *testing.T) {
	pairs := map[int64]int64{
		entities.PermissionKickMembers:     discordgo.PermissionKickMembers,
		entities.PermissionBanMembers:      discordgo.PermissionBanMembers,
		entities.PermissionAdministrator:   discordgo.PermissionAdministrator,
		entities.PermissionManageMessages:  discordgo.PermissionManageMessages,
		entities.PermissionManageChannels:  discordgo.PermissionManageChannels,
		entities.PermissionModerateMembers: discordgo.PermissionModerateMembers,
		entities.PermissionManageRoles:     discordgo.PermissionManageRoles,
		entities.PermissionMoveMembers:     discordgo.PermissionVoiceMoveMembers,
	}
	for ours, platform := range pairs {
		assert.Equal(t, platform, ours)
	}
}

func TestOptions(t *testing.T) {
	opts := ParseOptions([]*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "reason", Type: discordgo.ApplicationCommandOptionString, Value: "spam"},
		{Name: "limit", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(25)},
		{Name: "member", Type: discordgo.ApplicationCommandOptionUser, Value: "200"},
	})

	assert.Equal(t, "spam", opts.String("reason"))
	assert.Equal(t, int64(25), opts.Int("limit"))
	assert.Equal(t, "200", opts.ID("member"))
	assert.Empty(t, opts.String("duration"))
	assert.Zero(t, opts.Int("missing"))
}
