package moderation

import (
	"context"
	"fmt"

	"warden/bot/common"
	"warden/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

type action func(ctx context.Context, req entities.ModerationRequest) (*entities.ModerationResult, error)

// handleMemberAction runs a command that targets a single user and answers with one ephemeral reply
func (f *Feature) handleMemberAction(s common.Responder, i *discordgo.InteractionCreate, run action) error {
	guild, err := f.guilds(i.GuildID)
	if err != nil {
		err = common.NewSystemError(err, "guild not in state")
		common.HandleError(s, i, err, false)
		return err
	}

	// unban targets users who are no longer members
	requireMember := i.ApplicationCommandData().Name != "unban"
	req, err := buildRequest(i, guild, requireMember)
	if err != nil {
		common.HandleError(s, i, err, false)
		return err
	}

	result, err := run(context.Background(), req)
	if err != nil {
		common.HandleError(s, i, err, false)
		return err
	}

	if err := common.RespondEphemeral(s, i, result.Reply); err != nil {
		log.WithError(err).WithField("command", result.Action).Error("Failed to respond to interaction")
	}
	return nil
}

// handlePurge defers the response so the bulk delete never removes the reply itself
func (f *Feature) handlePurge(s common.Responder, i *discordgo.InteractionCreate) error {
	if err := common.DeferResponse(s, i, true); err != nil {
		return fmt.Errorf("failed to defer purge response: %w", err)
	}

	guild, err := f.guilds(i.GuildID)
	if err != nil {
		err = common.NewSystemError(err, "guild not in state")
		common.HandleError(s, i, err, true)
		return err
	}

	req, err := buildRequest(i, guild, false)
	if err != nil {
		common.HandleError(s, i, err, true)
		return err
	}

	result, err := f.service.Purge(context.Background(), req)
	if err != nil {
		common.HandleError(s, i, err, true)
		return err
	}

	if err := common.FollowUpEphemeral(s, i, result.Reply); err != nil {
		log.WithError(err).Error("Failed to send purge follow-up")
	}
	return nil
}
