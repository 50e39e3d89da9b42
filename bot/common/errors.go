package common

import (
	"errors"
	"fmt"

	"warden/domain"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const genericErrorMessage = "Something went wrong. Please try again later."

// BotError represents a structured error with user-facing and internal messages
type BotError struct {
	UserMessage string      // Message shown to Discord user
	LogMessage  string      // Internal message for logging
	Err         error       // Underlying error
	Context     interface{} // Additional context for logging
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.LogMessage, e.Err)
	}
	return e.LogMessage
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.Err
}

// NewUserError creates an error for user-caused issues (bad option values, missing members)
func NewUserError(userMessage string, logMessage string) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
	}
}

// NewSystemError creates an error for system issues (platform failures, storage errors)
func NewSystemError(err error, logMessage string) *BotError {
	return &BotError{
		UserMessage: genericErrorMessage,
		LogMessage:  logMessage,
		Err:         err,
	}
}

// UserMessage returns the text shown to the invoker for err
func UserMessage(err error) string {
	var rejection *domain.Rejection
	if errors.As(err, &rejection) {
		return rejection.Reply
	}
	var botErr *BotError
	if errors.As(err, &botErr) {
		return botErr.UserMessage
	}
	return genericErrorMessage
}

// HandleError logs err and answers the interaction with the matching user message.
// Rejections are expected outcomes and are logged at info level.
func HandleError(s Responder, i *discordgo.InteractionCreate, err error, deferred bool) {
	fields := log.Fields{
		"guild_id": i.GuildID,
		"command":  i.ApplicationCommandData().Name,
		"error":    err.Error(),
	}
	if i.Member != nil && i.Member.User != nil {
		fields["user_id"] = i.Member.User.ID
	}

	var rejection *domain.Rejection
	var botErr *BotError
	switch {
	case errors.As(err, &rejection):
		log.WithFields(fields).Info("Command rejected")
	case errors.As(err, &botErr):
		fields["context"] = botErr.Context
		log.WithFields(fields).Error(botErr.LogMessage)
	default:
		log.WithFields(fields).Error("Unexpected error in bot command")
	}

	message := UserMessage(err)
	var respondErr error
	if deferred {
		respondErr = FollowUpEphemeral(s, i, message)
	} else {
		respondErr = RespondEphemeral(s, i, message)
	}
	if respondErr != nil {
		log.Errorf("Error sending error response: %v", respondErr)
	}
}
