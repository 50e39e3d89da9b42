package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"warden/bot/common"
	"warden/bot/features/moderation"
	"warden/bot/features/settings"
	"warden/domain"
	"warden/domain/interfaces"
	"warden/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token            string
	DebugPort        int
	MessageCacheSize int
}

// Services are the domain services the bot adapts gateway events to
type Services struct {
	Moderation    interfaces.ModerationService
	Audit         interfaces.AuditService
	Autorole      interfaces.AutoroleService
	VoiceLobby    interfaces.VoiceLobbyService
	GuildConfig   interfaces.GuildConfigService
	ModerationLog interfaces.ModerationLogService // nil without a database
}

// Bot manages the Discord session and routes events to the domain services
type Bot struct {
	config   Config
	session  *discordgo.Session
	services Services

	snapshots *snapshotCache

	// Guilds reported unavailable, by Ready or by an outage. Their next
	// GuildCreate means available again rather than joined.
	unavailableMu sync.Mutex
	unavailable   map[string]struct{}

	// Feature modules
	moderation *moderation.Feature
	settings   *settings.Feature

	debugServer *http.Server
}

// NewSession creates a Discord session with every intent and a message cache
// large enough for edit and delete audit lines
func NewSession(config Config) (*discordgo.Session, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsAll
	dg.State.MaxMessageCount = config.MessageCacheSize
	dg.State.TrackVoice = true
	return dg, nil
}

// New creates a bot over session and registers its event handlers
func New(config Config, session *discordgo.Session, services Services) *Bot {
	b := &Bot{
		config:      config,
		session:     session,
		services:    services,
		snapshots:   newSnapshotCache(),
		unavailable: make(map[string]struct{}),
	}

	b.moderation = moderation.NewFeature(services.Moderation, session.State.Guild)
	b.settings = settings.NewFeature(services.Moderation, session.State.Guild, session.State.Channel)

	b.registerHandlers()
	return b
}

// Start opens the gateway connection, registers slash commands and starts the debug API
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	if err := b.registerCommands(); err != nil {
		b.session.Close()
		return fmt.Errorf("error registering commands: %w", err)
	}

	if err := b.StartDebugAPI(b.config.DebugPort); err != nil {
		log.Warnf("Failed to start debug API on port %d: %v", b.config.DebugPort, err)
	}

	return nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close(ctx context.Context) error {
	if b.debugServer != nil {
		if err := b.debugServer.Shutdown(ctx); err != nil {
			log.WithError(err).Warn("Debug API did not shut down cleanly")
		}
	}
	return b.session.Close()
}

// GetSession returns the Discord session
func (b *Bot) GetSession() *discordgo.Session {
	return b.session
}

// handleCommands routes slash commands to the feature that owns them
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	var err error
	switch name {
	case "kick", "ban", "unban", "mute", "unmute", "purge":
		err = b.moderation.HandleCommand(s, i)
	case "autorole", "logs":
		err = b.settings.HandleCommand(s, i)
	default:
		log.WithField("command", name).Warn("Unknown command")
		return
	}

	b.completeCommand(i.GuildID, name, err)
}

// completeCommand records the outcome and logs the completion line. Rejected
// commands still complete; only failures skip the line.
func (b *Bot) completeCommand(guildID, name string, err error) {
	outcome := commandOutcome(err)
	observability.GetMetrics().RecordCommand(name, outcome)
	if outcome == observability.OutcomeError {
		return
	}

	ctx := context.Background()
	if err := b.services.Audit.CommandCompleted(ctx, entityID(guildID), name); err != nil {
		logEventError("command_completed", guildID, err)
	}
}

func commandOutcome(err error) string {
	if err == nil {
		return observability.OutcomeSuccess
	}
	var rejection *domain.Rejection
	var botErr *common.BotError
	if errors.As(err, &rejection) || (errors.As(err, &botErr) && botErr.Err == nil) {
		return observability.OutcomeRejected
	}
	return observability.OutcomeError
}
