package cmd

import (
	"context"
	"fmt"
	"time"

	"warden/bot"
	"warden/config"
	"warden/database"
	"warden/domain/events"
	"warden/domain/interfaces"
	"warden/domain/services"
	"warden/infrastructure"
	"warden/infrastructure/observability"
	"warden/repository"

	log "github.com/sirupsen/logrus"
)

// persistence holds the stores chosen by configuration
type persistence struct {
	db            *database.DB // nil when guild configs live in a file
	guildConfigs  interfaces.GuildConfigRepository
	moderationLog interfaces.ModerationLogRepository // nil without a database
}

func (p *persistence) Close() {
	if p.db != nil {
		log.Info("Closing database connection...")
		p.db.Close()
	}
}

// eventBus pairs the publisher with the NATS client it owns, if any
type eventBus struct {
	infrastructure.EventBus
	client *infrastructure.NATSClient
}

func (e *eventBus) Close() {
	if e.client == nil {
		return
	}
	if err := e.client.Close(); err != nil {
		log.WithError(err).Warn("Error closing NATS connection")
	}
}

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	cfg.ConfigureLogging()

	log.WithField("environment", cfg.Environment).Info("Starting warden bot...")

	if err := observability.InitializeGlobalMetrics(ctx, cfg); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	store, err := setupPersistence(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	bus, err := setupEventBus(ctx, cfg)
	if err != nil {
		return err
	}
	defer bus.Close()

	infrastructure.RegisterMetricsHandlers(bus)

	var moderationLog interfaces.ModerationLogService
	if store.moderationLog != nil {
		moderationLog = services.NewModerationLogService(store.moderationLog)
		bus.RegisterLocalHandler(events.EventTypeModerationAction, services.HandleModerationAction(moderationLog))
	}

	botConfig := bot.Config{
		Token:            cfg.DiscordToken,
		DebugPort:        cfg.DebugPort,
		MessageCacheSize: cfg.MessageCacheSize,
	}
	session, err := bot.NewSession(botConfig)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	gateway := infrastructure.NewDiscordGateway(session)

	log.Info("Initializing services...")
	guildConfigService := services.NewGuildConfigService(store.guildConfigs, bus)
	botServices := bot.Services{
		Moderation:    services.NewModerationService(gateway, guildConfigService, bus),
		Audit:         services.NewAuditService(guildConfigService, gateway, bus),
		Autorole:      services.NewAutoroleService(guildConfigService, gateway),
		VoiceLobby:    services.NewVoiceLobbyService(gateway),
		GuildConfig:   guildConfigService,
		ModerationLog: moderationLog,
	}

	discordBot := bot.New(botConfig, session, botServices)
	if err := discordBot.Start(); err != nil {
		return fmt.Errorf("failed to start Discord bot: %w", err)
	}
	log.Info("Bot is now running. Press CTRL-C to exit.")

	<-ctx.Done()
	log.Info("Shutting down bot...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := discordBot.Close(shutdownCtx); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}
	if err := observability.ShutdownGlobalMetrics(shutdownCtx); err != nil {
		log.WithError(err).Warn("Error shutting down metrics")
	}

	log.Info("Shutdown completed")
	return nil
}

// setupPersistence connects to Postgres when configured and falls back to the
// JSON file store otherwise. Either store is wrapped in the read cache.
func setupPersistence(ctx context.Context, cfg *config.Config) (*persistence, error) {
	if !cfg.UsesDatabase() {
		log.WithField("path", cfg.StoragePath).Info("No database configured, storing guild configs in a file")
		fileRepo, err := repository.NewFileGuildConfigRepository(cfg.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open guild config file: %w", err)
		}
		return &persistence{
			guildConfigs: repository.NewCachedGuildConfigRepository(fileRepo, cfg.ConfigCacheTTL),
		}, nil
	}

	log.Info("Connecting to database...")
	databaseURL := cfg.GetDatabaseURL()
	db, err := database.NewConnection(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("Running database migrations...")
	if err := database.RunMigrationsWithURL(databaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &persistence{
		db:            db,
		guildConfigs:  repository.NewCachedGuildConfigRepository(repository.NewGuildConfigRepository(db), cfg.ConfigCacheTTL),
		moderationLog: repository.NewModerationLogRepository(db),
	}, nil
}

// setupEventBus publishes to NATS JetStream when configured. Without NATS,
// events still reach local handlers.
func setupEventBus(ctx context.Context, cfg *config.Config) (*eventBus, error) {
	if !cfg.UsesNATS() {
		log.Info("NATS not configured, domain events stay in process")
		return &eventBus{EventBus: infrastructure.NewNoopEventPublisher()}, nil
	}

	client := infrastructure.NewNATSClient(cfg.NATSServers)
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Connect(connectCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	publisher := infrastructure.NewNATSEventPublisher(client, infrastructure.NewEventSubjectMapper())
	if err := publisher.EnsureDomainEventStream(client); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ensure domain event stream: %w", err)
	}

	return &eventBus{EventBus: publisher, client: client}, nil
}
