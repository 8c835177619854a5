package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	appbot "suggestions-bot/bot"
	"suggestions-bot/internal/auth"
	"suggestions-bot/internal/commands"
	"suggestions-bot/internal/config"
	"suggestions-bot/internal/database"
	"suggestions-bot/internal/external"
	"suggestions-bot/internal/handlers"
	"suggestions-bot/internal/locales"
	"suggestions-bot/internal/suggestions"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Configuration error")
	}

	logger := newLogger(cfg)

	// Initialize localization bundle
	locales.Init("en")

	// Initialize Sentry (if DSN is provided)
	err = sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		Release:          cfg.Version,
		EnableTracing:    true,
		TracesSampleRate: 1.0,
		Debug:            cfg.Debug,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("sentry.Init failed")
	}
	defer sentry.Flush(2 * time.Second)

	// Open the suggestion store
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		sentry.CaptureException(err)
		logger.Fatal().Err(err).Str("path", cfg.DBPath).Msg("Failed to open database")
	}
	suggestionRepo := database.NewGormSuggestionRepository(db)
	voteRepo := database.NewGormVoteRepository(db)

	// Creating context for application lifecycle
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Bot Initialization ---
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		sentry.CaptureException(err)
		logger.Fatal().Err(err).Msg("Failed to create discord session")
	}

	adminChecker, err := auth.NewAdminChecker(session, cfg.GuildID, cfg.AdminRoleID)
	if err != nil {
		sentry.CaptureException(err)
		logger.Fatal().Err(err).Msg("Failed to create admin checker")
	}

	externalClient := external.NewClient(cfg.ImgurClientID)
	sessionStore := suggestions.NewSessionStore(suggestions.DefaultSessionTTL)

	messageHandler, err := handlers.NewMessageHandler(
		session,
		cfg.SuggestionChannelID,
		cfg.Embed,
		suggestionRepo,
		externalClient,
		logger,
	)
	if err != nil {
		sentry.CaptureException(err)
		logger.Fatal().Err(err).Msg("Failed to create message handler")
	}

	registry := commands.NewRegistry()
	suggestionsCmd, err := commands.NewSuggestionsCommand(commands.SuggestionsCommandDeps{
		Suggestions:  suggestionRepo,
		AdminChecker: adminChecker,
		Log:          logger,
	})
	if err != nil {
		sentry.CaptureException(err)
		logger.Fatal().Err(err).Msg("Failed to create suggestions command")
	}
	registry.Register(suggestionsCmd)

	interactionHandler, err := handlers.NewInteractionHandler(handlers.InteractionHandlerDeps{
		Session:      session,
		GuildID:      cfg.GuildID,
		ChannelID:    cfg.SuggestionChannelID,
		EmbedCfg:     cfg.Embed,
		Suggestions:  suggestionRepo,
		Votes:        voteRepo,
		Paste:        externalClient,
		AdminChecker: adminChecker,
		Sessions:     sessionStore,
		Registry:     registry,
		Log:          logger,
	})
	if err != nil {
		sentry.CaptureException(err)
		logger.Fatal().Err(err).Msg("Failed to create interaction handler")
	}

	appBot, err := appbot.New(appbot.BotDeps{
		Session:            session,
		GuildID:            cfg.GuildID,
		MessageHandler:     messageHandler,
		InteractionHandler: interactionHandler,
		Registry:           registry,
		Log:                logger,
	})
	if err != nil {
		sentry.CaptureException(err)
		logger.Fatal().Err(err).Msg("Failed to create bot")
	}

	if err := appBot.Start(ctx); err != nil {
		sentry.CaptureException(err)
		logger.Fatal().Err(err).Msg("Failed to start bot")
	}

	// Wait for context cancellation (e.g., SIGINT, SIGTERM)
	<-ctx.Done()

	logger.Info().Msg("Shutting down bot...")
	if err := appBot.Stop(); err != nil {
		logger.Error().Err(err).Msg("Error during shutdown")
	}
	logger.Info().Msg("Bot shutdown complete")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	var logger zerolog.Logger
	if cfg.AppEnv == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Str("service", "suggestions-bot").Logger()
}
