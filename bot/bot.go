package bot

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"

	"suggestions-bot/internal/commands"
	"suggestions-bot/internal/handlers"
)

// processTimeout bounds the handling of a single gateway event.
const processTimeout = 30 * time.Second

// Bot wraps the Discord gateway session and wires incoming events to the
// intake handler, the interaction router and slash-command registration.
type Bot struct {
	session            *discordgo.Session
	guildID            string
	messageHandler     *handlers.MessageHandler
	interactionHandler *handlers.InteractionHandler
	registry           *commands.Registry
	log                zerolog.Logger

	baseCtx        context.Context
	removeHandlers []func()
}

// BotDeps holds the dependencies required by the Bot.
type BotDeps struct {
	Session            *discordgo.Session
	GuildID            string
	MessageHandler     *handlers.MessageHandler
	InteractionHandler *handlers.InteractionHandler
	Registry           *commands.Registry
	Log                zerolog.Logger
}

// New creates a new Bot instance from its dependencies.
func New(deps BotDeps) (*Bot, error) {
	if deps.Session == nil {
		return nil, fmt.Errorf("discord session cannot be nil")
	}
	if deps.GuildID == "" {
		return nil, fmt.Errorf("guild ID cannot be empty")
	}
	if deps.MessageHandler == nil {
		return nil, fmt.Errorf("message handler cannot be nil")
	}
	if deps.InteractionHandler == nil {
		return nil, fmt.Errorf("interaction handler cannot be nil")
	}
	if deps.Registry == nil {
		return nil, fmt.Errorf("command registry cannot be nil")
	}
	return &Bot{
		session:            deps.Session,
		guildID:            deps.GuildID,
		messageHandler:     deps.MessageHandler,
		interactionHandler: deps.InteractionHandler,
		registry:           deps.Registry,
		log:                deps.Log.With().Str("component", "bot").Logger(),
	}, nil
}

// Start registers the gateway handlers and opens the connection.
func (b *Bot) Start(ctx context.Context) error {
	b.baseCtx = ctx
	b.session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	b.removeHandlers = append(b.removeHandlers,
		b.session.AddHandler(b.onReady),
		b.session.AddHandler(b.onMessageCreate),
		b.session.AddHandler(b.onInteractionCreate),
	)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway connection: %w", err)
	}
	b.log.Info().Msg("Gateway connection opened")
	return nil
}

// Stop removes the event handlers and closes the gateway connection.
func (b *Bot) Stop() error {
	for _, remove := range b.removeHandlers {
		remove()
	}
	b.removeHandlers = nil

	if err := b.session.Close(); err != nil {
		return fmt.Errorf("failed to close gateway connection: %w", err)
	}
	b.log.Info().Msg("Gateway connection closed")
	return nil
}

// onReady overwrites the guild's slash commands once the session identifies.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info().Str("username", r.User.Username).Msg("Session ready")

	if err := b.registry.RegisterAll(s, r.User.ID, b.guildID); err != nil {
		b.log.Error().Err(err).Msg("Failed to register guild commands")
		sentry.CaptureException(err)
		return
	}
	b.log.Info().Int("count", len(b.registry.Definitions())).Msg("Guild commands registered")
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	b.withRecovery("message_create", func(ctx context.Context) {
		b.messageHandler.HandleMessageCreate(ctx, m)
	})
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.withRecovery("interaction_create", func(ctx context.Context) {
		b.interactionHandler.HandleInteractionCreate(ctx, i)
	})
}

// withRecovery runs a handler under a per-event timeout and converts panics
// into captured errors so one bad event cannot take the gateway loop down.
func (b *Bot) withRecovery(event string, fn func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Str("event", event).Interface("panic", r).
				Bytes("stack", debug.Stack()).Msg("Recovered from panic in event handler")
			sentry.CurrentHub().Recover(r)
			sentry.Flush(2 * time.Second)
		}
	}()

	base := b.baseCtx
	if base == nil {
		base = context.Background()
	}
	ctx, cancel := context.WithTimeout(base, processTimeout)
	defer cancel()
	fn(ctx)
}
