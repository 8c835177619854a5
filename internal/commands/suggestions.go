package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/getsentry/sentry-go"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/rs/zerolog"

	"suggestions-bot/internal/auth"
	"suggestions-bot/internal/database"
	"suggestions-bot/internal/locales"
	"suggestions-bot/pkg/discordapi"
)

// confirmTimeout bounds the wait for the database-clear confirmation reply.
const confirmTimeout = 15 * time.Second

// SuggestionsCommandDeps holds the dependencies for the /suggestions command.
// ConfirmTimeout overrides the database-clear confirmation window; zero
// means the default.
type SuggestionsCommandDeps struct {
	Suggestions    database.SuggestionRepository
	AdminChecker   auth.AdminCheckerInterface
	Log            zerolog.Logger
	ConfirmTimeout time.Duration
}

type suggestionsCommand struct {
	suggestions  database.SuggestionRepository
	adminChecker auth.AdminCheckerInterface
	confirmWait  time.Duration
	log          zerolog.Logger
}

// NewSuggestionsCommand builds the /suggestions admin command with its
// delete and database-clear subcommands.
func NewSuggestionsCommand(deps SuggestionsCommandDeps) (*Command, error) {
	if deps.Suggestions == nil {
		return nil, fmt.Errorf("suggestion repository cannot be nil")
	}
	if deps.AdminChecker == nil {
		return nil, fmt.Errorf("admin checker cannot be nil")
	}
	wait := deps.ConfirmTimeout
	if wait <= 0 {
		wait = confirmTimeout
	}
	cmd := &suggestionsCommand{
		suggestions:  deps.Suggestions,
		adminChecker: deps.AdminChecker,
		confirmWait:  wait,
		log:          deps.Log.With().Str("command", "suggestions").Logger(),
	}
	return &Command{
		Definition: &discordgo.ApplicationCommand{
			Name:        "suggestions",
			Description: "Administrative suggestion management",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete a suggestion by its public ID",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "id",
							Description: "The suggestion's public ID",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "database-clear",
					Description: "Delete every suggestion and vote",
				},
			},
		},
		Execute: cmd.execute,
	}, nil
}

func (c *suggestionsCommand) execute(ctx context.Context, session discordapi.Session, i *discordgo.InteractionCreate) error {
	localizer := locales.NewLocalizer(locales.GetDefaultLanguageTag().String())

	invokerID := ""
	if i.Member != nil && i.Member.User != nil {
		invokerID = i.Member.User.ID
	}
	if !c.adminChecker.IsAdmin(i.Member, invokerID) {
		return respondEphemeral(session, i, locales.GetMessage(localizer, "MsgNoPermission", nil))
	}

	if err := deferEphemeral(session, i); err != nil {
		return fmt.Errorf("failed to defer command response: %w", err)
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return editReply(session, i, locales.GetMessage(localizer, "MsgUnknownAction", nil))
	}

	switch options[0].Name {
	case "delete":
		return c.executeDelete(ctx, session, i, localizer, options[0])
	case "database-clear":
		return c.executeClear(ctx, session, i, localizer, invokerID)
	default:
		return editReply(session, i, locales.GetMessage(localizer, "MsgUnknownAction", nil))
	}
}

func (c *suggestionsCommand) executeDelete(ctx context.Context, session discordapi.Session, i *discordgo.InteractionCreate, localizer *i18n.Localizer, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	hexID := strings.ToUpper(strings.TrimSpace(sub.Options[0].StringValue()))

	affected, err := c.suggestions.DeleteByHexID(ctx, hexID)
	if err != nil {
		c.log.Error().Err(err).Str("hex_id", hexID).Msg("Failed to delete suggestion")
		sentry.CaptureException(err)
		return editReply(session, i, locales.GetMessage(localizer, "MsgDeleteFailed", nil))
	}
	if affected == 0 {
		return editReply(session, i, locales.GetMessage(localizer, "MsgDeleteNotFound", map[string]interface{}{"HexID": hexID}))
	}

	c.log.Info().Str("hex_id", hexID).Msg("Suggestion deleted")
	return editReply(session, i, locales.GetMessage(localizer, "MsgDeleteSuccess", map[string]interface{}{"HexID": hexID}))
}

// executeClear prompts the invoker for a literal "yes" in the channel and
// wipes the store only when it arrives within the timeout.
func (c *suggestionsCommand) executeClear(ctx context.Context, session discordapi.Session, i *discordgo.InteractionCreate, localizer *i18n.Localizer, invokerID string) error {
	if err := editReply(session, i, locales.GetMessage(localizer, "MsgClearConfirmPrompt", nil)); err != nil {
		return err
	}

	// Only a matching reply closes the window; anything else from the
	// invoker is ignored so a typo can still be followed by a "yes".
	confirmed := make(chan struct{}, 1)
	remove := session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.ID != invokerID || m.ChannelID != i.ChannelID {
			return
		}
		if !strings.EqualFold(strings.TrimSpace(m.Content), "yes") {
			return
		}
		select {
		case confirmed <- struct{}{}:
		default:
		}
	})
	defer remove()

	select {
	case <-confirmed:
	case <-time.After(c.confirmWait):
		return followupEphemeral(session, i, locales.GetMessage(localizer, "MsgClearTimeout", nil))
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := c.suggestions.ClearAll(ctx); err != nil {
		c.log.Error().Err(err).Msg("Failed to clear suggestion store")
		sentry.CaptureException(err)
		return followupEphemeral(session, i, locales.GetMessage(localizer, "MsgClearFailed", nil))
	}

	c.log.Info().Str("invoker_id", invokerID).Msg("Suggestion store cleared")
	return followupEphemeral(session, i, locales.GetMessage(localizer, "MsgClearDone", nil))
}

func deferEphemeral(session discordapi.Session, i *discordgo.InteractionCreate) error {
	return session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
}

func respondEphemeral(session discordapi.Session, i *discordgo.InteractionCreate, content string) error {
	return session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content, Flags: discordgo.MessageFlagsEphemeral},
	})
}

func editReply(session discordapi.Session, i *discordgo.InteractionCreate, content string) error {
	_, err := session.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content})
	return err
}

func followupEphemeral(session discordapi.Session, i *discordgo.InteractionCreate, content string) error {
	_, err := session.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	return err
}
