package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"

	"suggestions-bot/internal/config"
	"suggestions-bot/internal/database"
	"suggestions-bot/internal/embeds"
	"suggestions-bot/internal/locales"
	"suggestions-bot/pkg/discordapi"
	"suggestions-bot/pkg/hexid"
)

// threadAutoArchiveMinutes keeps discussion threads open for a week.
const threadAutoArchiveMinutes = 10080

// MessageHandler turns messages posted in the suggestion channel into
// persisted suggestions with a rendered display message and a discussion
// thread.
type MessageHandler struct {
	session     discordapi.Session
	channelID   string
	embedCfg    config.EmbedConfig
	suggestions database.SuggestionRepository
	uploader    ImageUploader
	log         zerolog.Logger
}

// NewMessageHandler creates the intake handler for the suggestion channel.
func NewMessageHandler(
	session discordapi.Session,
	channelID string,
	embedCfg config.EmbedConfig,
	suggestions database.SuggestionRepository,
	uploader ImageUploader,
	log zerolog.Logger,
) (*MessageHandler, error) {
	if session == nil {
		return nil, fmt.Errorf("discord session cannot be nil")
	}
	if channelID == "" {
		return nil, fmt.Errorf("suggestion channel ID cannot be empty")
	}
	if suggestions == nil {
		return nil, fmt.Errorf("suggestion repository cannot be nil")
	}
	if uploader == nil {
		return nil, fmt.Errorf("image uploader cannot be nil")
	}
	return &MessageHandler{
		session:     session,
		channelID:   channelID,
		embedCfg:    embedCfg,
		suggestions: suggestions,
		uploader:    uploader,
		log:         log.With().Str("component", "intake").Logger(),
	}, nil
}

// HandleMessageCreate processes a new message in the suggestion channel:
// upload the attached image (if any), persist a row, post the display
// message, open a discussion thread and delete the original message. A
// failed insert aborts the whole sequence; failures after posting are
// independently best-effort.
func (h *MessageHandler) HandleMessageCreate(ctx context.Context, m *discordgo.MessageCreate) {
	if m.ChannelID != h.channelID || m.Author == nil || m.Author.Bot {
		return
	}

	imageURL := h.uploadAttachedImage(ctx, m)

	hexID := hexid.New()
	id, err := h.suggestions.CreateSuggestion(ctx, m.Author.ID, m.Content, imageURL, hexID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", m.Author.ID).Msg("Failed to insert suggestion")
		sentry.CaptureException(err)
		return
	}

	row, err := h.suggestions.GetSuggestion(ctx, id)
	if err != nil {
		h.log.Error().Err(err).Int64("suggestion_id", id).Msg("Failed to read back new suggestion")
		sentry.CaptureException(err)
		return
	}

	embed := embeds.NewSuggestion(h.embedCfg, m.Author.ID, m.Author.AvatarURL(""), m.Content, hexID, imageURL, row.CreatedAt)
	msg, err := h.session.ChannelMessageSendComplex(h.channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: embeds.Buttons(row.Status, id),
	})
	if err != nil {
		h.log.Error().Err(err).Int64("suggestion_id", id).Msg("Failed to post suggestion display message")
		sentry.CaptureException(err)
		return
	}

	if err := h.suggestions.SetMessageID(ctx, id, msg.ID); err != nil {
		h.log.Error().Err(err).Int64("suggestion_id", id).Msg("Failed to persist display message id")
		sentry.CaptureException(err)
	}

	h.startDiscussionThread(m.Author.ID, msg.ID, hexID)

	if err := h.session.ChannelMessageDelete(h.channelID, m.ID); err != nil {
		h.log.Warn().Err(err).Int64("suggestion_id", id).Msg("Failed to delete original suggestion message")
	}
}

// uploadAttachedImage re-hosts the first image attachment, if any. An upload
// failure is logged and the suggestion continues without an image.
func (h *MessageHandler) uploadAttachedImage(ctx context.Context, m *discordgo.MessageCreate) *string {
	var attachment *discordgo.MessageAttachment
	for _, att := range m.Attachments {
		if strings.HasPrefix(att.ContentType, "image/") {
			attachment = att
			break
		}
	}
	if attachment == nil {
		return nil
	}

	link, err := h.uploader.UploadImage(ctx, attachment.URL)
	if err != nil {
		h.log.Warn().Err(err).Str("user_id", m.Author.ID).Msg("Image upload failed, posting suggestion without image")
		return nil
	}
	return &link
}

func (h *MessageHandler) startDiscussionThread(authorID, messageID, hexID string) {
	thread, err := h.session.MessageThreadStartComplex(h.channelID, messageID, &discordgo.ThreadStart{
		Name:                fmt.Sprintf("Suggestion %s Thread", hexID),
		AutoArchiveDuration: threadAutoArchiveMinutes,
	})
	if err != nil {
		h.log.Warn().Err(err).Str("hex_id", hexID).Msg("Failed to start discussion thread")
		return
	}

	localizer := locales.NewLocalizer(locales.GetDefaultLanguageTag().String())
	greeting := locales.GetMessage(localizer, "MsgThreadGreeting", map[string]interface{}{"UserID": authorID})
	if _, err := h.session.ChannelMessageSend(thread.ID, greeting); err != nil {
		h.log.Warn().Err(err).Str("hex_id", hexID).Msg("Failed to send thread greeting")
	}
}
