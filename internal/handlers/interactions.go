package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/getsentry/sentry-go"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/rs/zerolog"

	"suggestions-bot/internal/auth"
	"suggestions-bot/internal/commands"
	"suggestions-bot/internal/config"
	"suggestions-bot/internal/database"
	"suggestions-bot/internal/database/models"
	"suggestions-bot/internal/embeds"
	"suggestions-bot/internal/locales"
	"suggestions-bot/pkg/discordapi"
)

// Action tags carried in component custom IDs, in the form <action>_<id>.
const (
	actionUpvote    = "upvote"
	actionDownvote  = "downvote"
	actionView      = "view"
	actionManage    = "manage"
	actionAccept    = "accept"
	actionReject    = "reject"
	actionImplement = "implement"
)

// reasonInputID is the custom ID of the text input inside the decision modal.
const reasonInputID = "reasonInput"

// InteractionHandler routes button clicks, modal submissions and slash
// commands to the vote, manage and decision logic.
type InteractionHandler struct {
	session      discordapi.Session
	guildID      string
	channelID    string
	embedCfg     config.EmbedConfig
	suggestions  database.SuggestionRepository
	votes        database.VoteRepository
	paste        PasteUploader
	adminChecker auth.AdminCheckerInterface
	sessions     SessionStore
	registry     *commands.Registry
	log          zerolog.Logger
}

// InteractionHandlerDeps holds the dependencies for NewInteractionHandler.
type InteractionHandlerDeps struct {
	Session      discordapi.Session
	GuildID      string
	ChannelID    string
	EmbedCfg     config.EmbedConfig
	Suggestions  database.SuggestionRepository
	Votes        database.VoteRepository
	Paste        PasteUploader
	AdminChecker auth.AdminCheckerInterface
	Sessions     SessionStore
	Registry     *commands.Registry
	Log          zerolog.Logger
}

// NewInteractionHandler creates the interaction router.
func NewInteractionHandler(deps InteractionHandlerDeps) (*InteractionHandler, error) {
	if deps.Session == nil {
		return nil, fmt.Errorf("discord session cannot be nil")
	}
	if deps.GuildID == "" {
		return nil, fmt.Errorf("guild ID cannot be empty")
	}
	if deps.ChannelID == "" {
		return nil, fmt.Errorf("suggestion channel ID cannot be empty")
	}
	if deps.Suggestions == nil {
		return nil, fmt.Errorf("suggestion repository cannot be nil")
	}
	if deps.Votes == nil {
		return nil, fmt.Errorf("vote repository cannot be nil")
	}
	if deps.Paste == nil {
		return nil, fmt.Errorf("paste uploader cannot be nil")
	}
	if deps.AdminChecker == nil {
		return nil, fmt.Errorf("admin checker cannot be nil")
	}
	if deps.Sessions == nil {
		return nil, fmt.Errorf("session store cannot be nil")
	}
	if deps.Registry == nil {
		return nil, fmt.Errorf("command registry cannot be nil")
	}
	return &InteractionHandler{
		session:      deps.Session,
		guildID:      deps.GuildID,
		channelID:    deps.ChannelID,
		embedCfg:     deps.EmbedCfg,
		suggestions:  deps.Suggestions,
		votes:        deps.Votes,
		paste:        deps.Paste,
		adminChecker: deps.AdminChecker,
		sessions:     deps.Sessions,
		registry:     deps.Registry,
		log:          deps.Log.With().Str("component", "interactions").Logger(),
	}, nil
}

// HandleInteractionCreate dispatches an interaction by type.
func (h *InteractionHandler) HandleInteractionCreate(ctx context.Context, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.handleCommand(ctx, i)
	case discordgo.InteractionMessageComponent:
		h.handleComponent(ctx, i)
	case discordgo.InteractionModalSubmit:
		h.handleModalSubmit(ctx, i)
	}
}

func (h *InteractionHandler) handleCommand(ctx context.Context, i *discordgo.InteractionCreate) {
	localizer := locales.NewLocalizer(locales.GetDefaultLanguageTag().String())
	name := i.ApplicationCommandData().Name

	cmd, ok := h.registry.Get(name)
	if !ok {
		h.log.Warn().Str("command", name).Msg("No matching command")
		h.respondEphemeral(i, locales.GetMessage(localizer, "MsgCommandNotFound", nil))
		return
	}

	if err := cmd.Execute(ctx, h.session, i); err != nil {
		h.log.Error().Err(err).Str("command", name).Msg("Command execution failed")
		sentry.CaptureException(fmt.Errorf("command %s: %w", name, err))
		h.followupEphemeral(i, locales.GetMessage(localizer, "MsgCommandError", nil))
	}
}

func (h *InteractionHandler) handleComponent(ctx context.Context, i *discordgo.InteractionCreate) {
	localizer := locales.NewLocalizer(locales.GetDefaultLanguageTag().String())

	action, suggestionID, err := parseCustomID(i.MessageComponentData().CustomID)
	if err != nil {
		h.log.Warn().Str("custom_id", i.MessageComponentData().CustomID).Msg("Unparseable component custom ID")
		h.respondEphemeral(i, locales.GetMessage(localizer, "MsgUnknownAction", nil))
		return
	}

	// The decision buttons answer with a modal, which the platform forbids
	// after a deferral; every other branch defers so the response-time limit
	// is not hit while storage and upload calls run.
	deferred := action != actionAccept && action != actionReject && action != actionImplement
	if deferred {
		if err := h.deferEphemeral(i); err != nil {
			h.log.Error().Err(err).Str("action", action).Msg("Failed to defer interaction response")
			return
		}
	}

	row, err := h.suggestions.GetSuggestion(ctx, suggestionID)
	if err != nil {
		if errors.Is(err, database.ErrSuggestionNotFound) {
			h.reply(i, deferred, locales.GetMessage(localizer, "MsgSuggestionNotFound", nil))
			return
		}
		h.log.Error().Err(err).Int64("suggestion_id", suggestionID).Msg("Failed to check suggestion existence")
		sentry.CaptureException(err)
		h.reply(i, deferred, locales.GetMessage(localizer, "MsgErrorGeneral", nil))
		return
	}

	switch action {
	case actionUpvote:
		h.handleVote(ctx, i, localizer, row, models.VoteUp)
	case actionDownvote:
		h.handleVote(ctx, i, localizer, row, models.VoteDown)
	case actionView:
		h.handleViewVotes(ctx, i, localizer, row)
	case actionManage:
		h.handleManage(i, localizer, row)
	case actionAccept, actionReject, actionImplement:
		h.showDecisionModal(i, localizer, action, row.ID)
	default:
		h.log.Warn().Str("action", action).Msg("Unknown action")
		h.reply(i, deferred, locales.GetMessage(localizer, "MsgUnknownAction", nil))
	}
}

// handleVote applies the toggle-off / switch / fresh-vote transition for one
// voter, then re-renders the display message from a fresh read.
func (h *InteractionHandler) handleVote(ctx context.Context, i *discordgo.InteractionCreate, localizer *i18n.Localizer, row *models.Suggestion, voteType models.VoteType) {
	voterID := interactionUserID(i)

	existing, err := h.votes.GetVote(ctx, row.ID, voterID)
	if err != nil && !errors.Is(err, database.ErrVoteNotFound) {
		h.log.Error().Err(err).Int64("suggestion_id", row.ID).Msg("Vote lookup failed")
		sentry.CaptureException(err)
		h.editReply(i, locales.GetMessage(localizer, "MsgVoteFailed", nil))
		return
	}

	var successMsgID string
	switch {
	case err == nil && existing == voteType:
		// Toggle-off: same kind again removes the entry.
		err = h.votes.RemoveVote(ctx, row.ID, voterID)
		if err == nil {
			up, down := countDeltas(voteType, -1)
			err = h.suggestions.AdjustCounts(ctx, row.ID, up, down)
		}
		successMsgID = "MsgVoteRemoved"
	case err == nil:
		// Switch: opposite kind replaces the entry in place.
		err = h.votes.SwitchVote(ctx, row.ID, voterID, voteType)
		if err == nil {
			newUp, newDown := countDeltas(voteType, 1)
			oldUp, oldDown := countDeltas(voteType.Opposite(), -1)
			err = h.suggestions.AdjustCounts(ctx, row.ID, newUp+oldUp, newDown+oldDown)
		}
		successMsgID = "MsgVoteUpdated"
	default:
		err = h.votes.AddVote(ctx, row.ID, voterID, voteType)
		if err == nil {
			up, down := countDeltas(voteType, 1)
			err = h.suggestions.AdjustCounts(ctx, row.ID, up, down)
		}
		successMsgID = "MsgVoteSubmitted"
	}

	if err != nil {
		h.log.Error().Err(err).Int64("suggestion_id", row.ID).Str("voter_id", voterID).Msg("Vote mutation failed")
		sentry.CaptureException(err)
		h.editReply(i, locales.GetMessage(localizer, "MsgVoteFailed", nil))
		return
	}

	if err := h.refreshDisplay(ctx, row.ID); err != nil {
		h.log.Error().Err(err).Int64("suggestion_id", row.ID).Msg("Failed to re-render display message")
		sentry.CaptureException(err)
		h.editReply(i, locales.GetMessage(localizer, "MsgErrorGeneral", nil))
		return
	}

	h.editReply(i, locales.GetMessage(localizer, successMsgID, nil))
}

// handleViewVotes uploads the full, name-resolved ledger to the paste host
// and replies with the viewing link. Admin only.
func (h *InteractionHandler) handleViewVotes(ctx context.Context, i *discordgo.InteractionCreate, localizer *i18n.Localizer, row *models.Suggestion) {
	if !h.adminChecker.IsAdmin(i.Member, interactionUserID(i)) {
		h.editReply(i, locales.GetMessage(localizer, "MsgNoPermission", nil))
		return
	}

	entries, err := h.votes.ListVotes(ctx, row.ID)
	if err != nil {
		h.log.Error().Err(err).Int64("suggestion_id", row.ID).Msg("Failed to list votes")
		sentry.CaptureException(err)
		h.editReply(i, locales.GetMessage(localizer, "MsgVoteListFetchFailed", nil))
		return
	}

	var upvoters, downvoters []string
	for _, entry := range entries {
		name := h.resolveVoterName(entry.UserID)
		if entry.VoteType == models.VoteUp {
			upvoters = append(upvoters, name)
		} else {
			downvoters = append(downvoters, name)
		}
	}

	url, err := h.paste.UploadPaste(ctx, "Vote List", formatVoteList(upvoters, downvoters))
	if err != nil {
		h.log.Error().Err(err).Int64("suggestion_id", row.ID).Msg("Paste upload failed")
		h.editReply(i, locales.GetMessage(localizer, "MsgVoteListUploadFailed", nil))
		return
	}

	embed := embeds.VoteList(
		h.embedCfg,
		locales.GetMessage(localizer, "MsgVoteListTitle", nil),
		locales.GetMessage(localizer, "MsgVoteListDescription", map[string]interface{}{"URL": url}),
		locales.GetMessage(localizer, "MsgVoteListExpiry", nil),
	)
	h.editReplyEmbed(i, embed)
}

// handleManage remembers which suggestion the staff member is managing and
// presents the three decision buttons. Admin only.
func (h *InteractionHandler) handleManage(i *discordgo.InteractionCreate, localizer *i18n.Localizer, row *models.Suggestion) {
	staffID := interactionUserID(i)
	if !h.adminChecker.IsAdmin(i.Member, staffID) {
		h.editReply(i, locales.GetMessage(localizer, "MsgNoPermission", nil))
		return
	}

	h.sessions.Set(staffID, row.ID)

	content := locales.GetMessage(localizer, "MsgManagePrompt", nil)
	components := embeds.ManageButtons(row.ID)
	if _, err := h.session.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &components,
	}); err != nil {
		h.log.Error().Err(err).Int64("suggestion_id", row.ID).Msg("Failed to present manage buttons")
	}
}

// showDecisionModal opens the free-text reason modal. The status mutation
// happens only on modal submission.
func (h *InteractionHandler) showDecisionModal(i *discordgo.InteractionCreate, localizer *i18n.Localizer, action string, suggestionID int64) {
	var title, label string
	switch action {
	case actionAccept:
		title, label = "Reason for Approval", "Approval Reason"
	case actionReject:
		title, label = "Reason for Rejection", "Rejection Reason"
	default:
		title, label = "Reason for Implementation", "Implementation Reason"
	}

	err := h.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: fmt.Sprintf("%s_modal_%d", action, suggestionID),
			Title:    title,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    reasonInputID,
						Label:       label,
						Style:       discordgo.TextInputParagraph,
						Placeholder: fmt.Sprintf("Provide the reason for %s.", action),
						Required:    true,
					},
				}},
			},
		},
	})
	if err != nil {
		h.log.Error().Err(err).Int64("suggestion_id", suggestionID).Str("action", action).Msg("Failed to open decision modal")
		sentry.CaptureException(err)
		h.respondEphemeral(i, locales.GetMessage(localizer, "MsgErrorGeneral", nil))
	}
}

// handleModalSubmit resolves the remembered suggestion for the submitting
// staff member and applies the decision in one write.
func (h *InteractionHandler) handleModalSubmit(ctx context.Context, i *discordgo.InteractionCreate) {
	localizer := locales.NewLocalizer(locales.GetDefaultLanguageTag().String())

	if err := h.deferEphemeral(i); err != nil {
		h.log.Error().Err(err).Msg("Failed to defer modal response")
		return
	}

	staffID := interactionUserID(i)
	suggestionID, ok := h.sessions.Get(staffID)
	if !ok {
		// Hard error, no fallback: the association expired or never existed.
		h.editReply(i, locales.GetMessage(localizer, "MsgDecisionNotInCache", nil))
		return
	}

	data := i.ModalSubmitData()
	status, ok := statusForAction(strings.SplitN(data.CustomID, "_", 2)[0])
	if !ok {
		h.editReply(i, locales.GetMessage(localizer, "MsgUnknownAction", nil))
		return
	}
	reason := extractReason(data)

	if err := h.suggestions.UpdateDecision(ctx, suggestionID, status, reason); err != nil {
		switch {
		case errors.Is(err, database.ErrAlreadyDecided):
			h.editReply(i, locales.GetMessage(localizer, "MsgDecisionAlreadyMade", nil))
		case errors.Is(err, database.ErrSuggestionNotFound):
			// Deleted while the modal was open.
			h.editReply(i, locales.GetMessage(localizer, "MsgSuggestionGone", nil))
		default:
			h.log.Error().Err(err).Int64("suggestion_id", suggestionID).Msg("Failed to update decision")
			sentry.CaptureException(err)
			h.editReply(i, locales.GetMessage(localizer, "MsgDecisionFailed", nil))
		}
		return
	}

	h.sessions.Clear(staffID)

	if err := h.refreshDisplay(ctx, suggestionID); err != nil {
		h.log.Error().Err(err).Int64("suggestion_id", suggestionID).Msg("Failed to re-render after decision")
		sentry.CaptureException(err)
		h.editReply(i, locales.GetMessage(localizer, "MsgDecisionFailed", nil))
		return
	}

	h.editReply(i, locales.GetMessage(localizer, "MsgDecisionSaved", nil))
}

// refreshDisplay re-reads the suggestion row and edits the display message
// to match it. A missing message identifier or channel is an error; the
// display message is never recreated.
func (h *InteractionHandler) refreshDisplay(ctx context.Context, suggestionID int64) error {
	row, err := h.suggestions.GetSuggestion(ctx, suggestionID)
	if err != nil {
		return err
	}
	if row.MessageID == nil || *row.MessageID == "" {
		return fmt.Errorf("suggestion %d has no recorded display message", suggestionID)
	}

	avatarURL := ""
	if member, err := h.session.GuildMember(h.guildID, row.UserID); err == nil && member.User != nil {
		avatarURL = member.User.AvatarURL("")
	}

	embed := embeds.UpdatedSuggestion(h.embedCfg, row, avatarURL)
	components := embeds.Buttons(row.Status, row.ID)
	edit := &discordgo.MessageEdit{
		Channel:    h.channelID,
		ID:         *row.MessageID,
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	}
	if _, err := h.session.ChannelMessageEditComplex(edit); err != nil {
		return fmt.Errorf("failed to edit display message %s: %w", *row.MessageID, err)
	}
	return nil
}

// resolveVoterName turns a voter id into a display name, falling back to a
// placeholder that embeds the raw id when the member cannot be fetched.
func (h *InteractionHandler) resolveVoterName(userID string) string {
	member, err := h.session.GuildMember(h.guildID, userID)
	if err != nil || member.User == nil {
		return fmt.Sprintf("Unknown User (ID: %s)", userID)
	}
	return member.User.String()
}

func (h *InteractionHandler) deferEphemeral(i *discordgo.InteractionCreate) error {
	return h.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
}

func (h *InteractionHandler) respondEphemeral(i *discordgo.InteractionCreate, content string) {
	err := h.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content, Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to send interaction response")
	}
}

func (h *InteractionHandler) followupEphemeral(i *discordgo.InteractionCreate, content string) {
	_, err := h.session.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to send followup message")
	}
}

func (h *InteractionHandler) editReply(i *discordgo.InteractionCreate, content string) {
	if _, err := h.session.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content}); err != nil {
		h.log.Warn().Err(err).Msg("Failed to edit interaction reply")
	}
}

func (h *InteractionHandler) editReplyEmbed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	embedsList := []*discordgo.MessageEmbed{embed}
	if _, err := h.session.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Embeds: &embedsList}); err != nil {
		h.log.Warn().Err(err).Msg("Failed to edit interaction reply")
	}
}

// reply answers through the right channel depending on whether the
// interaction was already deferred.
func (h *InteractionHandler) reply(i *discordgo.InteractionCreate, deferred bool, content string) {
	if deferred {
		h.editReply(i, content)
		return
	}
	h.respondEphemeral(i, content)
}

// parseCustomID decomposes "<action>_<numeric id>" component identifiers.
func parseCustomID(customID string) (string, int64, error) {
	parts := strings.SplitN(customID, "_", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("malformed custom id %q", customID)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed suggestion id in %q: %w", customID, err)
	}
	return parts[0], id, nil
}

// countDeltas maps a vote kind and direction onto (upvotes, downvotes) deltas.
func countDeltas(voteType models.VoteType, delta int) (int, int) {
	if voteType == models.VoteUp {
		return delta, 0
	}
	return 0, delta
}

func statusForAction(action string) (models.SuggestionStatus, bool) {
	switch action {
	case actionAccept:
		return models.StatusAccepted, true
	case actionReject:
		return models.StatusRejected, true
	case actionImplement:
		return models.StatusImplemented, true
	default:
		return "", false
	}
}

func extractReason(data discordgo.ModalSubmitInteractionData) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			if input, ok := component.(*discordgo.TextInput); ok && input.CustomID == reasonInputID {
				return input.Value
			}
		}
	}
	return ""
}

func formatVoteList(upvoters, downvoters []string) string {
	upText := strings.Join(upvoters, "\n")
	if upText == "" {
		upText = "No upvotes"
	}
	downText := strings.Join(downvoters, "\n")
	if downText == "" {
		downText = "No downvotes"
	}
	return fmt.Sprintf("👍 **Upvotes** (%d):\n%s\n\n👎 **Downvotes** (%d):\n%s",
		len(upvoters), upText, len(downvoters), downText)
}

// interactionUserID returns the acting user's id for guild interactions.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
