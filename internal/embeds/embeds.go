// Package embeds renders the display document for a suggestion: title,
// fields, color and action buttons. Rendering is a pure function of the
// suggestion row and the embed configuration; the same row always renders
// to the same document, so re-rendering is idempotent.
package embeds

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"suggestions-bot/internal/config"
	"suggestions-bot/internal/database/models"
)

// NewSuggestion renders the display document for a freshly submitted
// suggestion (always pending with zero counts).
func NewSuggestion(cfg config.EmbedConfig, userID, avatarURL, content, hexID string, imageURL *string, createdAt time.Time) *discordgo.MessageEmbed {
	row := &models.Suggestion{
		UserID:    userID,
		Content:   content,
		HexID:     hexID,
		ImageURL:  imageURL,
		Status:    models.StatusPending,
		CreatedAt: createdAt,
	}
	return UpdatedSuggestion(cfg, row, avatarURL)
}

// UpdatedSuggestion renders the display document for the current state of a
// suggestion row. The staff comment field is present only once the
// suggestion has left pending; the image only when one is attached.
func UpdatedSuggestion(cfg config.EmbedConfig, s *models.Suggestion, avatarURL string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: titleFor(cfg, s.Status, s.HexID),
		Color: colorFor(cfg, s.Status),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "• Suggestion", Value: ">>> " + s.Content},
			{
				Name: "• Statistics",
				Value: fmt.Sprintf(">>> **%d** Likes\n**%d** Dislikes\nStatus: **%s**",
					s.Upvotes, s.Downvotes, capitalize(string(s.Status))),
				Inline: true,
			},
			{Name: "• Author", Value: fmt.Sprintf(">>> <@%s>", s.UserID), Inline: true},
		},
	}

	if s.Status != models.StatusPending {
		comment := "No reason provided"
		if s.StaffComment != nil && *s.StaffComment != "" {
			comment = *s.StaffComment
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  reasonFieldName(s.Status),
			Value: ">>> " + comment,
		})
	}

	if s.ImageURL != nil && *s.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: *s.ImageURL}
	}
	if avatarURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatarURL}
	}
	if cfg.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: cfg.Footer, IconURL: cfg.FooterIcon}
	}
	if cfg.Timestamp {
		// The stored creation time, never "now": re-rendering the same row
		// twice must produce an identical document.
		embed.Timestamp = s.CreatedAt.UTC().Format(time.RFC3339)
	}

	return embed
}

// Buttons returns the action row for a suggestion in the given status.
// Pending suggestions expose the vote controls; decided ones keep only
// view and manage.
func Buttons(status models.SuggestionStatus, id int64) []discordgo.MessageComponent {
	view := discordgo.Button{
		Label:    "📊 View Votes",
		Style:    discordgo.SecondaryButton,
		CustomID: fmt.Sprintf("view_%d", id),
	}
	manage := discordgo.Button{
		Label:    "🛠 Manage",
		Style:    discordgo.PrimaryButton,
		CustomID: fmt.Sprintf("manage_%d", id),
	}

	if status != models.StatusPending {
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{view, manage}},
		}
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "👍 Like",
				Style:    discordgo.SuccessButton,
				CustomID: fmt.Sprintf("upvote_%d", id),
			},
			discordgo.Button{
				Label:    "👎 Dislike",
				Style:    discordgo.DangerButton,
				CustomID: fmt.Sprintf("downvote_%d", id),
			},
			view,
			manage,
		}},
	}
}

// ManageButtons returns the three decision buttons shown to staff.
func ManageButtons(id int64) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "✅ Accept",
				Style:    discordgo.SuccessButton,
				CustomID: fmt.Sprintf("accept_%d", id),
			},
			discordgo.Button{
				Label:    "❌ Reject",
				Style:    discordgo.DangerButton,
				CustomID: fmt.Sprintf("reject_%d", id),
			},
			discordgo.Button{
				Label:    "🚀 Implement",
				Style:    discordgo.PrimaryButton,
				CustomID: fmt.Sprintf("implement_%d", id),
			},
		}},
	}
}

// VoteList renders the ephemeral embed linking to an uploaded vote list.
func VoteList(cfg config.EmbedConfig, title, description, expiryNote string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       cfg.Color,
	}
	if expiryNote != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: expiryNote, IconURL: cfg.FooterIcon}
	}
	return embed
}

func titleFor(cfg config.EmbedConfig, status models.SuggestionStatus, hexID string) string {
	switch status {
	case models.StatusAccepted:
		return fmt.Sprintf("✅ Accepted Suggestion %s", hexID)
	case models.StatusRejected:
		return fmt.Sprintf("❌ Rejected Suggestion %s", hexID)
	case models.StatusImplemented:
		return fmt.Sprintf("🚀 Implemented Suggestion %s", hexID)
	default:
		return fmt.Sprintf("%s %s", cfg.Title, hexID)
	}
}

func colorFor(cfg config.EmbedConfig, status models.SuggestionStatus) int {
	switch status {
	case models.StatusAccepted:
		return cfg.AcceptColor
	case models.StatusRejected:
		return cfg.RejectColor
	case models.StatusImplemented:
		return cfg.ImplementColor
	default:
		return cfg.Color
	}
}

func reasonFieldName(status models.SuggestionStatus) string {
	switch status {
	case models.StatusAccepted:
		return "• Reason for Approval"
	case models.StatusRejected:
		return "• Reason for Rejection"
	default:
		return "• Reason for Implementation"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
