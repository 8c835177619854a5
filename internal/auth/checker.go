package auth

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"suggestions-bot/pkg/discordapi"
)

// AdminCheckerInterface abstracts the admin gate for handlers and tests.
type AdminCheckerInterface interface {
	IsAdmin(member *discordgo.Member, userID string) bool
}

// AdminChecker decides whether a user holds the configured administrator
// role. The gate is a single role-membership check, not a policy engine.
type AdminChecker struct {
	session     discordapi.Session
	guildID     string
	adminRoleID string
}

// NewAdminChecker creates a new AdminChecker.
// It requires a non-nil session, a guild id and the admin role id.
func NewAdminChecker(session discordapi.Session, guildID, adminRoleID string) (*AdminChecker, error) {
	if session == nil {
		return nil, fmt.Errorf("discord session cannot be nil")
	}
	if guildID == "" {
		return nil, fmt.Errorf("guild ID cannot be empty")
	}
	if adminRoleID == "" {
		return nil, fmt.Errorf("admin role ID cannot be empty")
	}
	return &AdminChecker{
		session:     session,
		guildID:     guildID,
		adminRoleID: adminRoleID,
	}, nil
}

// IsAdmin reports whether the user holds the administrator role. The member
// payload delivered with the interaction is preferred; when it is absent the
// member is fetched from the guild. A fetch failure counts as non-admin.
func (ac *AdminChecker) IsAdmin(member *discordgo.Member, userID string) bool {
	if member == nil {
		fetched, err := ac.session.GuildMember(ac.guildID, userID)
		if err != nil {
			return false
		}
		member = fetched
	}
	for _, roleID := range member.Roles {
		if roleID == ac.adminRoleID {
			return true
		}
	}
	return false
}
