package auth

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testGuildID     = "guild-1"
	testAdminRoleID = "role-admin"
)

// mockMemberFetcher is a mock implementing the single discordapi.Session
// method the checker uses. The remaining interface methods are embedded
// no-ops.
type mockMemberFetcher struct {
	mock.Mock
	nopSession
}

func (m *mockMemberFetcher) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	args := m.Called(guildID, userID)
	if member, ok := args.Get(0).(*discordgo.Member); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

// nopSession satisfies the rest of discordapi.Session.
type nopSession struct{}

func (nopSession) ChannelMessageSendComplex(string, *discordgo.MessageSend, ...discordgo.RequestOption) (*discordgo.Message, error) {
	return nil, nil
}
func (nopSession) ChannelMessageSend(string, string, ...discordgo.RequestOption) (*discordgo.Message, error) {
	return nil, nil
}
func (nopSession) ChannelMessageEditComplex(*discordgo.MessageEdit, ...discordgo.RequestOption) (*discordgo.Message, error) {
	return nil, nil
}
func (nopSession) ChannelMessageDelete(string, string, ...discordgo.RequestOption) error { return nil }
func (nopSession) MessageThreadStartComplex(string, string, *discordgo.ThreadStart, ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return nil, nil
}
func (nopSession) InteractionRespond(*discordgo.Interaction, *discordgo.InteractionResponse, ...discordgo.RequestOption) error {
	return nil
}
func (nopSession) InteractionResponseEdit(*discordgo.Interaction, *discordgo.WebhookEdit, ...discordgo.RequestOption) (*discordgo.Message, error) {
	return nil, nil
}
func (nopSession) FollowupMessageCreate(*discordgo.Interaction, bool, *discordgo.WebhookParams, ...discordgo.RequestOption) (*discordgo.Message, error) {
	return nil, nil
}
func (nopSession) ApplicationCommandBulkOverwrite(string, string, []*discordgo.ApplicationCommand, ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	return nil, nil
}
func (nopSession) AddHandler(interface{}) func() { return func() {} }

func newChecker(t *testing.T) (*AdminChecker, *mockMemberFetcher) {
	t.Helper()
	session := new(mockMemberFetcher)
	checker, err := NewAdminChecker(session, testGuildID, testAdminRoleID)
	require.NoError(t, err)
	return checker, session
}

func TestNewAdminChecker(t *testing.T) {
	t.Run("RejectsNilSession", func(t *testing.T) {
		_, err := NewAdminChecker(nil, testGuildID, testAdminRoleID)
		assert.Error(t, err)
	})

	t.Run("RejectsEmptyGuildID", func(t *testing.T) {
		_, err := NewAdminChecker(new(mockMemberFetcher), "", testAdminRoleID)
		assert.Error(t, err)
	})

	t.Run("RejectsEmptyRoleID", func(t *testing.T) {
		_, err := NewAdminChecker(new(mockMemberFetcher), testGuildID, "")
		assert.Error(t, err)
	})
}

func TestIsAdmin(t *testing.T) {
	t.Run("MemberWithRole", func(t *testing.T) {
		checker, _ := newChecker(t)
		member := &discordgo.Member{Roles: []string{"role-other", testAdminRoleID}}

		assert.True(t, checker.IsAdmin(member, "user-1"))
	})

	t.Run("MemberWithoutRole", func(t *testing.T) {
		checker, _ := newChecker(t)
		member := &discordgo.Member{Roles: []string{"role-other"}}

		assert.False(t, checker.IsAdmin(member, "user-1"))
	})

	t.Run("NilMemberFallsBackToFetch", func(t *testing.T) {
		checker, session := newChecker(t)
		session.On("GuildMember", testGuildID, "user-1").
			Return(&discordgo.Member{Roles: []string{testAdminRoleID}}, nil).Once()

		assert.True(t, checker.IsAdmin(nil, "user-1"))
		session.AssertExpectations(t)
	})

	t.Run("FetchFailureCountsAsNonAdmin", func(t *testing.T) {
		checker, session := newChecker(t)
		session.On("GuildMember", testGuildID, "user-1").
			Return(nil, errors.New("unknown member")).Once()

		assert.False(t, checker.IsAdmin(nil, "user-1"))
	})
}
