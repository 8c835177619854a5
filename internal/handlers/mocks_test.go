package handlers

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"

	"suggestions-bot/internal/database/models"
)

// --- Mocks ---

// MockSession is a mock implementing the discordapi.Session interface.
type MockSession struct {
	mock.Mock
}

func (m *MockSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, data)
	if msg, ok := args.Get(0).(*discordgo.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, content)
	if msg, ok := args.Get(0).(*discordgo.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSession) ChannelMessageEditComplex(edit *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(edit)
	if msg, ok := args.Get(0).(*discordgo.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSession) ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error {
	args := m.Called(channelID, messageID)
	return args.Error(0)
}

func (m *MockSession) MessageThreadStartComplex(channelID, messageID string, data *discordgo.ThreadStart, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	args := m.Called(channelID, messageID, data)
	if ch, ok := args.Get(0).(*discordgo.Channel); ok {
		return ch, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSession) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	args := m.Called(guildID, userID)
	if member, ok := args.Get(0).(*discordgo.Member); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	args := m.Called(interaction, resp)
	return args.Error(0)
}

func (m *MockSession) InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(interaction, newresp)
	if msg, ok := args.Get(0).(*discordgo.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSession) FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(interaction, wait, data)
	if msg, ok := args.Get(0).(*discordgo.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSession) ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	args := m.Called(appID, guildID, commands)
	if cmds, ok := args.Get(0).([]*discordgo.ApplicationCommand); ok {
		return cmds, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSession) AddHandler(handler interface{}) func() {
	args := m.Called(handler)
	if remove, ok := args.Get(0).(func()); ok {
		return remove
	}
	return func() {}
}

// MockSuggestionRepository is a mock implementing database.SuggestionRepository.
type MockSuggestionRepository struct {
	mock.Mock
}

func (m *MockSuggestionRepository) CreateSuggestion(ctx context.Context, userID, content string, imageURL *string, hexID string) (int64, error) {
	args := m.Called(ctx, userID, content, imageURL, hexID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSuggestionRepository) GetSuggestion(ctx context.Context, id int64) (*models.Suggestion, error) {
	args := m.Called(ctx, id)
	if row, ok := args.Get(0).(*models.Suggestion); ok {
		return row, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSuggestionRepository) SetMessageID(ctx context.Context, id int64, messageID string) error {
	args := m.Called(ctx, id, messageID)
	return args.Error(0)
}

func (m *MockSuggestionRepository) AdjustCounts(ctx context.Context, id int64, upDelta, downDelta int) error {
	args := m.Called(ctx, id, upDelta, downDelta)
	return args.Error(0)
}

func (m *MockSuggestionRepository) UpdateDecision(ctx context.Context, id int64, status models.SuggestionStatus, comment string) error {
	args := m.Called(ctx, id, status, comment)
	return args.Error(0)
}

func (m *MockSuggestionRepository) DeleteByHexID(ctx context.Context, hexID string) (int64, error) {
	args := m.Called(ctx, hexID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSuggestionRepository) ClearAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockVoteRepository is a mock implementing database.VoteRepository.
type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) GetVote(ctx context.Context, suggestionID int64, userID string) (models.VoteType, error) {
	args := m.Called(ctx, suggestionID, userID)
	if vt, ok := args.Get(0).(models.VoteType); ok {
		return vt, args.Error(1)
	}
	return "", args.Error(1)
}

func (m *MockVoteRepository) AddVote(ctx context.Context, suggestionID int64, userID string, voteType models.VoteType) error {
	args := m.Called(ctx, suggestionID, userID, voteType)
	return args.Error(0)
}

func (m *MockVoteRepository) RemoveVote(ctx context.Context, suggestionID int64, userID string) error {
	args := m.Called(ctx, suggestionID, userID)
	return args.Error(0)
}

func (m *MockVoteRepository) SwitchVote(ctx context.Context, suggestionID int64, userID string, voteType models.VoteType) error {
	args := m.Called(ctx, suggestionID, userID, voteType)
	return args.Error(0)
}

func (m *MockVoteRepository) ListVotes(ctx context.Context, suggestionID int64) ([]models.Vote, error) {
	args := m.Called(ctx, suggestionID)
	if votes, ok := args.Get(0).([]models.Vote); ok {
		return votes, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockImageUploader is a mock implementing ImageUploader.
type MockImageUploader struct {
	mock.Mock
}

func (m *MockImageUploader) UploadImage(ctx context.Context, imageURL string) (string, error) {
	args := m.Called(ctx, imageURL)
	return args.String(0), args.Error(1)
}

// MockPasteUploader is a mock implementing PasteUploader.
type MockPasteUploader struct {
	mock.Mock
}

func (m *MockPasteUploader) UploadPaste(ctx context.Context, name, content string) (string, error) {
	args := m.Called(ctx, name, content)
	return args.String(0), args.Error(1)
}

// MockAdminChecker is a mock implementing auth.AdminCheckerInterface.
type MockAdminChecker struct {
	mock.Mock
}

func (m *MockAdminChecker) IsAdmin(member *discordgo.Member, userID string) bool {
	args := m.Called(member, userID)
	return args.Bool(0)
}

// MockSessionStore is a mock implementing SessionStore.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Set(staffID string, suggestionID int64) {
	m.Called(staffID, suggestionID)
}

func (m *MockSessionStore) Get(staffID string) (int64, bool) {
	args := m.Called(staffID)
	return args.Get(0).(int64), args.Bool(1)
}

func (m *MockSessionStore) Clear(staffID string) {
	m.Called(staffID)
}
