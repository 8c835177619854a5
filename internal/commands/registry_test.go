package commands

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testCommand(name string) *Command {
	return &Command{Definition: &discordgo.ApplicationCommand{Name: name}}
}

func TestRegistry(t *testing.T) {
	t.Run("GetReturnsRegisteredCommand", func(t *testing.T) {
		r := NewRegistry()
		r.Register(testCommand("suggestions"))

		cmd, ok := r.Get("suggestions")
		assert.True(t, ok)
		assert.Equal(t, "suggestions", cmd.Definition.Name)

		_, ok = r.Get("missing")
		assert.False(t, ok)
	})

	t.Run("RegisterReplacesSameName", func(t *testing.T) {
		r := NewRegistry()
		first := testCommand("suggestions")
		second := testCommand("suggestions")
		r.Register(first)
		r.Register(second)

		cmd, ok := r.Get("suggestions")
		assert.True(t, ok)
		assert.Same(t, second, cmd)
		assert.Len(t, r.Definitions(), 1)
	})

	t.Run("RegisterAllOverwritesGuildCommands", func(t *testing.T) {
		r := NewRegistry()
		r.Register(testCommand("suggestions"))

		mockSession := new(MockSession)
		mockSession.On("ApplicationCommandBulkOverwrite", "app-1", "guild-1", mock.MatchedBy(func(defs []*discordgo.ApplicationCommand) bool {
			return len(defs) == 1 && defs[0].Name == "suggestions"
		})).Return([]*discordgo.ApplicationCommand{}, nil).Once()

		err := r.RegisterAll(mockSession, "app-1", "guild-1")

		assert.NoError(t, err)
		mockSession.AssertExpectations(t)
	})

	t.Run("RegisterAllWrapsFailure", func(t *testing.T) {
		r := NewRegistry()
		mockSession := new(MockSession)
		mockSession.On("ApplicationCommandBulkOverwrite", "app-1", "guild-1", mock.Anything).
			Return(nil, errors.New("missing access")).Once()

		err := r.RegisterAll(mockSession, "app-1", "guild-1")

		assert.ErrorContains(t, err, "missing access")
	})
}
