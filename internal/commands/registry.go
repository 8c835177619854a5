package commands

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"suggestions-bot/pkg/discordapi"
)

// Command pairs a slash-command definition with its executor.
type Command struct {
	Definition *discordgo.ApplicationCommand
	Execute    func(ctx context.Context, session discordapi.Session, i *discordgo.InteractionCreate) error
}

// Registry holds the bot's slash commands keyed by name.
type Registry struct {
	commands map[string]*Command
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// Register adds a command to the registry, replacing any previous command
// with the same name.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Definition.Name] = cmd
}

// Get looks up a command by name.
func (r *Registry) Get(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Definitions returns the definitions of all registered commands.
func (r *Registry) Definitions() []*discordgo.ApplicationCommand {
	defs := make([]*discordgo.ApplicationCommand, 0, len(r.commands))
	for _, cmd := range r.commands {
		defs = append(defs, cmd.Definition)
	}
	return defs
}

// RegisterAll overwrites the guild's command set with the registry contents.
func (r *Registry) RegisterAll(session discordapi.Session, appID, guildID string) error {
	if _, err := session.ApplicationCommandBulkOverwrite(appID, guildID, r.Definitions()); err != nil {
		return fmt.Errorf("failed to overwrite guild commands: %w", err)
	}
	return nil
}
