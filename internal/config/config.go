package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EmbedConfig holds the presentation settings for suggestion embeds.
type EmbedConfig struct {
	Title          string
	Footer         string
	FooterIcon     string
	Timestamp      bool
	Color          int
	AcceptColor    int
	RejectColor    int
	ImplementColor int
}

// Config holds the application configuration.
type Config struct {
	AppEnv              string
	Debug               bool
	Version             string
	BotToken            string
	GuildID             string
	SuggestionChannelID string
	AdminRoleID         string
	ImgurClientID       string
	SentryDSN           string
	DBPath              string
	Embed               EmbedConfig
}

// LoadConfig loads configuration from environment variables.
// It attempts to load a .env file if present but prioritizes
// actual environment variables set in the system (e.g., by Docker).
func LoadConfig() (*Config, error) {
	// Load .env file if it exists (useful for development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	debug, _ := strconv.ParseBool(getEnv("DEBUG", "false"))

	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		Debug:               debug,
		Version:             getEnv("VERSION", "dev"),
		BotToken:            getEnv("DISCORD_BOT_TOKEN", ""),
		GuildID:             getEnv("GUILD_ID", ""),
		SuggestionChannelID: getEnv("SUGGESTION_CHANNEL_ID", ""),
		AdminRoleID:         getEnv("ADMIN_ROLE_ID", ""),
		ImgurClientID:       getEnv("IMGUR_CLIENT_ID", ""),
		SentryDSN:           getEnv("SENTRY_DSN", ""),
		DBPath:              getEnv("DB_PATH", "data/suggestions.db"),
	}

	embed, err := loadEmbedConfig()
	if err != nil {
		return nil, err
	}
	cfg.Embed = embed

	// Basic validation for essential variables
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}
	if cfg.GuildID == "" {
		return nil, fmt.Errorf("GUILD_ID is required")
	}
	if cfg.SuggestionChannelID == "" {
		return nil, fmt.Errorf("SUGGESTION_CHANNEL_ID is required")
	}
	if cfg.AdminRoleID == "" {
		return nil, fmt.Errorf("ADMIN_ROLE_ID is required")
	}
	if cfg.SentryDSN == "" {
		log.Println("Warning: SENTRY_DSN is not set. Error tracking disabled.")
	}
	if cfg.ImgurClientID == "" {
		log.Println("Warning: IMGUR_CLIENT_ID is not set. Suggestions will be posted without attached images.")
	}

	return cfg, nil
}

func loadEmbedConfig() (EmbedConfig, error) {
	embed := EmbedConfig{
		Title:      getEnv("EMBED_TITLE", "New Suggestion"),
		Footer:     getEnv("EMBED_FOOTER", ""),
		FooterIcon: getEnv("EMBED_FOOTER_ICON", ""),
	}
	embed.Timestamp, _ = strconv.ParseBool(getEnv("EMBED_TIMESTAMP", "true"))

	var err error
	if embed.Color, err = parseColor(getEnv("EMBED_COLOR", "#FFFFFF")); err != nil {
		return embed, fmt.Errorf("invalid EMBED_COLOR: %w", err)
	}
	if embed.AcceptColor, err = parseColor(getEnv("EMBED_ACCEPT_COLOR", "#57F287")); err != nil {
		return embed, fmt.Errorf("invalid EMBED_ACCEPT_COLOR: %w", err)
	}
	if embed.RejectColor, err = parseColor(getEnv("EMBED_REJECT_COLOR", "#ED4245")); err != nil {
		return embed, fmt.Errorf("invalid EMBED_REJECT_COLOR: %w", err)
	}
	if embed.ImplementColor, err = parseColor(getEnv("EMBED_IMPLEMENT_COLOR", "#5865F2")); err != nil {
		return embed, fmt.Errorf("invalid EMBED_IMPLEMENT_COLOR: %w", err)
	}
	return embed, nil
}

// parseColor converts a "#RRGGBB" (or "0xRRGGBB") string into an int.
func parseColor(s string) (int, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
