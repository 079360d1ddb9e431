package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"ghunsub/internal/filter"
)

// Config holds everything the unsubscribe loop needs. Values come from
// the environment (with an optional .env file) and are overridden by
// CLI flags before Validate is called.
type Config struct {
	Token        string
	DryRun       bool
	PollInterval int
	IncludeRepos []string
	ExcludeRepos []string
	Since        time.Time
	StateFile    string

	EmailFrom    string
	EmailTo      string
	SMTPAddr     string
	SMTPUser     string
	SMTPPassword string

	DatabaseURL string

	TelegramBotToken string
	TelegramChatID   int64

	Debug bool
}

// Load builds a Config from the environment. A missing .env file is
// fine; explicit environment variables still apply.
func Load() (*Config, error) {
	_ = godotenv.Load()

	pollInterval, err := strconv.Atoi(getEnvWithDefault("GITHUB_POLL_INTERVAL", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid GITHUB_POLL_INTERVAL: %v", err)
	}

	var chatID int64
	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		chatID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %v", err)
		}
	}

	return &Config{
		Token:            os.Getenv("GITHUB_TOKEN"),
		DryRun:           os.Getenv("GHUNSUB_DRYRUN") != "",
		PollInterval:     pollInterval,
		IncludeRepos:     splitPatterns(os.Getenv("GITHUB_INCLUDE_REPOS")),
		ExcludeRepos:     splitPatterns(os.Getenv("GITHUB_EXCLUDE_REPOS")),
		StateFile:        getEnvWithDefault("GHUNSUB_STATE_FILE", "next-since"),
		EmailFrom:        os.Getenv("GHUNSUB_EMAIL_FROM"),
		EmailTo:          os.Getenv("GHUNSUB_EMAIL_TO"),
		SMTPAddr:         getEnvWithDefault("GHUNSUB_SMTP_ADDR", "localhost:25"),
		SMTPUser:         os.Getenv("GHUNSUB_SMTP_USER"),
		SMTPPassword:     os.Getenv("GHUNSUB_SMTP_PASSWORD"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   chatID,
		Debug:            os.Getenv("GHUNSUB_DEBUG") != "",
	}, nil
}

// Validate rejects incomplete configuration before any processing
// starts. All-or-nothing pairs are enforced here so a half-configured
// notice channel fails fast instead of mid-run.
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("GitHub token is required (--token or $GITHUB_TOKEN)")
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("poll interval must not be negative, got %d", c.PollInterval)
	}
	if err := filter.ValidatePatterns(c.IncludeRepos); err != nil {
		return err
	}
	if err := filter.ValidatePatterns(c.ExcludeRepos); err != nil {
		return err
	}
	if (c.EmailFrom == "") != (c.EmailTo == "") {
		return fmt.Errorf("must specify both --email-from and --email-to")
	}
	if (c.TelegramBotToken == "") != (c.TelegramChatID == 0) {
		return fmt.Errorf("must specify both --telegram-token and --telegram-chat-id")
	}
	return nil
}

// EmailEnabled reports whether the email notice channel is configured.
func (c *Config) EmailEnabled() bool {
	return c.EmailFrom != "" && c.EmailTo != ""
}

// TelegramEnabled reports whether the Telegram notice channel is configured.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

// ParseSince accepts RFC3339 or a bare date for the --since override.
func ParseSince(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (want RFC3339 or YYYY-MM-DD)", value)
}

func splitPatterns(value string) []string {
	if value == "" {
		return nil
	}
	var patterns []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
