package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{Token: "ghp_test", StateFile: "next-since", SMTPAddr: "localhost:25"}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "minimal valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing token",
			mutate:  func(c *Config) { c.Token = "" },
			wantErr: "token is required",
		},
		{
			name:    "negative interval",
			mutate:  func(c *Config) { c.PollInterval = -5 },
			wantErr: "must not be negative",
		},
		{
			name:    "unterminated include pattern",
			mutate:  func(c *Config) { c.IncludeRepos = []string{"octo-["} },
			wantErr: "invalid repository pattern",
		},
		{
			name:    "unterminated exclude pattern",
			mutate:  func(c *Config) { c.ExcludeRepos = []string{"noisy-["} },
			wantErr: "invalid repository pattern",
		},
		{
			name:   "well-formed patterns",
			mutate: func(c *Config) { c.IncludeRepos = []string{"octo/*", "widget?"} },
		},
		{
			name:    "email from without to",
			mutate:  func(c *Config) { c.EmailFrom = "me@example.com" },
			wantErr: "both --email-from and --email-to",
		},
		{
			name:    "email to without from",
			mutate:  func(c *Config) { c.EmailTo = "me@example.com" },
			wantErr: "both --email-from and --email-to",
		},
		{
			name: "complete email pair",
			mutate: func(c *Config) {
				c.EmailFrom = "unsub@example.com"
				c.EmailTo = "me@example.com"
			},
		},
		{
			name:    "telegram token without chat id",
			mutate:  func(c *Config) { c.TelegramBotToken = "123:abc" },
			wantErr: "both --telegram-token and --telegram-chat-id",
		},
		{
			name: "complete telegram pair",
			mutate: func(c *Config) {
				c.TelegramBotToken = "123:abc"
				c.TelegramChatID = 42
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_env")
	t.Setenv("GITHUB_POLL_INTERVAL", "300")
	t.Setenv("GITHUB_INCLUDE_REPOS", "octo/*, widgets")
	t.Setenv("GITHUB_EXCLUDE_REPOS", "noisy-repo")
	t.Setenv("TELEGRAM_CHAT_ID", "99")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ghp_env", cfg.Token)
	assert.Equal(t, 300, cfg.PollInterval)
	assert.Equal(t, []string{"octo/*", "widgets"}, cfg.IncludeRepos)
	assert.Equal(t, []string{"noisy-repo"}, cfg.ExcludeRepos)
	assert.Equal(t, int64(99), cfg.TelegramChatID)
	assert.Equal(t, "next-since", cfg.StateFile)
	assert.Equal(t, "localhost:25", cfg.SMTPAddr)
}

func TestLoadRejectsBadInterval(t *testing.T) {
	t.Setenv("GITHUB_POLL_INTERVAL", "fast")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITHUB_POLL_INTERVAL")
}

func TestParseSince(t *testing.T) {
	got, err := ParseSince("2024-03-01T12:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC), got)

	got, err = ParseSince("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseSince("yesterday")
	assert.Error(t, err)
}
