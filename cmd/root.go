package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"ghunsub/internal/bot"
	"ghunsub/internal/checkpoint"
	"ghunsub/internal/config"
	"ghunsub/internal/filter"
	"ghunsub/internal/github"
	"ghunsub/internal/mailer"
	"ghunsub/internal/runner"
	"ghunsub/internal/store/postgres"
)

var (
	flagToken          string
	flagDryRun         bool
	flagInterval       int
	flagInclude        []string
	flagExclude        []string
	flagSince          string
	flagStateFile      string
	flagEmailFrom      string
	flagEmailTo        string
	flagSMTPAddr       string
	flagSMTPUser       string
	flagSMTPPassword   string
	flagDatabaseURL    string
	flagTelegramToken  string
	flagTelegramChatID int64
	flagDebug          bool
)

var rootCmd = &cobra.Command{
	Use:   "ghunsub",
	Short: "Unsubscribe automatically from GitHub threads after the initial notification",
	Long: `ghunsub polls your GitHub notification feed and unsubscribes you from
threads you only receive because you watch the containing repository.
Threads you are tied to on purpose (mentioned, author, team mention, an
explicit subscription) are never touched.

Repository include and exclude names can optionally start with "owner/"
or use shell wildcards.

Examples:
  ghunsub --dry-run                 # report what would be unsubscribed
  ghunsub --include 'octo/*'        # only process the octo organization
  ghunsub --interval 300            # poll every five minutes
  ghunsub --since 2024-03-01        # examine notifications from a date`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}
		return run(cfg)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagToken, "token", "", "GitHub API token (or set $GITHUB_TOKEN)")
	flags.StringVar(&flagDatabaseURL, "database-url", "", "Postgres URL for the unsubscribe history (or set $DATABASE_URL)")

	local := rootCmd.Flags()
	local.BoolVar(&flagDryRun, "dry-run", false, "say what would be done without doing it")
	local.IntVar(&flagInterval, "interval", 0, "poll interval in seconds for continuous operation, 0 runs once (or set $GITHUB_POLL_INTERVAL)")
	local.StringArrayVar(&flagInclude, "include", nil, "repository pattern to include, repeatable (or set $GITHUB_INCLUDE_REPOS to comma-separated list)")
	local.StringArrayVar(&flagExclude, "exclude", nil, "repository pattern to exclude, repeatable (or set $GITHUB_EXCLUDE_REPOS to comma-separated list)")
	local.StringVar(&flagSince, "since", "", "examine notifications starting at the specified time (RFC3339 or YYYY-MM-DD)")
	local.StringVar(&flagStateFile, "state-file", "", "path of the checkpoint file (default next-since)")
	local.StringVar(&flagEmailFrom, "email-from", "", "email address from which to send unsubscribe notices")
	local.StringVar(&flagEmailTo, "email-to", "", "email address to notify about unsubscribes")
	local.StringVar(&flagSMTPAddr, "smtp-addr", "", "SMTP server address (default localhost:25)")
	local.StringVar(&flagSMTPUser, "smtp-user", "", "SMTP username, empty for unauthenticated delivery")
	local.StringVar(&flagSMTPPassword, "smtp-password", "", "SMTP password")
	local.StringVar(&flagTelegramToken, "telegram-token", "", "Telegram bot token for unsubscribe notices (or set $TELEGRAM_BOT_TOKEN)")
	local.Int64Var(&flagTelegramChatID, "telegram-chat-id", 0, "Telegram chat to notify (or set $TELEGRAM_CHAT_ID)")
	local.BoolVar(&flagDebug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// buildConfig layers CLI flags over the environment configuration and
// validates the result before anything talks to the network.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("token") {
		cfg.Token = flagToken
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = flagDryRun
	}
	if flags.Changed("interval") {
		cfg.PollInterval = flagInterval
	}
	if flags.Changed("include") {
		cfg.IncludeRepos = flagInclude
	}
	if flags.Changed("exclude") {
		cfg.ExcludeRepos = flagExclude
	}
	if flags.Changed("state-file") {
		cfg.StateFile = flagStateFile
	}
	if flags.Changed("email-from") {
		cfg.EmailFrom = flagEmailFrom
	}
	if flags.Changed("email-to") {
		cfg.EmailTo = flagEmailTo
	}
	if flags.Changed("smtp-addr") {
		cfg.SMTPAddr = flagSMTPAddr
	}
	if flags.Changed("smtp-user") {
		cfg.SMTPUser = flagSMTPUser
	}
	if flags.Changed("smtp-password") {
		cfg.SMTPPassword = flagSMTPPassword
	}
	if flags.Changed("database-url") {
		cfg.DatabaseURL = flagDatabaseURL
	}
	if flags.Changed("telegram-token") {
		cfg.TelegramBotToken = flagTelegramToken
	}
	if flags.Changed("telegram-chat-id") {
		cfg.TelegramChatID = flagTelegramChatID
	}
	if flags.Changed("debug") {
		cfg.Debug = flagDebug
	}
	if flagSince != "" {
		since, err := config.ParseSince(flagSince)
		if err != nil {
			return nil, err
		}
		cfg.Since = since
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cfg *config.Config) error {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	var notifiers []runner.Notifier
	if cfg.EmailEnabled() {
		notifiers = append(notifiers, &mailer.Mailer{
			Addr:     cfg.SMTPAddr,
			From:     cfg.EmailFrom,
			To:       cfg.EmailTo,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
		})
	}
	if cfg.TelegramEnabled() {
		telegramBot, err := bot.New(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			return fmt.Errorf("failed to initialize Telegram bot: %v", err)
		}
		notifiers = append(notifiers, telegramBot)
	}

	r := &runner.Runner{
		API:        github.NewClient(cfg.Token),
		Filter:     &filter.Filter{Include: cfg.IncludeRepos, Exclude: cfg.ExcludeRepos},
		Checkpoint: &checkpoint.File{Path: cfg.StateFile},
		Notifiers:  notifiers,
		Log:        logger,
		DryRun:     cfg.DryRun,
		Debug:      cfg.Debug,
		Interval:   cfg.PollInterval,
		Since:      cfg.Since,
	}

	if cfg.DatabaseURL != "" {
		history, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize history store: %v", err)
		}
		defer history.Close()
		r.History = history
	}

	return r.Run(context.Background())
}
