package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AlexYaroshenko/dotless/internal/config"
	"github.com/AlexYaroshenko/dotless/internal/telegram"
)

var (
	envFile   string
	appConfig *config.Config
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dotless",
	Short: "Telegram bot that removes the dots from text",
	Long: `dotless answers Telegram messages and inline queries with the same
text, rewritten without dots.

Settings are read from the environment, optionally seeded from a .env file.`,
	Example: `  # Serve the webhook
  dotless serve

  # Point Telegram at the webhook
  dotless webhook set https://bot.example.com

  # Try the transform locally
  dotless transform "Hi.There"`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(envFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		appConfig = cfg
		logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to an optional .env file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webhookCmd)
	rootCmd.AddCommand(meCmd)
	rootCmd.AddCommand(transformCmd)
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// newClient builds a Bot API client from the loaded config.
func newClient() (*telegram.Client, error) {
	if appConfig.BotToken == "" {
		return nil, config.ErrMissingToken
	}
	opts := []telegram.Option{telegram.WithLogger(logger)}
	if appConfig.APIBaseURL != "" {
		opts = append(opts, telegram.WithBaseURL(appConfig.APIBaseURL))
	}
	return telegram.NewClient(appConfig.BotToken, opts...), nil
}
