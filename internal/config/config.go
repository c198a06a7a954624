// Package config loads the bot's settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/AlexYaroshenko/dotless/internal/bot"
	"github.com/AlexYaroshenko/dotless/internal/store"
)

var ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN is required")

type Config struct {
	BotToken       string        `koanf:"telegram_bot_token"`
	APIBaseURL     string        `koanf:"telegram_api_url"`
	WebhookSecret  string        `koanf:"webhook_secret"`
	WebhookPath    string        `koanf:"webhook_path"`
	AllowedUserIDs string        `koanf:"allowed_user_ids"`
	Port           string        `koanf:"port"`
	DatabaseURL    string        `koanf:"database_url"`
	BoltPath       string        `koanf:"bolt_path"`
	TablePrefix    string        `koanf:"db_table_prefix"`
	DedupTTL       time.Duration `koanf:"dedup_ttl"`
	LogLevel       string        `koanf:"log_level"`
	LogFormat      string        `koanf:"log_format"`
}

func DefaultConfig() *Config {
	return &Config{
		WebhookPath: "/webhook",
		Port:        "8080",
		DedupTTL:    24 * time.Hour,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables that are already set, then reads the environment on
// top of the defaults.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", envFile, err)
		}
	}

	k := koanf.New(".")
	cfg := DefaultConfig()

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("loading env: %w", err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.BotToken = strings.TrimSpace(cfg.BotToken)
	if cfg.WebhookPath != "" && !strings.HasPrefix(cfg.WebhookPath, "/") {
		cfg.WebhookPath = "/" + cfg.WebhookPath
	}
	return cfg, nil
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

var validLogFormats = map[string]bool{"text": true, "json": true}

// Validate checks the settings needed to serve webhooks.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return ErrMissingToken
	}
	if _, err := c.AllowedIDs(); err != nil {
		return fmt.Errorf("ALLOWED_USER_IDS: %w", err)
	}
	if c.WebhookPath == "" {
		return fmt.Errorf("WEBHOOK_PATH must not be empty")
	}
	if c.DedupTTL <= 0 {
		return fmt.Errorf("DEDUP_TTL must be positive")
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid LOG_LEVEL %q: must be one of debug, info, warn, error", c.LogLevel)
	}
	if !validLogFormats[strings.ToLower(c.LogFormat)] {
		return fmt.Errorf("invalid LOG_FORMAT %q: must be text or json", c.LogFormat)
	}
	return nil
}

// AllowedIDs parses ALLOWED_USER_IDS.
func (c *Config) AllowedIDs() (bot.AllowedIDs, error) {
	return bot.ParseAllowedIDs(c.AllowedUserIDs)
}

func (c *Config) StoreOptions() store.Options {
	return store.Options{
		DatabaseURL: c.DatabaseURL,
		BoltPath:    c.BoltPath,
		TablePrefix: c.TablePrefix,
	}
}
