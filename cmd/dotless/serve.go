package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AlexYaroshenko/dotless/internal/bot"
	"github.com/AlexYaroshenko/dotless/internal/store"
	"github.com/AlexYaroshenko/dotless/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the Telegram webhook",
	Long: `Serve the Telegram webhook on PORT until interrupted.

Processed update ids are remembered in Postgres when DATABASE_URL is set,
in a bbolt file when BOLT_PATH is set, and in memory otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appConfig.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		allowed, err := appConfig.AllowedIDs()
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		updates, err := store.Open(ctx, appConfig.StoreOptions())
		if err != nil {
			return err
		}
		if updates == nil {
			logger.Warn("no DATABASE_URL or BOLT_PATH set, remembering updates in memory")
			updates = store.NewMemory()
		}
		defer updates.Close()

		registry := bot.DefaultRegistry()
		logger.Info("handlers registered", "handlers", registry.Names(), "allowed_users", len(allowed))

		srv := web.New(web.Config{
			WebhookPath:   appConfig.WebhookPath,
			WebhookSecret: appConfig.WebhookSecret,
			Allowed:       allowed,
		}, registry, client, updates, logger)

		go srv.PruneUpdates(ctx, appConfig.DedupTTL)

		return srv.Run(ctx, ":"+appConfig.Port)
	},
}
