package main

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"
)

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Manage the bot's Telegram webhook",
}

var webhookSetCmd = &cobra.Command{
	Use:   "set <url>",
	Short: "Register the webhook URL with Telegram",
	Long: `Register the webhook URL with Telegram.

When the URL has no path, WEBHOOK_PATH is appended. WEBHOOK_SECRET, if set,
is registered as the secret token Telegram sends with every delivery.`,
	Example: `  dotless webhook set https://bot.example.com`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := webhookURL(args[0], appConfig.WebhookPath)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		if err := client.SetWebhook(cmd.Context(), target, appConfig.WebhookSecret); err != nil {
			return fmt.Errorf("failed to set webhook: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Webhook set to %s\n", target)
		return nil
	},
}

var webhookDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the webhook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		if err := client.DeleteWebhook(cmd.Context()); err != nil {
			return fmt.Errorf("failed to delete webhook: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Webhook deleted")
		return nil
	},
}

var webhookInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the webhook Telegram currently delivers to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		info, err := client.GetWebhookInfo(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get webhook info: %w", err)
		}

		out := cmd.OutOrStdout()
		target := info.URL
		if target == "" {
			target = "(none)"
		}
		fmt.Fprintf(out, "URL:              %s\n", target)
		fmt.Fprintf(out, "Pending updates:  %d\n", info.PendingUpdateCount)
		if info.MaxConnections > 0 {
			fmt.Fprintf(out, "Max connections:  %d\n", info.MaxConnections)
		}
		if info.LastErrorDate > 0 {
			at := time.Unix(info.LastErrorDate, 0).UTC().Format(time.RFC3339)
			fmt.Fprintf(out, "Last error:       %s (%s)\n", info.LastErrorMessage, at)
		}
		return nil
	},
}

// webhookURL appends path to raw when raw has none.
func webhookURL(raw, path string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid webhook URL: %w", err)
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return "", fmt.Errorf("invalid webhook URL %q: need an absolute http(s) URL", raw)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = path
	}
	return u.String(), nil
}

func init() {
	webhookCmd.AddCommand(webhookSetCmd)
	webhookCmd.AddCommand(webhookDeleteCmd)
	webhookCmd.AddCommand(webhookInfoCmd)
}
