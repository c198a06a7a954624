package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexYaroshenko/dotless/internal/telegram"
)

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the bot account the token belongs to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		me, err := client.GetMe(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get bot info: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", telegram.FormatUserName(&me), me.ID)
		return nil
	},
}
