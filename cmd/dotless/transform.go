package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AlexYaroshenko/dotless/internal/textutil"
)

var transformCmd = &cobra.Command{
	Use:   "transform [text...]",
	Short: "Print text with its dots removed",
	Long: `Print text with its dots removed, exactly as the bot would answer.

With no arguments the text is read from standard input.`,
	Example: `  dotless transform "Hi.There"
  echo "سلام دنیا" | dotless transform`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), textutil.RemoveDots(strings.Join(args, " ")))
			return nil
		}
		input, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		_, err = io.WriteString(cmd.OutOrStdout(), textutil.RemoveDots(string(input)))
		return err
	},
}
