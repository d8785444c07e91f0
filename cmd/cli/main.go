package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	// userID owns every task the assistant reads or changes.
	userID string
	// conversationID defaults to the user id.
	conversationID string
)

var rootCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Talk to your tasks and projects from the terminal.",
	Long: `assistant runs the same conversational engine as the API against the configured
task database. Use "ask" for a single question or "chat" for an interactive session.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "user id that owns the tasks (required)")
	rootCmd.PersistentFlags().StringVar(&conversationID, "conversation", "", "conversation id (default is the user id)")
	_ = rootCmd.MarkPersistentFlagRequired("user")

	rootCmd.AddCommand(askCmd, chatCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
