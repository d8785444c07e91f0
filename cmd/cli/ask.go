package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"conversational-task-assistant/internal/chat"
	"conversational-task-assistant/internal/model"
)

var askCmd = &cobra.Command{
	Use:   "ask <utterance>",
	Short: "Ask the assistant one question",
	Example: `  assistant ask "what's overdue?" --user u1
  assistant ask "mark the report as done" --user u1`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEngine(ctx, false)
		if err != nil {
			return err
		}
		defer e.Close()

		return ask(ctx, e.uc, cliScope(), conversationID, strings.Join(args, " "), cmd.OutOrStdout())
	},
}

func ask(ctx context.Context, uc chat.UseCase, sc model.Scope, convID, text string, out io.Writer) error {
	res, err := uc.Reply(ctx, sc, chat.ReplyInput{ConversationID: convID, Message: text})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, res.Message)
	return err
}

func cliScope() model.Scope {
	return model.Scope{UserID: userID, Username: userID}
}
