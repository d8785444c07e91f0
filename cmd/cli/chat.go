package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"conversational-task-assistant/internal/chat"
	"conversational-task-assistant/internal/model"
)

const replPrompt = "> "

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive session",
	Long: `chat keeps the conversation in memory for the length of the session, so follow-ups
like "mark it as done" refer to what the assistant just showed. Type "exit" or press Ctrl-D to quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEngine(ctx, true)
		if err != nil {
			return err
		}
		defer e.Close()

		return repl(ctx, e.uc, cliScope(), conversationID, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// repl reads one utterance per line until EOF or "exit".
func repl(ctx context.Context, uc chat.UseCase, sc model.Scope, convID string, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, replPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		if err := ask(ctx, uc, sc, convID, line, out); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}
