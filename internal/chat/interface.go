package chat

import (
	"context"

	"conversational-task-assistant/internal/model"
)

// UseCase defines the business logic interface for the chat domain.
type UseCase interface {
	// Reply answers one user utterance and records both turns in the conversation.
	Reply(ctx context.Context, sc model.Scope, input ReplyInput) (ReplyOutput, error)
}
