package repository

import (
	"context"

	"conversational-task-assistant/internal/model"
)

// Repository stores conversation turns.
type Repository interface {
	// RecentTurns returns up to pairCount user/assistant pairs, oldest first.
	RecentTurns(ctx context.Context, conversationID string, pairCount int) ([]model.Turn, error)
	AppendTurn(ctx context.Context, conversationID string, turn model.Turn) error
}
