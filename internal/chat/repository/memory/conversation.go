package memory

import (
	"context"

	"conversational-task-assistant/internal/chat/repository"
	"conversational-task-assistant/internal/model"
)

func (r *implRepository) RecentTurns(ctx context.Context, conversationID string, pairCount int) ([]model.Turn, error) {
	if conversationID == "" {
		return nil, repository.ErrEmptyConversationID
	}
	turns, ok := r.cache.Get(conversationID)
	if !ok {
		return nil, nil
	}

	n := pairCount * 2
	if n <= 0 || n > len(turns) {
		n = len(turns)
	}
	out := make([]model.Turn, n)
	copy(out, turns[len(turns)-n:])
	return out, nil
}

func (r *implRepository) AppendTurn(ctx context.Context, conversationID string, turn model.Turn) error {
	if conversationID == "" {
		return repository.ErrEmptyConversationID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	turns, _ := r.cache.Get(conversationID)
	next := make([]model.Turn, 0, len(turns)+1)
	next = append(next, turns...)
	next = append(next, turn)
	if len(next) > r.maxTurns {
		next = next[len(next)-r.maxTurns:]
	}
	r.cache.Add(conversationID, next)
	return nil
}
