package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"conversational-task-assistant/internal/chat/repository"
	"conversational-task-assistant/internal/model"
)

func (r *implRepository) RecentTurns(ctx context.Context, conversationID string, pairCount int) ([]model.Turn, error) {
	if conversationID == "" {
		return nil, repository.ErrEmptyConversationID
	}

	start := int64(0)
	if pairCount > 0 {
		start = -int64(pairCount * 2)
	}
	raw, err := r.client.LRange(ctx, key(conversationID), start, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		r.l.Errorf(ctx, "chat.repository.redis.RecentTurns: %v", err)
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToRead, err)
	}

	turns := make([]model.Turn, 0, len(raw))
	for _, item := range raw {
		var t model.Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			// A corrupt entry loses one turn, not the whole window.
			r.l.Warnf(ctx, "chat.repository.redis.RecentTurns: skip undecodable turn: %v", err)
			continue
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (r *implRepository) AppendTurn(ctx context.Context, conversationID string, turn model.Turn) error {
	if conversationID == "" {
		return repository.ErrEmptyConversationID
	}

	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrFailedToAppend, err)
	}

	k := key(conversationID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, k, data)
		pipe.LTrim(ctx, k, -int64(r.maxTurns), -1)
		pipe.Expire(ctx, k, r.ttl)
		return nil
	})
	if err != nil {
		r.l.Errorf(ctx, "chat.repository.redis.AppendTurn: %v", err)
		return fmt.Errorf("%w: %v", repository.ErrFailedToAppend, err)
	}
	return nil
}
