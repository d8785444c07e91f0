package redis

import (
	"time"

	"github.com/redis/go-redis/v9"

	"conversational-task-assistant/internal/chat/repository"
	pkgLog "conversational-task-assistant/pkg/log"
)

const (
	keyPrefix       = "conversation:"
	DefaultTTL      = 24 * time.Hour
	DefaultMaxTurns = 20
)

type implRepository struct {
	client   *redis.Client
	l        pkgLog.Logger
	ttl      time.Duration
	maxTurns int
}

// New creates a conversation store backed by a redis list per conversation.
func New(client *redis.Client, l pkgLog.Logger, ttl time.Duration, maxTurns int) repository.Repository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &implRepository{
		client:   client,
		l:        l,
		ttl:      ttl,
		maxTurns: maxTurns,
	}
}

func key(conversationID string) string {
	return keyPrefix + conversationID
}
