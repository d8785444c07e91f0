package memory

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"conversational-task-assistant/internal/chat/repository"
	"conversational-task-assistant/internal/model"
)

// Defaults used when the caller passes zero values.
const (
	DefaultMaxConversations = 10000
	DefaultTTL              = 24 * time.Hour
	DefaultMaxTurns         = 20
)

type implRepository struct {
	// mu serialises read-modify-write appends; the cache itself is already safe.
	mu       sync.Mutex
	cache    *expirable.LRU[string, []model.Turn]
	maxTurns int
}

// New creates an in-process conversation store. Idle conversations expire after ttl
// and the least recently used ones are evicted beyond maxConversations.
// Each conversation keeps at most maxTurns turns.
func New(maxConversations int, ttl time.Duration, maxTurns int) repository.Repository {
	if maxConversations <= 0 {
		maxConversations = DefaultMaxConversations
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &implRepository{
		cache:    expirable.NewLRU[string, []model.Turn](maxConversations, nil, ttl),
		maxTurns: maxTurns,
	}
}
