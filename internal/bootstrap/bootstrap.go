// Package bootstrap builds the infrastructure shared by the api and cli binaries from config.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"conversational-task-assistant/config"
	chatRepo "conversational-task-assistant/internal/chat/repository"
	"conversational-task-assistant/internal/chat/repository/memory"
	redisRepo "conversational-task-assistant/internal/chat/repository/redis"
	chatUC "conversational-task-assistant/internal/chat/usecase"
	"conversational-task-assistant/internal/task/repository/sqlite"
	"conversational-task-assistant/pkg/datemath"
	"conversational-task-assistant/pkg/llmprovider"
	"conversational-task-assistant/pkg/log"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Logger builds the zap logger from the logger section.
func Logger(cfg config.LoggerConfig) log.Logger {
	return log.Init(log.ZapConfig{
		Level:        cfg.Level,
		Mode:         cfg.Mode,
		Encoding:     cfg.Encoding,
		ColorEnabled: cfg.ColorEnabled,
	})
}

// Database opens the sqlite task store and bootstraps its schema.
func Database(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sqlite.Open(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("bootstrap.Database: %w", err)
	}
	return db, nil
}

// Dates builds the date parser for the assistant's timezone.
func Dates(cfg config.AssistantConfig) (*datemath.Parser, error) {
	p, err := datemath.NewParser(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("bootstrap.Dates: %w", err)
	}
	return p, nil
}

// Conversations builds the conversation store. The returned close func releases
// the redis client and is a no-op for the memory backend.
func Conversations(ctx context.Context, cfg config.ConversationConfig, l log.Logger) (chatRepo.Repository, func() error, error) {
	// Keep twice the window so a slightly larger pair_count after a restart still has history.
	maxTurns := cfg.PairCount * 2 * 2

	switch cfg.Backend {
	case BackendRedis:
		opts, err := goredis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap.Conversations: parse redis url: %w", err)
		}
		client := goredis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("bootstrap.Conversations: ping redis: %w", err)
		}
		l.Infof(ctx, "Conversation store: redis at %s", opts.Addr)
		return redisRepo.New(client, l, cfg.TTL, maxTurns), client.Close, nil

	case BackendMemory, "":
		l.Infof(ctx, "Conversation store: memory (max %d conversations)", cfg.MaxConversations)
		return memory.New(cfg.MaxConversations, cfg.TTL, maxTurns), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("bootstrap.Conversations: unknown backend %q", cfg.Backend)
	}
}

// Fallback builds the LLM fallback delegate. It returns nil when no provider
// is enabled, which leaves the assistant with its canned reply.
func Fallback(ctx context.Context, cfg config.LLMConfig, l log.Logger) chatUC.Fallback {
	cfgs := make([]llmprovider.ProviderConfig, 0, len(cfg.Providers))
	for _, p := range cfg.Providers {
		cfgs = append(cfgs, llmprovider.ProviderConfig{
			Name:     p.Name,
			Enabled:  p.Enabled,
			Priority: p.Priority,
			APIKey:   p.APIKey,
			BaseURL:  p.BaseURL,
			Model:    p.Model,
			Timeout:  p.Timeout,
		})
	}

	providers, skipped, err := llmprovider.InitializeProviders(cfgs)
	for _, s := range skipped {
		l.Warnf(ctx, "LLM provider skipped: %v", s)
	}
	if err != nil {
		l.Warnf(ctx, "LLM fallback disabled: %v", err)
		return nil
	}

	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      cfg.RetryDelay,
		MaxTotalTimeout: cfg.MaxTotalTimeout,
	}, l)
	l.Infof(ctx, "LLM fallback enabled with %d provider(s)", len(providers))
	return chatUC.NewLLMFallback(manager)
}
