package main

import (
	"context"
	"fmt"

	"conversational-task-assistant/config"
	"conversational-task-assistant/internal/bootstrap"
	"conversational-task-assistant/internal/chat"
	chatRepo "conversational-task-assistant/internal/chat/repository"
	"conversational-task-assistant/internal/chat/repository/memory"
	chatUC "conversational-task-assistant/internal/chat/usecase"
	"conversational-task-assistant/internal/extractor"
	"conversational-task-assistant/internal/router"
	"conversational-task-assistant/internal/task/repository/sqlite"
)

// engine is the chat use case plus everything that must be closed after it.
type engine struct {
	uc      chat.UseCase
	closers []func() error
}

func (e *engine) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i]()
	}
}

// newEngine wires the chat use case from config. With inMemory the conversation
// lives only for this process, whatever backend the config names.
func newEngine(ctx context.Context, inMemory bool) (*engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	// The terminal is for answers, so only warnings are logged.
	cfg.Logger.Level = "warn"
	l := bootstrap.Logger(cfg.Logger)

	e := &engine{}
	db, err := bootstrap.Database(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	e.closers = append(e.closers, db.Close)

	dates, err := bootstrap.Dates(cfg.Assistant)
	if err != nil {
		e.Close()
		return nil, err
	}

	var conversations chatRepo.Repository
	if inMemory {
		conversations = memory.New(1, cfg.Conversation.TTL, cfg.Conversation.PairCount*4)
	} else {
		store, closeFn, err := bootstrap.Conversations(ctx, cfg.Conversation, l)
		if err != nil {
			e.Close()
			return nil, err
		}
		conversations = store
		e.closers = append(e.closers, closeFn)
	}

	rt := router.New(extractor.New(dates, nil))
	e.uc = chatUC.New(l, rt, sqlite.New(db, l), conversations, bootstrap.Fallback(ctx, cfg.LLM, l), chatUC.Options{
		PairCount:     cfg.Conversation.PairCount,
		MaxCandidates: cfg.Assistant.MaxCandidates,
		ListLimit:     cfg.Assistant.ListLimit,
		Dates:         dates,
	})
	return e, nil
}
