package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"conversational-task-assistant/config"
	_ "conversational-task-assistant/docs" // Swagger docs
	"conversational-task-assistant/internal/bootstrap"
	"conversational-task-assistant/internal/httpserver"
	"conversational-task-assistant/internal/middleware"
	"conversational-task-assistant/pkg/telegram"
)

// @title       Conversational Task Assistant API
// @description Chat with your tasks and projects over HTTP or Telegram, plus the task and project endpoints behind the app.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := bootstrap.Logger(cfg.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Conversational Task Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Storage
	db, err := bootstrap.Database(ctx, cfg.Database)
	if err != nil {
		logger.Fatalf(ctx, "Failed to open database: %v", err)
	}
	defer db.Close()

	conversations, closeConversations, err := bootstrap.Conversations(ctx, cfg.Conversation, logger)
	if err != nil {
		logger.Fatalf(ctx, "Failed to init conversation store: %v", err)
	}
	defer closeConversations()

	// 4. Assistant
	dates, err := bootstrap.Dates(cfg.Assistant)
	if err != nil {
		logger.Fatalf(ctx, "Failed to init date parser: %v", err)
	}
	fallback := bootstrap.Fallback(ctx, cfg.LLM, logger)

	// 5. Telegram (optional)
	var bot *telegram.Bot
	if cfg.Telegram.BotToken != "" {
		bot = telegram.NewBot(cfg.Telegram.BotToken)
		registerWebhook(ctx, logger, bot, cfg.Telegram)
	} else {
		logger.Warn(ctx, "TELEGRAM_BOT_TOKEN not set, Telegram transport disabled")
	}

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
		DB:              db,
		Conversations:   conversations,
		Fallback:        fallback,
		Dates:           dates,
		Assistant: httpserver.AssistantConfig{
			PairCount:     cfg.Conversation.PairCount,
			MaxCandidates: cfg.Assistant.MaxCandidates,
			ListLimit:     cfg.Assistant.ListLimit,
		},
		Middleware: middleware.Config{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RequestsPerMin:   cfg.RateLimit.RequestsPerMin,
			MaxClients:       cfg.RateLimit.MaxClients,
		},
		TelegramBot:    bot,
		TelegramSecret: cfg.Telegram.WebhookSecret,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
