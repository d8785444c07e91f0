package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	chatHTTP "conversational-task-assistant/internal/chat/delivery/http"
	chatTelegram "conversational-task-assistant/internal/chat/delivery/telegram"
	chatUC "conversational-task-assistant/internal/chat/usecase"
	"conversational-task-assistant/internal/extractor"
	"conversational-task-assistant/internal/middleware"
	"conversational-task-assistant/internal/router"
	"conversational-task-assistant/internal/task/repository"
)

// setupChatDomain registers /api/v1/chat and, when a bot is configured, the Telegram webhook.
func (srv *HTTPServer) setupChatDomain(ctx context.Context, api *gin.RouterGroup, repo repository.Repository, mw middleware.Middleware) {
	rt := router.New(extractor.New(srv.dates, nil))
	uc := chatUC.New(srv.l, rt, repo, srv.conversations, srv.fallback, chatUC.Options{
		PairCount:     srv.assistant.PairCount,
		MaxCandidates: srv.assistant.MaxCandidates,
		ListLimit:     srv.assistant.ListLimit,
		Dates:         srv.dates,
	})

	chatHTTP.RegisterRoutes(api, chatHTTP.New(srv.l, uc), mw)
	srv.l.Infof(ctx, "Chat domain registered")

	if srv.telegramBot == nil {
		srv.l.Infof(ctx, "Telegram bot not configured, skipping webhook route")
		return
	}
	tg := chatTelegram.New(srv.l, uc, srv.telegramBot, chatTelegram.Config{WebhookSecret: srv.telegramSecret})
	srv.gin.POST("/webhook/telegram", mw.RateLimit(), tg.HandleWebhook)
	srv.telegramWait = tg.Wait
	srv.l.Infof(ctx, "Telegram webhook route registered at POST /webhook/telegram")
}
