package telegram

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"conversational-task-assistant/internal/chat"
	pkgLog "conversational-task-assistant/pkg/log"
	pkgTelegram "conversational-task-assistant/pkg/telegram"
)

const defaultReplyTimeout = 30 * time.Second

// Handler is the Telegram webhook transport.
type Handler interface {
	HandleWebhook(c *gin.Context)
	// Wait blocks until every accepted update has been answered.
	Wait()
}

// Config holds the transport settings.
type Config struct {
	// WebhookSecret must match the secret header on incoming updates when set.
	WebhookSecret string
	ReplyTimeout  time.Duration
}

type handler struct {
	l       pkgLog.Logger
	uc      chat.UseCase
	bot     pkgTelegram.Sender
	secret  string
	timeout time.Duration
	wg      sync.WaitGroup
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, uc chat.UseCase, bot pkgTelegram.Sender, cfg Config) Handler {
	timeout := cfg.ReplyTimeout
	if timeout <= 0 {
		timeout = defaultReplyTimeout
	}
	return &handler{
		l:       l,
		uc:      uc,
		bot:     bot,
		secret:  cfg.WebhookSecret,
		timeout: timeout,
	}
}
