package http

import (
	"github.com/gin-gonic/gin"

	"conversational-task-assistant/internal/chat"
	"conversational-task-assistant/pkg/log"
)

// Handler is the HTTP delivery for the chat assistant.
type Handler interface {
	SendMessage(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc chat.UseCase
}

func New(l log.Logger, uc chat.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
