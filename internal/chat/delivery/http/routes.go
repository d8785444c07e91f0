package http

import (
	"github.com/gin-gonic/gin"

	"conversational-task-assistant/internal/middleware"
)

// RegisterRoutes maps the chat endpoints. Chat is rate limited per client IP.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	chat := rg.Group("/chat", mw.RateLimit())
	{
		chat.POST("/messages", h.SendMessage)
	}
}
