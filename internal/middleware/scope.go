package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"conversational-task-assistant/internal/model"
	"conversational-task-assistant/pkg/response"
)

const (
	UserIDHeader = "X-User-ID"
	scopeKey     = "scope"
)

// Scope requires the X-User-ID header and stores the caller's scope on the context.
// Authentication is left to the gateway in front of the service.
func (m Middleware) Scope() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID == "" {
			response.Unauthorized(c)
			return
		}
		c.Set(scopeKey, model.Scope{UserID: userID})
		c.Next()
	}
}

// GetScope returns the scope set by Scope, if any.
func GetScope(c *gin.Context) (model.Scope, bool) {
	v, ok := c.Get(scopeKey)
	if !ok {
		return model.Scope{}, false
	}
	sc, ok := v.(model.Scope)
	return sc, ok
}
