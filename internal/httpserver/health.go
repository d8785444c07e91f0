package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"conversational-task-assistant/pkg/response"
)

const (
	HealthVersion = "1.0.0"
	ServiceName   = "conversational-task-assistant"
)

func (srv *HTTPServer) status(state string) gin.H {
	return gin.H{
		"status":  state,
		"version": HealthVersion,
		"service": ServiceName,
	}
}

// healthCheck
// @Summary Health Check
// @Tags    Health
// @Produce json
// @Success 200 {object} response.Resp
// @Router  /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, srv.status("healthy"))
}

// readyCheck answers 503 until the task database responds. The optional
// transports are reported but never make the service unready.
// @Summary Readiness Check
// @Tags    Health
// @Produce json
// @Success 200 {object} response.Resp
// @Failure 503 {object} response.Resp "Database unavailable"
// @Router  /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()
	body := srv.status("ready")
	body["checks"] = gin.H{
		"database": "ok",
		"fallback": srv.fallback != nil,
		"telegram": srv.telegramBot != nil,
	}

	if err := srv.db.PingContext(ctx); err != nil {
		srv.l.Errorf(ctx, "internal.httpserver.readyCheck: %v", err)
		body["status"] = "unavailable"
		body["checks"].(gin.H)["database"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, response.Resp{
			ErrorCode: response.InternalServerErrorCode,
			Message:   response.DefaultErrorMessage,
			Data:      body,
		})
		return
	}
	response.OK(c, body)
}

// liveCheck
// @Summary Liveness Check
// @Tags    Health
// @Produce json
// @Success 200 {object} response.Resp
// @Router  /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, srv.status("alive"))
}
