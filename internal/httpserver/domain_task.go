package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"conversational-task-assistant/internal/middleware"
	taskHTTP "conversational-task-assistant/internal/task/delivery/http"
	"conversational-task-assistant/internal/task/repository"
	taskUC "conversational-task-assistant/internal/task/usecase"
)

// setupTaskDomain registers /api/v1/tasks and /api/v1/projects.
func (srv *HTTPServer) setupTaskDomain(ctx context.Context, api *gin.RouterGroup, repo repository.Repository, mw middleware.Middleware) {
	uc := taskUC.New(srv.l, repo)
	h := taskHTTP.New(srv.l, uc)
	taskHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Task domain registered")
}
