package http

import (
	"github.com/gin-gonic/gin"

	"conversational-task-assistant/internal/middleware"
)

// RegisterRoutes maps the task and project endpoints. Every route needs a caller scope.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	tasks := rg.Group("/tasks", mw.Scope())
	{
		tasks.POST("", h.CreateTask)
		tasks.GET("", h.ListTasks)
		tasks.DELETE("/:id", h.DeleteTask)
	}

	projects := rg.Group("/projects", mw.Scope())
	{
		projects.POST("", h.CreateProject)
		projects.GET("", h.ListProjects)
	}
}
