package http

import (
	"github.com/gin-gonic/gin"

	"conversational-task-assistant/internal/task"
	"conversational-task-assistant/pkg/log"
)

// Handler is the HTTP delivery for tasks and projects.
type Handler interface {
	CreateTask(c *gin.Context)
	ListTasks(c *gin.Context)
	DeleteTask(c *gin.Context)
	CreateProject(c *gin.Context)
	ListProjects(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc task.UseCase
}

// New creates a new HTTP handler for the task domain.
func New(l log.Logger, uc task.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
