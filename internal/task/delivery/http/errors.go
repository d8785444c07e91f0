package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"conversational-task-assistant/internal/task"
	"conversational-task-assistant/pkg/response"
)

var errMissingScope = errors.New("missing caller scope")

// writeError maps use-case errors to the response envelope. Anything unknown is a 500.
func (h *handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, task.ErrProjectNotFound):
		response.NotFound(c, err)
	case errors.Is(err, task.ErrProjectExists):
		response.Conflict(c, err)
	case errors.Is(err, task.ErrMissingUser),
		errors.Is(err, task.ErrEmptyTitle),
		errors.Is(err, task.ErrEmptyProjectName),
		errors.Is(err, task.ErrInvalidPriority),
		errors.Is(err, task.ErrInvalidStatus):
		response.Error(c, err, nil)
	default:
		h.l.Errorf(c.Request.Context(), "internal.task.delivery.http: %v", err)
		response.InternalError(c, err)
	}
}
