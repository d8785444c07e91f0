package http

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"conversational-task-assistant/internal/middleware"
	"conversational-task-assistant/internal/model"
)

var errMissingID = errors.New("id is required")

func (h *handler) scope(c *gin.Context) (model.Scope, error) {
	sc, ok := middleware.GetScope(c)
	if !ok {
		return model.Scope{}, errMissingScope
	}
	return sc, nil
}

func (h *handler) processCreateTaskReq(c *gin.Context) (model.Scope, createTaskReq, error) {
	var req createTaskReq
	sc, err := h.scope(c)
	if err != nil {
		return sc, req, err
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return sc, req, err
	}
	return sc, req, nil
}

func (h *handler) processListTasksReq(c *gin.Context) (model.Scope, listTasksReq, error) {
	var req listTasksReq
	sc, err := h.scope(c)
	if err != nil {
		return sc, req, err
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		return sc, req, err
	}
	return sc, req, nil
}

func (h *handler) processDeleteTaskReq(c *gin.Context) (model.Scope, string, error) {
	sc, err := h.scope(c)
	if err != nil {
		return sc, "", err
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return sc, "", errMissingID
	}
	return sc, id, nil
}

func (h *handler) processCreateProjectReq(c *gin.Context) (model.Scope, createProjectReq, error) {
	var req createProjectReq
	sc, err := h.scope(c)
	if err != nil {
		return sc, req, err
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return sc, req, err
	}
	return sc, req, nil
}

func (h *handler) processListProjectsReq(c *gin.Context) (model.Scope, listProjectsReq, error) {
	var req listProjectsReq
	sc, err := h.scope(c)
	if err != nil {
		return sc, req, err
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		return sc, req, err
	}
	return sc, req, nil
}
