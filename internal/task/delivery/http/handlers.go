package http

import (
	"github.com/gin-gonic/gin"

	"conversational-task-assistant/internal/task"
	"conversational-task-assistant/pkg/response"
)

// CreateTask godoc
// @Summary     Create a task
// @Description Creates a task for the caller. The project may be given by id or by name.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string        true "Caller id"
// @Param       body      body   createTaskReq true "Task data"
// @Success     200 {object} taskResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Project not found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks [POST]
func (h *handler) CreateTask(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processCreateTaskReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	t, err := h.uc.CreateTask(ctx, sc, req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, newTaskResp(t))
}

// ListTasks godoc
// @Summary     List tasks
// @Description Returns the caller's tasks, soonest due first.
// @Tags        Tasks
// @Produce     json
// @Param       X-User-ID header string true  "Caller id"
// @Param       status    query  string false "pending, in_progress or completed"
// @Param       project   query  string false "Project name"
// @Param       q         query  string false "Substring of title or description"
// @Param       limit     query  int    false "Page size (default: 50)"
// @Success     200 {object} listTasksResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Project not found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks [GET]
func (h *handler) ListTasks(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processListTasksReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.ListTasks(ctx, sc, req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, newListTasksResp(out))
}

// DeleteTask godoc
// @Summary     Delete a task
// @Tags        Tasks
// @Produce     json
// @Param       X-User-ID header string true "Caller id"
// @Param       id        path   string true "Task ID"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/{id} [DELETE]
func (h *handler) DeleteTask(c *gin.Context) {
	ctx := c.Request.Context()

	sc, id, err := h.processDeleteTaskReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.DeleteTask(ctx, sc, id); err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, nil)
}

// CreateProject godoc
// @Summary     Create a project
// @Tags        Projects
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string           true "Caller id"
// @Param       body      body   createProjectReq true "Project data"
// @Success     200 {object} projectResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     409 {object} response.Resp "Conflict - name already exists"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/projects [POST]
func (h *handler) CreateProject(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processCreateProjectReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	p, err := h.uc.CreateProject(ctx, sc, req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, newProjectResp(p))
}

// ListProjects godoc
// @Summary     List projects
// @Tags        Projects
// @Produce     json
// @Param       X-User-ID header string true  "Caller id"
// @Param       limit     query  int    false "Page size (default: 50)"
// @Success     200 {object} listProjectsResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/projects [GET]
func (h *handler) ListProjects(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processListProjectsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.ListProjects(ctx, sc, task.ListProjectsInput{Limit: req.Limit})
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, newListProjectsResp(out))
}
