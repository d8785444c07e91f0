package http

import (
	"time"

	"conversational-task-assistant/internal/model"
	"conversational-task-assistant/internal/task"
	"conversational-task-assistant/pkg/response"
)

// --- Request DTOs ---

type createTaskReq struct {
	Title       string     `json:"title"        binding:"required,max=255"`
	Description string     `json:"description"  binding:"max=2000"`
	Priority    string     `json:"priority"     binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
	ProjectID   string     `json:"project_id"`
	ProjectName string     `json:"project_name" binding:"max=255"`
}

func (r createTaskReq) toInput() task.CreateTaskInput {
	return task.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    model.Priority(r.Priority),
		DueDate:     r.DueDate,
		ProjectID:   r.ProjectID,
		ProjectName: r.ProjectName,
	}
}

type listTasksReq struct {
	Status  string `form:"status"  binding:"omitempty,oneof=pending in_progress completed"`
	Project string `form:"project"`
	Search  string `form:"q"`
	Limit   int    `form:"limit"   binding:"omitempty,min=1,max=200"`
}

func (r listTasksReq) toInput() task.ListTasksInput {
	return task.ListTasksInput{
		Status:      model.TaskStatus(r.Status),
		ProjectName: r.Project,
		Search:      r.Search,
		Limit:       r.Limit,
	}
}

type createProjectReq struct {
	Name        string `json:"name"        binding:"required,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

func (r createProjectReq) toInput() task.CreateProjectInput {
	return task.CreateProjectInput{
		Name:        r.Name,
		Description: r.Description,
	}
}

type listProjectsReq struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}

// --- Response DTOs ---

type taskResp struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Status      string             `json:"status"`
	Priority    string             `json:"priority"`
	DueDate     *response.DateTime `json:"due_date,omitempty"`
	ProjectID   string             `json:"project_id,omitempty"`
	ProjectName string             `json:"project_name,omitempty"`
	CreatedAt   response.DateTime  `json:"created_at"`
	UpdatedAt   response.DateTime  `json:"updated_at"`
	CompletedAt *response.DateTime `json:"completed_at,omitempty"`
}

type listTasksResp struct {
	Tasks []taskResp `json:"tasks"`
	Total int        `json:"total"`
}

type projectResp struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	CreatedAt   response.DateTime `json:"created_at"`
}

type listProjectsResp struct {
	Projects []projectResp `json:"projects"`
}

func newTaskResp(t model.Task) taskResp {
	return taskResp{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     response.NewDateTime(t.DueDate),
		ProjectID:   t.ProjectID,
		ProjectName: t.ProjectName,
		CreatedAt:   response.DateTime(t.CreatedAt),
		UpdatedAt:   response.DateTime(t.UpdatedAt),
		CompletedAt: response.NewDateTime(t.CompletedAt),
	}
}

func newListTasksResp(o task.ListTasksOutput) listTasksResp {
	items := make([]taskResp, 0, len(o.Tasks))
	for _, t := range o.Tasks {
		items = append(items, newTaskResp(t))
	}
	return listTasksResp{Tasks: items, Total: o.Total}
}

func newProjectResp(p model.Project) projectResp {
	return projectResp{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   response.DateTime(p.CreatedAt),
	}
}

func newListProjectsResp(o task.ListProjectsOutput) listProjectsResp {
	items := make([]projectResp, 0, len(o.Projects))
	for _, p := range o.Projects {
		items = append(items, newProjectResp(p))
	}
	return listProjectsResp{Projects: items}
}
