package task

import (
	"time"

	"conversational-task-assistant/internal/model"
)

// CreateTaskInput is the input for creating a single task.
// Project may be given by id or by name; the id wins when both are set.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    model.Priority
	DueDate     *time.Time
	ProjectID   string
	ProjectName string
}

// ListTasksInput filters the task listing. Zero values mean "everything".
type ListTasksInput struct {
	Status      model.TaskStatus
	ProjectName string
	Search      string
	Limit       int
}

// ListTasksOutput is a page of tasks plus the unpaged total.
type ListTasksOutput struct {
	Tasks []model.Task
	Total int
}

// CreateProjectInput is the input for creating a project.
type CreateProjectInput struct {
	Name        string
	Description string
}

// ListProjectsInput limits the project listing.
type ListProjectsInput struct {
	Limit int
}

// ListProjectsOutput holds the user's projects.
type ListProjectsOutput struct {
	Projects []model.Project
}
