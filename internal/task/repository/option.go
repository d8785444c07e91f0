package repository

import (
	"time"

	"conversational-task-assistant/internal/model"
)

// Task orderings understood by ListTasks.
const (
	OrderByDueDate   = "due_date"
	OrderByUpdatedAt = "updated_at"
	OrderByCreatedAt = "created_at"
	OrderByPriority  = "priority"
)

// CreateTaskOptions holds the parameters for creating a task.
type CreateTaskOptions struct {
	Owner       string
	Title       string
	Description string
	Priority    model.Priority // defaults to medium
	DueDate     *time.Time
	ProjectID   string
}

// ListTasksOptions filters tasks. Zero values mean "no filter".
type ListTasksOptions struct {
	Owner         string
	Statuses      []model.TaskStatus
	ExcludeStatus model.TaskStatus
	ProjectID     string
	Priority      model.Priority
	DueBefore     *time.Time
	DueAfter      *time.Time
	Search        string // case-insensitive substring of title or description
	Limit         int
	OrderBy       string
}

// CreateProjectOptions holds the parameters for creating a project.
type CreateProjectOptions struct {
	Owner       string
	Name        string
	Description string
}

// ListProjectsOptions filters projects.
type ListProjectsOptions struct {
	Owner string
	Limit int
}
