package repository

import (
	"context"

	"conversational-task-assistant/internal/model"
)

// Repository is the task and project store. Every query is scoped to an owner.
type Repository interface {
	TaskRepository
	ProjectRepository
}

// TaskRepository holds task data access operations.
type TaskRepository interface {
	CreateTask(ctx context.Context, opt CreateTaskOptions) (model.Task, error)
	GetTask(ctx context.Context, owner, id string) (model.Task, error)
	// FindTasksByTitle matches exactly, then by substring, then by edit distance.
	FindTasksByTitle(ctx context.Context, owner, text string) ([]model.Task, error)
	ListTasks(ctx context.Context, opt ListTasksOptions) ([]model.Task, error)
	CountTasks(ctx context.Context, opt ListTasksOptions) (int, error)
	SetTaskStatus(ctx context.Context, owner, id string, status model.TaskStatus) (model.Task, error)
	DeleteTask(ctx context.Context, owner, id string) error
}

// ProjectRepository holds project data access operations.
type ProjectRepository interface {
	CreateProject(ctx context.Context, opt CreateProjectOptions) (model.Project, error)
	FindProjectsByName(ctx context.Context, owner, name string) ([]model.Project, error)
	ListProjects(ctx context.Context, opt ListProjectsOptions) ([]model.Project, error)
	CountProjects(ctx context.Context, owner string) (int, error)
	// DeleteProject removes the project and detaches its tasks.
	DeleteProject(ctx context.Context, owner, id string) error
}
