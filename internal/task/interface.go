package task

import (
	"context"

	"conversational-task-assistant/internal/model"
)

// UseCase is the task domain used by the primary UI. Creation lives here and
// never in the chat assistant.
type UseCase interface {
	CreateTask(ctx context.Context, sc model.Scope, input CreateTaskInput) (model.Task, error)
	ListTasks(ctx context.Context, sc model.Scope, input ListTasksInput) (ListTasksOutput, error)
	DeleteTask(ctx context.Context, sc model.Scope, id string) error

	CreateProject(ctx context.Context, sc model.Scope, input CreateProjectInput) (model.Project, error)
	ListProjects(ctx context.Context, sc model.Scope, input ListProjectsInput) (ListProjectsOutput, error)
}
