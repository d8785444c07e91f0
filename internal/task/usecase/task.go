package usecase

import (
	"context"
	"errors"
	"strings"

	"conversational-task-assistant/internal/model"
	"conversational-task-assistant/internal/task"
	"conversational-task-assistant/internal/task/repository"
)

// CreateTask validates the input and stores a new pending task.
func (uc *implUseCase) CreateTask(ctx context.Context, sc model.Scope, input task.CreateTaskInput) (model.Task, error) {
	if sc.UserID == "" {
		return model.Task{}, task.ErrMissingUser
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return model.Task{}, task.ErrEmptyTitle
	}
	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return model.Task{}, task.ErrInvalidPriority
	}

	projectID, err := uc.resolveProject(ctx, sc.UserID, input.ProjectID, input.ProjectName)
	if err != nil {
		return model.Task{}, err
	}

	t, err := uc.repo.CreateTask(ctx, repository.CreateTaskOptions{
		Owner:       sc.UserID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Priority:    priority,
		DueDate:     input.DueDate,
		ProjectID:   projectID,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.task.usecase.CreateTask: %v", err)
		return model.Task{}, err
	}
	return t, nil
}

// ListTasks returns the user's tasks, soonest due first.
func (uc *implUseCase) ListTasks(ctx context.Context, sc model.Scope, input task.ListTasksInput) (task.ListTasksOutput, error) {
	if sc.UserID == "" {
		return task.ListTasksOutput{}, task.ErrMissingUser
	}

	opts := repository.ListTasksOptions{
		Owner:   sc.UserID,
		Search:  strings.TrimSpace(input.Search),
		OrderBy: repository.OrderByDueDate,
	}
	if input.Status != "" {
		switch input.Status {
		case model.TaskStatusPending, model.TaskStatusInProgress, model.TaskStatusCompleted:
			opts.Statuses = []model.TaskStatus{input.Status}
		default:
			return task.ListTasksOutput{}, task.ErrInvalidStatus
		}
	}
	if name := strings.TrimSpace(input.ProjectName); name != "" {
		id, err := uc.resolveProject(ctx, sc.UserID, "", name)
		if err != nil {
			return task.ListTasksOutput{}, err
		}
		opts.ProjectID = id
	}

	total, err := uc.repo.CountTasks(ctx, opts)
	if err != nil {
		uc.l.Errorf(ctx, "internal.task.usecase.ListTasks.CountTasks: %v", err)
		return task.ListTasksOutput{}, err
	}

	opts.Limit = input.Limit
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	}
	tasks, err := uc.repo.ListTasks(ctx, opts)
	if err != nil {
		uc.l.Errorf(ctx, "internal.task.usecase.ListTasks.ListTasks: %v", err)
		return task.ListTasksOutput{}, err
	}

	return task.ListTasksOutput{Tasks: tasks, Total: total}, nil
}

// DeleteTask removes one of the user's tasks by id.
func (uc *implUseCase) DeleteTask(ctx context.Context, sc model.Scope, id string) error {
	if sc.UserID == "" {
		return task.ErrMissingUser
	}
	if err := uc.repo.DeleteTask(ctx, sc.UserID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return task.ErrTaskNotFound
		}
		uc.l.Errorf(ctx, "internal.task.usecase.DeleteTask: %v", err)
		return err
	}
	return nil
}
