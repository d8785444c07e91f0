package usecase

import (
	"conversational-task-assistant/internal/task"
	"conversational-task-assistant/internal/task/repository"
	pkgLog "conversational-task-assistant/pkg/log"
)

const defaultListLimit = 50

type implUseCase struct {
	l    pkgLog.Logger
	repo repository.Repository
}

var _ task.UseCase = (*implUseCase)(nil)

// New creates a new task UseCase instance.
func New(l pkgLog.Logger, repo repository.Repository) *implUseCase {
	return &implUseCase{
		l:    l,
		repo: repo,
	}
}
