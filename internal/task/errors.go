package task

import "errors"

var (
	ErrMissingUser      = errors.New("user id is required")
	ErrEmptyTitle       = errors.New("task title is empty")
	ErrEmptyProjectName = errors.New("project name is empty")
	ErrInvalidPriority  = errors.New("priority must be low, medium or high")
	ErrInvalidStatus    = errors.New("unknown task status")
	ErrProjectNotFound  = errors.New("project not found")
	ErrProjectExists    = errors.New("project already exists")
	ErrTaskNotFound     = errors.New("task not found")
)
