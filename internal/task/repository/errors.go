package repository

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrFailedToInsert   = errors.New("failed to insert")
	ErrFailedToUpdate   = errors.New("failed to update")
	ErrFailedToDelete   = errors.New("failed to delete")
	ErrInvalidOwner     = errors.New("owner is required")
	ErrDuplicateProject = errors.New("project with this name already exists")
)
