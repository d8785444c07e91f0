package chat

import "errors"

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrMissingUser  = errors.New("user id is required")
)
