package repository

import "errors"

var (
	ErrEmptyConversationID = errors.New("conversation id is empty")
	ErrFailedToAppend      = errors.New("failed to append turn")
	ErrFailedToRead        = errors.New("failed to read turns")
)
