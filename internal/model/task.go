package model

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Priority is one of exactly three levels.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the three known levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work owned by a single user.
type Task struct {
	ID          string
	Owner       string
	Title       string
	Description string
	Status      TaskStatus
	Priority    Priority
	DueDate     *time.Time
	ProjectID   string
	ProjectName string // denormalised on read, empty when the task has no project
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// IsCompleted reports whether the task is done.
func (t Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// IsOverdue reports whether the task is past its due date and still open.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && !t.IsCompleted() && t.DueDate.Before(now)
}

// Project groups tasks.
type Project struct {
	ID          string
	Owner       string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
