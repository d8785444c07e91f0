package usecase

import (
	"context"
	"math/rand/v2"
	"time"

	"conversational-task-assistant/internal/model"
	"conversational-task-assistant/pkg/datemath"
)

// ActionResult is what one dispatched intent produced.
type ActionResult struct {
	Success  bool
	Message  string
	EntityID string
	// Data is a structured payload for statistics, listings and creation drafts.
	Data any
	// Mentions records the entities shown in Message, for resolving follow-ups.
	Mentions *model.Mentions
}

// FallbackRequest is sent to the Fallback when no rule matched.
type FallbackRequest struct {
	SystemContext string
	UserMessage   string
}

// Fallback answers utterances the rules do not understand.
type Fallback interface {
	Answer(ctx context.Context, req FallbackRequest) (string, error)
}

// Picker chooses one reply from a pool of equivalent replies.
type Picker func(options []string) string

// RandomPicker picks uniformly.
func RandomPicker(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[rand.IntN(len(options))]
}

// Options tune the dispatcher. Zero values take the defaults.
type Options struct {
	// PairCount is how many user/assistant pairs of history are read per turn.
	PairCount     int
	MaxCandidates int
	ListLimit     int
	// Dates supplies the user's time zone and day boundaries.
	Dates         *datemath.Parser
	Picker        Picker
	Clock         func() time.Time
}

// GeneralStats is the payload of stats_general.
type GeneralStats struct {
	TotalTasks     int     `json:"total_tasks"`
	PendingTasks   int     `json:"pending_tasks"`
	InProgress     int     `json:"in_progress_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	OverdueTasks   int     `json:"overdue_tasks"`
	DueToday       int     `json:"due_today"`
	TotalProjects  int     `json:"total_projects"`
	CompletionRate float64 `json:"completion_rate"`
}

// TaskStats is the payload of stats_task.
type TaskStats struct {
	Total          int                      `json:"total"`
	ByStatus       map[model.TaskStatus]int `json:"by_status"`
	ByPriority     map[model.Priority]int   `json:"by_priority"`
	Overdue        int                      `json:"overdue"`
	DueToday       int                      `json:"due_today"`
	CompletionRate float64                  `json:"completion_rate"`
}

// ProjectStats is the payload of stats_project.
type ProjectStats struct {
	TotalProjects int            `json:"total_projects"`
	Unassigned    int            `json:"unassigned_tasks"`
	Projects      []ProjectTally `json:"projects"`
}

// ProjectTally counts the tasks of one project.
type ProjectTally struct {
	Name      string `json:"name"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

// CreationDraft is attached to creation refusals so a client can prefill its form.
type CreationDraft struct {
	Kind          string `json:"kind"`
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	DueDate       string `json:"due_date,omitempty"`
	Priority      string `json:"priority,omitempty"`
	ProjectName   string `json:"project_name,omitempty"`
	MissingField  string `json:"missing_field,omitempty"`
	Clarification string `json:"clarification,omitempty"`
}

// TaskItem is one row of a task listing payload.
type TaskItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	DueDate  string `json:"due_date,omitempty"`
	Project  string `json:"project,omitempty"`
}

// TaskListing is the payload of task listings and searches.
type TaskListing struct {
	Items []TaskItem `json:"items"`
	Total int        `json:"total"`
}
