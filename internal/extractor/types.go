package extractor

import (
	"time"

	"conversational-task-assistant/internal/model"
)

// Kind selects which entity a creation utterance describes.
type Kind string

const (
	KindTask    Kind = "task"
	KindProject Kind = "project"
)

// SlotSet holds the fields pulled out of one utterance.
// Empty strings and a nil DueDate mean "not present".
type SlotSet struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	Priority    model.Priority `json:"priority"`
	ProjectName string         `json:"project_name,omitempty"`
}

// NeedsMoreInfo is returned instead of a partial SlotSet when a required field is missing.
type NeedsMoreInfo struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result carries exactly one of Slots or NeedsMoreInfo.
type Result struct {
	Slots         *SlotSet
	NeedsMoreInfo *NeedsMoreInfo
}

// Clock returns the current time. Injected so relative dates are deterministic in tests.
type Clock func() time.Time
