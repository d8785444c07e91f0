package reference

import "conversational-task-assistant/internal/model"

// ContextInfo is what the recent conversation says about the current utterance.
// It is rebuilt for every utterance and never stored.
type ContextInfo struct {
	ReferencingPrevious bool
	ReferencedTasks     []string
	ReferencedProjects  []string
	// ActionContext is complete, delete or empty, read from the utterance alone.
	ActionContext model.MentionAction
	// PendingPrompt is set when the latest assistant turn asked the user to pick an entity.
	PendingPrompt *Prompt
}

// Prompt is an open disambiguation question from the assistant.
type Prompt struct {
	Action     model.MentionAction
	Kind       model.EntityKind
	Candidates []string
}
