package model

import "time"

// Role is the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MentionAction is the action a listed set of entities was offered for.
type MentionAction string

const (
	MentionActionNone     MentionAction = ""
	MentionActionComplete MentionAction = "complete"
	MentionActionDelete   MentionAction = "delete"
	MentionActionView     MentionAction = "view"
)

// EntityKind distinguishes tasks from projects.
type EntityKind string

const (
	EntityTask    EntityKind = "task"
	EntityProject EntityKind = "project"
)

// Mentions records which entities an assistant turn showed to the user, in display order.
// Prompt is true when the turn asked the user to pick one of them.
type Mentions struct {
	Action   MentionAction `json:"action,omitempty"`
	Kind     EntityKind    `json:"kind,omitempty"`
	Tasks    []string      `json:"tasks,omitempty"`
	Projects []string      `json:"projects,omitempty"`
	Prompt   bool          `json:"prompt,omitempty"`
}

// Candidates returns the names offered for Kind.
func (m Mentions) Candidates() []string {
	if m.Kind == EntityProject {
		return m.Projects
	}
	return m.Tasks
}

// Turn is one message in a conversation.
type Turn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Mentions  *Mentions `json:"mentions,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
