package router

import (
	"conversational-task-assistant/internal/extractor"
	"conversational-task-assistant/internal/model"
)

// Intent is the single purpose assigned to an utterance.
type Intent string

const (
	IntentGreeting             Intent = "greeting"
	IntentFarewell             Intent = "farewell"
	IntentStatsGeneral         Intent = "stats_general"
	IntentStatsTask            Intent = "stats_task"
	IntentStatsProject         Intent = "stats_project"
	IntentListTasks            Intent = "list_tasks"
	IntentListProjects         Intent = "list_projects"
	IntentSearchTasks          Intent = "search_tasks"
	IntentDashboard            Intent = "dashboard"
	IntentCompleteTask         Intent = "complete_task"
	IntentCompleteAllOverdue   Intent = "complete_all_overdue"
	IntentDeleteTask           Intent = "delete_task"
	IntentDeleteProject        Intent = "delete_project"
	IntentCreateTaskRefused    Intent = "create_task_refused"
	IntentCreateProjectRefused Intent = "create_project_refused"
	IntentUpdateRefused        Intent = "update_refused"
	IntentInventory            Intent = "inventory"
	IntentThisReference        Intent = "this_reference"
	IntentUnclear              Intent = "unclear"
	IntentFallback             Intent = "fallback"
)

// Variant refines the greeting family without adding intents.
type Variant string

const (
	VariantNone      Variant = ""
	VariantGratitude Variant = "gratitude"
	VariantWellbeing Variant = "wellbeing"
	VariantCasual    Variant = "casual"
	VariantFormal    Variant = "formal"
)

// DueWindow narrows a task listing by due date.
type DueWindow string

const (
	DueAny     DueWindow = ""
	DueToday   DueWindow = "today"
	DueWeek    DueWindow = "week"
	DueOverdue DueWindow = "overdue"
)

// ListFilter is read from list_tasks utterances such as "show overdue high priority tasks".
type ListFilter struct {
	Status      model.TaskStatus
	DueWindow   DueWindow
	Priority    model.Priority
	ProjectName string
}

// Reference is a pick from the options the assistant offered last.
type Reference struct {
	// Index into the offered list; -1 means the last item.
	Index  int
	Name   string
	Action model.MentionAction
	Kind   model.EntityKind
}

// Classification is the outcome of classifying one utterance.
type Classification struct {
	Intent  Intent
	Variant Variant
	// Slots holds creation drafts, or Title as the explicit object of complete/delete.
	Slots         *extractor.SlotSet
	NeedsMoreInfo *extractor.NeedsMoreInfo
	Filter        ListFilter
	SearchTerm    string
	Reference     *Reference
	// Bulk is set when a complete or delete request names a group of items.
	Bulk bool
	// Rule names the table entry that matched.
	Rule string
}

// Target returns the explicit object named in the utterance, if any.
func (c Classification) Target() string {
	if c.Slots == nil {
		return ""
	}
	return c.Slots.Title
}
