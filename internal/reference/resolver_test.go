package reference

import (
	"reflect"
	"testing"

	"conversational-task-assistant/internal/model"
)

func user(text string) model.Turn {
	return model.Turn{Role: model.RoleUser, Text: text}
}

func assistant(text string) model.Turn {
	return model.Turn{Role: model.RoleAssistant, Text: text}
}

func TestResolve_ActionContext(t *testing.T) {
	tests := map[string]model.MentionAction{
		"mark it as done":           model.MentionActionComplete,
		"I finished that":           model.MentionActionComplete,
		"remove this one":           model.MentionActionDelete,
		"Delete it":                 model.MentionActionDelete,
		"complete and delete it":    model.MentionActionComplete,
		"show me my tasks":          model.MentionActionNone,
		"what's due on the weekend": model.MentionActionNone,
	}
	for in, want := range tests {
		if got := Resolve(nil, in).ActionContext; got != want {
			t.Errorf("Resolve(%q).ActionContext = %q, want %q", in, got, want)
		}
	}
}

func TestResolve_NotReferencing(t *testing.T) {
	window := []model.Turn{
		user("show tasks"),
		assistant("Here are your tasks:\n• Buy groceries\n• Pay rent"),
	}
	info := Resolve(window, "hello")
	if info.ReferencingPrevious {
		t.Fatalf("expected no reference")
	}
	if len(info.ReferencedTasks) != 0 || len(info.ReferencedProjects) != 0 {
		t.Errorf("expected no candidates, got %v %v", info.ReferencedTasks, info.ReferencedProjects)
	}
}

func TestResolve_AccumulatesAcrossTurns(t *testing.T) {
	window := []model.Turn{
		user("show tasks"),
		assistant("Here are your tasks:\n• Buy groceries (due tomorrow)\n• Pay rent - Status: pending"),
		user("what about task \"Walk dog\""),
		assistant("Task \"Walk dog\" is due Friday. It belongs to project \"Home\"."),
	}

	info := Resolve(window, "mark it done")
	if !info.ReferencingPrevious {
		t.Fatalf("expected referencing")
	}
	wantTasks := []string{"Walk dog", "Buy groceries", "Pay rent"}
	if !reflect.DeepEqual(info.ReferencedTasks, wantTasks) {
		t.Errorf("tasks = %v, want %v", info.ReferencedTasks, wantTasks)
	}
	if !reflect.DeepEqual(info.ReferencedProjects, []string{"Home"}) {
		t.Errorf("projects = %v", info.ReferencedProjects)
	}
}

func TestResolve_IgnoresUserTurns(t *testing.T) {
	window := []model.Turn{
		user("• Fake task\n• Another"),
		assistant("Sure."),
	}
	info := Resolve(window, "delete it")
	if len(info.ReferencedTasks) != 0 {
		t.Errorf("user bullets leaked into candidates: %v", info.ReferencedTasks)
	}
}

func TestResolve_StructuredMentionsWin(t *testing.T) {
	window := []model.Turn{
		{
			Role: model.RoleAssistant,
			Text: "• Something rendered differently",
			Mentions: &model.Mentions{
				Kind:     model.EntityProject,
				Projects: []string{"Apollo"},
			},
		},
	}
	info := Resolve(window, "delete that project")
	if len(info.ReferencedTasks) != 0 {
		t.Errorf("tasks = %v, want none", info.ReferencedTasks)
	}
	if !reflect.DeepEqual(info.ReferencedProjects, []string{"Apollo"}) {
		t.Errorf("projects = %v", info.ReferencedProjects)
	}
}

func TestResolve_PendingPromptFromText(t *testing.T) {
	window := []model.Turn{
		user("delete task"),
		assistant("You have 2 tasks. Which task would you like to delete?\n• Buy groceries\n• Pay rent"),
	}

	info := Resolve(window, "this task")
	p := info.PendingPrompt
	if p == nil {
		t.Fatalf("expected a pending prompt")
	}
	if p.Action != model.MentionActionDelete {
		t.Errorf("action = %q, want delete", p.Action)
	}
	if p.Kind != model.EntityTask {
		t.Errorf("kind = %q", p.Kind)
	}
	if !reflect.DeepEqual(p.Candidates, []string{"Buy groceries", "Pay rent"}) {
		t.Errorf("candidates = %v", p.Candidates)
	}
}

func TestResolve_PendingPromptActions(t *testing.T) {
	tests := []struct {
		text string
		want model.MentionAction
		kind model.EntityKind
	}{
		{"Which task should I mark as complete?\n- A\n- B", model.MentionActionComplete, model.EntityTask},
		{"Which project do you want to remove?\n1. Alpha\n2. Beta", model.MentionActionDelete, model.EntityProject},
		{"Which one did you mean?\n* A\n* B", model.MentionActionView, model.EntityTask},
	}
	for _, tc := range tests {
		info := Resolve([]model.Turn{assistant(tc.text)}, "that one")
		if info.PendingPrompt == nil {
			t.Fatalf("no prompt for %q", tc.text)
		}
		if info.PendingPrompt.Action != tc.want || info.PendingPrompt.Kind != tc.kind {
			t.Errorf("prompt for %q = %+v", tc.text, info.PendingPrompt)
		}
	}
}

func TestResolve_PendingPromptOnlyLatestTurn(t *testing.T) {
	window := []model.Turn{
		assistant("Which task would you like to delete?\n• Buy groceries\n• Pay rent"),
		user("never mind"),
		assistant("No problem."),
	}
	if p := Resolve(window, "this one").PendingPrompt; p != nil {
		t.Errorf("stale prompt resolved: %+v", p)
	}
}

func TestResolve_PendingPromptStructured(t *testing.T) {
	window := []model.Turn{{
		Role: model.RoleAssistant,
		Text: "Which one?",
		Mentions: &model.Mentions{
			Action: model.MentionActionComplete,
			Kind:   model.EntityTask,
			Tasks:  []string{"Buy groceries", "Pay rent"},
			Prompt: true,
		},
	}}
	p := Resolve(window, "the second one").PendingPrompt
	if p == nil || p.Action != model.MentionActionComplete || len(p.Candidates) != 2 {
		t.Errorf("prompt = %+v", p)
	}
}
