package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"conversational-task-assistant/internal/extractor"
	"conversational-task-assistant/internal/model"
	"conversational-task-assistant/internal/reference"
	"conversational-task-assistant/internal/router"
)

func classify(intent router.Intent, target string) router.Classification {
	c := router.Classification{Intent: intent}
	if target != "" {
		c.Slots = &extractor.SlotSet{Title: target}
	}
	return c
}

func TestDispatch_EntityPolicy(t *testing.T) {
	tests := []struct {
		name      string
		seed      func(r *mockRepo)
		c         router.Classification
		info      reference.ContextInfo
		wantOK    bool
		wantMsg   string
		wantDone  []string
		wantGone  []string
		wantAsked int
	}{
		{
			name:      "two open tasks prompt",
			seed:      func(r *mockRepo) { r.addTask("Buy groceries"); r.addTask("Pay rent") },
			c:         classify(router.IntentCompleteTask, ""),
			wantMsg:   "Which task would you like to mark as complete?",
			wantAsked: 2,
		},
		{
			name:     "one open task acts",
			seed:     func(r *mockRepo) { r.addTask("Buy groceries"); r.addTask("Old", completed) },
			c:        classify(router.IntentCompleteTask, ""),
			wantOK:   true,
			wantDone: []string{"Buy groceries"},
		},
		{
			name:     "one task deleted directly",
			seed:     func(r *mockRepo) { r.addTask("Buy groceries") },
			c:        classify(router.IntentDeleteTask, ""),
			wantOK:   true,
			wantGone: []string{"Buy groceries"},
		},
		{
			name:    "nothing to complete",
			seed:    func(r *mockRepo) { r.addTask("Old", completed) },
			c:       classify(router.IntentCompleteTask, ""),
			wantMsg: "You don't have any open tasks",
		},
		{
			name:     "single context candidate",
			seed:     func(r *mockRepo) { r.addTask("Buy groceries"); r.addTask("Pay rent"); r.addTask("Call mom") },
			c:        classify(router.IntentCompleteTask, ""),
			info:     reference.ContextInfo{ReferencingPrevious: true, ReferencedTasks: []string{"Pay rent"}},
			wantOK:   true,
			wantDone: []string{"Pay rent"},
		},
		{
			name:      "several context candidates prompt",
			seed:      func(r *mockRepo) { r.addTask("Buy groceries"); r.addTask("Pay rent") },
			c:         classify(router.IntentDeleteTask, ""),
			info:      reference.ContextInfo{ReferencingPrevious: true, ReferencedTasks: []string{"Buy groceries", "Pay rent"}},
			wantMsg:   "Which task would you like to delete?",
			wantAsked: 2,
		},
		{
			name:     "explicit target",
			seed:     func(r *mockRepo) { r.addTask("Buy groceries"); r.addTask("Pay rent") },
			c:        classify(router.IntentDeleteTask, "pay rent"),
			wantOK:   true,
			wantGone: []string{"Pay rent"},
		},
		{
			name:     "explicit target with a typo",
			seed:     func(r *mockRepo) { r.addTask("Buy groceries"); r.addTask("Pay rent") },
			c:        classify(router.IntentCompleteTask, "Buy grocries"),
			wantOK:   true,
			wantDone: []string{"Buy groceries"},
		},
		{
			name:    "explicit target missing",
			seed:    func(r *mockRepo) { r.addTask("Buy groceries") },
			c:       classify(router.IntentDeleteTask, "Walk the dog"),
			wantMsg: `I couldn't find a task matching "Walk the dog".`,
		},
		{
			name:      "explicit target ambiguous",
			seed:      func(r *mockRepo) { r.addTask("Write report draft"); r.addTask("Write report final") },
			c:         classify(router.IntentCompleteTask, "report"),
			wantMsg:   "Which task would you like to mark as complete?",
			wantAsked: 2,
		},
		{
			name:     "explicit target prefers the open duplicate",
			seed:     func(r *mockRepo) { r.addTask("Water plants", completed); r.addTask("Water plants") },
			c:        classify(router.IntentCompleteTask, "Water plants"),
			wantOK:   true,
			wantDone: []string{"Water plants"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRepo{}
			tc.seed(repo)
			before := len(repo.tasks)
			wasCompleted := map[string]bool{}
			for _, task := range repo.tasks {
				wasCompleted[task.ID] = task.IsCompleted()
			}
			uc := newTestUseCase(t, repo, nil)

			res := uc.Dispatch(context.Background(), scope, tc.c, tc.info)

			if res.Success != tc.wantOK {
				t.Fatalf("success = %v, want %v: %s", res.Success, tc.wantOK, res.Message)
			}
			if tc.wantMsg != "" && !strings.HasPrefix(res.Message, tc.wantMsg) {
				t.Errorf("message = %q, want prefix %q", res.Message, tc.wantMsg)
			}
			if tc.wantAsked > 0 {
				if res.Mentions == nil || !res.Mentions.Prompt || len(res.Mentions.Tasks) != tc.wantAsked {
					t.Fatalf("mentions = %+v, want a prompt with %d tasks", res.Mentions, tc.wantAsked)
				}
				if len(repo.tasks) != before {
					t.Error("a prompt must not delete anything")
				}
			}

			var done []string
			for _, task := range repo.tasks {
				if task.IsCompleted() && !wasCompleted[task.ID] {
					done = append(done, task.Title)
				}
			}
			if fmt.Sprint(done) != fmt.Sprint(tc.wantDone) {
				t.Errorf("completed = %v, want %v", done, tc.wantDone)
			}
			for _, title := range tc.wantGone {
				if repo.hasTask(title) {
					t.Errorf("%q should have been deleted", title)
				}
			}
		})
	}
}

func TestDispatch_PromptIsCapped(t *testing.T) {
	repo := &mockRepo{}
	for i := 1; i <= 9; i++ {
		repo.addTask(fmt.Sprintf("Task %d", i))
	}
	uc := newTestUseCase(t, repo, nil)

	res := uc.Dispatch(context.Background(), scope, classify(router.IntentDeleteTask, ""), reference.ContextInfo{})

	if !strings.HasSuffix(res.Message, "(showing 7 of 9)") {
		t.Errorf("message = %q", res.Message)
	}
	if got := len(res.Mentions.Tasks); got != 7 {
		t.Errorf("offered %d tasks, want 7", got)
	}
	for _, w := range []string{"mark", "complete", "done", "finish"} {
		if strings.Contains(strings.ToLower(res.Message), w) {
			t.Errorf("delete prompt contains %q", w)
		}
	}
}

func TestDispatch_StoreFailure(t *testing.T) {
	intents := []router.Intent{
		router.IntentCompleteTask,
		router.IntentDeleteTask,
		router.IntentDeleteProject,
		router.IntentCompleteAllOverdue,
		router.IntentStatsGeneral,
		router.IntentStatsTask,
		router.IntentStatsProject,
		router.IntentListTasks,
		router.IntentListProjects,
		router.IntentDashboard,
		router.IntentInventory,
	}
	repo := &mockRepo{err: errors.New("database is locked")}
	uc := newTestUseCase(t, repo, nil)

	for _, intent := range intents {
		t.Run(string(intent), func(t *testing.T) {
			res := uc.Dispatch(context.Background(), scope, classify(intent, ""), reference.ContextInfo{})
			if res.Success {
				t.Fatal("expected failure")
			}
			if !strings.HasPrefix(res.Message, "Sorry") || !strings.Contains(res.Message, "database is locked") {
				t.Errorf("message = %q", res.Message)
			}
		})
	}
}

func TestDispatch_GreetingSurvivesStoreFailure(t *testing.T) {
	repo := &mockRepo{err: errors.New("down")}
	uc := newTestUseCase(t, repo, nil)

	res := uc.Dispatch(context.Background(), scope, router.Classification{Intent: router.IntentGreeting, Variant: router.VariantCasual}, reference.ContextInfo{})
	if !res.Success || res.Message != casualGreetings[0] {
		t.Errorf("got %v %q", res.Success, res.Message)
	}
}

func TestDispatch_GreetingSummary(t *testing.T) {
	repo := &mockRepo{}
	today := time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC)
	repo.addTask("Buy groceries", due(today))
	repo.addTask("Pay rent", due(today.AddDate(0, 0, 3)))
	repo.addTask("Old", completed)
	uc := newTestUseCase(t, repo, nil)

	res := uc.Dispatch(context.Background(), scope, router.Classification{Intent: router.IntentGreeting, Variant: router.VariantFormal}, reference.ContextInfo{})
	want := formalGreetings[0] + " You have 2 pending tasks, 1 due today."
	if res.Message != want {
		t.Errorf("message = %q, want %q", res.Message, want)
	}
}

func TestDispatch_CompleteAllOverdue(t *testing.T) {
	repo := &mockRepo{}
	yesterday := time.Date(2024, 4, 30, 23, 59, 59, 0, time.UTC)
	repo.addTask("Late one", due(yesterday))
	repo.addTask("Late two", due(yesterday.AddDate(0, 0, -3)))
	repo.addTask("Later", due(yesterday.AddDate(0, 0, 5)))
	repo.addTask("Already done", due(yesterday), completed)
	uc := newTestUseCase(t, repo, nil)

	res := uc.Dispatch(context.Background(), scope, classify(router.IntentCompleteAllOverdue, ""), reference.ContextInfo{})

	if !res.Success || !strings.HasPrefix(res.Message, "✅ Marked 2 overdue tasks as complete") {
		t.Fatalf("got %v %q", res.Success, res.Message)
	}
	if got := res.Data.(map[string]int)["completed"]; got != 2 {
		t.Errorf("completed = %d, want 2", got)
	}
	for _, task := range repo.tasks {
		if task.Title == "Later" && task.IsCompleted() {
			t.Error("future task must stay open")
		}
	}

	res = uc.Dispatch(context.Background(), scope, classify(router.IntentCompleteAllOverdue, ""), reference.ContextInfo{})
	if !strings.HasPrefix(res.Message, "You have no overdue tasks") {
		t.Errorf("second run message = %q", res.Message)
	}
}

func TestDispatch_DeleteProject(t *testing.T) {
	repo := &mockRepo{}
	apollo := repo.addProject("Apollo")
	repo.addProject("Home")
	inProject := func(task *model.Task) { task.ProjectID = apollo.ID }
	repo.addTask("Launch", inProject)
	repo.addTask("Land", inProject)
	uc := newTestUseCase(t, repo, nil)

	res := uc.Dispatch(context.Background(), scope, classify(router.IntentDeleteProject, "apollo"), reference.ContextInfo{})

	want := `🗑️ Deleted project "Apollo". Its 2 tasks are no longer in a project.`
	if !res.Success || res.Message != want {
		t.Fatalf("got %v %q", res.Success, res.Message)
	}
	for _, task := range repo.tasks {
		if task.ProjectID != "" {
			t.Errorf("task %q still attached", task.Title)
		}
	}

	// Only Home is left, so a bare delete acts on it.
	res = uc.Dispatch(context.Background(), scope, classify(router.IntentDeleteProject, ""), reference.ContextInfo{})
	if !res.Success || len(repo.projects) != 0 {
		t.Errorf("got %v %q, %d projects left", res.Success, res.Message, len(repo.projects))
	}
}

func TestDispatch_DeleteProjectPrompt(t *testing.T) {
	repo := &mockRepo{}
	repo.addProject("Apollo")
	repo.addProject("Home")
	uc := newTestUseCase(t, repo, nil)

	res := uc.Dispatch(context.Background(), scope, classify(router.IntentDeleteProject, ""), reference.ContextInfo{})

	if res.Success || res.Mentions == nil || !res.Mentions.Prompt || res.Mentions.Kind != model.EntityProject {
		t.Fatalf("expected a project prompt, got %+v", res)
	}
	if len(repo.projects) != 2 {
		t.Error("nothing should be deleted")
	}
}

func TestDispatch_BulkRequestsAreRefused(t *testing.T) {
	tests := []struct {
		intent router.Intent
		want   string
	}{
		{router.IntentCompleteTask, msgBulkComplete},
		{router.IntentDeleteTask, msgBulkDeleteTask},
		{router.IntentDeleteProject, msgBulkDeleteProject},
	}

	for _, tc := range tests {
		t.Run(string(tc.intent), func(t *testing.T) {
			repo := &mockRepo{}
			repo.addTask("Buy groceries")
			repo.addProject("Apollo")
			uc := newTestUseCase(t, repo, nil)

			res := uc.Dispatch(context.Background(), scope, router.Classification{Intent: tc.intent, Bulk: true}, reference.ContextInfo{})

			if res.Success || res.Message != tc.want {
				t.Fatalf("got success %v message %q, want %q", res.Success, res.Message, tc.want)
			}
			if repo.calls != 0 {
				t.Errorf("store was called %d times", repo.calls)
			}
		})
	}
}

func TestDispatch_ListTasks(t *testing.T) {
	today := time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name   string
		filter router.ListFilter
		want   []string
		label  string
	}{
		{name: "open by default", want: []string{"Due today", "Due friday", "Overdue", "Someday"}, label: "📋 Your open tasks (4):"},
		{name: "completed", filter: router.ListFilter{Status: model.TaskStatusCompleted}, want: []string{"Finished"}},
		{name: "today", filter: router.ListFilter{DueWindow: router.DueToday}, want: []string{"Due today"}, label: "📋 Your open tasks due today (1):"},
		{name: "week", filter: router.ListFilter{DueWindow: router.DueWeek}, want: []string{"Due today", "Due friday"}},
		{name: "overdue", filter: router.ListFilter{DueWindow: router.DueOverdue}, want: []string{"Overdue"}, label: "📋 Your overdue tasks (1):"},
		{name: "priority", filter: router.ListFilter{Priority: model.PriorityHigh}, want: []string{"Due friday"}},
		{name: "project", filter: router.ListFilter{ProjectName: "home"}, want: []string{"Someday"}, label: "📋 Your open tasks in Home (1):"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRepo{}
			home := repo.addProject("Home")
			repo.addTask("Due today", due(today))
			repo.addTask("Due friday", due(today.AddDate(0, 0, 2)), func(task *model.Task) { task.Priority = model.PriorityHigh })
			repo.addTask("Overdue", due(today.AddDate(0, 0, -2)))
			repo.addTask("Someday", func(task *model.Task) { task.ProjectID = home.ID })
			repo.addTask("Finished", completed)
			uc := newTestUseCase(t, repo, nil)

			res := uc.Dispatch(context.Background(), scope, router.Classification{Intent: router.IntentListTasks, Filter: tc.filter}, reference.ContextInfo{})

			if !res.Success {
				t.Fatalf("failed: %s", res.Message)
			}
			listing := res.Data.(TaskListing)
			var got []string
			for _, item := range listing.Items {
				got = append(got, item.Title)
			}
			if fmt.Sprint(got) != fmt.Sprint(tc.want) {
				t.Errorf("items = %v, want %v", got, tc.want)
			}
			if tc.label != "" && !strings.HasPrefix(res.Message, tc.label) {
				t.Errorf("message = %q, want prefix %q", res.Message, tc.label)
			}
			if fmt.Sprint(res.Mentions.Tasks) != fmt.Sprint(tc.want) {
				t.Errorf("mentions = %v", res.Mentions.Tasks)
			}
		})
	}
}

func TestDispatch_ListTasksUnknownProject(t *testing.T) {
	uc := newTestUseCase(t, &mockRepo{}, nil)
	res := uc.Dispatch(context.Background(), scope, router.Classification{Intent: router.IntentListTasks, Filter: router.ListFilter{ProjectName: "Mars"}}, reference.ContextInfo{})
	if res.Success || res.Message != `I couldn't find a project matching "Mars".` {
		t.Errorf("got %v %q", res.Success, res.Message)
	}
}

func TestDispatch_Search(t *testing.T) {
	repo := &mockRepo{}
	repo.addTask("Quarterly report")
	repo.addTask("Email Bob", func(task *model.Task) { task.Description = "about the REPORT numbers" })
	repo.addTask("Buy groceries")
	uc := newTestUseCase(t, repo, nil)

	res := uc.Dispatch(context.Background(), scope, router.Classification{Intent: router.IntentSearchTasks, SearchTerm: "report"}, reference.ContextInfo{})
	if !strings.HasPrefix(res.Message, `🔍 Found 2 tasks matching "report":`) {
		t.Errorf("message = %q", res.Message)
	}

	res = uc.Dispatch(context.Background(), scope, router.Classification{Intent: router.IntentSearchTasks, SearchTerm: "zebra"}, reference.ContextInfo{})
	if res.Message != `No tasks match "zebra".` {
		t.Errorf("message = %q", res.Message)
	}
}

func TestDispatch_Stats(t *testing.T) {
	repo := &mockRepo{}
	apollo := repo.addProject("Apollo")
	repo.addTask("A", completed, func(task *model.Task) { task.ProjectID = apollo.ID })
	repo.addTask("B", func(task *model.Task) { task.ProjectID = apollo.ID; task.Priority = model.PriorityHigh })
	repo.addTask("C", due(time.Date(2024, 4, 20, 23, 59, 59, 0, time.UTC)))
	repo.addTask("D", func(task *model.Task) { task.Status = model.TaskStatusInProgress })
	uc := newTestUseCase(t, repo, nil)
	ctx := context.Background()

	general := uc.Dispatch(ctx, scope, classify(router.IntentStatsGeneral, ""), reference.ContextInfo{}).Data.(GeneralStats)
	wantGeneral := GeneralStats{TotalTasks: 4, PendingTasks: 2, InProgress: 1, CompletedTasks: 1, OverdueTasks: 1, TotalProjects: 1, CompletionRate: 25}
	if general != wantGeneral {
		t.Errorf("general = %+v, want %+v", general, wantGeneral)
	}

	tasks := uc.Dispatch(ctx, scope, classify(router.IntentStatsTask, ""), reference.ContextInfo{}).Data.(TaskStats)
	if tasks.ByPriority[model.PriorityHigh] != 1 || tasks.ByStatus[model.TaskStatusInProgress] != 1 || tasks.Overdue != 1 {
		t.Errorf("tasks = %+v", tasks)
	}

	projects := uc.Dispatch(ctx, scope, classify(router.IntentStatsProject, ""), reference.ContextInfo{}).Data.(ProjectStats)
	if projects.Unassigned != 2 || len(projects.Projects) != 1 || projects.Projects[0] != (ProjectTally{Name: "Apollo", Total: 2, Completed: 1}) {
		t.Errorf("projects = %+v", projects)
	}
}

func TestDispatch_ThisReference(t *testing.T) {
	ctx := context.Background()

	t.Run("no open prompt", func(t *testing.T) {
		uc := newTestUseCase(t, &mockRepo{}, nil)
		res := uc.Dispatch(ctx, scope, router.Classification{Intent: router.IntentThisReference}, reference.ContextInfo{})
		if res.Success || res.Message != msgNotSureWhich {
			t.Errorf("got %v %q", res.Success, res.Message)
		}
	})

	t.Run("view shows detail", func(t *testing.T) {
		repo := &mockRepo{}
		repo.addTask("Pay rent", due(time.Date(2024, 5, 3, 23, 59, 59, 0, time.UTC)), func(task *model.Task) { task.Description = "Landlord account" })
		uc := newTestUseCase(t, repo, nil)
		ref := &router.Reference{Name: "Pay rent", Action: model.MentionActionView, Kind: model.EntityTask}
		res := uc.Dispatch(ctx, scope, router.Classification{Intent: router.IntentThisReference, Reference: ref}, reference.ContextInfo{})
		for _, want := range []string{"📌 Pay rent", "Due: Fri, May 3", "Landlord account"} {
			if !strings.Contains(res.Message, want) {
				t.Errorf("detail missing %q:\n%s", want, res.Message)
			}
		}
		if repo.tasks[0].IsCompleted() {
			t.Error("viewing must not change the task")
		}
	})

	t.Run("complete", func(t *testing.T) {
		repo := &mockRepo{}
		repo.addTask("Buy groceries")
		repo.addTask("Pay rent")
		uc := newTestUseCase(t, repo, nil)
		ref := &router.Reference{Name: "Pay rent", Action: model.MentionActionComplete, Kind: model.EntityTask}
		res := uc.Dispatch(ctx, scope, router.Classification{Intent: router.IntentThisReference, Reference: ref}, reference.ContextInfo{})
		if !res.Success || !repo.tasks[1].IsCompleted() || repo.tasks[0].IsCompleted() {
			t.Errorf("got %q", res.Message)
		}
	})
}
