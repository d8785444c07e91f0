package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"conversational-task-assistant/internal/chat/repository/memory"
	"conversational-task-assistant/internal/extractor"
	"conversational-task-assistant/internal/model"
	"conversational-task-assistant/internal/router"
	taskRepo "conversational-task-assistant/internal/task/repository"
	"conversational-task-assistant/pkg/datemath"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// testNow is Wednesday 2024-05-01 15:30 UTC.
var testNow = time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

// mockRepo is an in-memory task store. calls counts every method invocation
// and err, when set, is returned by all of them.
type mockRepo struct {
	tasks    []model.Task
	projects []model.Project
	calls    int
	err      error
}

func (m *mockRepo) addTask(title string, mutate ...func(*model.Task)) model.Task {
	t := model.Task{
		ID:        fmt.Sprintf("t%d", len(m.tasks)+1),
		Owner:     "u1",
		Title:     title,
		Status:    model.TaskStatusPending,
		Priority:  model.PriorityMedium,
		CreatedAt: testNow.Add(time.Duration(len(m.tasks)) * time.Minute),
	}
	t.UpdatedAt = t.CreatedAt
	for _, f := range mutate {
		f(&t)
	}
	m.tasks = append(m.tasks, t)
	return t
}

func (m *mockRepo) addProject(name string) model.Project {
	p := model.Project{ID: fmt.Sprintf("p%d", len(m.projects)+1), Owner: "u1", Name: name, CreatedAt: testNow}
	m.projects = append(m.projects, p)
	return p
}

func (m *mockRepo) task(id string) model.Task {
	for _, t := range m.tasks {
		if t.ID == id {
			return t
		}
	}
	return model.Task{}
}

func (m *mockRepo) hasTask(title string) bool {
	for _, t := range m.tasks {
		if t.Title == title {
			return true
		}
	}
	return false
}

func (m *mockRepo) CreateTask(ctx context.Context, opt taskRepo.CreateTaskOptions) (model.Task, error) {
	m.calls++
	if m.err != nil {
		return model.Task{}, m.err
	}
	return m.addTask(opt.Title), nil
}

func (m *mockRepo) GetTask(ctx context.Context, owner, id string) (model.Task, error) {
	m.calls++
	if m.err != nil {
		return model.Task{}, m.err
	}
	for _, t := range m.tasks {
		if t.Owner == owner && t.ID == id {
			return t, nil
		}
	}
	return model.Task{}, taskRepo.ErrNotFound
}

func (m *mockRepo) FindTasksByTitle(ctx context.Context, owner, text string) ([]model.Task, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var names []string
	var owned []model.Task
	for _, t := range m.tasks {
		if t.Owner == owner {
			owned = append(owned, t)
			names = append(names, t.Title)
		}
	}
	var out []model.Task
	for _, i := range taskRepo.MatchNames(text, names) {
		out = append(out, owned[i])
	}
	return out, nil
}

func (m *mockRepo) filter(opt taskRepo.ListTasksOptions) []model.Task {
	var out []model.Task
	for _, t := range m.tasks {
		if t.Owner != opt.Owner {
			continue
		}
		if len(opt.Statuses) > 0 && !containsStatus(opt.Statuses, t.Status) {
			continue
		}
		if opt.ExcludeStatus != "" && t.Status == opt.ExcludeStatus {
			continue
		}
		if opt.ProjectID != "" && t.ProjectID != opt.ProjectID {
			continue
		}
		if opt.Priority != "" && t.Priority != opt.Priority {
			continue
		}
		if opt.DueBefore != nil && (t.DueDate == nil || !t.DueDate.Before(*opt.DueBefore)) {
			continue
		}
		if opt.DueAfter != nil && (t.DueDate == nil || t.DueDate.Before(*opt.DueAfter)) {
			continue
		}
		if opt.Search != "" {
			q := strings.ToLower(opt.Search)
			if !strings.Contains(strings.ToLower(t.Title), q) && !strings.Contains(strings.ToLower(t.Description), q) {
				continue
			}
		}
		out = append(out, t)
	}
	if opt.OrderBy == taskRepo.OrderByUpdatedAt {
		sort.SliceStable(out, func(a, b int) bool { return out[a].UpdatedAt.After(out[b].UpdatedAt) })
	}
	return out
}

func containsStatus(list []model.TaskStatus, s model.TaskStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (m *mockRepo) ListTasks(ctx context.Context, opt taskRepo.ListTasksOptions) ([]model.Task, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := m.filter(opt)
	if opt.Limit > 0 && len(out) > opt.Limit {
		out = out[:opt.Limit]
	}
	return out, nil
}

func (m *mockRepo) CountTasks(ctx context.Context, opt taskRepo.ListTasksOptions) (int, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	return len(m.filter(opt)), nil
}

func (m *mockRepo) SetTaskStatus(ctx context.Context, owner, id string, status model.TaskStatus) (model.Task, error) {
	m.calls++
	if m.err != nil {
		return model.Task{}, m.err
	}
	for i := range m.tasks {
		if m.tasks[i].Owner == owner && m.tasks[i].ID == id {
			m.tasks[i].Status = status
			m.tasks[i].UpdatedAt = testNow
			return m.tasks[i], nil
		}
	}
	return model.Task{}, taskRepo.ErrNotFound
}

func (m *mockRepo) DeleteTask(ctx context.Context, owner, id string) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	for i, t := range m.tasks {
		if t.Owner == owner && t.ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return taskRepo.ErrNotFound
}

func (m *mockRepo) CreateProject(ctx context.Context, opt taskRepo.CreateProjectOptions) (model.Project, error) {
	m.calls++
	if m.err != nil {
		return model.Project{}, m.err
	}
	return m.addProject(opt.Name), nil
}

func (m *mockRepo) FindProjectsByName(ctx context.Context, owner, name string) ([]model.Project, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	names := make([]string, len(m.projects))
	for i, p := range m.projects {
		names[i] = p.Name
	}
	var out []model.Project
	for _, i := range taskRepo.MatchNames(name, names) {
		out = append(out, m.projects[i])
	}
	return out, nil
}

func (m *mockRepo) ListProjects(ctx context.Context, opt taskRepo.ListProjectsOptions) ([]model.Project, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := m.projects
	if opt.Limit > 0 && len(out) > opt.Limit {
		out = out[:opt.Limit]
	}
	return out, nil
}

func (m *mockRepo) CountProjects(ctx context.Context, owner string) (int, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	return len(m.projects), nil
}

func (m *mockRepo) DeleteProject(ctx context.Context, owner, id string) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	for i, p := range m.projects {
		if p.ID == id {
			m.projects = append(m.projects[:i], m.projects[i+1:]...)
			for j := range m.tasks {
				if m.tasks[j].ProjectID == id {
					m.tasks[j].ProjectID = ""
				}
			}
			return nil
		}
	}
	return taskRepo.ErrNotFound
}

type mockFallback struct {
	answer string
	err    error
	got    FallbackRequest
}

func (f *mockFallback) Answer(ctx context.Context, req FallbackRequest) (string, error) {
	f.got = req
	return f.answer, f.err
}

// firstPicker makes canned replies deterministic.
func firstPicker(options []string) string {
	return options[0]
}

func newTestUseCase(t *testing.T, repo *mockRepo, fallback Fallback) *implUseCase {
	t.Helper()
	dates, err := datemath.NewParser("UTC")
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	clock := func() time.Time { return testNow }
	rt := router.New(extractor.New(dates, clock))
	return New(&mockLogger{}, rt, repo, memory.New(10, time.Hour, 20), fallback, Options{
		Dates:  dates,
		Picker: firstPicker,
		Clock:  clock,
	})
}

func due(d time.Time) func(*model.Task) {
	return func(t *model.Task) { t.DueDate = &d }
}

func completed(t *model.Task) {
	t.Status = model.TaskStatusCompleted
}

var scope = model.Scope{UserID: "u1"}
