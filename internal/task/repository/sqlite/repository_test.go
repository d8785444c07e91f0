package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conversational-task-assistant/internal/model"
	"conversational-task-assistant/internal/task/repository"
	pkgLog "conversational-task-assistant/pkg/log"
)

const owner = "u1"

func newTestRepo(t *testing.T) *implRepository {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := New(db, pkgLog.NewNop()).(*implRepository)
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return r
}

func mustCreateTask(t *testing.T, r *implRepository, opt repository.CreateTaskOptions) model.Task {
	t.Helper()
	if opt.Owner == "" {
		opt.Owner = owner
	}
	task, err := r.CreateTask(context.Background(), opt)
	require.NoError(t, err)
	return task
}

func TestCreateAndGetTask(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	due := time.Date(2024, 5, 3, 23, 59, 59, 0, time.UTC)
	created := mustCreateTask(t, r, repository.CreateTaskOptions{
		Title:       "Buy groceries",
		Description: "milk and eggs",
		Priority:    model.PriorityHigh,
		DueDate:     &due,
	})

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.TaskStatusPending, created.Status)
	assert.Equal(t, model.PriorityHigh, created.Priority)
	require.NotNil(t, created.DueDate)
	assert.True(t, created.DueDate.Equal(due))

	got, err := r.GetTask(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = r.GetTask(ctx, "someone-else", created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateTask_DefaultsAndValidation(t *testing.T) {
	r := newTestRepo(t)

	task := mustCreateTask(t, r, repository.CreateTaskOptions{Title: "No priority"})
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.Nil(t, task.DueDate)

	_, err := r.CreateTask(context.Background(), repository.CreateTaskOptions{Title: "orphan"})
	assert.ErrorIs(t, err, repository.ErrInvalidOwner)
}

func TestListAndCountTasks(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	yesterday := time.Date(2024, 4, 30, 23, 59, 59, 0, time.UTC)
	tomorrow := time.Date(2024, 5, 2, 23, 59, 59, 0, time.UTC)

	project, err := r.CreateProject(ctx, repository.CreateProjectOptions{Owner: owner, Name: "Home"})
	require.NoError(t, err)

	rent := mustCreateTask(t, r, repository.CreateTaskOptions{Title: "Pay rent", DueDate: &yesterday, ProjectID: project.ID})
	mustCreateTask(t, r, repository.CreateTaskOptions{Title: "Buy groceries", Description: "Milk", DueDate: &tomorrow, Priority: model.PriorityHigh})
	done := mustCreateTask(t, r, repository.CreateTaskOptions{Title: "File taxes"})
	mustCreateTask(t, r, repository.CreateTaskOptions{Owner: "u2", Title: "Not mine"})

	_, err = r.SetTaskStatus(ctx, owner, done.ID, model.TaskStatusCompleted)
	require.NoError(t, err)

	all, err := r.ListTasks(ctx, repository.ListTasksOptions{Owner: owner})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Home", all[0].ProjectName)

	open, err := r.ListTasks(ctx, repository.ListTasksOptions{Owner: owner, ExcludeStatus: model.TaskStatusCompleted})
	require.NoError(t, err)
	assert.Len(t, open, 2)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	overdue, err := r.ListTasks(ctx, repository.ListTasksOptions{Owner: owner, DueBefore: &now, ExcludeStatus: model.TaskStatusCompleted})
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, rent.ID, overdue[0].ID)

	search, err := r.ListTasks(ctx, repository.ListTasksOptions{Owner: owner, Search: "MILK"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "Buy groceries", search[0].Title)

	byDue, err := r.ListTasks(ctx, repository.ListTasksOptions{Owner: owner, OrderBy: repository.OrderByDueDate, Limit: 2})
	require.NoError(t, err)
	require.Len(t, byDue, 2)
	assert.Equal(t, "Pay rent", byDue[0].Title)
	assert.Equal(t, "Buy groceries", byDue[1].Title)

	n, err := r.CountTasks(ctx, repository.ListTasksOptions{Owner: owner, Statuses: []model.TaskStatus{model.TaskStatusCompleted}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = r.CountTasks(ctx, repository.ListTasksOptions{Owner: owner, Priority: model.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = r.CountTasks(ctx, repository.ListTasksOptions{Owner: owner, ProjectID: project.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSearchEscapesWildcards(t *testing.T) {
	r := newTestRepo(t)
	mustCreateTask(t, r, repository.CreateTaskOptions{Title: "100% done"})
	mustCreateTask(t, r, repository.CreateTaskOptions{Title: "1000 words"})

	got, err := r.ListTasks(context.Background(), repository.ListTasksOptions{Owner: owner, Search: "100%"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "100% done", got[0].Title)
}

func TestSetTaskStatus(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	task := mustCreateTask(t, r, repository.CreateTaskOptions{Title: "Walk dog"})

	updated, err := r.SetTaskStatus(ctx, owner, task.ID, model.TaskStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
	assert.True(t, updated.UpdatedAt.After(task.UpdatedAt))

	reopened, err := r.SetTaskStatus(ctx, owner, task.ID, model.TaskStatusPending)
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)

	_, err = r.SetTaskStatus(ctx, owner, "missing", model.TaskStatusCompleted)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteTask(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	task := mustCreateTask(t, r, repository.CreateTaskOptions{Title: "Walk dog"})

	require.NoError(t, r.DeleteTask(ctx, owner, task.ID))
	assert.ErrorIs(t, r.DeleteTask(ctx, owner, task.ID), repository.ErrNotFound)
}

func TestFindTasksByTitle(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	mustCreateTask(t, r, repository.CreateTaskOptions{Title: "Buy groceries"})
	mustCreateTask(t, r, repository.CreateTaskOptions{Title: "Buy gifts"})
	mustCreateTask(t, r, repository.CreateTaskOptions{Title: "Pay rent"})

	exact, err := r.FindTasksByTitle(ctx, owner, "buy groceries")
	require.NoError(t, err)
	require.Len(t, exact, 1)
	assert.Equal(t, "Buy groceries", exact[0].Title)

	partial, err := r.FindTasksByTitle(ctx, owner, "buy")
	require.NoError(t, err)
	assert.Len(t, partial, 2)

	typo, err := r.FindTasksByTitle(ctx, owner, "pay rnet")
	require.NoError(t, err)
	require.Len(t, typo, 1)
	assert.Equal(t, "Pay rent", typo[0].Title)

	none, err := r.FindTasksByTitle(ctx, "u2", "buy groceries")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProjects(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	home, err := r.CreateProject(ctx, repository.CreateProjectOptions{Owner: owner, Name: "Home"})
	require.NoError(t, err)
	_, err = r.CreateProject(ctx, repository.CreateProjectOptions{Owner: owner, Name: "Work"})
	require.NoError(t, err)

	_, err = r.CreateProject(ctx, repository.CreateProjectOptions{Owner: owner, Name: "home"})
	assert.ErrorIs(t, err, repository.ErrDuplicateProject)

	n, err := r.CountProjects(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	found, err := r.FindProjectsByName(ctx, owner, "wrk")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Work", found[0].Name)

	task := mustCreateTask(t, r, repository.CreateTaskOptions{Title: "Fix sink", ProjectID: home.ID})

	require.NoError(t, r.DeleteProject(ctx, owner, home.ID))
	assert.ErrorIs(t, r.DeleteProject(ctx, owner, home.ID), repository.ErrNotFound)

	detached, err := r.GetTask(ctx, owner, task.ID)
	require.NoError(t, err)
	assert.Empty(t, detached.ProjectID)
	assert.Empty(t, detached.ProjectName)

	projects, err := r.ListProjects(ctx, repository.ListProjectsOptions{Owner: owner})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Work", projects[0].Name)
}
