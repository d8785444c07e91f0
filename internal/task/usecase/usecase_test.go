package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conversational-task-assistant/internal/model"
	"conversational-task-assistant/internal/task"
	"conversational-task-assistant/internal/task/repository"
	"conversational-task-assistant/internal/task/repository/sqlite"
	pkgLog "conversational-task-assistant/pkg/log"
)

var sc = model.Scope{UserID: "u1"}

func newTestUseCase(t *testing.T) *implUseCase {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(pkgLog.NewNop(), sqlite.New(db, pkgLog.NewNop()))
}

// failingRepo fails every call it does not override.
type failingRepo struct {
	repository.Repository
}

func (failingRepo) CountTasks(context.Context, repository.ListTasksOptions) (int, error) {
	return 0, errors.New("disk full")
}

func (failingRepo) CreateTask(context.Context, repository.CreateTaskOptions) (model.Task, error) {
	return model.Task{}, errors.New("disk full")
}

func TestCreateTask(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()

	home, err := uc.CreateProject(ctx, sc, task.CreateProjectInput{Name: "Home"})
	require.NoError(t, err)

	tcs := map[string]struct {
		sc      model.Scope
		input   task.CreateTaskInput
		wantErr error
		check   func(t *testing.T, got model.Task)
	}{
		"defaults": {
			sc:    sc,
			input: task.CreateTaskInput{Title: "  Buy milk "},
			check: func(t *testing.T, got model.Task) {
				assert.Equal(t, "Buy milk", got.Title)
				assert.Equal(t, model.PriorityMedium, got.Priority)
				assert.Equal(t, model.TaskStatusPending, got.Status)
				assert.Empty(t, got.ProjectID)
			},
		},
		"project by name ignores case": {
			sc:    sc,
			input: task.CreateTaskInput{Title: "Fix sink", ProjectName: "home", Priority: model.PriorityHigh},
			check: func(t *testing.T, got model.Task) {
				assert.Equal(t, home.ID, got.ProjectID)
				assert.Equal(t, model.PriorityHigh, got.Priority)
			},
		},
		"project by id": {
			sc:    sc,
			input: task.CreateTaskInput{Title: "Paint fence", ProjectID: home.ID},
			check: func(t *testing.T, got model.Task) {
				assert.Equal(t, home.ID, got.ProjectID)
			},
		},
		"empty title": {
			sc:      sc,
			input:   task.CreateTaskInput{Title: "   "},
			wantErr: task.ErrEmptyTitle,
		},
		"bad priority": {
			sc:      sc,
			input:   task.CreateTaskInput{Title: "x", Priority: "urgent"},
			wantErr: task.ErrInvalidPriority,
		},
		"unknown project": {
			sc:      sc,
			input:   task.CreateTaskInput{Title: "x", ProjectName: "Garden"},
			wantErr: task.ErrProjectNotFound,
		},
		"unknown project id": {
			sc:      sc,
			input:   task.CreateTaskInput{Title: "x", ProjectID: "nope"},
			wantErr: task.ErrProjectNotFound,
		},
		"other user's project": {
			sc:      model.Scope{UserID: "u2"},
			input:   task.CreateTaskInput{Title: "x", ProjectID: home.ID},
			wantErr: task.ErrProjectNotFound,
		},
		"missing user": {
			input:   task.CreateTaskInput{Title: "x"},
			wantErr: task.ErrMissingUser,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			got, err := uc.CreateTask(ctx, tc.sc, tc.input)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			tc.check(t, got)
		})
	}
}

func TestListTasks(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.CreateProject(ctx, sc, task.CreateProjectInput{Name: "Work"})
	require.NoError(t, err)
	for _, in := range []task.CreateTaskInput{
		{Title: "Write report", ProjectName: "Work"},
		{Title: "Review report", ProjectName: "Work"},
		{Title: "Buy milk"},
	} {
		_, err := uc.CreateTask(ctx, sc, in)
		require.NoError(t, err)
	}

	t.Run("all", func(t *testing.T) {
		out, err := uc.ListTasks(ctx, sc, task.ListTasksInput{})
		require.NoError(t, err)
		assert.Equal(t, 3, out.Total)
		assert.Len(t, out.Tasks, 3)
	})

	t.Run("limit keeps total", func(t *testing.T) {
		out, err := uc.ListTasks(ctx, sc, task.ListTasksInput{Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, 3, out.Total)
		assert.Len(t, out.Tasks, 1)
	})

	t.Run("project", func(t *testing.T) {
		out, err := uc.ListTasks(ctx, sc, task.ListTasksInput{ProjectName: "work"})
		require.NoError(t, err)
		assert.Equal(t, 2, out.Total)
	})

	t.Run("search", func(t *testing.T) {
		out, err := uc.ListTasks(ctx, sc, task.ListTasksInput{Search: "REPORT"})
		require.NoError(t, err)
		assert.Equal(t, 2, out.Total)
	})

	t.Run("status", func(t *testing.T) {
		out, err := uc.ListTasks(ctx, sc, task.ListTasksInput{Status: model.TaskStatusCompleted})
		require.NoError(t, err)
		assert.Zero(t, out.Total)
		assert.Empty(t, out.Tasks)
	})

	t.Run("bad status", func(t *testing.T) {
		_, err := uc.ListTasks(ctx, sc, task.ListTasksInput{Status: "archived"})
		require.ErrorIs(t, err, task.ErrInvalidStatus)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := uc.ListTasks(ctx, sc, task.ListTasksInput{ProjectName: "Garden"})
		require.ErrorIs(t, err, task.ErrProjectNotFound)
	})

	t.Run("other user sees nothing", func(t *testing.T) {
		out, err := uc.ListTasks(ctx, model.Scope{UserID: "u2"}, task.ListTasksInput{})
		require.NoError(t, err)
		assert.Zero(t, out.Total)
	})
}

func TestDeleteTask(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, sc, task.CreateTaskInput{Title: "Buy milk"})
	require.NoError(t, err)

	require.ErrorIs(t, uc.DeleteTask(ctx, model.Scope{UserID: "u2"}, created.ID), task.ErrTaskNotFound)
	require.NoError(t, uc.DeleteTask(ctx, sc, created.ID))
	require.ErrorIs(t, uc.DeleteTask(ctx, sc, created.ID), task.ErrTaskNotFound)
}

func TestCreateProject(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()

	p, err := uc.CreateProject(ctx, sc, task.CreateProjectInput{Name: " Home ", Description: "chores"})
	require.NoError(t, err)
	assert.Equal(t, "Home", p.Name)
	assert.Equal(t, "chores", p.Description)

	_, err = uc.CreateProject(ctx, sc, task.CreateProjectInput{Name: "Home"})
	require.ErrorIs(t, err, task.ErrProjectExists)

	_, err = uc.CreateProject(ctx, sc, task.CreateProjectInput{Name: ""})
	require.ErrorIs(t, err, task.ErrEmptyProjectName)

	out, err := uc.ListProjects(ctx, sc, task.ListProjectsInput{})
	require.NoError(t, err)
	require.Len(t, out.Projects, 1)
	assert.Equal(t, p.ID, out.Projects[0].ID)
}

func TestStoreErrorsPropagate(t *testing.T) {
	uc := New(pkgLog.NewNop(), failingRepo{})
	ctx := context.Background()

	_, err := uc.CreateTask(ctx, sc, task.CreateTaskInput{Title: "x"})
	assert.EqualError(t, err, "disk full")

	_, err = uc.ListTasks(ctx, sc, task.ListTasksInput{})
	assert.EqualError(t, err, "disk full")
}
