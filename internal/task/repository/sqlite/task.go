package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"conversational-task-assistant/internal/model"
	"conversational-task-assistant/internal/task/repository"
)

const taskSelect = `SELECT t.id, t.owner, t.title, t.description, t.status, t.priority, t.due_date,
       t.project_id, COALESCE(p.name, ''), t.created_at, t.updated_at, t.completed_at
  FROM tasks t
  LEFT JOIN projects p ON p.id = t.project_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (model.Task, error) {
	var t model.Task
	var due, projectID, completed sql.NullString
	var created, updated string

	err := row.Scan(&t.ID, &t.Owner, &t.Title, &t.Description, &t.Status, &t.Priority, &due,
		&projectID, &t.ProjectName, &created, &updated, &completed)
	if err != nil {
		return t, err
	}

	t.DueDate = parseNullTime(due)
	t.ProjectID = projectID.String
	t.CreatedAt = parseTime(created)
	t.UpdatedAt = parseTime(updated)
	t.CompletedAt = parseNullTime(completed)
	return t, nil
}

func (r *implRepository) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	if opt.Owner == "" {
		return model.Task{}, repository.ErrInvalidOwner
	}
	priority := opt.Priority
	if !priority.Valid() {
		priority = model.PriorityMedium
	}

	id := uuid.NewString()
	now := formatTime(r.now())
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, owner, title, description, status, priority, due_date, project_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, opt.Owner, opt.Title, opt.Description, model.TaskStatusPending, priority,
		nullTime(opt.DueDate), nullString(opt.ProjectID), now, now)
	if err != nil {
		r.l.Errorf(ctx, "sqlite repository: failed to insert task: %v", err)
		return model.Task{}, fmt.Errorf("%w: %v", repository.ErrFailedToInsert, err)
	}

	return r.GetTask(ctx, opt.Owner, id)
}

func (r *implRepository) GetTask(ctx context.Context, owner, id string) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, taskSelect+` WHERE t.owner = ? AND t.id = ?`, owner, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, repository.ErrNotFound
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("query task: %w", err)
	}
	return t, nil
}

func (r *implRepository) FindTasksByTitle(ctx context.Context, owner, text string) ([]model.Task, error) {
	all, err := r.ListTasks(ctx, repository.ListTasksOptions{Owner: owner})
	if err != nil {
		return nil, err
	}

	titles := make([]string, len(all))
	for i, t := range all {
		titles[i] = t.Title
	}

	var out []model.Task
	for _, i := range repository.MatchNames(text, titles) {
		out = append(out, all[i])
	}
	return out, nil
}

func (r *implRepository) ListTasks(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, error) {
	where, args := buildTaskFilter(opt)
	query := taskSelect + where + ` ORDER BY ` + taskOrder(opt.OrderBy)
	if opt.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opt.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *implRepository) CountTasks(ctx context.Context, opt repository.ListTasksOptions) (int, error) {
	where, args := buildTaskFilter(opt)
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks t`+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

func (r *implRepository) SetTaskStatus(ctx context.Context, owner, id string, status model.TaskStatus) (model.Task, error) {
	now := r.now()
	var completedAt *string
	if status == model.TaskStatusCompleted {
		s := formatTime(now)
		completedAt = &s
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status = ?, updated_at = ?, completed_at = ? WHERE owner = ? AND id = ?`,
		status, formatTime(now), completedAt, owner, id)
	if err != nil {
		r.l.Errorf(ctx, "sqlite repository: failed to update task %s: %v", id, err)
		return model.Task{}, fmt.Errorf("%w: %v", repository.ErrFailedToUpdate, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Task{}, repository.ErrNotFound
	}
	return r.GetTask(ctx, owner, id)
}

func (r *implRepository) DeleteTask(ctx context.Context, owner, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE owner = ? AND id = ?`, owner, id)
	if err != nil {
		r.l.Errorf(ctx, "sqlite repository: failed to delete task %s: %v", id, err)
		return fmt.Errorf("%w: %v", repository.ErrFailedToDelete, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func buildTaskFilter(opt repository.ListTasksOptions) (string, []any) {
	conds := []string{"t.owner = ?"}
	args := []any{opt.Owner}

	if len(opt.Statuses) > 0 {
		marks := make([]string, len(opt.Statuses))
		for i, s := range opt.Statuses {
			marks[i] = "?"
			args = append(args, s)
		}
		conds = append(conds, "t.status IN ("+strings.Join(marks, ", ")+")")
	}
	if opt.ExcludeStatus != "" {
		conds = append(conds, "t.status <> ?")
		args = append(args, opt.ExcludeStatus)
	}
	if opt.ProjectID != "" {
		conds = append(conds, "t.project_id = ?")
		args = append(args, opt.ProjectID)
	}
	if opt.Priority != "" {
		conds = append(conds, "t.priority = ?")
		args = append(args, opt.Priority)
	}
	if opt.DueBefore != nil {
		conds = append(conds, "t.due_date IS NOT NULL AND t.due_date < ?")
		args = append(args, formatTime(*opt.DueBefore))
	}
	if opt.DueAfter != nil {
		conds = append(conds, "t.due_date IS NOT NULL AND t.due_date >= ?")
		args = append(args, formatTime(*opt.DueAfter))
	}
	if opt.Search != "" {
		p := likePattern(opt.Search)
		conds = append(conds, `(LOWER(t.title) LIKE ? ESCAPE '\' OR LOWER(t.description) LIKE ? ESCAPE '\')`)
		args = append(args, p, p)
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func taskOrder(orderBy string) string {
	switch orderBy {
	case repository.OrderByDueDate:
		return "CASE WHEN t.due_date IS NULL THEN 1 ELSE 0 END, t.due_date, t.created_at, t.rowid"
	case repository.OrderByUpdatedAt:
		return "t.updated_at DESC, t.rowid DESC"
	case repository.OrderByPriority:
		return "CASE t.priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, " +
			"CASE WHEN t.due_date IS NULL THEN 1 ELSE 0 END, t.due_date, t.rowid"
	default:
		return "t.created_at, t.rowid"
	}
}
