package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"conversational-task-assistant/internal/model"
	"conversational-task-assistant/internal/task/repository"
)

const projectSelect = `SELECT id, owner, name, description, created_at, updated_at FROM projects`

func scanProject(row rowScanner) (model.Project, error) {
	var p model.Project
	var created, updated string
	if err := row.Scan(&p.ID, &p.Owner, &p.Name, &p.Description, &created, &updated); err != nil {
		return p, err
	}
	p.CreatedAt = parseTime(created)
	p.UpdatedAt = parseTime(updated)
	return p, nil
}

func (r *implRepository) CreateProject(ctx context.Context, opt repository.CreateProjectOptions) (model.Project, error) {
	if opt.Owner == "" {
		return model.Project{}, repository.ErrInvalidOwner
	}

	now := r.now()
	p := model.Project{
		ID:          uuid.NewString(),
		Owner:       opt.Owner,
		Name:        opt.Name,
		Description: opt.Description,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (id, owner, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Owner, p.Name, p.Description, formatTime(now), formatTime(now))
	if isUniqueViolation(err) {
		return model.Project{}, repository.ErrDuplicateProject
	}
	if err != nil {
		r.l.Errorf(ctx, "sqlite repository: failed to insert project: %v", err)
		return model.Project{}, fmt.Errorf("%w: %v", repository.ErrFailedToInsert, err)
	}
	return p, nil
}

func (r *implRepository) FindProjectsByName(ctx context.Context, owner, name string) ([]model.Project, error) {
	all, err := r.ListProjects(ctx, repository.ListProjectsOptions{Owner: owner})
	if err != nil {
		return nil, err
	}

	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}

	var out []model.Project
	for _, i := range repository.MatchNames(name, names) {
		out = append(out, all[i])
	}
	return out, nil
}

func (r *implRepository) ListProjects(ctx context.Context, opt repository.ListProjectsOptions) ([]model.Project, error) {
	query := projectSelect + ` WHERE owner = ? ORDER BY created_at, rowid`
	args := []any{opt.Owner}
	if opt.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opt.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *implRepository) CountProjects(ctx context.Context, owner string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE owner = ?`, owner).Scan(&n); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

func (r *implRepository) DeleteProject(ctx context.Context, owner, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrFailedToDelete, err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE owner = ? AND id = ?`, owner, id)
	if err != nil {
		r.l.Errorf(ctx, "sqlite repository: failed to delete project %s: %v", id, err)
		return fmt.Errorf("%w: %v", repository.ErrFailedToDelete, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE tasks SET project_id = NULL, updated_at = ? WHERE owner = ? AND project_id = ?`,
		formatTime(r.now()), owner, id); err != nil {
		return fmt.Errorf("%w: detach tasks: %v", repository.ErrFailedToDelete, err)
	}
	return tx.Commit()
}
