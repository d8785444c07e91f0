package usecase

import (
	"context"
	"errors"
	"strings"

	"conversational-task-assistant/internal/model"
	"conversational-task-assistant/internal/task"
	"conversational-task-assistant/internal/task/repository"
)

// CreateProject stores a new project. Names are unique per user.
func (uc *implUseCase) CreateProject(ctx context.Context, sc model.Scope, input task.CreateProjectInput) (model.Project, error) {
	if sc.UserID == "" {
		return model.Project{}, task.ErrMissingUser
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return model.Project{}, task.ErrEmptyProjectName
	}

	p, err := uc.repo.CreateProject(ctx, repository.CreateProjectOptions{
		Owner:       sc.UserID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateProject) {
			return model.Project{}, task.ErrProjectExists
		}
		uc.l.Errorf(ctx, "internal.task.usecase.CreateProject: %v", err)
		return model.Project{}, err
	}
	return p, nil
}

func (uc *implUseCase) ListProjects(ctx context.Context, sc model.Scope, input task.ListProjectsInput) (task.ListProjectsOutput, error) {
	if sc.UserID == "" {
		return task.ListProjectsOutput{}, task.ErrMissingUser
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	projects, err := uc.repo.ListProjects(ctx, repository.ListProjectsOptions{Owner: sc.UserID, Limit: limit})
	if err != nil {
		uc.l.Errorf(ctx, "internal.task.usecase.ListProjects: %v", err)
		return task.ListProjectsOutput{}, err
	}
	return task.ListProjectsOutput{Projects: projects}, nil
}

// resolveProject returns the id of the project named by id or name, or "" when neither is set.
// A name must match exactly (ignoring case) or be the only fuzzy candidate.
func (uc *implUseCase) resolveProject(ctx context.Context, owner, id, name string) (string, error) {
	name = strings.TrimSpace(name)
	if id == "" && name == "" {
		return "", nil
	}

	if id != "" {
		projects, err := uc.repo.ListProjects(ctx, repository.ListProjectsOptions{Owner: owner})
		if err != nil {
			uc.l.Errorf(ctx, "internal.task.usecase.resolveProject.ListProjects: %v", err)
			return "", err
		}
		for _, p := range projects {
			if p.ID == id {
				return id, nil
			}
		}
		return "", task.ErrProjectNotFound
	}

	matches, err := uc.repo.FindProjectsByName(ctx, owner, name)
	if err != nil {
		uc.l.Errorf(ctx, "internal.task.usecase.resolveProject.FindProjectsByName: %v", err)
		return "", err
	}
	for _, p := range matches {
		if strings.EqualFold(p.Name, name) {
			return p.ID, nil
		}
	}
	if len(matches) == 1 {
		return matches[0].ID, nil
	}
	return "", task.ErrProjectNotFound
}
