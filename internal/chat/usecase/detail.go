package usecase

import (
	"context"
	"fmt"
	"strings"

	"conversational-task-assistant/internal/model"
	"conversational-task-assistant/internal/reference"
	"conversational-task-assistant/internal/router"
	taskRepo "conversational-task-assistant/internal/task/repository"
)

// followReference carries out the action of the prompt the user just answered.
func (uc *implUseCase) followReference(ctx context.Context, sc model.Scope, ref *router.Reference) ActionResult {
	if ref == nil {
		return ActionResult{Message: msgNotSureWhich}
	}

	// The name came from our own prompt, so it is looked up like an explicit one.
	none := reference.ContextInfo{}
	if ref.Kind == model.EntityProject {
		if ref.Action == model.MentionActionDelete {
			return uc.deleteProject(ctx, sc, ref.Name, none)
		}
		return uc.projectDetail(ctx, sc, ref.Name)
	}

	switch ref.Action {
	case model.MentionActionComplete:
		return uc.completeTask(ctx, sc, ref.Name, none)
	case model.MentionActionDelete:
		return uc.deleteTask(ctx, sc, ref.Name, none)
	}
	return uc.taskDetail(ctx, sc, ref.Name)
}

func (uc *implUseCase) taskDetail(ctx context.Context, sc model.Scope, name string) ActionResult {
	matches, err := uc.repo.FindTasksByTitle(ctx, sc.UserID, name)
	if err != nil {
		return uc.storeFailure(ctx, "look up that task", err)
	}
	if len(matches) == 0 {
		return ActionResult{Message: fmt.Sprintf("I couldn't find a task matching \"%s\".", name)}
	}
	t := matches[0]

	var sb strings.Builder
	fmt.Fprintf(&sb, "📌 %s\n", t.Title)
	fmt.Fprintf(&sb, "Status: %s\n", strings.ReplaceAll(string(t.Status), "_", " "))
	fmt.Fprintf(&sb, "Priority: %s", t.Priority)
	if t.DueDate != nil {
		fmt.Fprintf(&sb, "\nDue: %s", uc.formatDue(*t.DueDate))
		if t.IsOverdue(uc.now()) {
			sb.WriteString(" (overdue)")
		}
	}
	if t.ProjectName != "" {
		fmt.Fprintf(&sb, "\nProject: %s", t.ProjectName)
	}
	if t.Description != "" {
		fmt.Fprintf(&sb, "\n\n%s", t.Description)
	}

	return ActionResult{
		Success:  true,
		Message:  sb.String(),
		EntityID: t.ID,
		Data:     uc.taskItems([]model.Task{t})[0],
		Mentions: &model.Mentions{Kind: model.EntityTask, Tasks: []string{t.Title}},
	}
}

func (uc *implUseCase) projectDetail(ctx context.Context, sc model.Scope, name string) ActionResult {
	matches, err := uc.repo.FindProjectsByName(ctx, sc.UserID, name)
	if err != nil {
		return uc.storeFailure(ctx, "look up that project", err)
	}
	if len(matches) == 0 {
		return ActionResult{Message: fmt.Sprintf("I couldn't find a project matching \"%s\".", name)}
	}
	p := matches[0]

	opt := taskRepo.ListTasksOptions{Owner: sc.UserID, ProjectID: p.ID, OrderBy: taskRepo.OrderByDueDate}
	total, err := uc.repo.CountTasks(ctx, opt)
	if err != nil {
		return uc.storeFailure(ctx, "load that project", err)
	}
	opt.Limit = uc.opts.ListLimit
	tasks, err := uc.repo.ListTasks(ctx, opt)
	if err != nil {
		return uc.storeFailure(ctx, "load that project", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📁 %s", p.Name)
	if p.Description != "" {
		fmt.Fprintf(&sb, "\n%s", p.Description)
	}
	if total == 0 {
		sb.WriteString("\nNo tasks in this project yet.")
	} else {
		fmt.Fprintf(&sb, "\n%s:\n%s%s", plural(total, "task", "tasks"), uc.taskBullets(tasks), showing(len(tasks), total))
	}

	return ActionResult{
		Success:  true,
		Message:  sb.String(),
		EntityID: p.ID,
		Mentions: &model.Mentions{Kind: model.EntityProject, Projects: []string{p.Name}},
	}
}
