package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"conversational-task-assistant/internal/model"
	"conversational-task-assistant/internal/reference"
	taskRepo "conversational-task-assistant/internal/task/repository"
)

// taskTarget picks the single task an action applies to. An explicit name wins,
// then a lone task from the conversation, then the only task that exists.
// When ok is false, res is the reply to send instead: a question, a miss or an apology.
func (uc *implUseCase) taskTarget(ctx context.Context, sc model.Scope, action model.MentionAction, explicit string, info reference.ContextInfo) (t model.Task, res ActionResult, ok bool) {
	if explicit != "" {
		return uc.taskByName(ctx, sc, action, explicit, true)
	}
	if len(info.ReferencedTasks) == 1 {
		return uc.taskByName(ctx, sc, action, info.ReferencedTasks[0], false)
	}

	opt := taskRepo.ListTasksOptions{Owner: sc.UserID}
	if action == model.MentionActionComplete {
		opt.ExcludeStatus = model.TaskStatusCompleted
	}
	total, err := uc.repo.CountTasks(ctx, opt)
	if err != nil {
		return model.Task{}, uc.storeFailure(ctx, "look up your tasks", err), false
	}
	if total == 0 {
		if action == model.MentionActionComplete {
			return model.Task{}, ActionResult{Message: "You don't have any open tasks right now. 🎉"}, false
		}
		return model.Task{}, ActionResult{Message: "You don't have any tasks yet."}, false
	}

	opt.Limit = uc.opts.MaxCandidates
	opt.OrderBy = taskRepo.OrderByDueDate
	tasks, err := uc.repo.ListTasks(ctx, opt)
	if err != nil {
		return model.Task{}, uc.storeFailure(ctx, "look up your tasks", err), false
	}
	if total == 1 && len(tasks) == 1 {
		return tasks[0], ActionResult{}, true
	}
	return model.Task{}, uc.askWhichTask(action, tasks, total), false
}

// taskByName looks a task up by title. Several matches for an explicit name become
// a question; for a name taken from the conversation the best match is used.
func (uc *implUseCase) taskByName(ctx context.Context, sc model.Scope, action model.MentionAction, name string, explicit bool) (model.Task, ActionResult, bool) {
	matches, err := uc.repo.FindTasksByTitle(ctx, sc.UserID, name)
	if err != nil {
		return model.Task{}, uc.storeFailure(ctx, "look up that task", err), false
	}
	if action == model.MentionActionComplete {
		matches = preferOpen(matches)
	}

	switch {
	case len(matches) == 0:
		return model.Task{}, ActionResult{Message: fmt.Sprintf("I couldn't find a task matching \"%s\".", name)}, false
	case len(matches) == 1 || !explicit:
		return matches[0], ActionResult{}, true
	}

	shown := matches
	if len(shown) > uc.opts.MaxCandidates {
		shown = shown[:uc.opts.MaxCandidates]
	}
	return model.Task{}, uc.askWhichTask(action, shown, len(matches)), false
}

// preferOpen drops completed tasks unless nothing else is left.
func preferOpen(tasks []model.Task) []model.Task {
	var open []model.Task
	for _, t := range tasks {
		if !t.IsCompleted() {
			open = append(open, t)
		}
	}
	if len(open) == 0 {
		return tasks
	}
	return open
}

// askWhichTask asks the user to pick. The delete wording must not contain any
// completion word, since the prompt's action is re-read from its text when the
// structured mentions are missing.
func (uc *implUseCase) askWhichTask(action model.MentionAction, tasks []model.Task, total int) ActionResult {
	question := "Which task would you like to delete?"
	if action == model.MentionActionComplete {
		question = "Which task would you like to mark as complete?"
	}

	lines := make([]string, len(tasks))
	for i, t := range tasks {
		line := t.Title
		if t.DueDate != nil {
			line += fmt.Sprintf(" (due %s)", uc.formatDue(*t.DueDate))
		}
		lines[i] = line
	}

	return ActionResult{
		Message: question + "\n" + nameBullets(lines) + showing(len(tasks), total),
		Data:    TaskListing{Items: uc.taskItems(tasks), Total: total},
		Mentions: &model.Mentions{
			Action: action,
			Kind:   model.EntityTask,
			Tasks:  titles(tasks),
			Prompt: true,
		},
	}
}

// projectTarget is taskTarget for projects.
func (uc *implUseCase) projectTarget(ctx context.Context, sc model.Scope, explicit string, info reference.ContextInfo) (model.Project, ActionResult, bool) {
	if explicit != "" {
		return uc.projectByName(ctx, sc, explicit, true)
	}
	if len(info.ReferencedProjects) == 1 {
		return uc.projectByName(ctx, sc, info.ReferencedProjects[0], false)
	}

	total, err := uc.repo.CountProjects(ctx, sc.UserID)
	if err != nil {
		return model.Project{}, uc.storeFailure(ctx, "look up your projects", err), false
	}
	if total == 0 {
		return model.Project{}, ActionResult{Message: "You don't have any projects yet."}, false
	}

	projects, err := uc.repo.ListProjects(ctx, taskRepo.ListProjectsOptions{Owner: sc.UserID, Limit: uc.opts.MaxCandidates})
	if err != nil {
		return model.Project{}, uc.storeFailure(ctx, "look up your projects", err), false
	}
	if total == 1 && len(projects) == 1 {
		return projects[0], ActionResult{}, true
	}
	return model.Project{}, uc.askWhichProject(projects, total), false
}

func (uc *implUseCase) projectByName(ctx context.Context, sc model.Scope, name string, explicit bool) (model.Project, ActionResult, bool) {
	matches, err := uc.repo.FindProjectsByName(ctx, sc.UserID, name)
	if err != nil {
		return model.Project{}, uc.storeFailure(ctx, "look up that project", err), false
	}

	switch {
	case len(matches) == 0:
		return model.Project{}, ActionResult{Message: fmt.Sprintf("I couldn't find a project matching \"%s\".", name)}, false
	case len(matches) == 1 || !explicit:
		return matches[0], ActionResult{}, true
	}

	shown := matches
	if len(shown) > uc.opts.MaxCandidates {
		shown = shown[:uc.opts.MaxCandidates]
	}
	return model.Project{}, uc.askWhichProject(shown, len(matches)), false
}

func (uc *implUseCase) askWhichProject(projects []model.Project, total int) ActionResult {
	names := projectNames(projects)
	return ActionResult{
		Message: "Which project would you like to delete?\n" + nameBullets(names) + showing(len(projects), total),
		Mentions: &model.Mentions{
			Action:   model.MentionActionDelete,
			Kind:     model.EntityProject,
			Projects: names,
			Prompt:   true,
		},
	}
}

func (uc *implUseCase) completeTask(ctx context.Context, sc model.Scope, explicit string, info reference.ContextInfo) ActionResult {
	t, res, ok := uc.taskTarget(ctx, sc, model.MentionActionComplete, explicit, info)
	if !ok {
		return res
	}
	if t.IsCompleted() {
		return ActionResult{
			Success:  true,
			Message:  fmt.Sprintf("Task \"%s\" is already completed.", t.Title),
			EntityID: t.ID,
			Mentions: &model.Mentions{Kind: model.EntityTask, Tasks: []string{t.Title}},
		}
	}

	updated, err := uc.repo.SetTaskStatus(ctx, sc.UserID, t.ID, model.TaskStatusCompleted)
	if err != nil {
		if errors.Is(err, taskRepo.ErrNotFound) {
			return ActionResult{Message: fmt.Sprintf("Task \"%s\" no longer exists.", t.Title)}
		}
		return uc.storeFailure(ctx, "mark that task as complete", err)
	}

	return ActionResult{
		Success:  true,
		Message:  fmt.Sprintf("✅ Marked task \"%s\" as complete.", updated.Title),
		EntityID: updated.ID,
		Mentions: &model.Mentions{
			Action: model.MentionActionComplete,
			Kind:   model.EntityTask,
			Tasks:  []string{updated.Title},
		},
	}
}

func (uc *implUseCase) deleteTask(ctx context.Context, sc model.Scope, explicit string, info reference.ContextInfo) ActionResult {
	t, res, ok := uc.taskTarget(ctx, sc, model.MentionActionDelete, explicit, info)
	if !ok {
		return res
	}

	if err := uc.repo.DeleteTask(ctx, sc.UserID, t.ID); err != nil {
		if errors.Is(err, taskRepo.ErrNotFound) {
			return ActionResult{Message: fmt.Sprintf("Task \"%s\" no longer exists.", t.Title)}
		}
		return uc.storeFailure(ctx, "delete that task", err)
	}

	return ActionResult{
		Success:  true,
		Message:  fmt.Sprintf("🗑️ Deleted task \"%s\".", t.Title),
		EntityID: t.ID,
	}
}

func (uc *implUseCase) deleteProject(ctx context.Context, sc model.Scope, explicit string, info reference.ContextInfo) ActionResult {
	p, res, ok := uc.projectTarget(ctx, sc, explicit, info)
	if !ok {
		return res
	}

	attached, err := uc.repo.CountTasks(ctx, taskRepo.ListTasksOptions{Owner: sc.UserID, ProjectID: p.ID})
	if err != nil {
		// Only the message loses detail.
		uc.l.Warnf(ctx, "%s: count tasks of project %s: %v", LogPrefixDispatch, p.ID, err)
		attached = 0
	}

	if err := uc.repo.DeleteProject(ctx, sc.UserID, p.ID); err != nil {
		if errors.Is(err, taskRepo.ErrNotFound) {
			return ActionResult{Message: fmt.Sprintf("Project \"%s\" no longer exists.", p.Name)}
		}
		return uc.storeFailure(ctx, "delete that project", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🗑️ Deleted project \"%s\".", p.Name)
	if attached > 0 {
		fmt.Fprintf(&sb, " Its %s no longer in a project.", plural(attached, "task is", "tasks are"))
	}
	return ActionResult{Success: true, Message: sb.String(), EntityID: p.ID}
}

// completeAllOverdue closes every open task whose due date has passed.
func (uc *implUseCase) completeAllOverdue(ctx context.Context, sc model.Scope) ActionResult {
	now := uc.now()
	overdue, err := uc.repo.ListTasks(ctx, taskRepo.ListTasksOptions{
		Owner:         sc.UserID,
		ExcludeStatus: model.TaskStatusCompleted,
		DueBefore:     &now,
		OrderBy:       taskRepo.OrderByDueDate,
	})
	if err != nil {
		return uc.storeFailure(ctx, "look up your overdue tasks", err)
	}
	if len(overdue) == 0 {
		return ActionResult{Success: true, Message: "You have no overdue tasks. Nice work! 🎉"}
	}

	var closed []model.Task
	var failed int
	for _, t := range overdue {
		if _, err := uc.repo.SetTaskStatus(ctx, sc.UserID, t.ID, model.TaskStatusCompleted); err != nil {
			uc.l.Errorf(ctx, "%s: complete overdue task %s: %v", LogPrefixDispatch, t.ID, err)
			failed++
			continue
		}
		closed = append(closed, t)
	}
	if len(closed) == 0 {
		return uc.storeFailure(ctx, "update your overdue tasks", fmt.Errorf("%d updates failed", failed))
	}

	shown := closed
	if len(shown) > uc.opts.ListLimit {
		shown = shown[:uc.opts.ListLimit]
	}
	msg := fmt.Sprintf("✅ Marked %s as complete:\n%s%s",
		plural(len(closed), "overdue task", "overdue tasks"),
		nameBullets(titles(shown)),
		showing(len(shown), len(closed)))
	if failed > 0 {
		msg += fmt.Sprintf("\nSorry, I couldn't update %s.", plural(failed, "other task", "other tasks"))
	}

	return ActionResult{
		Success: true,
		Message: msg,
		Data:    map[string]int{"completed": len(closed), "failed": failed},
		Mentions: &model.Mentions{
			Action: model.MentionActionComplete,
			Kind:   model.EntityTask,
			Tasks:  titles(shown),
		},
	}
}
