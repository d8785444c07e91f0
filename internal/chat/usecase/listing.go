package usecase

import (
	"context"
	"fmt"
	"strings"

	"conversational-task-assistant/internal/model"
	"conversational-task-assistant/internal/router"
	taskRepo "conversational-task-assistant/internal/task/repository"
)

// listTasks shows open tasks unless the filter asks for a status.
func (uc *implUseCase) listTasks(ctx context.Context, sc model.Scope, f router.ListFilter) ActionResult {
	opt := taskRepo.ListTasksOptions{
		Owner:    sc.UserID,
		Priority: f.Priority,
		OrderBy:  taskRepo.OrderByDueDate,
	}
	if f.Status != "" {
		opt.Statuses = []model.TaskStatus{f.Status}
	} else {
		opt.ExcludeStatus = model.TaskStatusCompleted
	}

	now := uc.now()
	start, tomorrow := uc.dayBounds()
	switch f.DueWindow {
	case router.DueToday:
		opt.DueAfter, opt.DueBefore = &start, &tomorrow
	case router.DueWeek:
		weekEnd := start.AddDate(0, 0, 7)
		opt.DueAfter, opt.DueBefore = &start, &weekEnd
	case router.DueOverdue:
		opt.DueBefore = &now
		if f.Status == "" || f.Status == model.TaskStatusCompleted {
			opt.Statuses = nil
			opt.ExcludeStatus = model.TaskStatusCompleted
		}
	}

	projectLabel := ""
	if f.ProjectName != "" {
		projects, err := uc.repo.FindProjectsByName(ctx, sc.UserID, f.ProjectName)
		if err != nil {
			return uc.storeFailure(ctx, "look up that project", err)
		}
		if len(projects) == 0 {
			return ActionResult{Message: fmt.Sprintf("I couldn't find a project matching \"%s\".", f.ProjectName)}
		}
		opt.ProjectID = projects[0].ID
		projectLabel = projects[0].Name
	}

	total, err := uc.repo.CountTasks(ctx, opt)
	if err != nil {
		return uc.storeFailure(ctx, "list your tasks", err)
	}
	label := describeFilter(f, projectLabel)
	if total == 0 {
		return ActionResult{
			Success:  true,
			Message:  fmt.Sprintf("You have no %s.", label),
			Data:     TaskListing{Items: []TaskItem{}},
			Mentions: &model.Mentions{},
		}
	}

	opt.Limit = uc.opts.ListLimit
	tasks, err := uc.repo.ListTasks(ctx, opt)
	if err != nil {
		return uc.storeFailure(ctx, "list your tasks", err)
	}

	return ActionResult{
		Success: true,
		Message: fmt.Sprintf("📋 Your %s (%d):\n%s%s", label, total, uc.taskBullets(tasks), showing(len(tasks), total)),
		Data:    TaskListing{Items: uc.taskItems(tasks), Total: total},
		Mentions: &model.Mentions{
			Action: model.MentionActionView,
			Kind:   model.EntityTask,
			Tasks:  titles(tasks),
		},
	}
}

// describeFilter renders e.g. "overdue high priority tasks in Launch".
func describeFilter(f router.ListFilter, project string) string {
	var words []string
	if f.DueWindow == router.DueOverdue {
		words = append(words, "overdue")
	}
	switch f.Status {
	case model.TaskStatusPending:
		words = append(words, "pending")
	case model.TaskStatusInProgress:
		words = append(words, "in-progress")
	case model.TaskStatusCompleted:
		if f.DueWindow != router.DueOverdue {
			words = append(words, "completed")
		}
	default:
		if f.DueWindow != router.DueOverdue {
			words = append(words, "open")
		}
	}
	if f.Priority != "" {
		words = append(words, string(f.Priority)+" priority")
	}
	words = append(words, "tasks")
	switch f.DueWindow {
	case router.DueToday:
		words = append(words, "due today")
	case router.DueWeek:
		words = append(words, "due this week")
	}
	if project != "" {
		words = append(words, "in "+project)
	}
	return strings.Join(words, " ")
}

func (uc *implUseCase) listProjects(ctx context.Context, sc model.Scope) ActionResult {
	total, err := uc.repo.CountProjects(ctx, sc.UserID)
	if err != nil {
		return uc.storeFailure(ctx, "list your projects", err)
	}
	if total == 0 {
		return ActionResult{Success: true, Message: "You don't have any projects yet.", Mentions: &model.Mentions{}}
	}

	projects, err := uc.repo.ListProjects(ctx, taskRepo.ListProjectsOptions{Owner: sc.UserID, Limit: uc.opts.ListLimit})
	if err != nil {
		return uc.storeFailure(ctx, "list your projects", err)
	}
	open, err := uc.repo.ListTasks(ctx, taskRepo.ListTasksOptions{Owner: sc.UserID, ExcludeStatus: model.TaskStatusCompleted})
	if err != nil {
		return uc.storeFailure(ctx, "list your projects", err)
	}
	openByProject := map[string]int{}
	for _, t := range open {
		openByProject[t.ProjectID]++
	}

	lines := make([]string, len(projects))
	for i, p := range projects {
		lines[i] = fmt.Sprintf("%s (%s)", p.Name, plural(openByProject[p.ID], "open task", "open tasks"))
	}

	names := projectNames(projects)
	return ActionResult{
		Success: true,
		Message: fmt.Sprintf("📁 Your projects (%d):\n%s%s", total, nameBullets(lines), showing(len(projects), total)),
		Data:    map[string]any{"projects": names, "total": total},
		Mentions: &model.Mentions{
			Action:   model.MentionActionView,
			Kind:     model.EntityProject,
			Projects: names,
		},
	}
}

func (uc *implUseCase) searchTasks(ctx context.Context, sc model.Scope, term string) ActionResult {
	opt := taskRepo.ListTasksOptions{Owner: sc.UserID, Search: term, OrderBy: taskRepo.OrderByDueDate}
	total, err := uc.repo.CountTasks(ctx, opt)
	if err != nil {
		return uc.storeFailure(ctx, "search your tasks", err)
	}
	if total == 0 {
		return ActionResult{
			Success:  true,
			Message:  fmt.Sprintf("No tasks match \"%s\".", term),
			Data:     TaskListing{Items: []TaskItem{}},
			Mentions: &model.Mentions{},
		}
	}

	opt.Limit = uc.opts.ListLimit
	tasks, err := uc.repo.ListTasks(ctx, opt)
	if err != nil {
		return uc.storeFailure(ctx, "search your tasks", err)
	}

	return ActionResult{
		Success: true,
		Message: fmt.Sprintf("🔍 Found %s matching \"%s\":\n%s%s",
			plural(total, "task", "tasks"), term, uc.taskBullets(tasks), showing(len(tasks), total)),
		Data: TaskListing{Items: uc.taskItems(tasks), Total: total},
		Mentions: &model.Mentions{
			Action: model.MentionActionView,
			Kind:   model.EntityTask,
			Tasks:  titles(tasks),
		},
	}
}

// dashboard combines the headline counts with what is overdue and what is next.
func (uc *implUseCase) dashboard(ctx context.Context, sc model.Scope) ActionResult {
	tasks, err := uc.allTasks(ctx, sc)
	if err != nil {
		return uc.storeFailure(ctx, "load your dashboard", err)
	}
	projects, err := uc.repo.CountProjects(ctx, sc.UserID)
	if err != nil {
		return uc.storeFailure(ctx, "load your dashboard", err)
	}

	s := uc.summarize(tasks)
	s.TotalProjects = projects

	now := uc.now()
	var overdue, upcoming []model.Task
	for _, t := range tasks {
		switch {
		case t.IsCompleted():
		case t.IsOverdue(now):
			overdue = append(overdue, t)
		default:
			upcoming = append(upcoming, t)
		}
	}

	var sb strings.Builder
	sb.WriteString("🗂️ Dashboard\n")
	fmt.Fprintf(&sb, "Open: %d | Overdue: %d | Due today: %d | Completed: %d | Projects: %d",
		s.PendingTasks+s.InProgress, s.OverdueTasks, s.DueToday, s.CompletedTasks, s.TotalProjects)

	limit := uc.opts.MaxCandidates
	var shown []model.Task
	if len(overdue) > 0 {
		part := overdue[:min(limit, len(overdue))]
		fmt.Fprintf(&sb, "\n\n⚠️ Overdue:\n%s%s", uc.taskBullets(part), showing(len(part), len(overdue)))
		shown = append(shown, part...)
	}
	if len(upcoming) > 0 {
		part := upcoming[:min(limit, len(upcoming))]
		fmt.Fprintf(&sb, "\n\n⏭️ Up next:\n%s%s", uc.taskBullets(part), showing(len(part), len(upcoming)))
		shown = append(shown, part...)
	}
	if len(overdue) == 0 && len(upcoming) == 0 {
		sb.WriteString("\n\nNothing open. Enjoy the free time! 🎉")
	}

	return ActionResult{
		Success: true,
		Message: sb.String(),
		Data:    s,
		Mentions: &model.Mentions{
			Action: model.MentionActionView,
			Kind:   model.EntityTask,
			Tasks:  titles(shown),
		},
	}
}

// inventory lists both projects and open tasks.
func (uc *implUseCase) inventory(ctx context.Context, sc model.Scope) ActionResult {
	projects, err := uc.repo.ListProjects(ctx, taskRepo.ListProjectsOptions{Owner: sc.UserID})
	if err != nil {
		return uc.storeFailure(ctx, "load your tasks and projects", err)
	}
	openOpt := taskRepo.ListTasksOptions{Owner: sc.UserID, ExcludeStatus: model.TaskStatusCompleted, OrderBy: taskRepo.OrderByDueDate}
	openTotal, err := uc.repo.CountTasks(ctx, openOpt)
	if err != nil {
		return uc.storeFailure(ctx, "load your tasks and projects", err)
	}
	openOpt.Limit = uc.opts.ListLimit
	tasks, err := uc.repo.ListTasks(ctx, openOpt)
	if err != nil {
		return uc.storeFailure(ctx, "load your tasks and projects", err)
	}

	if len(projects) == 0 && openTotal == 0 {
		return ActionResult{Success: true, Message: "You don't have any open tasks or projects yet.", Mentions: &model.Mentions{}}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You have %s and %s.",
		plural(len(projects), "project", "projects"), plural(openTotal, "open task", "open tasks"))
	shownProjects := projects[:min(uc.opts.ListLimit, len(projects))]
	if len(shownProjects) > 0 {
		fmt.Fprintf(&sb, "\n\n📁 Projects:\n%s%s", nameBullets(projectNames(shownProjects)), showing(len(shownProjects), len(projects)))
	}
	if len(tasks) > 0 {
		fmt.Fprintf(&sb, "\n\n📋 Open tasks:\n%s%s", uc.taskBullets(tasks), showing(len(tasks), openTotal))
	}

	return ActionResult{
		Success: true,
		Message: sb.String(),
		Data: map[string]any{
			"projects": projectNames(projects),
			"tasks":    TaskListing{Items: uc.taskItems(tasks), Total: openTotal},
		},
		Mentions: &model.Mentions{
			Action:   model.MentionActionView,
			Kind:     model.EntityTask,
			Tasks:    titles(tasks),
			Projects: projectNames(shownProjects),
		},
	}
}
