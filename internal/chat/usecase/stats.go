package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"conversational-task-assistant/internal/model"
	taskRepo "conversational-task-assistant/internal/task/repository"
)

// dayBounds returns the start of today and of tomorrow in the user's zone.
func (uc *implUseCase) dayBounds() (time.Time, time.Time) {
	start := uc.opts.Dates.StartOfDay(uc.now())
	return start, start.AddDate(0, 0, 1)
}

func (uc *implUseCase) dueToday(t model.Task, start, end time.Time) bool {
	return t.DueDate != nil && !t.IsCompleted() && !t.DueDate.Before(start) && t.DueDate.Before(end)
}

func completionRate(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(done)*1000/float64(total)) / 10
}

func (uc *implUseCase) allTasks(ctx context.Context, sc model.Scope) ([]model.Task, error) {
	return uc.repo.ListTasks(ctx, taskRepo.ListTasksOptions{Owner: sc.UserID, OrderBy: taskRepo.OrderByDueDate})
}

func (uc *implUseCase) summarize(tasks []model.Task) GeneralStats {
	now := uc.now()
	start, end := uc.dayBounds()

	var s GeneralStats
	s.TotalTasks = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case model.TaskStatusCompleted:
			s.CompletedTasks++
		case model.TaskStatusInProgress:
			s.InProgress++
		default:
			s.PendingTasks++
		}
		if t.IsOverdue(now) {
			s.OverdueTasks++
		}
		if uc.dueToday(t, start, end) {
			s.DueToday++
		}
	}
	s.CompletionRate = completionRate(s.CompletedTasks, s.TotalTasks)
	return s
}

func (uc *implUseCase) generalStats(ctx context.Context, sc model.Scope) ActionResult {
	tasks, err := uc.allTasks(ctx, sc)
	if err != nil {
		return uc.storeFailure(ctx, "load your statistics", err)
	}
	projects, err := uc.repo.CountProjects(ctx, sc.UserID)
	if err != nil {
		return uc.storeFailure(ctx, "load your statistics", err)
	}

	s := uc.summarize(tasks)
	s.TotalProjects = projects

	var sb strings.Builder
	sb.WriteString("📊 Here's your overview:\n")
	fmt.Fprintf(&sb, "%sTasks: %d (%d pending, %d in progress, %d completed)\n", bullet, s.TotalTasks, s.PendingTasks, s.InProgress, s.CompletedTasks)
	fmt.Fprintf(&sb, "%sOverdue: %d\n", bullet, s.OverdueTasks)
	fmt.Fprintf(&sb, "%sDue today: %d\n", bullet, s.DueToday)
	fmt.Fprintf(&sb, "%sProjects: %d\n", bullet, s.TotalProjects)
	fmt.Fprintf(&sb, "%sCompletion rate: %.1f%%", bullet, s.CompletionRate)

	return ActionResult{Success: true, Message: sb.String(), Data: s}
}

func (uc *implUseCase) taskStats(ctx context.Context, sc model.Scope) ActionResult {
	tasks, err := uc.allTasks(ctx, sc)
	if err != nil {
		return uc.storeFailure(ctx, "load your task statistics", err)
	}

	now := uc.now()
	start, end := uc.dayBounds()
	s := TaskStats{
		Total:      len(tasks),
		ByStatus:   map[model.TaskStatus]int{},
		ByPriority: map[model.Priority]int{},
	}
	for _, t := range tasks {
		s.ByStatus[t.Status]++
		s.ByPriority[t.Priority]++
		if t.IsOverdue(now) {
			s.Overdue++
		}
		if uc.dueToday(t, start, end) {
			s.DueToday++
		}
	}
	s.CompletionRate = completionRate(s.ByStatus[model.TaskStatusCompleted], s.Total)

	if s.Total == 0 {
		return ActionResult{Success: true, Message: "You don't have any tasks yet, so there's nothing to count.", Data: s}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📈 Task statistics (%d total):\n", s.Total)
	fmt.Fprintf(&sb, "%sPending: %d\n", bullet, s.ByStatus[model.TaskStatusPending])
	fmt.Fprintf(&sb, "%sIn progress: %d\n", bullet, s.ByStatus[model.TaskStatusInProgress])
	fmt.Fprintf(&sb, "%sCompleted: %d (%.1f%%)\n", bullet, s.ByStatus[model.TaskStatusCompleted], s.CompletionRate)
	fmt.Fprintf(&sb, "%sPriority: %d high, %d medium, %d low\n", bullet,
		s.ByPriority[model.PriorityHigh], s.ByPriority[model.PriorityMedium], s.ByPriority[model.PriorityLow])
	fmt.Fprintf(&sb, "%sOverdue: %d\n", bullet, s.Overdue)
	fmt.Fprintf(&sb, "%sDue today: %d", bullet, s.DueToday)

	return ActionResult{Success: true, Message: sb.String(), Data: s}
}

func (uc *implUseCase) projectStats(ctx context.Context, sc model.Scope) ActionResult {
	projects, err := uc.repo.ListProjects(ctx, taskRepo.ListProjectsOptions{Owner: sc.UserID})
	if err != nil {
		return uc.storeFailure(ctx, "load your project statistics", err)
	}
	tasks, err := uc.allTasks(ctx, sc)
	if err != nil {
		return uc.storeFailure(ctx, "load your project statistics", err)
	}

	s := ProjectStats{TotalProjects: len(projects), Projects: tallyProjects(projects, tasks)}
	for _, t := range tasks {
		if t.ProjectID == "" {
			s.Unassigned++
		}
	}

	if s.TotalProjects == 0 {
		return ActionResult{Success: true, Message: "You don't have any projects yet.", Data: s}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📁 Project statistics (%s):\n", plural(s.TotalProjects, "project", "projects"))
	for _, p := range s.Projects {
		fmt.Fprintf(&sb, "%s%s: %d of %d tasks completed\n", bullet, p.Name, p.Completed, p.Total)
	}
	fmt.Fprintf(&sb, "Tasks without a project: %d", s.Unassigned)

	return ActionResult{Success: true, Message: sb.String(), Data: s}
}

// tallyProjects counts tasks per project, busiest first.
func tallyProjects(projects []model.Project, tasks []model.Task) []ProjectTally {
	index := make(map[string]int, len(projects))
	out := make([]ProjectTally, len(projects))
	for i, p := range projects {
		index[p.ID] = i
		out[i] = ProjectTally{Name: p.Name}
	}
	for _, t := range tasks {
		i, ok := index[t.ProjectID]
		if !ok {
			continue
		}
		out[i].Total++
		if t.IsCompleted() {
			out[i].Completed++
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Total > out[b].Total })
	return out
}
