package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"conversational-task-assistant/internal/model"
)

func (uc *implUseCase) formatDue(t time.Time) string {
	return t.In(uc.location()).Format(dueLayout)
}

// taskLine renders "Title (due Mon, Jan 2) [high]". The reference resolver strips
// everything from the first bracket, so annotations must stay at the end.
func (uc *implUseCase) taskLine(t model.Task) string {
	var sb strings.Builder
	sb.WriteString(t.Title)
	if t.DueDate != nil {
		fmt.Fprintf(&sb, " (due %s)", uc.formatDue(*t.DueDate))
	}
	if t.Priority == model.PriorityHigh || t.Priority == model.PriorityLow {
		fmt.Fprintf(&sb, " [%s]", t.Priority)
	}
	if t.IsCompleted() {
		sb.WriteString(" [done]")
	}
	return sb.String()
}

func (uc *implUseCase) taskBullets(tasks []model.Task) string {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = bullet + uc.taskLine(t)
	}
	return strings.Join(lines, "\n")
}

func nameBullets(names []string) string {
	lines := make([]string, len(names))
	for i, n := range names {
		lines[i] = bullet + n
	}
	return strings.Join(lines, "\n")
}

// showing returns the truncation note, or "" when everything is shown.
func showing(shown, total int) string {
	if total <= shown {
		return ""
	}
	return fmt.Sprintf("\n(showing %d of %d)", shown, total)
}

func titles(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func projectNames(projects []model.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Name
	}
	return out
}

func (uc *implUseCase) taskItems(tasks []model.Task) []TaskItem {
	items := make([]TaskItem, len(tasks))
	for i, t := range tasks {
		items[i] = TaskItem{
			ID:       t.ID,
			Title:    t.Title,
			Status:   string(t.Status),
			Priority: string(t.Priority),
			Project:  t.ProjectName,
		}
		if t.DueDate != nil {
			items[i].DueDate = t.DueDate.In(uc.location()).Format(time.DateOnly)
		}
	}
	return items
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// storeFailure logs err and turns it into an apology. It never fails the turn.
func (uc *implUseCase) storeFailure(ctx context.Context, doing string, err error) ActionResult {
	uc.l.Errorf(ctx, "%s: %s: %v", LogPrefixDispatch, doing, err)
	return ActionResult{
		Success: false,
		Message: fmt.Sprintf("Sorry, I couldn't %s right now (%v).", doing, err),
	}
}
