package usecase

import (
	"context"
	"fmt"
	"time"

	"conversational-task-assistant/internal/extractor"
	"conversational-task-assistant/internal/model"
	"conversational-task-assistant/internal/router"
	taskRepo "conversational-task-assistant/internal/task/repository"
)

func (uc *implUseCase) greet(ctx context.Context, sc model.Scope, variant router.Variant) ActionResult {
	switch variant {
	case router.VariantGratitude:
		return ActionResult{Success: true, Message: uc.opts.Picker(gratitudeReplies)}
	case router.VariantWellbeing:
		return ActionResult{Success: true, Message: uc.opts.Picker(wellbeingReplies)}
	}

	pool := casualGreetings
	if variant == router.VariantFormal {
		pool = formalGreetings
	}
	msg := uc.opts.Picker(pool)
	if summary := uc.workloadSummary(ctx, sc); summary != "" {
		msg += " " + summary
	}
	return ActionResult{Success: true, Message: msg}
}

// workloadSummary is best effort: a greeting is still sent if the store fails.
func (uc *implUseCase) workloadSummary(ctx context.Context, sc model.Scope) string {
	open := taskRepo.ListTasksOptions{Owner: sc.UserID, ExcludeStatus: model.TaskStatusCompleted}
	pending, err := uc.repo.CountTasks(ctx, open)
	if err != nil {
		uc.l.Warnf(ctx, "%s: count pending tasks: %v", LogPrefixDispatch, err)
		return ""
	}
	if pending == 0 {
		return "You're all caught up, no pending tasks."
	}

	start, end := uc.dayBounds()
	open.DueAfter, open.DueBefore = &start, &end
	today, err := uc.repo.CountTasks(ctx, open)
	if err != nil {
		uc.l.Warnf(ctx, "%s: count tasks due today: %v", LogPrefixDispatch, err)
		return fmt.Sprintf("You have %s.", plural(pending, "pending task", "pending tasks"))
	}
	return fmt.Sprintf("You have %s, %d due today.", plural(pending, "pending task", "pending tasks"), today)
}

// refuseCreation redirects to the app and hands back whatever was understood as a draft.
func (uc *implUseCase) refuseCreation(c router.Classification) ActionResult {
	kind, msg := extractor.KindTask, msgCreateTaskRefused
	if c.Intent == router.IntentCreateProjectRefused {
		kind, msg = extractor.KindProject, msgCreateProjectRefused
	}

	draft := CreationDraft{Kind: string(kind)}
	if s := c.Slots; s != nil {
		draft.Title = s.Title
		draft.Description = s.Description
		draft.Priority = string(s.Priority)
		draft.ProjectName = s.ProjectName
		if s.DueDate != nil {
			draft.DueDate = s.DueDate.In(uc.location()).Format(time.RFC3339)
		}
		msg += msgDraftReady
	} else {
		msg += "."
	}
	if n := c.NeedsMoreInfo; n != nil {
		draft.MissingField = n.Field
		draft.Clarification = n.Message
	}

	return ActionResult{Success: false, Message: msg, Data: draft}
}
