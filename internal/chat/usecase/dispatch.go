package usecase

import (
	"context"

	"conversational-task-assistant/internal/model"
	"conversational-task-assistant/internal/reference"
	"conversational-task-assistant/internal/router"
)

// Dispatch performs the single action a classification calls for and renders the reply.
// Store errors are logged and come back as an apology; Dispatch itself never fails.
// Intent fallback is answered with a canned reply here; Reply routes it to the Fallback instead.
func (uc *implUseCase) Dispatch(ctx context.Context, sc model.Scope, c router.Classification, info reference.ContextInfo) ActionResult {
	if c.Bulk {
		return refuseBulk(c.Intent)
	}

	switch c.Intent {
	case router.IntentGreeting:
		return uc.greet(ctx, sc, c.Variant)
	case router.IntentFarewell:
		return ActionResult{Success: true, Message: uc.opts.Picker(farewellReplies)}
	case router.IntentCreateTaskRefused, router.IntentCreateProjectRefused:
		return uc.refuseCreation(c)
	case router.IntentUpdateRefused:
		return ActionResult{Message: uc.opts.Picker(updateRefusals)}

	case router.IntentCompleteTask:
		return uc.completeTask(ctx, sc, c.Target(), info)
	case router.IntentCompleteAllOverdue:
		return uc.completeAllOverdue(ctx, sc)
	case router.IntentDeleteTask:
		return uc.deleteTask(ctx, sc, c.Target(), info)
	case router.IntentDeleteProject:
		return uc.deleteProject(ctx, sc, c.Target(), info)
	case router.IntentThisReference:
		return uc.followReference(ctx, sc, c.Reference)

	case router.IntentStatsGeneral:
		return uc.generalStats(ctx, sc)
	case router.IntentStatsTask:
		return uc.taskStats(ctx, sc)
	case router.IntentStatsProject:
		return uc.projectStats(ctx, sc)

	case router.IntentListTasks:
		return uc.listTasks(ctx, sc, c.Filter)
	case router.IntentListProjects:
		return uc.listProjects(ctx, sc)
	case router.IntentSearchTasks:
		return uc.searchTasks(ctx, sc, c.SearchTerm)
	case router.IntentDashboard:
		return uc.dashboard(ctx, sc)
	case router.IntentInventory:
		return uc.inventory(ctx, sc)

	case router.IntentUnclear:
		return ActionResult{Message: uc.opts.Picker(unclearReplies)}
	}
	return ActionResult{Message: msgFallbackUnavailable}
}

// refuseBulk answers "delete all my tasks" and the like without touching the store.
func refuseBulk(intent router.Intent) ActionResult {
	switch intent {
	case router.IntentDeleteProject:
		return ActionResult{Message: msgBulkDeleteProject}
	case router.IntentDeleteTask:
		return ActionResult{Message: msgBulkDeleteTask}
	}
	return ActionResult{Message: msgBulkComplete}
}
