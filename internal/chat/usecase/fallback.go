package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"conversational-task-assistant/internal/model"
	taskRepo "conversational-task-assistant/internal/task/repository"
	"conversational-task-assistant/pkg/llmprovider"
)

const fallbackInstruction = `You are a task management assistant. You can only read the user's tasks and projects;
you cannot create, edit, complete or delete anything. Ask the user to use the app for changes.
Answer briefly, in the user's language, using only the facts below. If they do not answer the
question, say so.`

var errEmptyAnswer = errors.New("empty answer")

type llmFallback struct {
	llm *llmprovider.Manager
}

// NewLLMFallback answers through the provider manager. A nil manager yields a
// Fallback that always errors, which Reply turns into the canned reply.
func NewLLMFallback(llm *llmprovider.Manager) Fallback {
	return &llmFallback{llm: llm}
}

func (f *llmFallback) Answer(ctx context.Context, req FallbackRequest) (string, error) {
	if f.llm == nil {
		return "", llmprovider.ErrNoProvidersConfigured
	}

	resp, err := f.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: fallbackInstruction + "\n\n" + req.SystemContext}},
		},
		Messages: []llmprovider.Message{
			{Role: "user", Parts: []llmprovider.Part{{Text: req.UserMessage}}},
		},
		Temperature: 0.3,
		MaxTokens:   512,
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, p := range resp.Content.Parts {
		sb.WriteString(p.Text)
	}
	answer := strings.TrimSpace(sb.String())
	if answer == "" {
		return "", errEmptyAnswer
	}
	return answer, nil
}

// answerFallback never fails: without a delegate, or when it errors, the canned reply is used.
func (uc *implUseCase) answerFallback(ctx context.Context, sc model.Scope, message string) ActionResult {
	if uc.fallback == nil {
		return ActionResult{Message: msgFallbackUnavailable}
	}

	answer, err := uc.fallback.Answer(ctx, FallbackRequest{
		SystemContext: uc.systemContext(ctx, sc),
		UserMessage:   message,
	})
	if err == nil && strings.TrimSpace(answer) == "" {
		err = errEmptyAnswer
	}
	if err != nil {
		uc.l.Warnf(ctx, "%s: %v", LogPrefixFallback, err)
		return ActionResult{Message: msgFallbackUnavailable}
	}
	return ActionResult{Success: true, Message: answer}
}

// systemContext summarises the user's state for the delegate. Store errors shorten it.
func (uc *implUseCase) systemContext(ctx context.Context, sc model.Scope) string {
	now := uc.now()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Current time: %s (%s).\n", now.Format("Monday, 2006-01-02 15:04"), uc.location())

	tasks, err := uc.allTasks(ctx, sc)
	if err != nil {
		uc.l.Warnf(ctx, "%s: load tasks: %v", LogPrefixFallback, err)
		return sb.String()
	}
	s := uc.summarize(tasks)
	fmt.Fprintf(&sb, "Tasks: %d pending, %d in progress, %d completed, %d overdue, %d due today.\n",
		s.PendingTasks, s.InProgress, s.CompletedTasks, s.OverdueTasks, s.DueToday)

	recent, err := uc.repo.ListTasks(ctx, taskRepo.ListTasksOptions{
		Owner:   sc.UserID,
		OrderBy: taskRepo.OrderByUpdatedAt,
		Limit:   recentTitles,
	})
	if err == nil && len(recent) > 0 {
		sb.WriteString("Recently updated tasks:\n")
		for _, t := range recent {
			fmt.Fprintf(&sb, "- %s\n", uc.taskLine(t))
		}
	}

	projects, err := uc.repo.ListProjects(ctx, taskRepo.ListProjectsOptions{Owner: sc.UserID})
	if err == nil {
		fmt.Fprintf(&sb, "Projects (%d): %s\n", len(projects), strings.Join(projectNames(projects), ", "))
	}
	return sb.String()
}
