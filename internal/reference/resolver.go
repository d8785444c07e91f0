package reference

import (
	"strings"

	"conversational-task-assistant/internal/model"
)

// Resolve derives ContextInfo from the conversation window (oldest first) and the utterance.
// When the utterance refers back, every assistant turn is scanned newest first and all
// mentioned names are collected; picking among them is left to the caller.
func Resolve(window []model.Turn, utterance string) ContextInfo {
	lower := strings.ToLower(utterance)
	info := ContextInfo{
		ReferencingPrevious: containsAny(lower, referencingWords),
		ActionContext:       actionContext(lower),
		PendingPrompt:       pendingPrompt(window),
	}
	if !info.ReferencingPrevious {
		return info
	}

	seenTasks := map[string]bool{}
	seenProjects := map[string]bool{}
	for i := len(window) - 1; i >= 0; i-- {
		turn := window[i]
		if turn.Role != model.RoleAssistant {
			continue
		}
		tasks, projects := mentionsOf(turn)
		info.ReferencedTasks = appendUnique(info.ReferencedTasks, seenTasks, tasks)
		info.ReferencedProjects = appendUnique(info.ReferencedProjects, seenProjects, projects)
	}
	return info
}

func actionContext(lower string) model.MentionAction {
	switch {
	case containsAny(lower, completionWords):
		return model.MentionActionComplete
	case containsAny(lower, deletionWords):
		return model.MentionActionDelete
	}
	return model.MentionActionNone
}

// pendingPrompt only looks at the latest assistant turn.
func pendingPrompt(window []model.Turn) *Prompt {
	for i := len(window) - 1; i >= 0; i-- {
		turn := window[i]
		if turn.Role != model.RoleAssistant {
			continue
		}

		if m := turn.Mentions; m != nil {
			if !m.Prompt {
				return nil
			}
			candidates := m.Candidates()
			if len(candidates) == 0 {
				return nil
			}
			action := m.Action
			if action == model.MentionActionNone {
				action = promptAction(strings.ToLower(turn.Text))
			}
			return &Prompt{Action: action, Kind: m.Kind, Candidates: candidates}
		}

		ask := disambiguationAsk.FindStringSubmatch(turn.Text)
		if ask == nil {
			return nil
		}
		bullets := parseBullets(turn.Text)
		if len(bullets) == 0 {
			return nil
		}
		kind := model.EntityTask
		if strings.EqualFold(ask[1], "project") {
			kind = model.EntityProject
		}
		return &Prompt{
			Action:     promptAction(strings.ToLower(turn.Text)),
			Kind:       kind,
			Candidates: bullets,
		}
	}
	return nil
}

// promptAction infers what a disambiguation question was for from its wording.
func promptAction(lower string) model.MentionAction {
	switch {
	case containsAny(lower, completionWords):
		return model.MentionActionComplete
	case containsAny(lower, deletionWords):
		return model.MentionActionDelete
	}
	return model.MentionActionView
}

// mentionsOf prefers the structured record and re-reads the text when it is absent.
func mentionsOf(turn model.Turn) (tasks, projects []string) {
	if m := turn.Mentions; m != nil {
		return m.Tasks, m.Projects
	}

	bullets := parseBullets(turn.Text)
	lower := strings.ToLower(turn.Text)
	if strings.Contains(lower, "project") && !strings.Contains(lower, "task") {
		projects = append(projects, bullets...)
	} else {
		tasks = append(tasks, bullets...)
	}
	for _, m := range quotedTask.FindAllStringSubmatch(turn.Text, -1) {
		tasks = append(tasks, strings.TrimSpace(m[1]))
	}
	for _, m := range quotedProject.FindAllStringSubmatch(turn.Text, -1) {
		projects = append(projects, strings.TrimSpace(m[1]))
	}
	return tasks, projects
}

// parseBullets returns bullet items with annotations such as "(due Friday)" or
// "- Status: pending" removed.
func parseBullets(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		m := bulletLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		item := statusSuffix.ReplaceAllString(m[1], "")
		item = trailingNote.ReplaceAllString(item, "")
		item = strings.Trim(strings.TrimSpace(item), `*"`)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func appendUnique(dst []string, seen map[string]bool, items []string) []string {
	for _, item := range items {
		key := strings.ToLower(item)
		if item == "" || seen[key] {
			continue
		}
		seen[key] = true
		dst = append(dst, item)
	}
	return dst
}
