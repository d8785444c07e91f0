package extractor

import (
	"strings"
	"time"

	"conversational-task-assistant/internal/model"
)

// Extract runs every field pass over the utterance. Passes are independent, so a phrase
// may feed more than one field. A missing title yields NeedsMoreInfo instead of slots.
func (e *Extractor) Extract(utterance string, kind Kind) Result {
	title, source := e.title(utterance, kind)
	if title == "" {
		return Result{NeedsMoreInfo: needTitle(kind)}
	}

	return Result{Slots: &SlotSet{
		Title:       title,
		Description: e.Description(source),
		DueDate:     e.DueDate(utterance),
		Priority:    e.Priority(utterance),
		ProjectName: e.ProjectName(utterance),
	}}
}

// Title returns the entity title, or "" when none can be found.
func (e *Extractor) Title(utterance string, kind Kind) string {
	title, _ := e.title(utterance, kind)
	return title
}

// title also returns the text the title was cut from, which is where descriptions live.
func (e *Extractor) title(utterance string, kind Kind) (string, string) {
	for _, anchor := range titleAnchors {
		if anchor.kind != kind {
			continue
		}
		loc := anchor.pattern.FindStringIndex(utterance)
		if loc == nil {
			continue
		}
		rest := utterance[loc[1]:]
		if title := cleanPhrase(trimConnectors(untilFieldKeyword(rest))); title != "" {
			return title, rest
		}
	}

	// Fall back to the first sentence after the trigger phrase.
	loc := triggerPhrase.FindStringIndex(utterance)
	if loc == nil {
		return "", utterance
	}
	rest := strings.TrimLeft(utterance[loc[1]:], " :.-")
	sentence := rest
	if idx := sentenceEnd.FindStringIndex(rest); idx != nil {
		sentence = rest[:idx[0]]
	}
	return cleanPhrase(trimConnectors(untilFieldKeyword(sentence))), rest
}

// Description returns the first description anchor's capture in text.
func (e *Extractor) Description(text string) string {
	for _, anchor := range descriptionAnchors {
		loc := anchor.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if desc := cleanPhrase(untilKeyword(text[loc[1]:], descriptionStop)); desc != "" {
			return desc
		}
	}
	return ""
}

// DueDate resolves the first anchored date phrase that parses. Unparseable phrases are skipped.
func (e *Extractor) DueDate(utterance string) *time.Time {
	if e.dates == nil {
		return nil
	}
	words := strings.Fields(utterance)
	for i, w := range words {
		if !dueAnchors[keywordForm(w)] {
			continue
		}
		phrase := untilFieldKeyword(strings.Join(words[i+1:], " "))
		if phrase == "" {
			continue
		}
		if t, ok := e.dates.ResolveDue(phrase, e.now()); ok {
			return &t
		}
	}
	return nil
}

// Priority returns the stated priority, defaulting to medium.
func (e *Extractor) Priority(utterance string) model.Priority {
	if p, ok := e.PriorityKeyword(utterance); ok {
		return p
	}
	return model.PriorityMedium
}

// PriorityKeyword reports the priority named in the utterance, if any.
func (e *Extractor) PriorityKeyword(utterance string) (model.Priority, bool) {
	for _, pattern := range priorityPatterns {
		m := pattern.FindStringSubmatch(utterance)
		if m == nil {
			continue
		}
		switch strings.ToLower(m[1]) {
		case "low":
			return model.PriorityLow, true
		case "medium", "normal":
			return model.PriorityMedium, true
		default:
			return model.PriorityHigh, true
		}
	}
	return "", false
}

// ProjectName returns the project named by any project anchor, including a bare "in X".
func (e *Extractor) ProjectName(utterance string) string {
	return projectName(utterance, true)
}

// ExplicitProjectName only accepts anchors that say "project".
func (e *Extractor) ExplicitProjectName(utterance string) string {
	return projectName(utterance, false)
}

func projectName(utterance string, allowBare bool) string {
	for _, anchor := range projectAnchors {
		if anchor.bare && !allowBare {
			continue
		}
		for _, loc := range anchor.pattern.FindAllStringIndex(utterance, -1) {
			name := cleanPhrase(untilFieldKeyword(utterance[loc[1]:]))
			if name == "" {
				continue
			}
			if anchor.bare && startsWithDigit(name) {
				continue
			}
			return name
		}
	}
	return ""
}

func needTitle(kind Kind) *NeedsMoreInfo {
	msg := MsgNeedTaskTitle
	if kind == KindProject {
		msg = MsgNeedProjectTitle
	}
	return &NeedsMoreInfo{Field: "title", Message: msg}
}
