package router

import (
	"regexp"
	"strings"
	"unicode"

	"conversational-task-assistant/internal/extractor"
	"conversational-task-assistant/internal/model"
	"conversational-task-assistant/internal/reference"
)

// utterance holds the normalised forms rules match against.
type utterance struct {
	// text keeps the user's casing with whitespace and trailing punctuation tidied.
	text string
	// clean is text without politeness padding such as "please" or "can you".
	clean string
}

type rule struct {
	name  string
	match func(u utterance, info reference.ContextInfo) (Classification, bool)
}

// Classify returns the first matching rule's classification, or fallback.
// It has no side effects: the same input always gives the same result.
func (r *RuleRouter) Classify(raw string, info reference.ContextInfo) Classification {
	u := normalize(raw)
	for _, rl := range r.rules {
		if c, ok := rl.match(u, info); ok {
			c.Rule = rl.name
			return c
		}
	}
	return Classification{Intent: IntentFallback, Rule: "fallback"}
}

// table lists the rules in evaluation order. Order is significant.
func (r *RuleRouter) table() []rule {
	return []rule{
		{"gratitude", r.gratitude},
		{"wellbeing", matchAny(wellbeingPatterns, byText, Classification{Intent: IntentGreeting, Variant: VariantWellbeing})},
		{"greeting", r.greeting},
		{"farewell", matchAny(farewellPatterns, byText, Classification{Intent: IntentFarewell})},
		{"create_project", r.createRefused(createProjectPatterns, extractor.KindProject, IntentCreateProjectRefused)},
		{"create_task", r.createRefused(createTaskPatterns, extractor.KindTask, IntentCreateTaskRefused)},
		{"update", matchAny(updatePatterns, byClean, Classification{Intent: IntentUpdateRefused})},
		{"complete_all_overdue", matchAny(completeAllOverduePatterns, byClean, Classification{Intent: IntentCompleteAllOverdue})},
		{"complete", r.complete},
		{"delete_project", r.deleteProject},
		{"delete_task", r.deleteTask},
		{"stats_general", matchAny(statsGeneralPatterns, byClean, Classification{Intent: IntentStatsGeneral})},
		{"stats_task", matchAny(statsTaskPatterns, byClean, Classification{Intent: IntentStatsTask})},
		{"stats_project", matchAny(statsProjectPatterns, byClean, Classification{Intent: IntentStatsProject})},
		{"stats", matchAny([]*regexp.Regexp{statsCatchAll}, byClean, Classification{Intent: IntentStatsGeneral})},
		{"list_tasks", r.listTasks},
		{"list_projects", r.listProjects},
		{"dashboard", matchAny(dashboardPatterns, byClean, Classification{Intent: IntentDashboard})},
		{"search", r.search},
		{"inventory", matchAny(inventoryPatterns, byClean, Classification{Intent: IntentInventory})},
		{"this_reference", r.thisReference},
		{"unclear", r.unclear},
	}
}

func byText(u utterance) string  { return u.text }
func byClean(u utterance) string { return u.clean }

// matchAny builds a rule that yields out when any pattern matches.
func matchAny(patterns []*regexp.Regexp, form func(utterance) string, out Classification) func(utterance, reference.ContextInfo) (Classification, bool) {
	return func(u utterance, _ reference.ContextInfo) (Classification, bool) {
		if firstMatch(patterns, form(u)) != nil {
			return out, true
		}
		return Classification{}, false
	}
}

// firstMatch returns the submatches of the first pattern that matches s.
func firstMatch(patterns []*regexp.Regexp, s string) []string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(s); m != nil {
			return m
		}
	}
	return nil
}

func (r *RuleRouter) greeting(u utterance, _ reference.ContextInfo) (Classification, bool) {
	m := greetingPattern.FindStringSubmatch(u.text)
	if m == nil {
		return Classification{}, false
	}
	variant := VariantCasual
	lead := strings.ToLower(strings.Fields(m[1])[0])
	if formalGreetings[lead] {
		variant = VariantFormal
	}
	return Classification{Intent: IntentGreeting, Variant: variant}, true
}

// createRefused attaches a draft so the refusal can prefill the task or project form.
func (r *RuleRouter) createRefused(patterns []*regexp.Regexp, kind extractor.Kind, intent Intent) func(utterance, reference.ContextInfo) (Classification, bool) {
	return func(u utterance, _ reference.ContextInfo) (Classification, bool) {
		if firstMatch(patterns, u.clean) == nil {
			return Classification{}, false
		}
		c := Classification{Intent: intent}
		if r.ext != nil {
			res := r.ext.Extract(u.clean, kind)
			c.Slots, c.NeedsMoreInfo = res.Slots, res.NeedsMoreInfo
		}
		return c, true
	}
}

// gratitude matches bare thanks, or thanks leading into chatter that asks for nothing.
func (r *RuleRouter) gratitude(u utterance, _ reference.ContextInfo) (Classification, bool) {
	thanks := firstMatch(gratitudePatterns, u.text) != nil
	if !thanks {
		if loc := gratitudePrefix.FindStringIndex(u.text); loc != nil {
			thanks = !actionWords.MatchString(u.text[loc[1]:])
		}
	}
	if !thanks {
		return Classification{}, false
	}
	return Classification{Intent: IntentGreeting, Variant: VariantGratitude}, true
}

func (r *RuleRouter) complete(u utterance, _ reference.ContextInfo) (Classification, bool) {
	m := firstMatch(completePatterns, u.clean)
	if m == nil {
		return Classification{}, false
	}
	object := strings.TrimSpace(captured(m))
	switch {
	case questionObject.MatchString(object):
		// "which tasks are done" asks for a listing
		return Classification{}, false
	case groupObject.MatchString(object) && !namedObject.MatchString(object):
		return Classification{Intent: IntentCompleteTask, Bulk: true}, true
	}
	return Classification{Intent: IntentCompleteTask, Slots: targetSlots(object)}, true
}

func (r *RuleRouter) deleteProject(u utterance, _ reference.ContextInfo) (Classification, bool) {
	m := firstMatch(deleteProjectPatterns, u.clean)
	if m == nil {
		return Classification{}, false
	}
	return Classification{Intent: IntentDeleteProject, Slots: targetSlots(captured(m))}, true
}

// deleteTask also catches bare "delete it"; when the conversation was only about
// projects, that is taken as a project deletion. "delete all done tasks" is marked
// Bulk and never carries a target.
func (r *RuleRouter) deleteTask(u utterance, info reference.ContextInfo) (Classification, bool) {
	if firstMatch(bulkDeletePatterns, u.clean) != nil {
		if projectsObject.MatchString(u.clean) {
			return Classification{Intent: IntentDeleteProject, Bulk: true}, true
		}
		return Classification{Intent: IntentDeleteTask, Bulk: true}, true
	}
	m := firstMatch(deleteTaskPatterns, u.clean)
	if m == nil {
		return Classification{}, false
	}
	slots := targetSlots(captured(m))
	if slots == nil && aboutProjects(info) {
		return Classification{Intent: IntentDeleteProject}, true
	}
	return Classification{Intent: IntentDeleteTask, Slots: slots}, true
}

func aboutProjects(info reference.ContextInfo) bool {
	if p := info.PendingPrompt; p != nil {
		return p.Kind == model.EntityProject
	}
	return len(info.ReferencedProjects) > 0 && len(info.ReferencedTasks) == 0
}

func (r *RuleRouter) listTasks(u utterance, _ reference.ContextInfo) (Classification, bool) {
	if bothKinds.MatchString(u.clean) || firstMatch(listTaskPatterns, u.clean) == nil {
		return Classification{}, false
	}
	return Classification{Intent: IntentListTasks, Filter: r.listFilter(u.clean)}, true
}

func (r *RuleRouter) listProjects(u utterance, _ reference.ContextInfo) (Classification, bool) {
	if bothKinds.MatchString(u.clean) || firstMatch(listProjectPatterns, u.clean) == nil {
		return Classification{}, false
	}
	return Classification{Intent: IntentListProjects}, true
}

func (r *RuleRouter) listFilter(s string) ListFilter {
	var f ListFilter
	switch {
	case filterInProgress.MatchString(s):
		f.Status = model.TaskStatusInProgress
	case filterCompleted.MatchString(s):
		f.Status = model.TaskStatusCompleted
	case filterPending.MatchString(s):
		f.Status = model.TaskStatusPending
	}
	switch {
	case filterOverdue.MatchString(s):
		f.DueWindow = DueOverdue
	case filterToday.MatchString(s):
		f.DueWindow = DueToday
	case filterWeek.MatchString(s):
		f.DueWindow = DueWeek
	}
	if r.ext != nil {
		if p, ok := r.ext.PriorityKeyword(s); ok {
			f.Priority = p
		}
		f.ProjectName = r.ext.ExplicitProjectName(s)
	}
	return f
}

func (r *RuleRouter) search(u utterance, _ reference.ContextInfo) (Classification, bool) {
	m := firstMatch(searchPatterns, u.clean)
	if m == nil {
		return Classification{}, false
	}
	term := strings.Trim(strings.TrimSpace(captured(m)), "\"'“”")
	if term == "" {
		return Classification{}, false
	}
	return Classification{Intent: IntentSearchTasks, SearchTerm: term}, true
}

// thisReference resolves "this one", "the second task" or "3" against the open prompt.
func (r *RuleRouter) thisReference(u utterance, info reference.ContextInfo) (Classification, bool) {
	m := thisReferencePattern.FindStringSubmatch(strings.ToLower(u.clean))
	if m == nil {
		return Classification{}, false
	}
	c := Classification{Intent: IntentThisReference}

	p := info.PendingPrompt
	if p == nil || len(p.Candidates) == 0 {
		return c, true
	}

	index := 0
	switch {
	case m[1] != "":
		index = int(m[1][0] - '1')
	case m[2] != "":
		index = ordinals[m[2]]
	}
	if index < 0 {
		index = len(p.Candidates) - 1
	}
	if index >= len(p.Candidates) {
		return c, true
	}

	c.Reference = &Reference{
		Index:  index,
		Name:   p.Candidates[index],
		Action: p.Action,
		Kind:   p.Kind,
	}
	return c, true
}

func (r *RuleRouter) unclear(u utterance, _ reference.ContextInfo) (Classification, bool) {
	s := u.clean
	if s == "" || punctuationPattern.MatchString(s) || fillerPattern.MatchString(s) || !strings.ContainsFunc(s, unicode.IsSpace) {
		return Classification{Intent: IntentUnclear}, true
	}
	return Classification{}, false
}

// captured returns the last non-empty capture group.
func captured(m []string) string {
	for i := len(m) - 1; i > 0; i-- {
		if m[i] != "" {
			return m[i]
		}
	}
	return ""
}

// targetSlots turns an object capture into slots. Pronouns count as no object.
func targetSlots(object string) *extractor.SlotSet {
	object = strings.TrimSpace(object)
	for _, prefix := range []string{"the ", "my ", "task ", "project ", "task: ", "project: "} {
		if len(object) > len(prefix) && strings.EqualFold(object[:len(prefix)], prefix) {
			object = strings.TrimSpace(object[len(prefix):])
		}
	}
	object = strings.Trim(object, "\"'“”‘’")
	if object == "" || pronounObjects[strings.ToLower(object)] {
		return nil
	}
	return &extractor.SlotSet{Title: object}
}

// normalize tidies whitespace, quotes and trailing punctuation and strips politeness.
func normalize(raw string) utterance {
	text := strings.NewReplacer("’", "'", "‘", "'").Replace(raw)
	text = strings.Join(strings.Fields(text), " ")
	text = strings.TrimRight(text, ".!?,;: ")

	clean := text
	for {
		next := politePrefix.ReplaceAllString(clean, "")
		next = politeSuffix.ReplaceAllString(next, "")
		next = strings.TrimRight(next, ".!?,;: ")
		if next == clean {
			break
		}
		clean = next
	}
	return utterance{text: text, clean: clean}
}
