package router

import (
	"conversational-task-assistant/internal/extractor"
	"conversational-task-assistant/internal/reference"
)

// Router classifies utterances.
type Router interface {
	Classify(utterance string, info reference.ContextInfo) Classification
}

// RuleRouter evaluates an ordered rule table; the first matching rule wins.
type RuleRouter struct {
	ext   *extractor.Extractor
	rules []rule
}

// Ensure RuleRouter implements Router interface
var _ Router = (*RuleRouter)(nil)

// New creates a RuleRouter.
func New(ext *extractor.Extractor) *RuleRouter {
	r := &RuleRouter{ext: ext}
	r.rules = r.table()
	return r
}
