package extractor

import "regexp"

// fieldKeywords end a captured phrase. A capture runs up to the first of these words.
var fieldKeywords = map[string]bool{
	"by":          true,
	"due":         true,
	"on":          true,
	"desc":        true,
	"description": true,
	"proj":        true,
	"project":     true,
	"priority":    true,
}

// titleAnchors are evaluated in order; the text after the first match is the title source.
var titleAnchors = []struct {
	kind    Kind
	pattern *regexp.Regexp
}{
	{KindTask, regexp.MustCompile(`(?i)\b(?:create|add|make|new|set\s+up|schedule|start)\s+(?:(?:a|an|the|new|another|one\s+more)\s+)*(?:task|todo|to-do|reminder)\b\s*(?:(?:called|named|titled|to)\s+)?:?\s*`)},
	{KindTask, regexp.MustCompile(`(?i)\btask\s*:\s*`)},
	{KindTask, regexp.MustCompile(`(?i)\bremind\s+me\s+to\s+`)},
	{KindProject, regexp.MustCompile(`(?i)\b(?:create|add|make|new|set\s+up|start)\s+(?:(?:a|an|the|new|another|one\s+more)\s+)*project\b\s*(?:(?:called|named|titled|for)\s+)?:?\s*`)},
	{KindProject, regexp.MustCompile(`(?i)\bproject\s*:\s*`)},
}

// triggerPhrase locates where a creation request starts, for the first-sentence fallback.
var triggerPhrase = regexp.MustCompile(`(?i)\b(?:create|add|make|new|set\s+up|schedule|start|remind\s+me\s+to)\b(?:\s+(?:a|an|the|new|another))*(?:\s+(?:task|todo|to-do|reminder|project)\b)?\s*:?`)

var sentenceEnd = regexp.MustCompile(`[.!?]`)

var descriptionAnchors = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bdesc(?:ription)?\s*:\s*`),
	regexp.MustCompile(`(?i)\bdescription\s+is\s+`),
	regexp.MustCompile(`(?i)\b(?:it|this)\s+is\s+(?:about|for)\s+`),
}

// dueAnchors open a due-date phrase.
var dueAnchors = map[string]bool{
	"by":  true,
	"due": true,
	"on":  true,
	"for": true,
}

var priorityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bpriority\s*(?:is|:|=|of)?\s*(low|medium|normal|high|urgent|critical)\b`),
	regexp.MustCompile(`(?i)\b(low|medium|normal|high|urgent|critical)[\s-]+priority\b`),
	regexp.MustCompile(`(?i)\b(urgent|critical|asap)\b`),
}

var projectAnchors = []struct {
	bare    bool
	pattern *regexp.Regexp
}{
	{false, regexp.MustCompile(`(?i)\b(?:in|for|to|under|within)\s+(?:the\s+)?project\s*:?\s*`)},
	{false, regexp.MustCompile(`(?i)\bproject\s*:\s*`)},
	{true, regexp.MustCompile(`(?i)\bin\s+`)},
}

const (
	MsgNeedTaskTitle    = "What should I call the task? Try something like \"add task Buy groceries by Friday\"."
	MsgNeedProjectTitle = "What should the project be called? Try something like \"create project Website Redesign\"."
)
