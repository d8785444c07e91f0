package reference

import "regexp"

// referencingWords are matched as plain substrings of the lowercased utterance.
var referencingWords = []string{
	"it", "this", "that", "these", "those", "them", "one",
	"first", "second", "third", "fourth", "fifth", "sixth", "seventh", "last",
	"the task", "the project",
}

var (
	completionWords = []string{"mark", "complete", "done", "finish"}
	deletionWords   = []string{"delete", "remove"}
)

var (
	bulletLine        = regexp.MustCompile(`^\s*(?:[•\-*]|\d+[.)])\s+(.+)$`)
	trailingNote      = regexp.MustCompile(`\s*[(\[].*$`)
	statusSuffix      = regexp.MustCompile(`(?i)\s+-\s+status:.*$`)
	quotedTask        = regexp.MustCompile(`(?i)\btask\s+["“']([^"”']+)["”']`)
	quotedProject     = regexp.MustCompile(`(?i)\bproject\s+["“']([^"”']+)["”']`)
	disambiguationAsk = regexp.MustCompile(`(?i)\bwhich\s+(task|project|one)\b`)
)
