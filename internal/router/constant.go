package router

import "regexp"

// Log prefixes
const (
	LogPrefixClassify = "internal.router.Classify"
)

func re(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + pattern)
}

// Leading and trailing politeness that carries no intent.
var (
	politePrefix = re(`^(?:please|pls|plz|kindly|can you|can u|could you|would you|will you|i want to|i'd like to|i would like to|i need to|let's|lets|go ahead and|just)\s+`)
	politeSuffix = re(`\s+(?:please|pls|plz|for me|thanks|thank you)$`)
)

// Small talk
var (
	gratitudePatterns = []*regexp.Regexp{
		re(`^(?:thanks|thank you|thank u|thx|thnx|ty|tysm|cheers|much appreciated|appreciate it|many thanks)(?:\s+(?:so much|a lot|a bunch|again|very much|man|buddy|mate|for (?:the|your) help))?$`),
		re(`^(?:great|awesome|perfect|nice|cool|ok|okay),?\s+(?:thanks|thank you|thx)$`),
	}
	// gratitudePrefix is thanks followed by chatter, as in "thanks, that helps".
	gratitudePrefix = re(`^(?:thanks|thank you|thank u|thx|thnx|ty|tysm|cheers|much appreciated|appreciate it|many thanks)(?:\s+(?:so much|a lot|a bunch|again|very much))?(?:[,!.;:]|\s+for\b)`)
	// actionWords keep "thanks, delete Pay rent" out of small talk.
	actionWords = re(`\b(?:create|add|make|new|remind|update|edit|rename|change|complete|finish|mark|close|delete|remove|drop|cancel|show|list|display|search|find|stats|statistics|dashboard|how\s+many|what|which)\b`)
	wellbeingPatterns = []*regexp.Regexp{
		re(`\bhow\s+(?:are|r)\s+(?:you|u|ya)\b`),
		re(`\bhow(?:'s|\s+is)\s+it\s+going\b`),
		re(`\bhow\s+have\s+you\s+been\b`),
		re(`\bhow\s+are\s+things\b`),
		re(`\bhow\s+do\s+you\s+do\b`),
	}
	greetingPattern = re(`^(hi|hello|hey|hiya|howdy|yo|sup|greetings|good\s+(?:morning|afternoon|evening|day))(?:\s+(?:there|assistant|bot|everyone|all|friend))?$`)
	farewellPatterns = []*regexp.Regexp{
		re(`^(?:bye|bye bye|goodbye|good\s*bye|later|cya|ciao|good\s*night|take care|see\s+(?:you|ya)(?:\s+(?:later|soon|tomorrow))?)(?:\s+(?:then|now|for now))?$`),
		re(`^have\s+a\s+(?:good|nice|great)\s+(?:day|night|one|evening|weekend)$`),
		re(`^(?:that'?s\s+all|i'?m\s+done|i\s+am\s+done)\s+for\s+(?:now|today)$`),
	}
)

// formalGreetings decide the greeting register by the leading token.
var formalGreetings = map[string]bool{
	"hello":     true,
	"greetings": true,
	"good":      true,
}

// Creation and update refusals
var (
	createProjectPatterns = []*regexp.Regexp{
		re(`\b(?:create|add|make|start|set\s+up|begin)\s+(?:(?:a|an|the|new|another|one\s+more)\s+)*project\b`),
		re(`\bnew\s+project\b`),
	}
	createTaskPatterns = []*regexp.Regexp{
		re(`\b(?:create|add|make|set\s+up|schedule)\s+(?:(?:a|an|the|new|another|one\s+more)\s+)*(?:task|todo|to-do|reminder)\b`),
		re(`\bnew\s+(?:task|todo|to-do)\b`),
		re(`^remind\s+me\s+to\b`),
		re(`^add\s+\S`),
		re(`^task\s*:`),
	}
	updatePatterns = []*regexp.Regexp{
		re(`\b(?:update|modify|edit|change|rename|reschedule|postpone|move)\b.*\b(?:task|project)s?\b`),
		re(`\b(?:task|project)s?\b.*\b(?:update|modify|edit|change|rename|reschedule|postpone)\b`),
	}
)

// Completion. Object captures run to the end of the cleaned utterance.
var (
	completeAllOverduePatterns = []*regexp.Regexp{
		re(`\b(?:complete|finish|mark|close|clear)\s+(?:off\s+)?(?:all|every|each)\s+(?:(?:of\s+)?(?:my|the)\s+)?overdue\b`),
		re(`\ball\s+(?:my\s+)?overdue\s+(?:tasks\s+)?(?:are\s+)?(?:done|complete|completed|finished)\b`),
	}
	completePatterns = []*regexp.Regexp{
		re(`^mark\s+(.+)\s+as\s+(?:done|complete|completed|finished)$`),
		re(`^mark\s+(?:as\s+)?(?:done|complete|completed|finished)$`),
		re(`^mark\s+(.+)\s+(?:done|complete|completed|finished)$`),
		re(`^(?:complete|finish|close)\s+(.+)$`),
		re(`^(?:check|tick|cross)\s+off\s+(.+)$`),
		re(`^(?:i|i've|i\s+have|i\s+just|i've\s+just|i\s+have\s+just|just)\s+(?:finished|completed|done|did)\s+(?:with\s+)?(.+)$`),
		re(`^done\s+with\s+(.+)$`),
		re(`^(.+)\s+(?:is|are)\s+(?:done|complete|completed|finished)$`),
		re(`^(?:i'?m\s+|i\s+am\s+|all\s+|it'?s\s+|that'?s\s+)?(?:done|finished|complete|completed)$`),
	}
)

// Deletion
var (
	deleteProjectPatterns = []*regexp.Regexp{
		re(`^(?:delete|remove|drop|trash|erase|get\s+rid\s+of)\s+(?:the\s+|my\s+)?project\b\s*:?\s*(.*)$`),
		re(`^(?:delete|remove|drop|trash|erase|get\s+rid\s+of)\s+(?:the\s+|my\s+)?(.+)\s+project$`),
	}
	deleteTaskPatterns = []*regexp.Regexp{
		re(`^(?:delete|remove|drop|trash|erase|cancel|get\s+rid\s+of)\s+(?:the\s+|my\s+)?task\b\s*:?\s*(.*)$`),
		re(`^(?:delete|remove|drop|trash|erase|cancel|get\s+rid\s+of)\s+(.*)$`),
		re(`^(?:delete|remove)$`),
	}
	bulkDeletePatterns = []*regexp.Regexp{
		re(`^(?:delete|remove|drop|trash|erase|cancel|clear|get\s+rid\s+of)\s+(?:all|every|each|everything)\b`),
		re(`^(?:delete|remove|drop|trash|erase|cancel|clear|get\s+rid\s+of)\s+(?:the\s+|my\s+)?(?:\S+\s+)?(?:tasks|projects)$`),
	}
)

// Objects that name a question or a group rather than one task.
var (
	questionObject = re(`^(?:how\s+many|which|what|whose|are\s+all|is\s+any)\b`)
	groupObject    = re(`^(?:all|every|each|everything|any)\b|\b(?:tasks|projects)$`)
	namedObject    = re(`^(?:the\s+|my\s+)?(?:task|project)\s*:?\s`)
	projectsObject = re(`\bprojects$`)
)

// Statistics, general first.
var (
	statsGeneralPatterns = []*regexp.Regexp{
		re(`\b(?:overall|general|all)\s+(?:stats|statistics|summary|progress|numbers)\b`),
		re(`\bmy\s+(?:stats|statistics|progress|productivity|numbers)\b`),
		re(`\bhow\s+am\s+i\s+doing\b`),
		re(`\bproductivity\b`),
		re(`^(?:stats|statistics)$`),
	}
	statsTaskPatterns = []*regexp.Regexp{
		re(`\btasks?\s+(?:stats|statistics|summary|breakdown|metrics)\b`),
		re(`\b(?:stats|statistics|summary|breakdown)\s+(?:for|on|about|of)\s+(?:my\s+)?tasks\b`),
		re(`\bhow\s+many\s+tasks\b`),
		re(`\bcompletion\s+rate\b`),
	}
	statsProjectPatterns = []*regexp.Regexp{
		re(`\bprojects?\s+(?:stats|statistics|summary|breakdown|metrics|progress)\b`),
		re(`\b(?:stats|statistics|summary|breakdown)\s+(?:for|on|about|of)\s+(?:my\s+)?projects\b`),
		re(`\bhow\s+many\s+projects\b`),
	}
	statsCatchAll = re(`\b(?:stats|statistics)\b`)
)

// Listings
var (
	bothKinds = re(`\b(?:tasks\s+and\s+projects|projects\s+and\s+tasks)\b`)

	listTaskPatterns = []*regexp.Regexp{
		re(`\b(?:show|list|display|view|see|get|give|what\s+are|what're)\b.*\btasks?\b`),
		re(`^(?:my\s+|all\s+)?(?:(?:pending|open|completed|finished|done|overdue|urgent)\s+)?tasks$`),
		re(`\b(?:what|which)\s+tasks\b`),
		re(`\bwhat(?:'s|\s+is)\s+(?:due|overdue|pending|left|on\s+my\s+plate)\b`),
		re(`\bwhat\s+do\s+i\s+have\s+(?:to\s+do|due)\b`),
		re(`\bto-?do\s+list\b`),
	}
	listProjectPatterns = []*regexp.Regexp{
		re(`\b(?:show|list|display|view|see|get|give|what\s+are|what're|which)\b.*\bprojects\b`),
		re(`^(?:my\s+|all\s+)?projects$`),
		re(`\bproject\s+list\b`),
	}
	dashboardPatterns = []*regexp.Regexp{
		re(`\bdashboard\b`),
		re(`\boverview\b`),
		re(`\b(?:daily\s+)?(?:briefing|agenda)\b`),
		re(`\bplan\s+for\s+(?:today|the\s+day)\b`),
		re(`\bmy\s+day\b`),
	}
	searchPatterns = []*regexp.Regexp{
		re(`^(?:search|find|look\s+for|look\s+up|lookup)\s+(?:for\s+)?(?:(?:my\s+)?tasks?\s+)?(?:about|with|containing|matching|mentioning|named|called|titled|for)?\s*(.+)$`),
		re(`\btasks?\s+(?:about|containing|matching|mentioning)\s+(.+)$`),
	}
	inventoryPatterns = []*regexp.Regexp{
		re(`\binventory\b`),
		re(`\beverything\s+i\s+have\b`),
		re(`\bwhat\s+do\s+i\s+have\b`),
		re(`\ball\s+my\s+(?:stuff|things|items)\b`),
		bothKinds,
	}
)

// List filters
var (
	filterCompleted  = re(`\b(?:completed|done|finished|closed)\b`)
	filterInProgress = re(`\bin[\s-]+progress\b`)
	filterPending    = re(`\b(?:pending|open|incomplete|unfinished|remaining|outstanding|todo)\b`)
	filterOverdue    = re(`\b(?:overdue|late|past\s+due)\b`)
	filterToday      = re(`\btoday\b`)
	filterWeek       = re(`\b(?:this|the|next)\s+week\b`)
)

// This-reference and unclear input
var (
	thisReferencePattern = re(`^(?:(?:number\s+|#|no\.?\s*)?([1-7])|(?:the\s+)?(first|second|third|fourth|fifth|sixth|seventh|last)(?:\s+(?:one|task|project))?|(?:this|that|the)\s+(?:one|task|project)|this|that|(?:this|that)\s+one\s+please|yes,?\s+(?:this|that)\s+one)$`)

	fillerPattern      = re(`^(?:h+m+|u+h+|u+m+|e+r+|a+h+|o+h+|huh|meh|eh|lol|idk|hmm+|what|wut|\?+|\.+|!+)$`)
	punctuationPattern = regexp.MustCompile(`^[\p{P}\p{S}\s]*$`)
)

var ordinals = map[string]int{
	"first":   0,
	"second":  1,
	"third":   2,
	"fourth":  3,
	"fifth":   4,
	"sixth":   5,
	"seventh": 6,
	"last":    -1,
}

// pronounObjects stand for "whatever we were just talking about".
var pronounObjects = map[string]bool{
	"it": true, "this": true, "that": true, "them": true, "one": true,
	"this one": true, "that one": true, "the one": true,
	"this task": true, "that task": true, "the task": true,
	"this project": true, "that project": true, "the project": true,
	"task": true, "project": true, "a task": true,
}
