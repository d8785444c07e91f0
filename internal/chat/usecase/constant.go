package usecase

// Log prefixes
const (
	LogPrefixReply    = "internal.chat.usecase.Reply"
	LogPrefixDispatch = "internal.chat.usecase.Dispatch"
	LogPrefixFallback = "internal.chat.usecase.Fallback"
)

const (
	bullet       = "• "
	dueLayout    = "Mon, Jan 2"
	recentTitles = 5
)

var gratitudeReplies = []string{
	"You're welcome! 😊",
	"Happy to help!",
	"Anytime! Let me know if you need anything else.",
	"No problem at all.",
	"Glad I could help!",
}

var wellbeingReplies = []string{
	"I'm doing great, thanks for asking! How can I help with your tasks today?",
	"All good here and ready to help. What would you like to look at?",
	"I'm well, thank you! Want to see what's on your plate?",
}

var casualGreetings = []string{
	"Hey there! 👋",
	"Hi! 👋",
	"Hey! Good to see you.",
}

var formalGreetings = []string{
	"Hello! How can I assist you today?",
	"Hello, good to see you.",
	"Greetings! How may I help?",
}

var farewellReplies = []string{
	"Goodbye! Have a productive day.",
	"See you later! 👋",
	"Bye! Your tasks will be waiting for you.",
	"Take care!",
}

var unclearReplies = []string{
	"I'm not sure what you mean. You can ask me things like:\n" +
		bullet + "\"show my tasks\"\n" +
		bullet + "\"what's due today?\"\n" +
		bullet + "\"mark Buy groceries as done\"\n" +
		bullet + "\"show my stats\"",
	"Could you say a bit more? I can list your tasks and projects, show statistics, " +
		"search tasks, or mark a task as done.",
	"Hmm, I didn't catch that. Try \"list my projects\", \"search report\" or \"dashboard\".",
}

var updateRefusals = []string{
	"I can't edit tasks or projects from chat yet. Please open it in the app to change its details.",
	"Editing isn't available in chat. You can update it from the task list in the app.",
}

const (
	msgCreateTaskRefused    = "I can't create tasks from chat. Please use the New Task form in the app"
	msgCreateProjectRefused = "I can't create projects from chat. Please use the New Project form in the app"
	msgDraftReady           = "; I've filled in what I understood."
	msgFallbackUnavailable  = "I can only help with your tasks and projects. Try \"show my tasks\" or \"help\"."
	msgNotSureWhich         = "I'm not sure which one you mean. Could you tell me the name?"
	msgBulkComplete         = "I can only mark one task as complete at a time. Which task did you finish?"
	msgBulkDeleteTask       = "I can only delete one task at a time. Which task should I delete?"
	msgBulkDeleteProject    = "I can only delete one project at a time. Which project should I delete?"
)
