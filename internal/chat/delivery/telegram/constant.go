package telegram

const (
	commandStart = "/start"
	commandHelp  = "/help"

	msgWelcome = "👋 Hi! I'm your task assistant.\n\n" +
		"Ask me about your tasks and projects in plain words, for example:\n" +
		"• show my tasks due this week\n" +
		"• what's overdue?\n" +
		"• mark the report task as done\n\n" +
		"Send /help to see everything I can do."

	msgHelp = "Here's what I can do:\n" +
		"• List tasks: \"show my tasks\", \"tasks in Home\", \"high priority tasks\"\n" +
		"• Search: \"find tasks about rent\"\n" +
		"• Complete: \"mark Buy milk as done\", \"complete all overdue tasks\"\n" +
		"• Delete: \"delete the groceries task\", \"delete project Home\"\n" +
		"• Stats: \"how am I doing?\", \"project stats\"\n\n" +
		"New tasks and projects are created in the app."

	msgProcessingFailed = "Something went wrong while handling your message. Please try again."
)
