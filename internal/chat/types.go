package chat

// ReplyInput is one utterance from the user.
// ConversationID defaults to the user id when empty.
type ReplyInput struct {
	ConversationID string
	Message        string
}

// ReplyOutput is the assistant's answer to one utterance.
type ReplyOutput struct {
	ConversationID string `json:"conversation_id"`
	Intent         string `json:"intent"`
	Variant        string `json:"variant,omitempty"`
	Message        string `json:"message"`
	Success        bool   `json:"success"`
	EntityID       string `json:"entity_id,omitempty"`
	Data           any    `json:"data,omitempty"`
}
