package http

import (
	"strings"

	"conversational-task-assistant/internal/chat"
	"conversational-task-assistant/internal/model"
)

type sendMessageReq struct {
	UserID         string `json:"user_id"         binding:"required,max=128"`
	ConversationID string `json:"conversation_id" binding:"max=128"`
	Message        string `json:"message"         binding:"required,max=4000"`
}

func (r sendMessageReq) toScope() model.Scope {
	return model.Scope{UserID: strings.TrimSpace(r.UserID)}
}

func (r sendMessageReq) toInput() chat.ReplyInput {
	return chat.ReplyInput{
		ConversationID: strings.TrimSpace(r.ConversationID),
		Message:        r.Message,
	}
}
