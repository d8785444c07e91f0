package usecase

import (
	"context"
	"strings"

	"conversational-task-assistant/internal/chat"
	"conversational-task-assistant/internal/model"
	"conversational-task-assistant/internal/reference"
	"conversational-task-assistant/internal/router"
)

var _ chat.UseCase = (*implUseCase)(nil)

// Reply answers one utterance. Only invalid input is an error: store and
// delegate failures are logged and still produce a reply.
func (uc *implUseCase) Reply(ctx context.Context, sc model.Scope, input chat.ReplyInput) (chat.ReplyOutput, error) {
	if sc.UserID == "" {
		return chat.ReplyOutput{}, chat.ErrMissingUser
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return chat.ReplyOutput{}, chat.ErrEmptyMessage
	}
	conversationID := input.ConversationID
	if conversationID == "" {
		conversationID = sc.UserID
	}

	window, err := uc.conversations.RecentTurns(ctx, conversationID, uc.opts.PairCount)
	if err != nil {
		uc.l.Warnf(ctx, "%s: read conversation %s: %v", LogPrefixReply, conversationID, err)
		window = nil
	}

	info := reference.Resolve(window, message)
	c := uc.router.Classify(message, info)
	uc.l.Debugf(ctx, "%s: user=%s intent=%s rule=%s", LogPrefixReply, sc.UserID, c.Intent, c.Rule)

	var res ActionResult
	if c.Intent == router.IntentFallback {
		res = uc.answerFallback(ctx, sc, message)
	} else {
		res = uc.Dispatch(ctx, sc, c, info)
	}

	// An empty record keeps the resolver from re-reading our own reply text.
	mentions := res.Mentions
	if mentions == nil {
		mentions = &model.Mentions{}
	}
	now := uc.now()
	uc.appendTurn(ctx, conversationID, model.Turn{Role: model.RoleUser, Text: message, CreatedAt: now})
	uc.appendTurn(ctx, conversationID, model.Turn{Role: model.RoleAssistant, Text: res.Message, Mentions: mentions, CreatedAt: now})

	return chat.ReplyOutput{
		ConversationID: conversationID,
		Intent:         string(c.Intent),
		Variant:        string(c.Variant),
		Message:        res.Message,
		Success:        res.Success,
		EntityID:       res.EntityID,
		Data:           res.Data,
	}, nil
}

func (uc *implUseCase) appendTurn(ctx context.Context, conversationID string, turn model.Turn) {
	if err := uc.conversations.AppendTurn(ctx, conversationID, turn); err != nil {
		uc.l.Errorf(ctx, "%s: append %s turn to %s: %v", LogPrefixReply, turn.Role, conversationID, err)
	}
}
