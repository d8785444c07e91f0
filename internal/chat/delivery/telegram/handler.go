package telegram

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"conversational-task-assistant/internal/chat"
	"conversational-task-assistant/internal/model"
	pkgResponse "conversational-task-assistant/pkg/response"
	pkgTelegram "conversational-task-assistant/pkg/telegram"
)

var errBadSecret = errors.New("invalid webhook secret")

// HandleWebhook answers Telegram right away and replies to the message in the background,
// since a store or fallback call may outlast Telegram's webhook timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if h.secret != "" {
		got := c.GetHeader(pkgTelegram.SecretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
			h.l.Warnf(ctx, "internal.chat.delivery.telegram.HandleWebhook: %v", errBadSecret)
			pkgResponse.Unauthorized(c)
			return
		}
	}

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "internal.chat.delivery.telegram.HandleWebhook: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.From == nil || strings.TrimSpace(msg.Text) == "" {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()

		bgCtx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "internal.chat.delivery.telegram.processMessage: %v", err)
			_ = h.bot.SendMessage(bgCtx, msg.Chat.ID, msgProcessingFailed)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

func (h *handler) Wait() {
	h.wg.Wait()
}

func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	text := strings.TrimSpace(msg.Text)

	switch command(text) {
	case commandStart:
		return h.bot.SendMessage(ctx, msg.Chat.ID, msgWelcome)
	case commandHelp:
		return h.bot.SendMessage(ctx, msg.Chat.ID, msgHelp)
	}

	sc := model.Scope{
		UserID:   fmt.Sprintf("telegram_%d", msg.From.ID),
		Username: msg.From.DisplayName(),
	}
	out, err := h.uc.Reply(ctx, sc, chat.ReplyInput{
		ConversationID: fmt.Sprintf("telegram_%d", msg.Chat.ID),
		Message:        text,
	})
	if err != nil {
		return fmt.Errorf("reply: %w", err)
	}

	return h.bot.SendMessage(ctx, msg.Chat.ID, out.Message)
}

// command returns the bot command in text without any @botname suffix, or "".
func command(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	cmd := strings.Fields(text)[0]
	if at := strings.IndexByte(cmd, '@'); at > 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd)
}
