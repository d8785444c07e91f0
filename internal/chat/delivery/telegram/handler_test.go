package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"conversational-task-assistant/internal/chat"
	"conversational-task-assistant/internal/model"
	pkgLog "conversational-task-assistant/pkg/log"
	pkgTelegram "conversational-task-assistant/pkg/telegram"
)

type sent struct {
	chatID int64
	text   string
}

type mockSender struct {
	mu   sync.Mutex
	sent []sent
}

func (m *mockSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sent{chatID, text})
	return nil
}

type mockUseCase struct {
	mu       sync.Mutex
	gotScope model.Scope
	gotInput chat.ReplyInput
	calls    int
	err      error
}

func (m *mockUseCase) Reply(ctx context.Context, sc model.Scope, input chat.ReplyInput) (chat.ReplyOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.gotScope = sc
	m.gotInput = input
	if m.err != nil {
		return chat.ReplyOutput{}, m.err
	}
	return chat.ReplyOutput{Message: "reply to " + input.Message}, nil
}

const update = `{"update_id":1,"message":{"message_id":7,"from":{"id":42,"first_name":"Sam","username":"sam"},"chat":{"id":99,"type":"private"},"date":0,"text":%q}}`

func setup(secret string) (*gin.Engine, *handler, *mockUseCase, *mockSender) {
	gin.SetMode(gin.TestMode)
	uc := &mockUseCase{}
	bot := &mockSender{}
	h := New(pkgLog.NewNop(), uc, bot, Config{WebhookSecret: secret}).(*handler)

	r := gin.New()
	r.POST("/webhook/telegram", h.HandleWebhook)
	return r, h, uc, bot
}

func deliver(r http.Handler, body, secret string) int {
	req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set(pkgTelegram.SecretTokenHeader, secret)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func message(text string) string {
	return fmt.Sprintf(update, text)
}

func TestHandleWebhook_Reply(t *testing.T) {
	r, h, uc, bot := setup("")

	if code := deliver(r, message("show my tasks"), ""); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	h.Wait()

	if uc.gotScope.UserID != "telegram_42" || uc.gotScope.Username != "sam" {
		t.Errorf("unexpected scope %+v", uc.gotScope)
	}
	if uc.gotInput.ConversationID != "telegram_99" {
		t.Errorf("unexpected conversation %q", uc.gotInput.ConversationID)
	}
	if len(bot.sent) != 1 || bot.sent[0].chatID != 99 || bot.sent[0].text != "reply to show my tasks" {
		t.Errorf("unexpected messages %+v", bot.sent)
	}
}

func TestHandleWebhook_Commands(t *testing.T) {
	tcs := map[string]string{
		"/start":        msgWelcome,
		"/help":         msgHelp,
		"/help@taskbot": msgHelp,
	}

	for text, want := range tcs {
		t.Run(text, func(t *testing.T) {
			r, h, uc, bot := setup("")
			deliver(r, message(text), "")
			h.Wait()

			if uc.calls != 0 {
				t.Errorf("commands must not reach the assistant")
			}
			if len(bot.sent) != 1 || bot.sent[0].text != want {
				t.Errorf("unexpected messages %+v", bot.sent)
			}
		})
	}
}

func TestHandleWebhook_Ignored(t *testing.T) {
	tcs := map[string]string{
		"no message": `{"update_id":1}`,
		"no text":    message(""),
	}

	for name, body := range tcs {
		t.Run(name, func(t *testing.T) {
			r, h, uc, bot := setup("")
			if code := deliver(r, body, ""); code != http.StatusOK {
				t.Fatalf("expected 200, got %d", code)
			}
			h.Wait()
			if uc.calls != 0 || len(bot.sent) != 0 {
				t.Errorf("expected the update to be ignored")
			}
		})
	}
}

func TestHandleWebhook_ReplyFails(t *testing.T) {
	r, h, uc, bot := setup("")
	uc.err = errors.New("boom")

	deliver(r, message("show my tasks"), "")
	h.Wait()

	if len(bot.sent) != 1 || bot.sent[0].text != msgProcessingFailed {
		t.Errorf("expected an apology, got %+v", bot.sent)
	}
}

func TestHandleWebhook_Secret(t *testing.T) {
	r, h, uc, _ := setup("s3cret")

	if code := deliver(r, message("hi"), "wrong"); code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", code)
	}
	if code := deliver(r, message("hi"), ""); code != http.StatusUnauthorized {
		t.Errorf("expected 401 without header, got %d", code)
	}
	if code := deliver(r, message("hi"), "s3cret"); code != http.StatusOK {
		t.Errorf("expected 200, got %d", code)
	}
	h.Wait()
	if uc.calls != 1 {
		t.Errorf("expected one reply, got %d", uc.calls)
	}
}

func TestHandleWebhook_BadJSON(t *testing.T) {
	r, _, _, _ := setup("")
	if code := deliver(r, `{"update_id":`, ""); code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", code)
	}
}
