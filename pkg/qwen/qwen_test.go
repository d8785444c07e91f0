package qwen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNew_Validate(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error without API key")
	}

	c, err := New(Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Model() != DefaultModel {
		t.Errorf("expected default model, got %s", c.Model())
	}
}

func TestGenerateContent(t *testing.T) {
	var got openAIRequest
	var gotPath, gotAuth string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "You have 3 tasks."}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 20, "completion_tokens": 5, "total_tokens": 25}
		}`))
	}))
	defer ts.Close()

	c, err := New(Config{APIKey: "secret", Model: "qwen-test", BaseURL: ts.URL + "/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := c.GenerateContent(context.Background(), &Request{
		SystemInstruction: &Content{Parts: []Part{{Text: "be brief"}}},
		Messages: []Content{
			{Role: RoleUser, Parts: []Part{{Text: "how many"}, {Text: "tasks?"}}},
		},
		MaxTokens: 64,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/chat/completions" || gotAuth != "Bearer secret" {
		t.Errorf("unexpected endpoint %s auth=%s", gotPath, gotAuth)
	}
	if got.Model != "qwen-test" || got.MaxTokens != 64 || len(got.Messages) != 2 {
		t.Fatalf("unexpected request %+v", got)
	}
	if got.Messages[0].Role != RoleSystem || got.Messages[0].Content != "be brief" {
		t.Errorf("system message not first: %+v", got.Messages[0])
	}
	if got.Messages[1].Content != "how many\ntasks?" {
		t.Errorf("parts not joined: %q", got.Messages[1].Content)
	}
	if len(resp.Content.Parts) != 1 || resp.Content.Parts[0].Text != "You have 3 tasks." {
		t.Errorf("unexpected content %+v", resp.Content)
	}
	if resp.FinishReason != "stop" || resp.Usage.TotalTokens != 25 {
		t.Errorf("unexpected metadata %+v", resp)
	}
}

func TestGenerateContent_Errors(t *testing.T) {
	tcs := map[string]struct {
		status    int
		body      string
		want      string
		temporary bool
	}{
		"throttled":   {http.StatusTooManyRequests, `{"error":{"code":"Throttling","message":"slow down"}}`, "API error 429 (Throttling): slow down", true},
		"bad key":     {http.StatusUnauthorized, `{"error":{"code":"invalid_api_key","message":"bad key"}}`, "API error 401", false},
		"plain text":  {http.StatusBadGateway, `upstream down`, "API error 502: upstream down", true},
		"bad payload": {http.StatusOK, `not json`, "failed to decode", false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			c, _ := New(Config{APIKey: "k", BaseURL: ts.URL})
			_, err := c.GenerateContent(context.Background(), &Request{})
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
			apiErr, ok := err.(*APIError)
			if ok != (tc.status != http.StatusOK) {
				t.Fatalf("unexpected error type %T", err)
			}
			if ok && apiErr.Temporary() != tc.temporary {
				t.Errorf("Temporary() = %v, want %v", apiErr.Temporary(), tc.temporary)
			}
		})
	}
}

func TestGenerateContent_NoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer ts.Close()

	c, _ := New(Config{APIKey: "k", BaseURL: ts.URL})
	resp, err := c.GenerateContent(context.Background(), &Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Content.Parts) != 0 || resp.Usage == nil {
		t.Errorf("unexpected response %+v", resp)
	}
}
