package llmprovider

import (
	"context"

	"conversational-task-assistant/pkg/deepseek"
	"conversational-task-assistant/pkg/gemini"
	"conversational-task-assistant/pkg/qwen"
)

const (
	providerGemini   = "gemini"
	providerQwen     = "qwen"
	providerDeepSeek = "deepseek"
)

// GeminiAdapter adapts pkg/gemini to the Provider interface.
type GeminiAdapter struct {
	client gemini.IGemini
}

func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider.
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	greq := &gemini.Request{
		Messages:    toGeminiContents(req.Messages),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.SystemInstruction != nil {
		greq.SystemInstruction = req.SystemInstruction.Text()
	}

	resp, err := a.client.GenerateContent(ctx, greq)
	if err != nil {
		return nil, &ProviderError{Provider: providerGemini, Err: err}
	}

	return &Response{
		Content:      fromGeminiContent(resp.Content),
		ProviderName: providerGemini,
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *GeminiAdapter) Name() string {
	return providerGemini
}

func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

// Gemini calls the assistant role "model" and has no system role in contents.
func toGeminiContents(msgs []Message) []gemini.Content {
	out := make([]gemini.Content, 0, len(msgs))
	for _, m := range msgs {
		role := gemini.RoleUser
		if m.Role == "assistant" || m.Role == gemini.RoleModel {
			role = gemini.RoleModel
		}
		parts := make([]gemini.Part, len(m.Parts))
		for i, p := range m.Parts {
			parts[i] = gemini.Part{Text: p.Text}
		}
		out = append(out, gemini.Content{Role: role, Parts: parts})
	}
	return out
}

func fromGeminiContent(c gemini.Content) Message {
	parts := make([]Part, len(c.Parts))
	for i, p := range c.Parts {
		parts[i] = Part{Text: p.Text}
	}
	return Message{Role: "assistant", Parts: parts}
}

// QwenAdapter adapts pkg/qwen to the Provider interface.
type QwenAdapter struct {
	client qwen.IQwen
}

func NewQwenAdapter(client qwen.IQwen) *QwenAdapter {
	return &QwenAdapter{client: client}
}

// GenerateContent implements Provider.
func (a *QwenAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	qreq := &qwen.Request{
		Messages:    make([]qwen.Content, len(req.Messages)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.SystemInstruction != nil {
		sys := toQwenContent(*req.SystemInstruction)
		qreq.SystemInstruction = &sys
	}
	for i, m := range req.Messages {
		qreq.Messages[i] = toQwenContent(m)
	}

	resp, err := a.client.GenerateContent(ctx, qreq)
	if err != nil {
		return nil, &ProviderError{Provider: providerQwen, Err: err}
	}

	out := &Response{
		Content:      Message{Role: "assistant", Parts: make([]Part, len(resp.Content.Parts))},
		ProviderName: providerQwen,
		ModelName:    a.client.Model(),
	}
	for i, p := range resp.Content.Parts {
		out.Content.Parts[i] = Part{Text: p.Text}
	}
	if resp.Usage != nil {
		out.Usage = &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}
	return out, nil
}

func (a *QwenAdapter) Name() string {
	return providerQwen
}

func (a *QwenAdapter) Model() string {
	return a.client.Model()
}

func toQwenContent(m Message) qwen.Content {
	role := qwen.RoleUser
	switch m.Role {
	case "assistant", "model":
		role = qwen.RoleAssistant
	case "system":
		role = qwen.RoleSystem
	}
	parts := make([]qwen.Part, len(m.Parts))
	for i, p := range m.Parts {
		parts[i] = qwen.Part{Text: p.Text}
	}
	return qwen.Content{Role: role, Parts: parts}
}

// DeepSeekAdapter adapts pkg/deepseek to the Provider interface.
type DeepSeekAdapter struct {
	client deepseek.IDeepSeek
}

func NewDeepSeekAdapter(client deepseek.IDeepSeek) *DeepSeekAdapter {
	return &DeepSeekAdapter{client: client}
}

// GenerateContent implements Provider. The system instruction goes first as a system message.
func (a *DeepSeekAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	dreq := &deepseek.Request{
		Messages:    make([]deepseek.Message, 0, len(req.Messages)+1),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.SystemInstruction != nil {
		dreq.Messages = append(dreq.Messages, deepseek.Message{Role: "system", Content: req.SystemInstruction.Text()})
	}
	for _, m := range req.Messages {
		role := "user"
		if m.Role == "assistant" || m.Role == "model" {
			role = "assistant"
		}
		dreq.Messages = append(dreq.Messages, deepseek.Message{Role: role, Content: m.Text()})
	}

	resp, err := a.client.GenerateContent(ctx, dreq)
	if err != nil {
		return nil, &ProviderError{Provider: providerDeepSeek, Err: err}
	}

	content := Message{Role: "assistant"}
	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
		content.Parts = []Part{{Text: resp.Choices[0].Message.Content}}
	}
	model := resp.Model
	if model == "" {
		model = a.client.Model()
	}
	return &Response{
		Content:      content,
		ProviderName: providerDeepSeek,
		ModelName:    model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *DeepSeekAdapter) Name() string {
	return providerDeepSeek
}

func (a *DeepSeekAdapter) Model() string {
	return a.client.Model()
}
