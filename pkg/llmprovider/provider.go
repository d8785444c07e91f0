package llmprovider

import "context"

// Provider is one LLM backend the Manager can call.
type Provider interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	// Name returns the provider name, e.g. "gemini".
	Name() string
	Model() string
}

// Request is a provider-neutral text generation request.
type Request struct {
	SystemInstruction *Message
	Messages          []Message
	Temperature       float64
	MaxTokens         int
}

// Message is one conversation turn.
type Message struct {
	Role  string // "user", "assistant", "system"
	Parts []Part
}

type Part struct {
	Text string
}

// Text concatenates the text of every part.
func (m Message) Text() string {
	var n int
	for _, p := range m.Parts {
		n += len(p.Text)
	}
	b := make([]byte, 0, n)
	for _, p := range m.Parts {
		b = append(b, p.Text...)
	}
	return string(b)
}

// Response is a provider-neutral generation response.
type Response struct {
	Content      Message
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
