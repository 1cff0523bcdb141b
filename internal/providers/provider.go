package providers

import (
	"context"
	"fmt"
)

// Request contains the data sent to an LLM backend for one review call.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// Response contains the raw reply from an LLM backend. Content is either the
// reply text or, for backends that wrap their replies, a decoded envelope
// object; the review pipeline unwraps it.
type Response struct {
	Content    any
	TokensUsed int
}

// Gateway is the provider abstraction: send one prompt, receive one reply.
// A failed call surfaces as a single error with no partial side effects.
type Gateway interface {
	Send(ctx context.Context, req Request) (Response, error)
	Name() string
}

// New creates a gateway by provider name.
func New(provider, model string) (Gateway, error) {
	switch provider {
	case "anthropic":
		return NewAnthropic(model)
	case "openai":
		return NewOpenAI(model)
	case "gemini", "google":
		return NewGemini(model)
	case "ollama", "lmstudio":
		return NewOllama(model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
