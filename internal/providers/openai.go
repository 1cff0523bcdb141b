package providers

import (
	"context"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI implements the Gateway interface using the go-openai chat
// completions client. OPENAI_BASE_URL redirects it at OpenAI-compatible
// servers.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a new OpenAI gateway.
func NewOpenAI(model string) (*OpenAI, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}
	cfg := openai.DefaultConfig(key)
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Send(ctx context.Context, req Request) (Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	chatReq := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		MaxTokens: maxTokens,
	}
	if req.Temperature > 0 {
		chatReq.Temperature = float32(req.Temperature)
	}

	var resp Response
	err := retryWithBackoff(ctx, 3, func() error {
		out, err := o.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return classifyOpenAIError(err)
		}
		if len(out.Choices) == 0 {
			return errors.New("no choices in response")
		}
		resp = Response{
			Content:    out.Choices[0].Message.Content,
			TokensUsed: out.Usage.TotalTokens,
		}
		return nil
	})

	return resp, err
}

// classifyOpenAIError maps go-openai API errors onto the shared retry
// taxonomy so 429s back off and auth failures stop immediately.
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 429:
			return &rateLimitError{retryable: true}
		case 401, 403:
			return &authError{message: apiErr.Message}
		}
	}
	return err
}
