package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAICompat covers endpoints that expose only the OpenAI chat-completion
// surface, including Ollama's /v1 routes and hosted gateways.
type OpenAICompat struct {
	model   string
	timeout time.Duration
	opts    []option.RequestOption
}

// NewOpenAICompat creates a client for an OpenAI-compatible endpoint. The
// API key may be empty for local endpoints that ignore authentication.
func NewOpenAICompat(baseURL, apiKey, model string, timeout time.Duration) (*OpenAICompat, error) {
	if model = strings.TrimSpace(model); model == "" {
		return nil, errors.New("openai-compatible backend requires a model identifier")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := []option.RequestOption{option.WithAPIKey(strings.TrimSpace(apiKey))}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAICompat{model: model, timeout: timeout, opts: opts}, nil
}

// Generate sends the prompt as a single user message and returns the first
// choice's content.
func (c *OpenAICompat) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client := openai.NewClient(c.opts...)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrUpstream)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrUpstream)
	}
	return content, nil
}
