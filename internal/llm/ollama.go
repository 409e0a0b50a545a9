package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "llama3.1"
	defaultTimeout     = 120 * time.Second
	pingTimeout        = 8 * time.Second
)

// Ollama talks to a locally reachable Ollama endpoint over its native chat
// API. A single attempt per call, bounded by the configured timeout.
type Ollama struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewOllama creates a client for the given endpoint. Empty arguments fall
// back to the conventional local defaults.
func NewOllama(baseURL, model string, timeout time.Duration, logger *zap.Logger) *Ollama {
	if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL == "" {
		baseURL = defaultOllamaURL
	}
	if model = strings.TrimSpace(model); model == "" {
		model = defaultOllamaModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Ollama{
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Model reports the resolved model name, including applied defaults.
func (o *Ollama) Model() string { return o.model }

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  chatOptions   `json:"options"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// Generate sends the prompt to the /api/chat endpoint and returns the
// textual completion.
func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    o.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
		Options:  chatOptions{Temperature: 0.2, NumPredict: 2000},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %s", ErrUpstream, resp.Status)
	}

	if ct := strings.ToLower(resp.Header.Get("Content-Type")); !strings.Contains(ct, "application/json") {
		return "", fmt.Errorf("%w: unexpected content type %q (is %s really an Ollama endpoint?)", ErrUpstream, ct, o.baseURL)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return "", fmt.Errorf("%w: decode chat response: %v", ErrUpstream, err)
	}

	content := strings.TrimSpace(chat.Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrUpstream)
	}

	if o.logger != nil {
		o.logger.Debug("ollama completion",
			zap.String("model", o.model),
			zap.Duration("duration", time.Since(start)),
			zap.Int("response_bytes", len(content)),
		)
	}

	return content, nil
}

// Ping checks endpoint reachability via the model listing. Endpoints that
// only expose the OpenAI-compatible surface answer 404 on /api/tags, so the
// probe falls back to /v1/models.
func (o *Ollama) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status, err := o.get(ctx, "/api/tags")
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		status, err = o.get(ctx, "/v1/models")
		if err != nil {
			return err
		}
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUpstream, status)
	}
	return nil
}

func (o *Ollama) get(ctx context.Context, path string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return 0, classify(err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
