package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OllamaClient invokes a model through the Ollama chat API
type OllamaClient struct {
	BaseURL     string
	ModelName   string
	Temperature float32
	Client      *http.Client
}

var _ Client = (*OllamaClient)(nil)

// NewOllamaClient creates an Ollama client from configuration
func NewOllamaClient(config *Config) *OllamaClient {
	timeout := config.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &OllamaClient{
		BaseURL:     strings.TrimRight(config.OllamaURL, "/"),
		ModelName:   config.OllamaModel,
		Temperature: config.Temperature,
		Client:      &http.Client{Timeout: timeout},
	}
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
	Error   string        `json:"error,omitempty"`
}

// Invoke sends prompt as a single user message and returns the reply
func (o *OllamaClient) Invoke(ctx context.Context, prompt string, timeout time.Duration) (string, error) {
	callCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(ollamaChatRequest{
		Model:    o.ModelName,
		Messages: []ollamaMessage{{Role: "user", Content: prompt}},
		Stream:   false,
		Options:  &ollamaOptions{Temperature: o.Temperature},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, o.BaseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		if ctxErr := contextFailure(ctx, callCtx, err); ctxErr != nil {
			return "", ctxErr
		}
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "", timeoutError("ollama request timed out", err)
		}
		return "", unavailableError("ollama request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := contextFailure(ctx, callCtx, err); ctxErr != nil {
			return "", ctxErr
		}
		return "", unavailableError("read response", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return "", unavailableError(fmt.Sprintf("ollama status %d: %s", resp.StatusCode, truncate(body)), nil)
	case resp.StatusCode != http.StatusOK:
		return "", invalidResponseError(fmt.Sprintf("ollama status %d: %s", resp.StatusCode, truncate(body)), nil)
	}

	var chat ollamaChatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return "", invalidResponseError("unmarshal response", err)
	}
	if chat.Error != "" {
		return "", invalidResponseError(chat.Error, nil)
	}
	if strings.TrimSpace(chat.Message.Content) == "" {
		return "", invalidResponseError("empty completion", nil)
	}
	return chat.Message.Content, nil
}

// Close is a no-op; the HTTP client holds no dedicated resources
func (o *OllamaClient) Close() error {
	return nil
}

func truncate(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
