package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

var _ Client = (*GeminiClient)(nil)

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config.GeminiModel == "" {
		return nil, fmt.Errorf("gemini model is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Invoke generates text content for prompt
func (c *GeminiClient) Invoke(ctx context.Context, prompt string, timeout time.Duration) (string, error) {
	callCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	model := c.client.GenerativeModel(c.config.GeminiModel)
	model.SetTemperature(c.config.Temperature)

	resp, err := model.GenerateContent(callCtx, genai.Text(prompt))
	if err != nil {
		if ctxErr := contextFailure(ctx, callCtx, err); ctxErr != nil {
			return "", ctxErr
		}
		return "", classifyGeminiError(err)
	}

	return extractTextFromResponse(resp)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// classifyGeminiError maps API failures onto invoker error kinds
func classifyGeminiError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return invalidResponseError("response blocked", err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError {
			return unavailableError("gemini unavailable", err)
		}
		return invalidResponseError(fmt.Sprintf("gemini status %d", apiErr.Code), err)
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.DeadlineExceeded:
			return timeoutError("gemini deadline exceeded", err)
		case codes.Unavailable, codes.ResourceExhausted, codes.Internal, codes.Aborted:
			return unavailableError("gemini unavailable", err)
		case codes.Unknown:
			return unavailableError("gemini request failed", err)
		default:
			return invalidResponseError(fmt.Sprintf("gemini rejected request: %s", st.Code()), err)
		}
	}

	return unavailableError("gemini request failed", err)
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", invalidResponseError("no candidates in response", nil)
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", invalidResponseError("no content in response", nil)
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	text := strings.Join(parts, "")
	if strings.TrimSpace(text) == "" {
		return "", invalidResponseError("no text parts in response", nil)
	}
	return text, nil
}
