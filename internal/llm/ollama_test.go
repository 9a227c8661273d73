package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOllama(t *testing.T, handler http.HandlerFunc) *OllamaClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.OllamaURL = server.URL + "/"
	return NewOllamaClient(cfg)
}

func TestOllamaClient_Invoke(t *testing.T) {
	var got ollamaChatRequest
	client := newOllama(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   got.Model,
			Message: ollamaMessage{Role: "assistant", Content: "rewritten resume"},
			Done:    true,
		})
	})

	text, err := client.Invoke(context.Background(), "rewrite this", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "rewritten resume", text)
	assert.Equal(t, "llama3.1", got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "rewrite this", got.Messages[0].Content)
}

func TestOllamaClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, ErrServiceUnavailable},
		{"overloaded", http.StatusTooManyRequests, ``, ErrServiceUnavailable},
		{"bad request", http.StatusBadRequest, `{"error":"model not found"}`, ErrInvalidResponse},
		{"garbage body", http.StatusOK, `not json`, ErrInvalidResponse},
		{"empty completion", http.StatusOK, `{"message":{"role":"assistant","content":"  "},"done":true}`, ErrInvalidResponse},
		{"error field", http.StatusOK, `{"error":"context length exceeded"}`, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newOllama(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Invoke(context.Background(), "prompt", time.Second)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
		})
	}
}

func TestOllamaClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	client := newOllama(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})

	_, err := client.Invoke(context.Background(), "prompt", 50*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout), "got %v", err)
}

func TestOllamaClient_ParentCancelled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	client := newOllama(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	_, err := client.Invoke(ctx, "prompt", 5*time.Second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)

	var invokeErr *InvokeError
	assert.False(t, errors.As(err, &invokeErr), "cancellation is not an invoker failure")
}

func TestOllamaClient_Unreachable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OllamaURL = "http://127.0.0.1:1"
	client := NewOllamaClient(cfg)

	_, err := client.Invoke(context.Background(), "prompt", time.Second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrServiceUnavailable), "got %v", err)
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(context.Background(), nil)
	require.NoError(t, err)
	assert.IsType(t, &OllamaClient{}, client)
	assert.NoError(t, client.Close())

	_, err = NewClient(context.Background(), &Config{Provider: ProviderGemini, GeminiModel: "gemini-2.5-flash"})
	assert.Error(t, err, "gemini requires an API key")

	_, err = NewClient(context.Background(), &Config{Provider: "mystery"})
	assert.Error(t, err)
}
