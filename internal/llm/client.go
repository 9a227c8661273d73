package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Invoker sends a prompt to a text completion service and returns the candidate text.
// Implementations never retry. Failures are *InvokeError values; cancellation of
// the caller's context is returned as the context error.
type Invoker interface {
	Invoke(ctx context.Context, prompt string, timeout time.Duration) (string, error)
}

// Client is an Invoker holding provider resources
type Client interface {
	Invoker
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config)
	case ProviderOllama, "":
		return NewOllamaClient(config), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// withTimeout derives the invocation context. A non-positive timeout only
// inherits the parent deadline.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// contextFailure maps an error seen after the invocation context ended.
// It returns nil when the context is still live.
func contextFailure(parent, call context.Context, err error) error {
	if parent.Err() != nil {
		return parent.Err()
	}
	if errors.Is(call.Err(), context.DeadlineExceeded) {
		return timeoutError("no response before deadline", err)
	}
	return nil
}
