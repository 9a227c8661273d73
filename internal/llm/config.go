// Package llm provides the model invoker boundary and its provider adapters.
package llm

import "time"

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOllama is a locally hosted Ollama server
	ProviderOllama Provider = "ollama"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	OllamaURL   string
	OllamaModel string
	GeminiModel string
	APIKey      string
	Temperature float32
	// HTTPTimeout bounds a single HTTP exchange with Ollama; the per-call
	// invocation timeout still applies on top of it.
	HTTPTimeout time.Duration
}

// DefaultConfig returns the default configuration (local Ollama)
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderOllama,
		OllamaURL:   "http://localhost:11434",
		OllamaModel: "llama3.1",
		GeminiModel: "gemini-2.5-flash",
		Temperature: 0.2,
		HTTPTimeout: 10 * time.Minute,
	}
}

// Model returns the model name used by the configured provider
func (c *Config) Model() string {
	if c.Provider == ProviderGemini {
		return c.GeminiModel
	}
	return c.OllamaModel
}
