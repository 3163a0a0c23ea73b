package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// TokenHandler receives streamed tokens. Returning an error stops the stream;
// generation is backpressured by how fast the handler returns.
type TokenHandler func(token string) error

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any text-generation backend.
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method).
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// ChatStream streams the response token-by-token through onToken.
	ChatStream(ctx context.Context, history []Message, onToken TokenHandler, options ...Option) error

	// GenerateJSON constrains generation to a JSON document and returns the
	// raw text; callers own schema validation.
	GenerateJSON(ctx context.Context, prompt string, options ...Option) (string, error)
}
