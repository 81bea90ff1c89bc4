package driven

import "context"

// LLMService produces text completions for answer generation.
// The core treats it as opaque: prompt in, text out. Retry policy, if
// any, belongs to the adapter, not the core.
//
// Implementations may include:
//   - OpenRouter (any hosted chat model)
//   - Ollama (local models)
type LLMService interface {
	// Generate produces a text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
