package driven

import "context"

// LLMService is the opaque text-completion service that produces the
// final answer text. The pipeline sends a fixed system instruction
// plus a per-tier user message and expects back plain text; no
// structured fields are required from the service.
//
// Implementations may include:
//   - OpenAI (chat completions)
//   - Ollama (local models via /api/generate)
type LLMService interface {
	// Generate produces a text completion for the given system
	// instruction and user prompt.
	Generate(ctx context.Context, system, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the completion model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}
