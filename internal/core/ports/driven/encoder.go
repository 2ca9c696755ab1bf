package driven

import "context"

// Encoder converts free text into a fixed-length numeric vector.
// The same encoder instance must be used for documents and queries so
// that both live in the same embedding space.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//   - A local TF-IDF vectoriser fitted on the corpus (offline mode)
type Encoder interface {
	// Encode generates a vector embedding for the given text.
	Encode(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int

	// ModelName returns the name of the encoding model being used.
	ModelName() string

	// Ping validates the encoder is usable with a lightweight check.
	// The index builder calls this once before committing to encode
	// the whole corpus.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
