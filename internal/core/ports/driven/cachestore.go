package driven

import "context"

// EmbeddingCacheStore persists the document embedding matrix between
// runs so the corpus does not have to be re-encoded at every startup.
//
// The cache is a weak fingerprint: it records only the document count,
// so content edits at constant count are not detected. Callers must
// treat any load error, malformed record, or count mismatch as a cache
// miss and recompute.
type EmbeddingCacheStore interface {
	// Load returns the cached embedding matrix and the document count
	// recorded when it was saved.
	Load(ctx context.Context) ([][]float32, int, error)

	// Save replaces the cached matrix atomically with the given
	// vectors, document count, and encoder model name.
	Save(ctx context.Context, vectors [][]float32, count int, model string) error

	// Close releases resources.
	Close() error
}
