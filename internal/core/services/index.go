package services

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/custodia-labs/advisor-cli/internal/core/domain"
	"github.com/custodia-labs/advisor-cli/internal/core/ports/driven"
	"github.com/custodia-labs/advisor-cli/internal/logger"
)

// EmbeddingIndex pairs the ordered document sequence with its
// embedding matrix. Row i of the matrix always corresponds to
// document i; every append touches both under one write lock.
//
// Reads (query encoding and similarity scoring) are safe to run
// concurrently. The only mutation paths are Build and AddDocument,
// which callers must serialise externally.
type EmbeddingIndex struct {
	mu      sync.RWMutex
	encoder driven.Encoder
	cache   driven.EmbeddingCacheStore

	docs    []domain.Document
	vectors [][]float32

	cacheReused bool
}

// NewEmbeddingIndex creates an empty index. The encoder is the shared
// text-encoding function used for both documents and queries; the
// cache store is optional (nil disables persistence).
func NewEmbeddingIndex(encoder driven.Encoder, cache driven.EmbeddingCacheStore) *EmbeddingIndex {
	return &EmbeddingIndex{encoder: encoder, cache: cache}
}

// Build populates the index from the given documents. A valid cache
// (document count matching) is reused without re-encoding; anything
// else triggers a full encode and a cache rewrite. Build blocks until
// complete; the process should not serve requests before it returns.
func (i *EmbeddingIndex) Build(ctx context.Context, docs []domain.Document) error {
	valid := make([]domain.Document, 0, len(docs))
	for _, d := range docs {
		if d.Valid() {
			valid = append(valid, d)
		}
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	i.cacheReused = false

	if vectors, ok := i.loadCache(ctx, len(valid)); ok {
		i.docs = valid
		i.vectors = vectors
		i.cacheReused = true
		logger.Info("Embedding cache valid, reusing %d vectors", len(vectors))
		return nil
	}

	if i.encoder == nil {
		i.docs = nil
		i.vectors = nil
		return fmt.Errorf("build index: %w", domain.ErrEncoderUnavailable)
	}
	if err := i.encoder.Ping(ctx); err != nil {
		i.docs = nil
		i.vectors = nil
		logger.Warn("Encoder ping failed: %v", err)
		return fmt.Errorf("build index: %w", domain.ErrEncoderUnavailable)
	}

	vectors := make([][]float32, 0, len(valid))
	for n, doc := range valid {
		vec, err := i.encoder.Encode(ctx, doc.FullText())
		if err != nil {
			i.docs = nil
			i.vectors = nil
			logger.Warn("Encoding document %d (%q) failed: %v", n, doc.Title, err)
			return fmt.Errorf("encode document %d: %w", n, domain.ErrEncoderUnavailable)
		}
		vectors = append(vectors, normalise(vec))
	}

	i.docs = valid
	i.vectors = vectors
	logger.Info("Encoded %d documents with %s", len(valid), i.encoder.ModelName())

	if i.cache != nil {
		if err := i.cache.Save(ctx, vectors, len(valid), i.encoder.ModelName()); err != nil {
			// Persistence is best-effort; the in-memory index is intact.
			logger.Warn("Saving embedding cache failed: %v", err)
		}
	}
	return nil
}

// loadCache returns cached vectors when the persisted document count
// matches the corpus. Count is a weak fingerprint: content edits at
// constant count are served stale, matching the original system.
func (i *EmbeddingIndex) loadCache(ctx context.Context, docCount int) ([][]float32, bool) {
	if i.cache == nil || docCount == 0 {
		return nil, false
	}
	vectors, count, err := i.cache.Load(ctx)
	if err != nil {
		logger.Debug("Embedding cache miss: %v", err)
		return nil, false
	}
	if count != docCount || len(vectors) != docCount {
		logger.Debug("Embedding cache stale: cached %d documents, corpus has %d", count, docCount)
		return nil, false
	}
	return vectors, true
}

// AddDocument encodes one document and appends it to the index.
// The document sequence and the embedding matrix are extended
// together under the write lock so they stay aligned. The persisted
// cache is intentionally left stale: runtime additions are rare and
// administrative, and the next Build recomputes.
func (i *EmbeddingIndex) AddDocument(ctx context.Context, doc domain.Document) error {
	if !doc.Valid() {
		return fmt.Errorf("add document: %w", domain.ErrInvalidInput)
	}
	if i.encoder == nil {
		return fmt.Errorf("add document: %w", domain.ErrEncoderUnavailable)
	}

	vec, err := i.encoder.Encode(ctx, doc.FullText())
	if err != nil {
		return fmt.Errorf("add document: %w", err)
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.docs = append(i.docs, doc)
	i.vectors = append(i.vectors, normalise(vec))
	logger.Info("Added document %q, index now holds %d documents", doc.Title, len(i.docs))
	return nil
}

// EncodeQuery encodes free text with the same encoder used for the
// documents, so query and document vectors share one embedding space.
func (i *EmbeddingIndex) EncodeQuery(ctx context.Context, text string) ([]float32, error) {
	if i.encoder == nil {
		return nil, domain.ErrEncoderUnavailable
	}
	vec, err := i.encoder.Encode(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	return normalise(vec), nil
}

// Score computes the cosine similarity of the query vector against
// every document, returned in corpus order. Vectors are normalised at
// index time, so cosine similarity reduces to a dot product.
func (i *EmbeddingIndex) Score(query []float32) []domain.RetrievedDocument {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if len(i.vectors) > 0 && len(query) != len(i.vectors[0]) {
		logger.Warn("Query vector has %d dimensions, index has %d; scores forced to zero",
			len(query), len(i.vectors[0]))
	}

	scored := make([]domain.RetrievedDocument, len(i.docs))
	for n := range i.docs {
		scored[n] = domain.RetrievedDocument{
			Document: i.docs[n],
			Score:    dot(i.vectors[n], query),
		}
	}
	return scored
}

// Len returns the number of indexed documents.
func (i *EmbeddingIndex) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.docs)
}

// CacheReused reports whether the last Build served vectors from the
// persisted cache without re-encoding.
func (i *EmbeddingIndex) CacheReused() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.cacheReused
}

// EncoderModel returns the active encoder's model name, or empty when
// no encoder is configured.
func (i *EmbeddingIndex) EncoderModel() string {
	if i.encoder == nil {
		return ""
	}
	return i.encoder.ModelName()
}

// normalise scales a vector to unit length. Zero vectors are returned
// unchanged so their similarity against anything is zero.
func normalise(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return vec
	}
	out := make([]float32, len(vec))
	for n, v := range vec {
		out[n] = float32(float64(v) / norm)
	}
	return out
}

// dot computes the inner product of two vectors. Mismatched lengths
// mean the vectors come from different embedding spaces (a cached
// matrix scored against a query from a different model), so the pair
// scores zero rather than a truncated product.
func dot(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
