package services

import (
	"context"
	"sort"

	"github.com/custodia-labs/advisor-cli/internal/core/domain"
	"github.com/custodia-labs/advisor-cli/internal/logger"
)

// similarityFloor is the minimum cosine similarity a document must
// exceed to be considered relevant. It is a fixed property of the
// pipeline, not configurable per call.
const similarityFloor = 0.30

// DefaultTopK is the number of candidates ranked before the floor is
// applied when the caller does not specify a limit.
const DefaultTopK = 3

// SemanticRetriever ranks indexed documents by similarity against a
// query. Absence of relevant material is a normal outcome: searches
// over an empty index, an unusable encoder, or all-below-floor scores
// return an empty result set, never an error.
type SemanticRetriever struct {
	index *EmbeddingIndex
}

// NewSemanticRetriever creates a retriever over the given index.
func NewSemanticRetriever(index *EmbeddingIndex) *SemanticRetriever {
	return &SemanticRetriever{index: index}
}

// Search returns up to topK documents ranked by descending cosine
// similarity. Ties keep corpus order (stable sort). Results at or
// below the similarity floor are dropped after the topK cut.
func (r *SemanticRetriever) Search(ctx context.Context, query string, topK int) []domain.RetrievedDocument {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if r.index.Len() == 0 {
		logger.Debug("Retrieval skipped: index is empty")
		return nil
	}

	vec, err := r.index.EncodeQuery(ctx, query)
	if err != nil {
		logger.Warn("Retrieval degraded to no results: %v", err)
		return nil
	}

	ranked := r.index.Score(vec)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if topK < len(ranked) {
		ranked = ranked[:topK]
	}

	results := make([]domain.RetrievedDocument, 0, len(ranked))
	for _, rd := range ranked {
		if rd.Score <= similarityFloor {
			continue
		}
		results = append(results, rd)
	}

	logger.Debug("Retrieval: %d of %d candidates above similarity floor", len(results), r.index.Len())
	return results
}
