package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/advisor-cli/internal/core/domain"
)

// buildTestIndex indexes the given documents with canned unit vectors.
func buildTestIndex(t *testing.T, docs []domain.Document, vectors map[string][]float32) (*EmbeddingIndex, *fakeEncoder) {
	t.Helper()
	encoder := &fakeEncoder{vectors: vectors}
	index := NewEmbeddingIndex(encoder, nil)
	require.NoError(t, index.Build(context.Background(), docs))
	return index, encoder
}

func testDocs() []domain.Document {
	return []domain.Document{
		{Title: "Attendance", Content: "Attend your classes.", Source: "Handbook 1"},
		{Title: "Grading", Content: "Grades are weighted.", Source: "Handbook 2"},
		{Title: "Fees", Content: "Pay on time.", Source: "Handbook 3"},
		{Title: "Wifi", Content: "Use eduroam.", Source: "IT Guide"},
	}
}

func testVectors() map[string][]float32 {
	return map[string][]float32{
		"Attendance: Attend your classes.": {1, 0},
		"Grading: Grades are weighted.":    {0.8, 0.6},
		"Fees: Pay on time.":               {0.6, 0.8},
		"Wifi: Use eduroam.":               {0, 1},
	}
}

func TestSearch_RanksByDescendingSimilarity(t *testing.T) {
	index, encoder := buildTestIndex(t, testDocs(), testVectors())
	retriever := NewSemanticRetriever(index)

	encoder.vectors["query"] = []float32{1, 0}

	results := retriever.Search(context.Background(), "query", 3)

	require.Len(t, results, 3)
	assert.Equal(t, "Attendance", results[0].Document.Title)
	assert.Equal(t, "Grading", results[1].Document.Title)
	assert.Equal(t, "Fees", results[2].Document.Title)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
	assert.InDelta(t, 0.8, results[1].Score, 1e-6)
	assert.InDelta(t, 0.6, results[2].Score, 1e-6)
}

// The topK cut happens before the similarity floor: a document above
// the floor but outside the topK window is still dropped.
func TestSearch_TopKCutBeforeFloor(t *testing.T) {
	index, encoder := buildTestIndex(t, testDocs(), testVectors())
	retriever := NewSemanticRetriever(index)

	encoder.vectors["query"] = []float32{1, 0}

	results := retriever.Search(context.Background(), "query", 2)

	require.Len(t, results, 2)
	assert.Equal(t, "Attendance", results[0].Document.Title)
	assert.Equal(t, "Grading", results[1].Document.Title)
}

func TestSearch_DropsScoresAtOrBelowFloor(t *testing.T) {
	docs := []domain.Document{
		{Title: "Strong", Content: "match.", Source: "A"},
		{Title: "Weak", Content: "match.", Source: "B"},
		{Title: "Borderline", Content: "match.", Source: "C"},
	}
	vectors := map[string][]float32{
		"Strong: match.":     {1, 0},
		"Weak: match.":       {0.1, 0.995},
		"Borderline: match.": {0.3, 0.954},
		"query":              {1, 0},
	}
	index, _ := buildTestIndex(t, docs, vectors)
	retriever := NewSemanticRetriever(index)

	results := retriever.Search(context.Background(), "query", 3)

	// 0.30 exactly is not above the floor
	require.Len(t, results, 1)
	assert.Equal(t, "Strong", results[0].Document.Title)
}

func TestSearch_TiesKeepCorpusOrder(t *testing.T) {
	docs := []domain.Document{
		{Title: "First", Content: "same.", Source: "A"},
		{Title: "Second", Content: "same.", Source: "B"},
	}
	vectors := map[string][]float32{
		"First: same.":  {1, 0},
		"Second: same.": {1, 0},
		"query":         {1, 0},
	}
	index, _ := buildTestIndex(t, docs, vectors)
	retriever := NewSemanticRetriever(index)

	results := retriever.Search(context.Background(), "query", 2)

	require.Len(t, results, 2)
	assert.Equal(t, "First", results[0].Document.Title)
	assert.Equal(t, "Second", results[1].Document.Title)
}

func TestSearch_EmptyIndexReturnsNil(t *testing.T) {
	encoder := &fakeEncoder{defaultVec: []float32{1, 0}}
	index := NewEmbeddingIndex(encoder, nil)
	retriever := NewSemanticRetriever(index)

	results := retriever.Search(context.Background(), "anything", 3)

	assert.Nil(t, results)
	assert.Zero(t, encoder.encodeCalls)
}

func TestSearch_EncodeFailureReturnsNil(t *testing.T) {
	index, encoder := buildTestIndex(t, testDocs(), testVectors())
	retriever := NewSemanticRetriever(index)

	encoder.encodeErr = errors.New("encoder offline")

	results := retriever.Search(context.Background(), "query", 3)

	assert.Nil(t, results)
}

func TestSearch_DefaultTopK(t *testing.T) {
	index, encoder := buildTestIndex(t, testDocs(), testVectors())
	retriever := NewSemanticRetriever(index)

	encoder.vectors["query"] = []float32{0.7, 0.714}

	results := retriever.Search(context.Background(), "query", 0)

	// Four candidates exist; the default limit keeps three.
	assert.Len(t, results, DefaultTopK)
}
