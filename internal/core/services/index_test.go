package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/advisor-cli/internal/core/domain"
)

func TestBuild_EncodesAndSaves(t *testing.T) {
	encoder := &fakeEncoder{defaultVec: []float32{3, 4}}
	cache := &fakeCache{loadErr: errors.New("empty")}
	index := NewEmbeddingIndex(encoder, cache)

	docs := []domain.Document{
		{Title: "A", Content: "a"},
		{Title: "B", Content: "b"},
	}

	require.NoError(t, index.Build(context.Background(), docs))

	assert.Equal(t, 2, index.Len())
	assert.Equal(t, 2, encoder.encodeCalls)
	assert.False(t, index.CacheReused())
	assert.Equal(t, 1, cache.saveCalls)
	assert.Equal(t, 2, cache.count)
	assert.Equal(t, "fake-encoder", cache.model)

	// Stored vectors are unit length
	require.Len(t, cache.vectors, 2)
	assert.InDelta(t, 0.6, cache.vectors[0][0], 1e-6)
	assert.InDelta(t, 0.8, cache.vectors[0][1], 1e-6)
}

func TestBuild_ReusesValidCache(t *testing.T) {
	encoder := &fakeEncoder{defaultVec: []float32{1, 0}}
	cache := &fakeCache{
		vectors: [][]float32{{1, 0}, {0, 1}},
		count:   2,
	}
	index := NewEmbeddingIndex(encoder, cache)

	docs := []domain.Document{
		{Title: "A", Content: "a"},
		{Title: "B", Content: "b"},
	}

	require.NoError(t, index.Build(context.Background(), docs))

	assert.True(t, index.CacheReused())
	assert.Zero(t, encoder.encodeCalls)
	assert.Zero(t, cache.saveCalls)
}

func TestBuild_CountMismatchRecomputes(t *testing.T) {
	encoder := &fakeEncoder{defaultVec: []float32{1, 0}}
	cache := &fakeCache{
		vectors: [][]float32{{1, 0}},
		count:   1,
	}
	index := NewEmbeddingIndex(encoder, cache)

	docs := []domain.Document{
		{Title: "A", Content: "a"},
		{Title: "B", Content: "b"},
	}

	require.NoError(t, index.Build(context.Background(), docs))

	assert.False(t, index.CacheReused())
	assert.Equal(t, 2, encoder.encodeCalls)
	assert.Equal(t, 1, cache.saveCalls)
	assert.Equal(t, 2, cache.count)
}

func TestScore_DimensionMismatchScoresZero(t *testing.T) {
	// Cached vectors have three dimensions but the encoder now produces
	// two, as happens when the encoder model changes under a stale
	// cache. Scores must drop to zero, not a truncated dot product.
	encoder := &fakeEncoder{defaultVec: []float32{1, 0}}
	cache := &fakeCache{
		vectors: [][]float32{{1, 0, 0}, {0, 1, 0}},
		count:   2,
	}
	index := NewEmbeddingIndex(encoder, cache)

	docs := []domain.Document{
		{Title: "A", Content: "a"},
		{Title: "B", Content: "b"},
	}
	require.NoError(t, index.Build(context.Background(), docs))
	require.True(t, index.CacheReused())

	query, err := index.EncodeQuery(context.Background(), "anything")
	require.NoError(t, err)

	for _, r := range index.Score(query) {
		assert.Zero(t, r.Score)
	}
}

func TestBuild_SkipsInvalidDocuments(t *testing.T) {
	encoder := &fakeEncoder{defaultVec: []float32{1, 0}}
	index := NewEmbeddingIndex(encoder, nil)

	docs := []domain.Document{
		{Title: "A", Content: "a"},
		{Title: "", Content: "no title"},
		{Title: "no content", Content: ""},
	}

	require.NoError(t, index.Build(context.Background(), docs))

	assert.Equal(t, 1, index.Len())
}

func TestBuild_PingFailure(t *testing.T) {
	encoder := &fakeEncoder{pingErr: errors.New("offline")}
	index := NewEmbeddingIndex(encoder, nil)

	err := index.Build(context.Background(), []domain.Document{{Title: "A", Content: "a"}})

	assert.ErrorIs(t, err, domain.ErrEncoderUnavailable)
	assert.Zero(t, index.Len())
}

func TestBuild_SaveFailureIsBestEffort(t *testing.T) {
	encoder := &fakeEncoder{defaultVec: []float32{1, 0}}
	cache := &fakeCache{loadErr: errors.New("empty"), saveErr: errors.New("disk full")}
	index := NewEmbeddingIndex(encoder, cache)

	err := index.Build(context.Background(), []domain.Document{{Title: "A", Content: "a"}})

	require.NoError(t, err)
	assert.Equal(t, 1, index.Len())
}

func TestAddDocument_KeepsRowsAligned(t *testing.T) {
	encoder := &fakeEncoder{vectors: map[string][]float32{
		"A: a": {1, 0},
		"B: b": {0, 1},
	}}
	index := NewEmbeddingIndex(encoder, nil)
	require.NoError(t, index.Build(context.Background(), []domain.Document{{Title: "A", Content: "a"}}))

	require.NoError(t, index.AddDocument(context.Background(), domain.Document{Title: "B", Content: "b"}))

	assert.Equal(t, 2, index.Len())

	// The appended row scores as the appended document
	scored := index.Score([]float32{0, 1})
	require.Len(t, scored, 2)
	assert.Equal(t, "B", scored[1].Document.Title)
	assert.InDelta(t, 1.0, scored[1].Score, 1e-6)
	assert.InDelta(t, 0.0, scored[0].Score, 1e-6)
}

func TestAddDocument_RejectsInvalid(t *testing.T) {
	index := NewEmbeddingIndex(&fakeEncoder{defaultVec: []float32{1, 0}}, nil)

	err := index.AddDocument(context.Background(), domain.Document{Title: "", Content: "body"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEncodeQuery_SharesEmbeddingSpace(t *testing.T) {
	encoder := &fakeEncoder{defaultVec: []float32{2, 0}}
	index := NewEmbeddingIndex(encoder, nil)

	vec, err := index.EncodeQuery(context.Background(), "query")

	require.NoError(t, err)
	assert.InDelta(t, 1.0, vec[0], 1e-6)
	assert.InDelta(t, 0.0, vec[1], 1e-6)
}

func TestEncodeQuery_NoEncoder(t *testing.T) {
	index := NewEmbeddingIndex(nil, nil)

	_, err := index.EncodeQuery(context.Background(), "query")

	assert.ErrorIs(t, err, domain.ErrEncoderUnavailable)
}
