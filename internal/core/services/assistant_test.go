package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/advisor-cli/internal/core/domain"
)

// newTestAssistant wires the full pipeline with fakes and a small
// two-document knowledge base.
func newTestAssistant(t *testing.T, llm *fakeLLM) (*Assistant, *fakeEncoder) {
	t.Helper()

	docs := []domain.Document{
		{Title: "Attendance Policy", Content: "Students must attend 80% of classes.", Source: "Handbook"},
		{Title: "Wifi Setup", Content: "Connect to eduroam with your account.", Source: "IT Guide"},
	}
	encoder := &fakeEncoder{vectors: map[string][]float32{
		"Attendance Policy: Students must attend 80% of classes.": {1, 0},
		"Wifi Setup: Connect to eduroam with your account.":       {0, 1},
	}}

	index := NewEmbeddingIndex(encoder, nil)
	require.NoError(t, index.Build(context.Background(), docs))

	assistant := NewAssistant(
		NewSafeguardClassifier(domain.DefaultRules()),
		index,
		NewSemanticRetriever(index),
		NewContextAssembler(),
		NewResponsePolicy(llm),
		nil,
		AssistantConfig{},
	)
	return assistant, encoder
}

func TestAnswer_NormalFlow(t *testing.T) {
	llm := &fakeLLM{answer: "You must attend 80% of classes."}
	assistant, encoder := newTestAssistant(t, llm)
	encoder.vectors["what is the attendance policy?"] = []float32{1, 0}

	env, err := assistant.Answer(context.Background(), "what is the attendance policy?")

	require.NoError(t, err)
	assert.Equal(t, domain.TierNormal, env.Tier)
	assert.Equal(t, "You must attend 80% of classes.", env.Answer)
	assert.Equal(t, []string{"Handbook"}, env.Sources)
	assert.Equal(t, domain.ConfidenceHigh, env.Confidence)

	// The generation prompt carries the retrieved excerpt
	assert.Contains(t, llm.lastPrompt, "**Attendance Policy**")
}

// Critical queries terminate at classification: the encoder must not
// be touched after the index is built, and no generation happens.
func TestAnswer_CriticalTierSkipsRetrieval(t *testing.T) {
	llm := &fakeLLM{answer: "unused"}
	assistant, encoder := newTestAssistant(t, llm)
	callsAfterBuild := encoder.encodeCalls

	env, err := assistant.Answer(context.Background(), "I am experiencing harassment")

	require.NoError(t, err)
	assert.Equal(t, domain.TierCritical, env.Tier)
	assert.True(t, env.EscalationRequired)
	assert.Equal(t, callsAfterBuild, encoder.encodeCalls)
	assert.Zero(t, llm.calls)
}

func TestAnswer_EmptyQuery(t *testing.T) {
	assistant, _ := newTestAssistant(t, &fakeLLM{})

	_, err := assistant.Answer(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnswer_NoRelevantContext(t *testing.T) {
	llm := &fakeLLM{answer: "I don't have information on that."}
	assistant, encoder := newTestAssistant(t, llm)
	// Orthogonal to everything indexed
	encoder.vectors["can i bring my dog to campus?"] = []float32{0, 0}

	env, err := assistant.Answer(context.Background(), "can i bring my dog to campus?")

	require.NoError(t, err)
	assert.Equal(t, domain.ConfidenceLow, env.Confidence)
	assert.Empty(t, env.Sources)
}

func TestRetrieve_PacksContextAndSources(t *testing.T) {
	assistant, encoder := newTestAssistant(t, &fakeLLM{})
	encoder.vectors["wifi"] = []float32{0, 1}

	contextText, sources, err := assistant.Retrieve(context.Background(), "wifi")

	require.NoError(t, err)
	assert.Contains(t, contextText, "**Wifi Setup**")
	assert.Equal(t, []string{"IT Guide"}, sources)
}

func TestReload_RebuildsFromLoader(t *testing.T) {
	llm := &fakeLLM{}
	assistant, encoder := newTestAssistant(t, llm)
	encoder.defaultVec = []float32{1, 1}

	reloaded := []domain.Document{
		{Title: "New Policy", Content: "Everything changed.", Source: "Memo"},
	}
	assistant.loadCorpus = func() ([]domain.Document, error) { return reloaded, nil }

	require.NoError(t, assistant.Reload(context.Background()))

	assert.Equal(t, 1, assistant.Status().DocumentsLoaded)
}

func TestReload_NilLoaderIsNoOp(t *testing.T) {
	assistant, _ := newTestAssistant(t, &fakeLLM{})

	require.NoError(t, assistant.Reload(context.Background()))

	assert.Equal(t, 2, assistant.Status().DocumentsLoaded)
}

func TestReload_LoaderFailure(t *testing.T) {
	assistant, _ := newTestAssistant(t, &fakeLLM{})
	assistant.loadCorpus = func() ([]domain.Document, error) { return nil, errors.New("disk gone") }

	err := assistant.Reload(context.Background())

	assert.Error(t, err)
	// The previous index is still serving
	assert.Equal(t, 2, assistant.Status().DocumentsLoaded)
}

func TestAddDocument_GrowsIndex(t *testing.T) {
	assistant, encoder := newTestAssistant(t, &fakeLLM{})
	encoder.defaultVec = []float32{1, 1}

	err := assistant.AddDocument(context.Background(), domain.Document{
		Title: "Library Hours", Content: "Open 8am to midnight.", Source: "Library",
	})

	require.NoError(t, err)
	assert.Equal(t, 3, assistant.Status().DocumentsLoaded)
}

func TestStatus_Fields(t *testing.T) {
	assistant, _ := newTestAssistant(t, &fakeLLM{})

	status := assistant.Status()

	assert.Equal(t, 2, status.DocumentsLoaded)
	assert.Equal(t, "fake-encoder", status.EncoderModel)
	assert.False(t, status.CacheReused)
	assert.Equal(t, "2025-08", status.RulesVersion)
}
