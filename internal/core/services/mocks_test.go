package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/advisor-cli/internal/core/ports/driven"
)

// fakeEncoder returns canned vectors keyed by input text and counts
// calls so tests can assert which paths touched the encoder.
type fakeEncoder struct {
	vectors     map[string][]float32
	defaultVec  []float32
	encodeErr   error
	pingErr     error
	encodeCalls int
}

var _ driven.Encoder = (*fakeEncoder)(nil)

func (f *fakeEncoder) Encode(_ context.Context, text string) ([]float32, error) {
	f.encodeCalls++
	if f.encodeErr != nil {
		return nil, f.encodeErr
	}
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	if f.defaultVec != nil {
		return f.defaultVec, nil
	}
	return nil, errors.New("no canned vector for input")
}

func (f *fakeEncoder) Dimensions() int          { return 2 }
func (f *fakeEncoder) ModelName() string        { return "fake-encoder" }
func (f *fakeEncoder) Ping(_ context.Context) error { return f.pingErr }
func (f *fakeEncoder) Close() error             { return nil }

// fakeLLM records the last generation request and returns a canned
// answer or error.
type fakeLLM struct {
	answer      string
	err         error
	calls       int
	lastSystem  string
	lastPrompt  string
	lastOptions driven.GenerateOptions
}

var _ driven.LLMService = (*fakeLLM)(nil)

func (f *fakeLLM) Generate(_ context.Context, system, prompt string, opts driven.GenerateOptions) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastPrompt = prompt
	f.lastOptions = opts
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeLLM) ModelName() string            { return "fake-llm" }
func (f *fakeLLM) Ping(_ context.Context) error { return nil }
func (f *fakeLLM) Close() error                 { return nil }

// fakeCache is an in-memory EmbeddingCacheStore.
type fakeCache struct {
	vectors   [][]float32
	count     int
	model     string
	loadErr   error
	saveErr   error
	saveCalls int
	loadCalls int
}

var _ driven.EmbeddingCacheStore = (*fakeCache)(nil)

func (f *fakeCache) Load(_ context.Context) ([][]float32, int, error) {
	f.loadCalls++
	if f.loadErr != nil {
		return nil, 0, f.loadErr
	}
	return f.vectors, f.count, nil
}

func (f *fakeCache) Save(_ context.Context, vectors [][]float32, count int, model string) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.vectors = vectors
	f.count = count
	f.model = model
	return nil
}

func (f *fakeCache) Close() error { return nil }

// fakePrompts serves a fixed prompt map.
type fakePrompts struct {
	prompts map[string]string
}

var _ driven.PromptStore = (*fakePrompts)(nil)

func (f *fakePrompts) Load(name string) (string, error) {
	if p, ok := f.prompts[name]; ok {
		return p, nil
	}
	return "", errors.New("prompt not found")
}

func (f *fakePrompts) Reload() {}
