package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/advisor-cli/internal/core/domain"
	"github.com/custodia-labs/advisor-cli/internal/core/ports/driving"
	"github.com/custodia-labs/advisor-cli/internal/logger"
)

// Ensure Assistant implements the interface.
var _ driving.AssistantService = (*Assistant)(nil)

// CorpusLoader re-reads the knowledge base for Reload. Optional; when
// nil, Reload is a no-op beyond re-indexing the current documents.
type CorpusLoader func() ([]domain.Document, error)

// Assistant composes the safeguard and retrieval pipeline behind the
// driving port. Each request runs synchronously to completion:
// classify, short-circuit critical queries before any retrieval,
// otherwise retrieve, assemble, and respond.
type Assistant struct {
	classifier *SafeguardClassifier
	index      *EmbeddingIndex
	retriever  *SemanticRetriever
	assembler  *ContextAssembler
	policy     *ResponsePolicy

	loadCorpus CorpusLoader
	topK       int
	maxChars   int

	// reloadMu serialises the administrative mutation paths (Reload
	// and AddDocument) against each other; searches stay concurrent.
	reloadMu sync.Mutex
}

// AssistantConfig bundles the pipeline tunables.
type AssistantConfig struct {
	// TopK is the number of documents ranked per query
	// (default DefaultTopK).
	TopK int

	// MaxContextChars is the context budget in characters
	// (default DefaultContextBudget).
	MaxContextChars int
}

// NewAssistant wires the pipeline services together.
func NewAssistant(
	classifier *SafeguardClassifier,
	index *EmbeddingIndex,
	retriever *SemanticRetriever,
	assembler *ContextAssembler,
	policy *ResponsePolicy,
	loadCorpus CorpusLoader,
	cfg AssistantConfig,
) *Assistant {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	if cfg.MaxContextChars <= 0 {
		cfg.MaxContextChars = DefaultContextBudget
	}
	return &Assistant{
		classifier: classifier,
		index:      index,
		retriever:  retriever,
		assembler:  assembler,
		policy:     policy,
		loadCorpus: loadCorpus,
		topK:       cfg.TopK,
		maxChars:   cfg.MaxContextChars,
	}
}

// Analyze classifies the raw query. Never fails.
func (a *Assistant) Analyze(query string) domain.QueryAnalysis {
	return a.classifier.Classify(query)
}

// Retrieve ranks excerpts for the query and packs them into a bounded
// context string plus sources. No relevant material yields empty
// context, not an error.
func (a *Assistant) Retrieve(ctx context.Context, query string) (string, []string, error) {
	ranked := a.retriever.Search(ctx, query, a.topK)
	contextText, sources := a.assembler.Assemble(ranked, a.maxChars)
	return contextText, sources, nil
}

// Respond shapes the final envelope for the given analysis.
func (a *Assistant) Respond(
	ctx context.Context, query, contextText string, sources []string, analysis domain.QueryAnalysis,
) *domain.ResponseEnvelope {
	return a.policy.Respond(ctx, query, contextText, sources, analysis)
}

// Answer runs the full pipeline for one query. Critical-tier queries
// never reach the retriever: classification alone is sufficient to
// short-circuit into the pre-authored crisis response.
func (a *Assistant) Answer(ctx context.Context, query string) (*domain.ResponseEnvelope, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("answer: %w", domain.ErrInvalidInput)
	}

	logger.Section("Query Pipeline")
	analysis := a.Analyze(query)
	logger.Info("Query classified: tier=%d type=%s", analysis.Tier, analysis.Type)

	if analysis.Tier == domain.TierCritical {
		logger.Info("Critical tier: retrieval skipped")
		return a.Respond(ctx, query, "", nil, analysis), nil
	}

	contextText, sources, err := a.Retrieve(ctx, query)
	if err != nil {
		// Retrieval failures degrade to a context-free answer.
		logger.Warn("Retrieval failed, continuing without context: %v", err)
		contextText, sources = "", nil
	}

	return a.Respond(ctx, query, contextText, sources, analysis), nil
}

// AddDocument appends one document to the knowledge base and index.
func (a *Assistant) AddDocument(ctx context.Context, doc domain.Document) error {
	a.reloadMu.Lock()
	defer a.reloadMu.Unlock()
	return a.index.AddDocument(ctx, doc)
}

// Reload re-reads the corpus and rebuilds the index. Serialised
// against AddDocument; searches remain safe throughout because the
// index swaps its state under its own write lock.
func (a *Assistant) Reload(ctx context.Context) error {
	if a.loadCorpus == nil {
		return nil
	}

	a.reloadMu.Lock()
	defer a.reloadMu.Unlock()

	docs, err := a.loadCorpus()
	if err != nil {
		return fmt.Errorf("reload corpus: %w", err)
	}
	if err := a.index.Build(ctx, docs); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}
	return nil
}

// Status reports the serving state for health output.
func (a *Assistant) Status() driving.Status {
	return driving.Status{
		DocumentsLoaded: a.index.Len(),
		EncoderModel:    a.index.EncoderModel(),
		CacheReused:     a.index.CacheReused(),
		RulesVersion:    a.classifier.RulesVersion(),
	}
}
