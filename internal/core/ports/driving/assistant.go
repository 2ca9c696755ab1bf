package driving

import (
	"context"

	"github.com/custodia-labs/advisor-cli/internal/core/domain"
)

// Status reports the serving state of the pipeline for health output.
type Status struct {
	// DocumentsLoaded is the number of documents in the index.
	DocumentsLoaded int

	// EncoderModel is the name of the active text encoder.
	EncoderModel string

	// CacheReused is true when the persisted embedding cache was
	// valid at the last build and no re-encoding was needed.
	CacheReused bool

	// RulesVersion identifies the active safeguard rule table.
	RulesVersion string
}

// AssistantService composes the query safeguard and retrieval
// pipeline. The three fine-grained calls (Analyze, Retrieve, Respond)
// form the boundary a serving layer invokes per request; Answer runs
// them end to end.
type AssistantService interface {
	// Analyze classifies the raw query into a safeguard tier and
	// topic label. It never fails: an unrecognised query falls
	// through to the normal tier with the general topic.
	Analyze(query string) domain.QueryAnalysis

	// Retrieve ranks knowledge-base excerpts for the query and packs
	// them into a bounded context string plus a source list. Absence
	// of relevant material yields empty context, not an error.
	Retrieve(ctx context.Context, query string) (contextText string, sources []string, err error)

	// Respond turns the tier, context, and sources into the final
	// response envelope, invoking generation for tiers 1 and 2.
	// Generation failures are converted into a fixed fallback
	// envelope; Respond never returns a raw service error.
	Respond(ctx context.Context, query, contextText string, sources []string, analysis domain.QueryAnalysis) *domain.ResponseEnvelope

	// Answer runs the full pipeline: classify, short-circuit critical
	// queries before retrieval, otherwise retrieve and respond.
	Answer(ctx context.Context, query string) (*domain.ResponseEnvelope, error)

	// AddDocument appends one document to the knowledge base and the
	// index. Administrative; callers must not run it concurrently
	// with another mutation.
	AddDocument(ctx context.Context, doc domain.Document) error

	// Reload re-reads the corpus and rebuilds the index.
	Reload(ctx context.Context) error

	// Status reports the serving state of the pipeline.
	Status() Status
}
