package services

import (
	"strings"

	"github.com/custodia-labs/advisor-cli/internal/core/domain"
	"github.com/custodia-labs/advisor-cli/internal/logger"
)

// DefaultContextBudget is the maximum character length of assembled
// context passed to the generator when the caller does not override it.
const DefaultContextBudget = 1500

// ContextAssembler packs ranked documents into a bounded context
// string plus an ordered source list.
type ContextAssembler struct{}

// NewContextAssembler creates an assembler.
func NewContextAssembler() *ContextAssembler {
	return &ContextAssembler{}
}

// Assemble greedily appends each ranked document's rendered block in
// ranking order while the running total stays within maxChars. The
// first document that would exceed the budget - and every document
// after it - is dropped entirely: no partial truncation and no
// backtracking to fit a smaller later document. Sources collect the
// citation label of every included document, in order, skipping
// documents without one.
func (a *ContextAssembler) Assemble(ranked []domain.RetrievedDocument, maxChars int) (string, []string) {
	if maxChars <= 0 {
		maxChars = DefaultContextBudget
	}
	if len(ranked) == 0 {
		return "", nil
	}

	var b strings.Builder
	var sources []string
	included := 0

	for _, rd := range ranked {
		block := renderBlock(rd.Document)
		if b.Len()+len(block) > maxChars {
			break
		}
		b.WriteString(block)
		included++
		if rd.Document.Source != "" {
			sources = append(sources, rd.Document.Source)
		}
	}

	logger.Debug("Context assembled: %d of %d documents, %d/%d chars",
		included, len(ranked), b.Len(), maxChars)
	return b.String(), sources
}

// renderBlock formats one document for the generation context.
func renderBlock(doc domain.Document) string {
	return "**" + doc.Title + "**\n" + doc.Content + "\n"
}
