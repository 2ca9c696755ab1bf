// Package corpus loads the knowledge-base text file into documents.
//
// The corpus format is UTF-8 text with sections separated by a line
// containing only "---". Within a section a "## "-prefixed line is the
// title, a "Source: "-prefixed line is the citation label, and all
// other non-empty lines are body text.
package corpus

import (
	"os"
	"strings"

	"github.com/custodia-labs/advisor-cli/internal/core/domain"
	"github.com/custodia-labs/advisor-cli/internal/logger"
)

// Section and field markers in the corpus file.
const (
	sectionDelimiter = "---"
	titlePrefix      = "## "
	corpusTitle      = "# "
	sourcePrefix     = "Source:"
)

// Load reads the corpus file at path and parses it into documents.
// A missing file is degraded mode, not an error: the caller gets an
// empty document slice and must handle a zero-document knowledge base.
func Load(path string) ([]domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Corpus file %s not found, starting with empty knowledge base", path)
			return nil, nil
		}
		return nil, err
	}
	docs := Parse(string(data))
	logger.Info("Loaded %d documents from %s", len(docs), path)
	return docs, nil
}

// Parse splits the corpus text into documents. Sections lacking a
// title or non-empty content are dropped silently. A level-1 heading
// before any body text is the corpus-level title and is discarded
// rather than becoming a document.
func Parse(text string) []domain.Document {
	var docs []domain.Document

	var title, source string
	var body []string
	seenBody := false

	flush := func() {
		doc := domain.Document{
			Title:   title,
			Content: strings.Join(body, " "),
			Source:  source,
		}
		if doc.Valid() {
			docs = append(docs, doc)
		}
		title, source = "", ""
		body = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == sectionDelimiter:
			flush()

		case strings.HasPrefix(line, titlePrefix):
			title = strings.TrimSpace(strings.TrimPrefix(line, titlePrefix))

		case strings.HasPrefix(line, corpusTitle):
			if seenBody {
				// Past the top of the file a level-1 heading is
				// treated as a section title like any other.
				title = strings.TrimSpace(strings.TrimPrefix(line, corpusTitle))
			}

		case strings.HasPrefix(line, sourcePrefix):
			source = strings.TrimSpace(strings.TrimPrefix(line, sourcePrefix))

		case line != "":
			body = append(body, line)
			seenBody = true
		}
	}
	flush()

	return docs
}
