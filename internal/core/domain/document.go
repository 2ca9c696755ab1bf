package domain

// Document represents a single knowledge-base excerpt.
// Documents are created at corpus load time and are never mutated;
// the only runtime growth path is an explicit administrative append.
type Document struct {
	// Title is the section heading of the excerpt.
	Title string

	// Content is the body text of the excerpt.
	Content string

	// Source is an optional citation label shown to the user
	// (for example "Academic Regulations §4").
	Source string
}

// FullText returns the text that is embedded for this document.
// Title and content are combined so that heading terms contribute
// to similarity scoring.
func (d Document) FullText() string {
	return d.Title + ": " + d.Content
}

// Valid reports whether the document may enter the corpus.
// A document without both a title and non-empty content is never added.
func (d Document) Valid() bool {
	return d.Title != "" && d.Content != ""
}

// RetrievedDocument pairs a document with its similarity score
// from a retrieval pass.
type RetrievedDocument struct {
	// Document is the matched excerpt.
	Document Document

	// Score is the cosine similarity against the query (0-1 for
	// normalised vectors).
	Score float64
}
