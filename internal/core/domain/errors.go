package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEncoderUnavailable indicates the text encoder is not usable.
	// Retrieval degrades to empty results; the pipeline still serves
	// critical-tier and context-free fallback answers.
	ErrEncoderUnavailable = errors.New("encoder unavailable")

	// ErrGenerationFailed indicates the external completion service
	// failed. The response policy converts this into a fixed fallback
	// envelope; it is never surfaced to the boundary.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrCacheInvalid indicates the persisted embedding cache does not
	// match the loaded corpus and must be recomputed.
	ErrCacheInvalid = errors.New("embedding cache invalid")

	// ErrIndexEmpty indicates the embedding index holds no documents.
	// Searching an empty index is a normal, expected outcome that
	// yields no results rather than an error at the boundary.
	ErrIndexEmpty = errors.New("embedding index empty")
)
