// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Optional Interfaces
//
// Every driven port here can be nil - the pipeline degrades gracefully:
//
//   - Encoder: Generates vector embeddings. Without it, retrieval returns
//     no results and the pipeline serves tier-conditioned fallback answers.
//   - LLMService: Text completion. Without it, every tier-1/2 response is
//     the fixed generation-failure envelope.
//   - EmbeddingCacheStore: Persists the embedding matrix between runs.
//     Without it, the corpus is re-encoded at every startup.
//   - PromptStore: User-editable prompt templates. Without it, embedded
//     defaults are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
