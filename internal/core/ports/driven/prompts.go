package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the
// binary, or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a
	// sensible default or an error, depending on whether the prompt
	// is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next
	// access. Useful when prompts have been edited on disk.
	Reload()
}

// PromptStoreAware is an optional interface for services that can use
// custom prompts. Services implementing this interface can have their
// prompt templates customised by injecting a PromptStore after
// construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable
	// prompts. If not set, the service should use embedded defaults.
	SetPromptStore(store PromptStore)
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and
// providers.
const (
	// PromptSystem is the fixed system instruction sent with every
	// generation request. No format placeholders.
	PromptSystem = "system"

	// PromptComprehensive is the normal-tier user message template.
	// Expects %s (context) and %s (question) placeholders.
	PromptComprehensive = "comprehensive"

	// PromptCautious is the cautious-tier user message template.
	// Expects %s (context) and %s (question) placeholders.
	PromptCautious = "cautious"

	// PromptCapabilities asks for a generic capability overview when
	// no context was retrieved for a "what can you help with"-style
	// query. No format placeholders.
	PromptCapabilities = "capabilities"

	// PromptNoContext asks for an apology-plus-redirect when no
	// context was retrieved. Expects a %s (question) placeholder.
	PromptNoContext = "no_context"
)
