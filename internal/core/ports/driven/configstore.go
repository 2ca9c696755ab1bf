package driven

// Well-known configuration keys. These constants define the contract
// between configuration consumers and the config store.
const (
	// ConfigCorpusPath is the path of the knowledge base file.
	ConfigCorpusPath = "corpus.path"

	// ConfigCorpusWatch enables hot reload of the knowledge base.
	ConfigCorpusWatch = "corpus.watch"

	// ConfigCacheDir is the directory of the embedding cache database.
	ConfigCacheDir = "cache.dir"

	// ConfigEncoderType selects the encoder adapter: "openai",
	// "ollama", or "tfidf".
	ConfigEncoderType = "encoder.type"

	// ConfigEncoderModel overrides the encoder's default model.
	ConfigEncoderModel = "encoder.model"

	// ConfigEncoderBaseURL overrides the encoder's API base URL.
	ConfigEncoderBaseURL = "encoder.base_url"

	// ConfigLLMType selects the completion adapter: "openai" or
	// "ollama".
	ConfigLLMType = "llm.type"

	// ConfigLLMModel overrides the completion adapter's default model.
	ConfigLLMModel = "llm.model"

	// ConfigLLMBaseURL overrides the completion adapter's API base URL.
	ConfigLLMBaseURL = "llm.base_url"

	// ConfigRetrievalTopK is the number of documents retrieved per
	// query.
	ConfigRetrievalTopK = "retrieval.top_k"

	// ConfigContextMaxChars is the context character budget.
	ConfigContextMaxChars = "context.max_chars"

	// ConfigPromptDir is the directory holding editable prompt files.
	ConfigPromptDir = "prompts.dir"
)

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice configuration value.
	// Returns nil if key doesn't exist or isn't a slice.
	GetStringSlice(key string) []string

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
