// Package cli implements the command-line driving adapter. Commands
// are thin: they parse flags, call the assistant service through its
// driving port, and format output.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cachesqlite "github.com/custodia-labs/advisor-cli/internal/adapters/driven/cache/sqlite"
	configfile "github.com/custodia-labs/advisor-cli/internal/adapters/driven/config/file"
	encoderollama "github.com/custodia-labs/advisor-cli/internal/adapters/driven/encoder/ollama"
	encoderopenai "github.com/custodia-labs/advisor-cli/internal/adapters/driven/encoder/openai"
	"github.com/custodia-labs/advisor-cli/internal/adapters/driven/encoder/tfidf"
	llmollama "github.com/custodia-labs/advisor-cli/internal/adapters/driven/llm/ollama"
	llmopenai "github.com/custodia-labs/advisor-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/advisor-cli/internal/core/domain"
	"github.com/custodia-labs/advisor-cli/internal/core/ports/driven"
	"github.com/custodia-labs/advisor-cli/internal/core/ports/driving"
	"github.com/custodia-labs/advisor-cli/internal/core/services"
	"github.com/custodia-labs/advisor-cli/internal/corpus"
	"github.com/custodia-labs/advisor-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// DefaultCorpusPath is used when no corpus path is configured.
const DefaultCorpusPath = "knowledge_base.md"

var (
	verbose   bool
	configDir string

	config           driven.ConfigStore
	assistantService driving.AssistantService

	// closers are driven adapters that need cleanup after a command.
	closers []func() error
)

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Programme office student assistant",
	Long: `Advisor answers student questions from a curated knowledge base.
Every query is classified into a safeguard tier before retrieval:
sensitive questions get a cautious answer with escalation guidance,
and crisis signals get an immediate pre-authored referral with no
generation at all.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if skipWiring(cmd) {
			return nil
		}
		return wirePipeline()
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeAll()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.advisor)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		_ = closeAll()
		os.Exit(1)
	}
}

// skipWiring reports whether the command runs without the pipeline.
func skipWiring(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return true
	}
	return false
}

// wirePipeline assembles the full service graph: configuration,
// corpus, encoder, cache, index, and the assistant facade. The index
// build blocks here; no command serves queries before it completes.
func wirePipeline() error {
	logger.Section("Startup")

	cfg, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	config = cfg

	corpusPath := cfg.GetString(driven.ConfigCorpusPath)
	if corpusPath == "" {
		corpusPath = DefaultCorpusPath
	}
	docs, err := corpus.Load(corpusPath)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	encoder, err := buildEncoder(cfg, docs)
	if err != nil {
		return fmt.Errorf("configure encoder: %w", err)
	}
	closers = append(closers, encoder.Close)

	cache, err := cachesqlite.NewStore(cfg.GetString(driven.ConfigCacheDir))
	if err != nil {
		// The cache only saves startup time; run without it.
		logger.Warn("Embedding cache unavailable: %v", err)
	} else {
		closers = append(closers, cache.Close)
	}

	index := services.NewEmbeddingIndex(encoder, cacheOrNil(cache))
	if err := index.Build(context.Background(), docs); err != nil {
		// An unreachable encoder leaves the index empty. Retrieval
		// degrades to empty results; critical-tier referrals and the
		// no-context answers still serve.
		logger.Warn("Index unavailable, serving without retrieval: %v", err)
	} else if index.Len() == 0 {
		logger.Warn("Serving with empty knowledge base")
	}

	llm, err := buildLLM(cfg)
	if err != nil {
		// Generation failures surface per-query as fallback envelopes,
		// so a missing completion service does not block startup.
		logger.Warn("Completion service unavailable: %v", err)
	} else {
		closers = append(closers, llm.Close)
	}

	policy := services.NewResponsePolicy(llm)
	prompts, err := configfile.NewPromptStore(cfg.GetString(driven.ConfigPromptDir))
	if err == nil {
		policy.SetPromptStore(prompts)
	}

	assistantService = services.NewAssistant(
		services.NewSafeguardClassifier(domain.DefaultRules()),
		index,
		services.NewSemanticRetriever(index),
		services.NewContextAssembler(),
		policy,
		func() ([]domain.Document, error) { return corpus.Load(corpusPath) },
		services.AssistantConfig{
			TopK:            cfg.GetInt(driven.ConfigRetrievalTopK),
			MaxContextChars: cfg.GetInt(driven.ConfigContextMaxChars),
		},
	)
	return nil
}

// buildEncoder selects the encoder adapter from configuration. The
// default is the local TF-IDF encoder, which needs no network access.
func buildEncoder(cfg driven.ConfigStore, docs []domain.Document) (driven.Encoder, error) {
	switch cfg.GetString(driven.ConfigEncoderType) {
	case "openai":
		enc, err := encoderopenai.New(encoderopenai.Config{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: cfg.GetString(driven.ConfigEncoderBaseURL),
			Model:   cfg.GetString(driven.ConfigEncoderModel),
		})
		if err != nil {
			return nil, err
		}
		return enc, nil
	case "ollama":
		return encoderollama.New(encoderollama.Config{
			BaseURL: cfg.GetString(driven.ConfigEncoderBaseURL),
			Model:   cfg.GetString(driven.ConfigEncoderModel),
		}), nil
	case "", "tfidf":
		texts := make([]string, len(docs))
		for i, d := range docs {
			texts[i] = d.FullText()
		}
		if len(texts) == 0 {
			// Fit on a placeholder so the encoder exists; every vector
			// it produces is zero until the corpus is populated.
			texts = []string{"knowledge base pending"}
		}
		return tfidf.New(texts)
	default:
		return nil, fmt.Errorf("unknown encoder type %q", cfg.GetString(driven.ConfigEncoderType))
	}
}

// buildLLM selects the completion adapter from configuration.
func buildLLM(cfg driven.ConfigStore) (driven.LLMService, error) {
	switch cfg.GetString(driven.ConfigLLMType) {
	case "", "openai":
		svc, err := llmopenai.New(llmopenai.Config{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: cfg.GetString(driven.ConfigLLMBaseURL),
			Model:   cfg.GetString(driven.ConfigLLMModel),
		})
		if err != nil {
			return nil, err
		}
		return svc, nil
	case "ollama":
		return llmollama.New(llmollama.Config{
			BaseURL: cfg.GetString(driven.ConfigLLMBaseURL),
			Model:   cfg.GetString(driven.ConfigLLMModel),
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm type %q", cfg.GetString(driven.ConfigLLMType))
	}
}

// cacheOrNil flattens a failed cache open into the nil the index
// expects for "no persistence".
func cacheOrNil(cache *cachesqlite.Store) driven.EmbeddingCacheStore {
	if cache == nil {
		return nil
	}
	return cache
}

// closeAll releases every driven adapter opened during wiring.
func closeAll() error {
	var firstErr error
	for _, close := range closers {
		if err := close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	closers = nil
	return firstErr
}
