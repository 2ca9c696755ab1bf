package cli

import (
	"bufio"
	"context"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/advisor-cli/internal/core/ports/driven"
	"github.com/custodia-labs/advisor-cli/internal/corpus"
	"github.com/custodia-labs/advisor-cli/internal/logger"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions interactively",
	Long: `Starts an interactive session that answers one question per line.
While the session runs, the knowledge-base file is watched for edits
and reloaded automatically. Exit with "quit" or Ctrl-D.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startCorpusWatch(ctx)

	cmd.Println("Ask a question (quit to exit):")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "quit" || query == "exit" {
			break
		}
		if err := checkQuery(query); err != nil {
			cmd.Println(err)
			continue
		}

		envelope, err := assistantService.Answer(ctx, query)
		if err != nil {
			cmd.Printf("Error: %v\n", err)
			continue
		}
		if err := outputEnvelopeText(cmd, envelope); err != nil {
			return err
		}
		cmd.Println()
	}
	return scanner.Err()
}

// startCorpusWatch begins hot reload of the knowledge base for the
// lifetime of ctx. Watch failures are logged and the session carries
// on with the corpus it has.
func startCorpusWatch(ctx context.Context) {
	if config == nil || !config.GetBool(driven.ConfigCorpusWatch) {
		return
	}

	path := config.GetString(driven.ConfigCorpusPath)
	if path == "" {
		path = DefaultCorpusPath
	}

	watcher, err := corpus.NewWatcher(path, assistantService.Reload)
	if err != nil {
		logger.Warn("Corpus watch unavailable: %v", err)
		return
	}

	go func() {
		defer watcher.Close()
		watcher.Run(ctx)
	}()
	logger.Info("Watching %s for changes", path)
}
