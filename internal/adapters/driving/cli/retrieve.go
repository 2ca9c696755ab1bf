package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve [question]",
	Short: "Show the context that would be retrieved for a question",
	Long: `Runs retrieval and context assembly only: ranks knowledge-base
excerpts against the question and prints the packed context block with
its sources. No answer is generated.`,
	Args: cobra.ExactArgs(1),
	RunE: runRetrieve,
}

func init() {
	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	query := args[0]

	if assistantService == nil {
		return errors.New("assistant service not configured")
	}
	if err := checkQuery(query); err != nil {
		return err
	}

	contextText, sources, err := assistantService.Retrieve(context.Background(), query)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if contextText == "" {
		cmd.Println("No relevant excerpts found.")
		return nil
	}

	cmd.Println(contextText)
	if len(sources) > 0 {
		cmd.Println("Sources:")
		for _, source := range sources {
			cmd.Printf("  - %s\n", source)
		}
	}
	return nil
}
