package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/advisor-cli/internal/core/domain"
)

var (
	addTitle   string
	addContent string
	addSource  string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a document to the knowledge base index",
	Long: `Adds one document to the in-memory index. This is an administrative
path: the corpus file on disk is not modified, so the addition lasts
until the next rebuild.`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addTitle, "title", "", "document title (required)")
	addCmd.Flags().StringVar(&addContent, "content", "", "document body (required)")
	addCmd.Flags().StringVar(&addSource, "source", "", "citation label")
	_ = addCmd.MarkFlagRequired("title")
	_ = addCmd.MarkFlagRequired("content")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	req := DocumentRequest{Title: addTitle, Content: addContent, Source: addSource}
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}

	doc := domain.Document{Title: req.Title, Content: req.Content, Source: req.Source}
	if err := assistantService.AddDocument(context.Background(), doc); err != nil {
		return fmt.Errorf("add document failed: %w", err)
	}

	cmd.Printf("Added %q; index now holds %d documents\n",
		doc.Title, assistantService.Status().DocumentsLoaded)
	return nil
}
