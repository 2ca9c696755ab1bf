package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [question]",
	Short: "Show the safeguard classification for a question",
	Long: `Classifies a question into its safeguard tier and topic without
retrieving anything or generating an answer. Useful for auditing the
rule table.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the analysis as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	query := args[0]

	if assistantService == nil {
		return errors.New("assistant service not configured")
	}
	if err := checkQuery(query); err != nil {
		return err
	}

	analysis := assistantService.Analyze(query)

	if analyzeJSON {
		data, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal analysis: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Tier:       %d\n", analysis.Tier)
	cmd.Printf("Type:       %s\n", analysis.Type)
	cmd.Printf("Threshold:  %.2f\n", analysis.ConfidenceThreshold)
	cmd.Printf("Cleaned:    %s\n", analysis.CleanedQuery)
	return nil
}
