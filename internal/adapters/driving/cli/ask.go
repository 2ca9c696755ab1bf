package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/advisor-cli/internal/core/domain"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant a question",
	Long: `Runs the full pipeline for one question: safeguard classification,
knowledge-base retrieval, and tier-appropriate answer generation.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the response envelope as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	query := args[0]

	if assistantService == nil {
		return errors.New("assistant service not configured")
	}
	if err := checkQuery(query); err != nil {
		return err
	}

	envelope, err := assistantService.Answer(context.Background(), query)
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}

	if askJSON {
		return outputEnvelopeJSON(cmd, envelope)
	}
	return outputEnvelopeText(cmd, envelope)
}

func outputEnvelopeJSON(cmd *cobra.Command, envelope *domain.ResponseEnvelope) error {
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputEnvelopeText(cmd *cobra.Command, envelope *domain.ResponseEnvelope) error {
	cmd.Println(envelope.Answer)

	if len(envelope.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, source := range envelope.Sources {
			cmd.Printf("  - %s\n", source)
		}
	}

	switch {
	case envelope.EscalationRequired:
		cmd.Println()
		cmd.Printf("Please contact support now: %s\n", envelope.EscalationText)
	case envelope.EscalationRecommended:
		cmd.Println()
		cmd.Printf("Recommended: %s\n", envelope.EscalationText)
	}

	if envelope.Confidence == domain.ConfidenceSystemError {
		cmd.Println()
		cmd.Println("(The answering service was unavailable; this is a fallback response.)")
	}
	return nil
}
