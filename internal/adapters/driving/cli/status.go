package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the pipeline serving state",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output status as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	status := assistantService.Status()

	if statusJSON {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Documents loaded:  %d\n", status.DocumentsLoaded)
	cmd.Printf("Encoder model:     %s\n", status.EncoderModel)
	cmd.Printf("Cache reused:      %t\n", status.CacheReused)
	cmd.Printf("Rules version:     %s\n", status.RulesVersion)
	if config != nil {
		cmd.Printf("Config file:       %s\n", config.Path())
	}
	return nil
}
