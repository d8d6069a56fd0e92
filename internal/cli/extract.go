package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"appealgen/internal/ingest"
)

var (
	extractTimeout  time.Duration
	extractJSON     string
	extractNoCache  bool
	extractProvider string
	extractModel    string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <rejection-letter>",
	Short: "Extract claim fields from a rejection letter",
	Long: `Extract pulls the claim fields out of a rejection letter and prints them
as JSON with per-field provenance, without generating an appeal. Useful for
checking what the extraction found before running the full analysis.

Example:
  appealgen extract rejection.txt
  appealgen extract rejection.html --json fields.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 2*time.Minute, "extraction timeout")
	extractCmd.Flags().StringVar(&extractJSON, "json", "", "write the fields to a file instead of stdout")
	extractCmd.Flags().BoolVar(&extractNoCache, "no-cache", false, "disable the completion cache")
	extractCmd.Flags().StringVar(&extractProvider, "provider", "", "LLM provider (mistral, openai, anthropic, ollama)")
	extractCmd.Flags().StringVar(&extractModel, "model", "", "LLM model name")
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	cfg := buildConfig(extractProvider, extractModel, extractNoCache)
	if err := resolveCredentials(cfg); err != nil {
		return err
	}

	text, err := ingest.ReadDocument(args[0])
	if err != nil {
		return err
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	result := buildExtractor(provider).Extract(ctx, text)
	if result.Degraded {
		fmt.Fprintf(os.Stderr, "Warning: pattern-based extraction only (%s)\n", result.Reason)
	}

	out := struct {
		Record   any    `json:"record"`
		Degraded bool   `json:"degraded"`
		Reason   string `json:"reason,omitempty"`
	}{result.Record, result.Degraded, result.Reason}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}
	data = append(data, '\n')

	if extractJSON != "" {
		if err := os.WriteFile(extractJSON, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", extractJSON, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote fields: %s\n", extractJSON)
		}
		return nil
	}

	fmt.Print(string(data))
	return nil
}
