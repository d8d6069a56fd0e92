package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"appealgen/internal/knowledge"
)

// codesCmd represents the codes command
var codesCmd = &cobra.Command{
	Use:   "codes <code>...",
	Short: "Explain rejection codes and rate the appeal outlook",
	Long: `Codes looks up rejection codes in the built-in knowledge base and prints
what each code means, its common causes, the grounds for appeal, the
documents to gather, and an overall appeal outlook.

Works entirely offline; no LLM calls are made.

Example:
  appealgen codes PED-001
  appealgen codes PED-001 WP-002 PA-001`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCodes,
}

func init() {
	rootCmd.AddCommand(codesCmd)
}

func runCodes(cmd *cobra.Command, args []string) error {
	catalog, err := knowledge.NewCatalog()
	if err != nil {
		return fmt.Errorf("load rejection codes: %w", err)
	}

	analysis := catalog.Analyze(args)
	fmt.Print(knowledge.FormatReport(analysis))

	return nil
}
