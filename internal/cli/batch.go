package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"appealgen/internal/model"
	"appealgen/internal/pipeline"
	"appealgen/internal/worker"
)

var (
	concurrency   int
	outputDir     string
	batchTimeout  time.Duration
	batchNoCache  bool
	batchNoFooter bool
	batchProvider string
	batchModel    string
	batchSender   string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Generate appeals for multiple rejection letters in parallel",
	Long: `Batch reads letter paths from a manifest file (one per line, # for
comments) and generates an appeal for each, running letters in parallel
while sharing one rate limit toward the LLM provider.

Each letter produces <name>_letter.txt, <name>_guidance.txt and
<name>.json in the output directory. One failing letter never stops the
rest.

Example:
  appealgen batch letters.txt
  appealgen batch letters.txt --concurrency 4 --output-dir ./appeals`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent letters (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./appeals", "output directory")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total batch timeout")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "disable the completion cache")
	batchCmd.Flags().BoolVar(&batchNoFooter, "no-footer", false, "disable the review footer on letters")
	batchCmd.Flags().StringVar(&batchProvider, "provider", "", "LLM provider (mistral, openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&batchModel, "model", "", "LLM model name")
	batchCmd.Flags().StringVar(&batchSender, "sender-name", "", "policyholder name used in every letter")
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifest := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig(batchProvider, batchModel, batchNoCache)
	cfg.Output.IncludeFooter = !batchNoFooter
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}
	if err := resolveCredentials(cfg); err != nil {
		return err
	}

	p, provider, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Manifest:  %s\n", manifest)
	fmt.Fprintf(os.Stderr, "Workers:   %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "Output:    %s\n\n", outputDir)

	generator := pipeline.NewGenerator(buildExtractor(provider), p, model.PatientInfo{Name: batchSender})
	processor := worker.NewBatchProcessor(generator, cfg.Concurrency.Workers)

	results, err := processor.ProcessManifest(ctx, manifest)
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Path, result.Error)
			continue
		}

		slug := batchSlug(result.Path)
		letterPath := filepath.Join(outputDir, slug+"_letter.txt")
		guidancePath := filepath.Join(outputDir, slug+"_guidance.txt")
		jsonPath := filepath.Join(outputDir, slug+".json")

		if err := renderer.RenderLetter(result.Run, letterPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderGuidance(result.Run, guidancePath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", result.Path, err)
		}
		if err := renderer.RenderJSON(result.Run, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", result.Path, err)
		}

		successCount++
		fmt.Fprintf(os.Stderr, "OK   %s -> %s\n", result.Path, letterPath)
	}

	fmt.Fprintf(os.Stderr, "\nTotal: %d  Success: %d  Failures: %d\n", len(results), successCount, failureCount)

	if failureCount > 0 {
		return fmt.Errorf("%d of %d letters failed", failureCount, len(results))
	}
	return nil
}

// batchSlug derives an output file stem from a letter path
func batchSlug(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	base = replacer.Replace(base)

	if len(base) > 100 {
		base = base[:100]
	}
	return base
}
