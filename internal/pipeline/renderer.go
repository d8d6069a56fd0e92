package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"appealgen/internal/model"
)

const letterFooter = "\n\n---\nDrafted with appealgen. Review every fact against your documents before sending."

// Renderer writes run results to disk and prints the console summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer. includeFooter appends a review notice to
// the letter file.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderLetter writes the appeal letter text file.
func (r *Renderer) RenderLetter(result *model.RunResult, path string) error {
	if result.Artifact == nil {
		return fmt.Errorf("run %s produced no artifact", result.RunID)
	}
	text := result.Artifact.LetterText
	if r.includeFooter {
		text += letterFooter
	}
	return writeFile(path, []byte(text+"\n"))
}

// RenderGuidance writes the policyholder guidance file. A run whose output
// had no guidance section writes nothing and returns nil.
func (r *Renderer) RenderGuidance(result *model.RunResult, path string) error {
	if result.Artifact == nil || result.Artifact.GuidanceText == "" {
		return nil
	}
	return writeFile(path, []byte(result.Artifact.GuidanceText+"\n"))
}

// RenderJSON writes the complete run record, including per-stage outputs,
// for machine consumption.
func (r *Renderer) RenderJSON(result *model.RunResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run result: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderSummary prints a human-readable run summary to stdout.
func (r *Renderer) RenderSummary(result *model.RunResult) {
	rule := strings.Repeat("=", 60)
	fmt.Println(rule)
	fmt.Println("APPEAL GENERATION SUMMARY")
	fmt.Println(rule)
	fmt.Printf("Run ID:   %s\n", result.RunID)
	fmt.Printf("State:    %s\n", result.State)
	if result.FailedStage != "" {
		fmt.Printf("Failed:   %s\n", result.FailedStage)
	}
	if !result.FinishedAt.IsZero() {
		fmt.Printf("Duration: %s\n", result.FinishedAt.Sub(result.StartedAt).Round(10 * time.Millisecond))
	}

	if result.Context != nil {
		fmt.Printf("Stages:   %d completed\n", len(result.Context.Stages))
		if codes := result.Context.Record.DenialCodes; len(codes) > 0 {
			fmt.Printf("Codes:    %s\n", strings.Join(codes, ", "))
		}
	}
	if result.Artifact != nil {
		fmt.Printf("Letter:   %d characters\n", len(result.Artifact.LetterText))
		if result.Artifact.GuidanceText != "" {
			fmt.Printf("Guidance: %d characters\n", len(result.Artifact.GuidanceText))
		} else {
			fmt.Println("Guidance: none (no guidance section in output)")
		}
	}
	fmt.Println(rule)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
