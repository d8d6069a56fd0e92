package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"appealgen/internal/form"
	"appealgen/internal/ingest"
	"appealgen/internal/model"
	"appealgen/internal/pipeline"
)

var (
	analyzeTimeout time.Duration
	policyPath     string
	outLetter      string
	outGuidance    string
	outJSON        string
	noCache        bool
	noFooter       bool
	llmProvider    string
	llmModel       string

	// Field overrides; an explicitly set empty value clears the field
	fieldFlags = map[model.Field]*string{}

	senderName    string
	senderAddress string
	senderPhone   string
	senderEmail   string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <rejection-letter>",
	Short: "Generate an appeal from a claim rejection letter",
	Long: `Analyze reads a rejection letter (.txt, .md or .html), extracts the claim
details, explains the cited rejection codes, and drafts a formal appeal
letter with policyholder guidance.

Any extracted field can be corrected with a flag; your value always wins
over the extraction. Pass an empty value to clear a wrongly extracted field.

Example:
  appealgen analyze rejection.txt
  appealgen analyze rejection.txt --policy policy.md --codes "PED-001,WP-001"
  appealgen analyze rejection.html --claim-number CLM12345 --sender-name "R. Kumar"`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 10*time.Minute, "overall generation timeout")
	analyzeCmd.Flags().StringVar(&policyPath, "policy", "", "policy document to ground the appeal (optional)")

	// Output flags
	analyzeCmd.Flags().StringVar(&outLetter, "letter", "appeal_letter.txt", "output path for the appeal letter")
	analyzeCmd.Flags().StringVar(&outGuidance, "guidance", "appeal_guidance.txt", "output path for the guidance")
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output path for the full run record (optional)")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the completion cache")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable the review footer on the letter")

	// LLM flags
	analyzeCmd.Flags().StringVar(&llmProvider, "provider", "", "LLM provider (mistral, openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "model", "", "LLM model name")

	// Claim field overrides
	for _, spec := range []struct {
		flag  string
		field model.Field
		usage string
	}{
		{"claim-number", model.FieldClaimNumber, "claim number"},
		{"policy-number", model.FieldPolicyNumber, "policy number"},
		{"patient-name", model.FieldPatientName, "patient name"},
		{"insurer", model.FieldInsurerName, "insurance company name"},
		{"hospital", model.FieldHospitalName, "hospital name"},
		{"tpa", model.FieldTPAName, "third-party administrator name"},
		{"admission-date", model.FieldAdmissionDate, "admission date"},
		{"discharge-date", model.FieldDischargeDate, "discharge date"},
		{"claim-amount", model.FieldClaimAmount, "claimed amount in INR"},
		{"denial-reason", model.FieldDenialReason, "insurer's stated rejection reason"},
		{"codes", model.FieldDenialCodes, "rejection codes, comma-separated"},
	} {
		fieldFlags[spec.field] = analyzeCmd.Flags().String(spec.flag, "", "override: "+spec.usage)
	}

	// Sender block for the letter
	analyzeCmd.Flags().StringVar(&senderName, "sender-name", "", "policyholder name for the letter")
	analyzeCmd.Flags().StringVar(&senderAddress, "sender-address", "", "policyholder address for the letter")
	analyzeCmd.Flags().StringVar(&senderPhone, "sender-phone", "", "policyholder phone for the letter")
	analyzeCmd.Flags().StringVar(&senderEmail, "sender-email", "", "policyholder email for the letter")
}

// fieldFlagName maps a field back to its override flag for Changed checks
func fieldFlagName(field model.Field) string {
	switch field {
	case model.FieldClaimNumber:
		return "claim-number"
	case model.FieldPolicyNumber:
		return "policy-number"
	case model.FieldPatientName:
		return "patient-name"
	case model.FieldInsurerName:
		return "insurer"
	case model.FieldHospitalName:
		return "hospital"
	case model.FieldTPAName:
		return "tpa"
	case model.FieldAdmissionDate:
		return "admission-date"
	case model.FieldDischargeDate:
		return "discharge-date"
	case model.FieldClaimAmount:
		return "claim-amount"
	case model.FieldDenialReason:
		return "denial-reason"
	case model.FieldDenialCodes:
		return "codes"
	}
	return ""
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	letterPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	cfg := buildConfig(llmProvider, llmModel, noCache)
	cfg.Output.IncludeFooter = !noFooter
	if err := resolveCredentials(cfg); err != nil {
		return err
	}

	text, err := ingest.ReadDocument(letterPath)
	if err != nil {
		return err
	}

	var policyText string
	if policyPath != "" {
		policyText, err = ingest.ReadDocument(policyPath)
		if err != nil {
			return err
		}
	}

	p, provider, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Letter:   %s\n", letterPath)
		fmt.Fprintf(os.Stderr, "Provider: %s/%s\n\n", cfg.LLM.Provider, cfg.LLM.Model)
		fmt.Fprintf(os.Stderr, "Extracting claim details...\n")
	}

	extraction := buildExtractor(provider).Extract(ctx, text)
	if extraction.Degraded {
		fmt.Fprintf(os.Stderr, "Warning: pattern-based extraction only (%s); check the fields below\n", extraction.Reason)
	}

	// User overrides always win over extraction
	edits := form.NewEdits()
	for field, value := range fieldFlags {
		if cmd.Flags().Changed(fieldFlagName(field)) {
			edits.Set(field, *value)
		}
	}
	record := form.Reconcile(extraction.Record, edits)

	if missing := form.MissingFields(record); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = string(f)
		}
		fmt.Fprintf(os.Stderr, "Note: unfilled fields: %s\n", strings.Join(names, ", "))
		fmt.Fprintf(os.Stderr, "The letter will carry placeholders; rerun with override flags to fill them.\n")
	}

	result, runErr := p.Run(ctx, pipeline.Request{
		Record:     record,
		PolicyText: policyText,
		Patient: model.PatientInfo{
			Name:    senderName,
			Address: senderAddress,
			Phone:   senderPhone,
			Email:   senderEmail,
		},
	})

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" && result != nil {
		if err := renderer.RenderJSON(result, outJSON); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	if runErr != nil {
		if result != nil {
			renderer.RenderSummary(result)
		}
		return runErr
	}

	if err := renderer.RenderLetter(result, outLetter); err != nil {
		return err
	}
	if err := renderer.RenderGuidance(result, outGuidance); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Wrote letter: %s\n", outLetter)
		if result.Artifact.GuidanceText != "" {
			fmt.Fprintf(os.Stderr, "Wrote guidance: %s\n", outGuidance)
		}
	}
	renderer.RenderSummary(result)

	return nil
}
