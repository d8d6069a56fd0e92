// Package agent runs one unit of the analysis pipeline: a role-framed LLM
// call over the accumulated context. The six concrete stages differ only in
// their role framing and instructions; the executor mechanics are shared.
package agent

import (
	"context"
	"fmt"
	"strings"

	"appealgen/internal/llm"
	"appealgen/internal/model"
)

// policyTextCap limits how much of a policy document enters a prompt.
const policyTextCap = 5000

// StageConfig describes one pipeline stage. The role/goal/backstory triple
// becomes the system instruction; Instructions is the task itself.
type StageConfig struct {
	Name         string
	Role         string
	Goal         string
	Backstory    string
	Instructions string

	// IncludePatient adds the policyholder's contact details to the prompt
	// (only the Letter Writer needs them)
	IncludePatient bool
}

// Throttle gates outbound LLM calls; satisfied by worker.Limiter
type Throttle interface {
	Wait(ctx context.Context, key string) error
}

// Executor runs stages against an LLM provider
type Executor struct {
	provider llm.Provider
	throttle Throttle
}

// NewExecutor creates a stage executor. throttle may be nil.
func NewExecutor(provider llm.Provider, throttle Throttle) *Executor {
	return &Executor{provider: provider, throttle: throttle}
}

// Run executes one stage over the context so far and returns its output.
// A failed call is retried once with the same prompt; the second failure is
// returned to the caller, which aborts the pipeline.
func (e *Executor) Run(ctx context.Context, stage StageConfig, pctx *model.PipelineContext) (string, error) {
	req := llm.CompletionRequest{
		System: SystemInstruction(stage),
		Prompt: BuildPrompt(stage, pctx),
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if e.throttle != nil {
			if err := e.throttle.Wait(ctx, e.provider.Name()); err != nil {
				return "", fmt.Errorf("stage %s: rate limit wait: %w", stage.Name, err)
			}
		}

		resp, err := e.provider.Complete(ctx, req)
		if err == nil {
			return resp.Text, nil
		}
		lastErr = err
	}

	return "", fmt.Errorf("stage %s failed after retry: %w", stage.Name, lastErr)
}

// SystemInstruction renders the role framing for a stage.
func SystemInstruction(stage StageConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s.\n", stage.Role)
	fmt.Fprintf(&b, "Your goal: %s.\n\n", stage.Goal)
	b.WriteString(stage.Backstory)
	return b.String()
}

// BuildPrompt assembles the user-turn prompt for a stage: its instructions,
// the claim record, supplementary policy text, the rejection-code analysis,
// and every prior stage's output in stage order. Later stages never appear;
// context accumulation is strictly forward-only.
func BuildPrompt(stage StageConfig, pctx *model.PipelineContext) string {
	var b strings.Builder

	b.WriteString(stage.Instructions)
	b.WriteString("\n\nCLAIM INFORMATION:\n")
	b.WriteString(FormatRecord(pctx.Record))

	if pctx.PolicyText != "" {
		policy := pctx.PolicyText
		if len(policy) > policyTextCap {
			policy = policy[:policyTextCap]
		}
		b.WriteString("\n\nPOLICY DOCUMENT:\n")
		b.WriteString(policy)
	}

	if pctx.DenialAnalysis != "" {
		b.WriteString("\n\nREJECTION CODE ANALYSIS:\n")
		b.WriteString(pctx.DenialAnalysis)
	}

	if stage.IncludePatient {
		b.WriteString("\n\nPOLICYHOLDER INFORMATION:\n")
		b.WriteString(formatPatient(pctx.Patient))
	}

	if len(pctx.Stages) > 0 {
		b.WriteString("\n\nANALYSIS SO FAR:\n")
		for _, prior := range pctx.Stages {
			fmt.Fprintf(&b, "\n--- %s ---\n%s\n", prior.Stage, prior.Output)
		}
	}

	return b.String()
}

// FormatRecord renders the claim record for prompts, marking unfilled
// fields the way the extraction instructions describe them.
func FormatRecord(record model.ClaimRecord) string {
	labels := []struct {
		label string
		field model.Field
	}{
		{"Claim Number", model.FieldClaimNumber},
		{"Policy Number", model.FieldPolicyNumber},
		{"Patient Name", model.FieldPatientName},
		{"Insurance Company", model.FieldInsurerName},
		{"Hospital", model.FieldHospitalName},
		{"TPA", model.FieldTPAName},
		{"Admission Date", model.FieldAdmissionDate},
		{"Discharge Date", model.FieldDischargeDate},
		{"Claim Amount (INR)", model.FieldClaimAmount},
		{"Rejection Reason", model.FieldDenialReason},
		{"Rejection Codes", model.FieldDenialCodes},
	}

	var b strings.Builder
	for _, l := range labels {
		value := record.Get(l.field)
		if record.IsMissing(l.field) {
			value = "Not found in document"
		}
		fmt.Fprintf(&b, "%s: %s\n", l.label, value)
	}
	return b.String()
}

func formatPatient(p model.PatientInfo) string {
	name := p.Name
	if name == "" {
		name = "[PATIENT NAME]"
	}
	address := p.Address
	if address == "" {
		address = "[ADDRESS]"
	}
	phone := p.Phone
	if phone == "" {
		phone = "[PHONE]"
	}
	email := p.Email
	if email == "" {
		email = "[EMAIL]"
	}
	return fmt.Sprintf("Name: %s\nAddress: %s\nPhone: %s\nEmail: %s\n", name, address, phone, email)
}
