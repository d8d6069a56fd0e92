package agent

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"appealgen/internal/llm"
	"appealgen/internal/model"
)

// flakyProvider fails the first failures calls, then succeeds
type flakyProvider struct {
	failures int
	calls    int
	prompts  []string
}

func (p *flakyProvider) Name() string                         { return "flaky" }
func (p *flakyProvider) IsAvailable(ctx context.Context) bool { return true }
func (p *flakyProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.calls++
	p.prompts = append(p.prompts, req.Prompt)
	if p.calls <= p.failures {
		return nil, fmt.Errorf("upstream overloaded")
	}
	return &llm.CompletionResponse{Text: "analysis output"}, nil
}

func testContext() *model.PipelineContext {
	record := model.NewClaimRecord()
	record.Set(model.FieldClaimNumber, "CLM12345", model.ProvenanceAI)
	record.Set(model.FieldDenialReason, "Pre-existing disease", model.ProvenanceAI)
	return &model.PipelineContext{Record: record}
}

func TestRun_RetriesOnceThenSucceeds(t *testing.T) {
	provider := &flakyProvider{failures: 1}
	exec := NewExecutor(provider, nil)

	out, err := exec.Run(context.Background(), Stages("", "")[0], testContext())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != "analysis output" {
		t.Errorf("output = %q", out)
	}
	if provider.calls != 2 {
		t.Errorf("calls = %d, want 2 (one retry)", provider.calls)
	}
}

func TestRun_FailsAfterSecondAttempt(t *testing.T) {
	provider := &flakyProvider{failures: 5}
	exec := NewExecutor(provider, nil)

	stage := Stages("", "")[3]
	_, err := exec.Run(context.Background(), stage, testContext())
	if err == nil {
		t.Fatal("Expected error after retry exhausted")
	}
	if provider.calls != 2 {
		t.Errorf("calls = %d, want exactly 2", provider.calls)
	}
	if !strings.Contains(err.Error(), StageAppealStrategist) {
		t.Errorf("error should name the failed stage: %v", err)
	}
}

func TestBuildPrompt_ForwardOnlyContext(t *testing.T) {
	pctx := testContext()
	pctx.Append(StageDocumentAnalyzer, "facts of the case")
	pctx.Append(StagePolicyExpert, "clause 4.1 misapplied")

	stages := Stages("", "")
	prompt := BuildPrompt(stages[2], pctx)

	if !strings.Contains(prompt, "facts of the case") {
		t.Error("prompt should carry the first stage's output")
	}
	if !strings.Contains(prompt, "clause 4.1 misapplied") {
		t.Error("prompt should carry the second stage's output")
	}
	// Outputs appear in stage order
	if strings.Index(prompt, "facts of the case") > strings.Index(prompt, "clause 4.1 misapplied") {
		t.Error("prior outputs out of order")
	}
	if strings.Contains(prompt, StageLetterWriter) {
		t.Error("later stages must not appear in an earlier stage's prompt")
	}
}

func TestBuildPrompt_Sections(t *testing.T) {
	pctx := testContext()
	pctx.PolicyText = "Section 3: waiting periods apply to listed ailments."
	pctx.DenialAnalysis = "Overall Appeal Likelihood: Good"
	pctx.Patient = model.PatientInfo{Name: "Ramesh Kumar", Phone: "98765 43210"}

	stages := Stages("", "")

	first := BuildPrompt(stages[0], pctx)
	if !strings.Contains(first, "CLM12345") {
		t.Error("prompt should include the claim record")
	}
	if !strings.Contains(first, "waiting periods apply") {
		t.Error("prompt should include the policy text")
	}
	if !strings.Contains(first, "Overall Appeal Likelihood") {
		t.Error("prompt should include the rejection-code analysis")
	}
	if strings.Contains(first, "Ramesh Kumar") {
		t.Error("patient details belong only in the letter-writing stage")
	}

	letter := BuildPrompt(stages[4], pctx)
	if !strings.Contains(letter, "Ramesh Kumar") || !strings.Contains(letter, "98765 43210") {
		t.Error("letter stage should include policyholder details")
	}
}

func TestBuildPrompt_MissingFieldsMarked(t *testing.T) {
	prompt := BuildPrompt(Stages("", "")[0], testContext())
	if !strings.Contains(prompt, "Hospital: Not found in document") {
		t.Errorf("unfilled fields should be marked; got:\n%s", prompt)
	}
}

func TestBuildPrompt_PolicyTextTruncated(t *testing.T) {
	pctx := testContext()
	pctx.PolicyText = strings.Repeat("x", policyTextCap+500)

	prompt := BuildPrompt(Stages("", "")[1], pctx)
	if strings.Contains(prompt, strings.Repeat("x", policyTextCap+1)) {
		t.Error("policy text should be capped")
	}
}

func TestStages_FixedSequence(t *testing.T) {
	stages := Stages("regulatory text", "letter skeleton")

	want := []string{
		StageDocumentAnalyzer,
		StagePolicyExpert,
		StageRejectionReviewer,
		StageAppealStrategist,
		StageLetterWriter,
		StageQualityReviewer,
	}
	if len(stages) != len(want) {
		t.Fatalf("len(stages) = %d, want %d", len(stages), len(want))
	}
	for i, s := range stages {
		if s.Name != want[i] {
			t.Errorf("stage[%d] = %s, want %s", i, s.Name, want[i])
		}
		if s.Role == "" || s.Goal == "" || s.Backstory == "" || s.Instructions == "" {
			t.Errorf("stage %s has an empty framing field", s.Name)
		}
	}

	if !strings.Contains(stages[3].Backstory, "regulatory text") {
		t.Error("strategist should carry the regulatory reference")
	}
	if !strings.Contains(stages[4].Instructions, "letter skeleton") {
		t.Error("letter writer should carry the template")
	}
	if !strings.Contains(stages[5].Instructions, "## Next Steps") {
		t.Error("quality reviewer should demand the guidance heading")
	}
	if !stages[4].IncludePatient {
		t.Error("letter writer should receive patient details")
	}
}
