// Package pipeline orchestrates a full appeal-generation run: the fixed
// six-stage agent sequence over a reconciled claim record, followed by
// splitting the final output into letter and guidance.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"appealgen/internal/agent"
	"appealgen/internal/knowledge"
	"appealgen/internal/model"
)

// StageError reports which stage aborted a run
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline aborted at stage %q: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Pipeline runs the appeal-generation sequence
type Pipeline struct {
	executor  *agent.Executor
	catalog   *knowledge.Catalog
	templates *knowledge.Templates
	verbose   bool
}

// Request carries everything one run needs: the record after user
// reconciliation, the optional policy wording, and the sender details.
type Request struct {
	Record     model.ClaimRecord
	PolicyText string
	Patient    model.PatientInfo
}

// New creates a pipeline. executor must be non-nil; catalog and templates
// come from the knowledge package.
func New(executor *agent.Executor, catalog *knowledge.Catalog, templates *knowledge.Templates, verbose bool) *Pipeline {
	return &Pipeline{
		executor:  executor,
		catalog:   catalog,
		templates: templates,
		verbose:   verbose,
	}
}

// Run executes the six stages in order over an accumulating context.
// Each stage sees the claim record, the rejection-code analysis, and every
// earlier stage's output. A stage that fails after its retry aborts the run:
// the returned result has state failed, names the stage, and carries no
// artifact. Partial stage outputs remain in the result context for
// inspection.
func (p *Pipeline) Run(ctx context.Context, req Request) (*model.RunResult, error) {
	result := &model.RunResult{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		State:     model.StateNotStarted,
	}

	analysis := p.catalog.Analyze(req.Record.DenialCodes)
	pctx := &model.PipelineContext{
		Record:     req.Record,
		PolicyText: req.PolicyText,
		Patient:    req.Patient,
	}
	if len(req.Record.DenialCodes) > 0 {
		pctx.DenialAnalysis = knowledge.FormatReport(analysis)
	}
	result.Context = pctx

	stages := agent.Stages(knowledge.Regulations(), p.templates.ForCategory(analysis.PrimaryCategory))

	result.State = model.StateRunning
	for i, stage := range stages {
		if p.verbose {
			fmt.Fprintf(os.Stderr, "[%d/%d] %s...\n", i+1, len(stages), stage.Name)
		}

		output, err := p.executor.Run(ctx, stage, pctx)
		if err != nil {
			result.State = model.StateFailed
			result.FailedStage = stage.Name
			result.FinishedAt = time.Now().UTC()
			return result, &StageError{Stage: stage.Name, Err: err}
		}
		pctx.Append(stage.Name, output)
	}

	final, _ := pctx.Output(agent.StageQualityReviewer)
	letter, guidance := SplitAppeal(final)
	result.Artifact = &model.AppealArtifact{LetterText: letter, GuidanceText: guidance}
	result.State = model.StateCompleted
	result.FinishedAt = time.Now().UTC()

	return result, nil
}
