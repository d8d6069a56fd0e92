package model

import "time"

// StageOutput is one (stage name, output text) pair in the pipeline context
type StageOutput struct {
	Stage  string `json:"stage"`
	Output string `json:"output"`
}

// PipelineContext accumulates stage outputs for a single pipeline run.
// It is owned exclusively by one run; stage N+1 sees everything up to stage N
// and nothing later.
type PipelineContext struct {
	Record         ClaimRecord   `json:"record"`
	PolicyText     string        `json:"policy_text,omitempty"`
	DenialAnalysis string        `json:"denial_analysis,omitempty"`
	Patient        PatientInfo   `json:"patient"`
	Stages         []StageOutput `json:"stages"`
}

// Output returns the output of a named stage, if it has run.
func (c *PipelineContext) Output(stage string) (string, bool) {
	for _, s := range c.Stages {
		if s.Stage == stage {
			return s.Output, true
		}
	}
	return "", false
}

// Append records a completed stage's output.
func (c *PipelineContext) Append(stage, output string) {
	c.Stages = append(c.Stages, StageOutput{Stage: stage, Output: output})
}

// PatientInfo holds the policyholder contact details for the appeal letter
type PatientInfo struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// AppealArtifact is the final output pair, immutable once produced
type AppealArtifact struct {
	LetterText   string `json:"letter_text"`
	GuidanceText string `json:"guidance_text,omitempty"`
}

// RunState tracks the linear pipeline state machine
type RunState string

const (
	StateNotStarted RunState = "not_started"
	StateRunning    RunState = "running"
	StateCompleted  RunState = "completed"
	StateFailed     RunState = "failed"
)

// RunResult is the complete record of one pipeline run
type RunResult struct {
	RunID       string           `json:"run_id"`
	StartedAt   time.Time        `json:"started_at"`
	FinishedAt  time.Time        `json:"finished_at"`
	State       RunState         `json:"state"`
	FailedStage string           `json:"failed_stage,omitempty"`
	Context     *PipelineContext `json:"context,omitempty"`
	Artifact    *AppealArtifact  `json:"artifact,omitempty"`
}
