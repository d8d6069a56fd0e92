package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"appealgen/internal/model"
)

func completedResult() *model.RunResult {
	return &model.RunResult{
		RunID: "run-1",
		State: model.StateCompleted,
		Artifact: &model.AppealArtifact{
			LetterText:   "Dear GRO,\n\nReconsider claim CLM12345.",
			GuidanceText: "1. Submit within 30 days.",
		},
	}
}

func TestRenderLetter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "appeal_letter.txt")

	if err := NewRenderer(true).RenderLetter(completedResult(), path); err != nil {
		t.Fatalf("RenderLetter: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read letter: %v", err)
	}
	if !strings.Contains(string(data), "Reconsider claim CLM12345") {
		t.Errorf("letter file = %q", data)
	}
	if !strings.Contains(string(data), "Review every fact") {
		t.Error("footer missing with includeFooter=true")
	}
}

func TestRenderLetter_NoFooter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letter.txt")
	if err := NewRenderer(false).RenderLetter(completedResult(), path); err != nil {
		t.Fatalf("RenderLetter: %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "Review every fact") {
		t.Error("footer written with includeFooter=false")
	}
}

func TestRenderLetter_NoArtifact(t *testing.T) {
	result := &model.RunResult{RunID: "run-2", State: model.StateFailed}
	if err := NewRenderer(false).RenderLetter(result, filepath.Join(t.TempDir(), "x.txt")); err == nil {
		t.Error("Expected error for a run without an artifact")
	}
}

func TestRenderGuidance_EmptySkipsFile(t *testing.T) {
	result := completedResult()
	result.Artifact.GuidanceText = ""
	path := filepath.Join(t.TempDir(), "guidance.txt")

	if err := NewRenderer(false).RenderGuidance(result, path); err != nil {
		t.Fatalf("RenderGuidance: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for empty guidance")
	}
}

func TestRenderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	if err := NewRenderer(false).RenderJSON(completedResult(), path); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var decoded model.RunResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.RunID != "run-1" || decoded.State != model.StateCompleted {
		t.Errorf("decoded = %+v", decoded)
	}
}
