package pipeline

import (
	"context"
	"fmt"

	"appealgen/internal/extract"
	"appealgen/internal/ingest"
	"appealgen/internal/model"
)

// Generator ties document ingestion, field extraction and the pipeline into
// a single file-to-appeal operation. Batch runs share one Generator across
// workers; it holds no per-run state.
type Generator struct {
	extractor *extract.Extractor
	pipeline  *Pipeline
	patient   model.PatientInfo
}

// NewGenerator creates a generator. patient applies to every letter
// produced, which suits batch runs for a single policyholder.
func NewGenerator(extractor *extract.Extractor, p *Pipeline, patient model.PatientInfo) *Generator {
	return &Generator{extractor: extractor, pipeline: p, patient: patient}
}

// GenerateFromFile loads a rejection letter, extracts the claim fields and
// runs the full pipeline. Extraction degradation is tolerated; a document
// that cannot be read at all is an error.
func (g *Generator) GenerateFromFile(ctx context.Context, path string) (*model.RunResult, error) {
	text, err := ingest.ReadDocument(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	extraction := g.extractor.Extract(ctx, text)

	return g.pipeline.Run(ctx, Request{
		Record:  extraction.Record,
		Patient: g.patient,
	})
}
