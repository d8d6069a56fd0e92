package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"appealgen/internal/model"
)

// Generator produces an appeal run from one rejection-letter file
type Generator interface {
	GenerateFromFile(ctx context.Context, path string) (*model.RunResult, error)
}

// AppealJob generates an appeal for a single letter file
type AppealJob struct {
	Path      string
	Generator Generator
}

// Execute runs the job.
func (j *AppealJob) Execute(ctx context.Context) Result {
	run, err := j.Generator.GenerateFromFile(ctx, j.Path)
	return &AppealResult{
		Path:  j.Path,
		Run:   run,
		Error: err,
	}
}

// AppealResult pairs an input file with its run outcome
type AppealResult struct {
	Path  string
	Run   *model.RunResult
	Error error
}

// GetError returns the job error, if any.
func (r *AppealResult) GetError() error {
	return r.Error
}

// BatchProcessor generates appeals for many letters concurrently
type BatchProcessor struct {
	generator   Generator
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(generator Generator, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		generator:   generator,
		concurrency: concurrency,
	}
}

// ProcessFiles runs every letter through the generator using the worker
// pool. One failing letter never stops the rest; its result carries the
// error.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*AppealResult {
	if len(paths) == 0 {
		return []*AppealResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start(ctx)

	for _, path := range paths {
		pool.Submit(&AppealJob{
			Path:      path,
			Generator: b.generator,
		})
	}

	results := pool.Wait()

	appealResults := make([]*AppealResult, len(results))
	for i, result := range results {
		appealResults[i] = result.(*AppealResult)
	}

	return appealResults
}

// ProcessManifest reads letter paths from a manifest file and processes
// them concurrently.
func (b *BatchProcessor) ProcessManifest(ctx context.Context, manifestPath string) ([]*AppealResult, error) {
	paths, err := ReadManifest(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return b.ProcessFiles(ctx, paths), nil
}

// ReadManifest reads letter paths from a file, one per line. Blank lines
// and #-comments are skipped and duplicates collapse to their first entry.
func ReadManifest(manifestPath string) ([]string, error) {
	file, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan manifest: %w", err)
	}

	return paths, nil
}
