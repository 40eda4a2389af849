package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/finreport/pkg/services/llm"
)

type Stage string

const (
	StageAnalyze Stage = "analyze"
	StageReport  Stage = "report"
)

// StageError wraps a generator failure with the stage it happened in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageResult is the output of a single completed stage.
type StageResult struct {
	Stage   Stage
	Output  string
	Elapsed time.Duration
}

// Pipeline runs the analysis and report stages one after the other. The
// output of the first stage is the only input of the second.
type Pipeline struct {
	generator llm.TextGenerator
}

func NewPipeline(generator llm.TextGenerator) *Pipeline {
	return &Pipeline{generator: generator}
}

// Run feeds the CSV text through both stages and returns the report text.
func (p *Pipeline) Run(ctx context.Context, csvText string) (string, error) {
	results, err := p.RunStages(ctx, csvText)
	if err != nil {
		return "", err
	}
	return results[len(results)-1].Output, nil
}

// RunStages is Run but returns every stage output.
func (p *Pipeline) RunStages(ctx context.Context, csvText string) ([]StageResult, error) {
	analysis, err := p.run(ctx, StageAnalyze, AnalyzePrompt(csvText))
	if err != nil {
		return nil, err
	}

	report, err := p.run(ctx, StageReport, ReportPrompt(analysis.Output))
	if err != nil {
		return nil, err
	}

	return []StageResult{analysis, report}, nil
}

func (p *Pipeline) run(ctx context.Context, stage Stage, prompt string) (StageResult, error) {
	logger := zerolog.Ctx(ctx).With().Str("stage", string(stage)).Logger()

	started := time.Now()
	output, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		logger.Error().Err(err).Msg("stage failed")
		return StageResult{}, &StageError{Stage: stage, Err: err}
	}

	elapsed := time.Since(started)
	logger.Debug().Dur("elapsed", elapsed).Int("output_bytes", len(output)).Msg("stage completed")

	return StageResult{Stage: stage, Output: output, Elapsed: elapsed}, nil
}

// AnalyzePrompt asks for an analysis of the CSV data.
func AnalyzePrompt(csvText string) string {
	var b strings.Builder
	b.WriteString("Analyze the following financial CSV data. Derive key metrics, identify trends and summarize the performance.\n\n")
	b.WriteString("The data is:\n---\n")
	b.WriteString(strings.TrimRight(csvText, "\n"))
	b.WriteString("\n---\n\n")
	b.WriteString("Respond with a comprehensive, bulleted analysis including trends and key findings.")
	return b.String()
}

// ReportPrompt asks for a markdown report based on a previous analysis.
func ReportPrompt(analysis string) string {
	var b strings.Builder
	b.WriteString("Based on the analysis below, write a professional, easy-to-read financial report in markdown format. ")
	b.WriteString("The report must include an executive summary and a conclusion.\n\n")
	b.WriteString("Analysis:\n---\n")
	b.WriteString(strings.TrimSpace(analysis))
	b.WriteString("\n---")
	return b.String()
}
