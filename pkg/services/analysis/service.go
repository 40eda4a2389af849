package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/de-tools/finreport/pkg/models/domain"
	"github.com/de-tools/finreport/pkg/services/charts"
	"github.com/de-tools/finreport/pkg/services/dataset"
	"github.com/de-tools/finreport/pkg/services/llm"
	"github.com/de-tools/finreport/pkg/services/metrics"
	"github.com/de-tools/finreport/pkg/services/report"
	"github.com/de-tools/finreport/pkg/services/workflow"
)

// ReadErrorPrefix starts the Result.Error of unreadable input.
const ReadErrorPrefix = "Error reading CSV: "

var ErrNarrativeUnavailable = errors.New("narrative generation is not configured")

type Options struct {
	Mode domain.AnalysisMode
}

// Service runs a dataset through metric extraction and report generation.
type Service struct {
	assembler *report.Assembler
	pipeline  *workflow.Pipeline
}

// NewService creates a service. A nil generator disables narrative mode.
func NewService(assembler *report.Assembler, generator llm.TextGenerator) *Service {
	s := &Service{assembler: assembler}
	if generator != nil {
		s.pipeline = workflow.NewPipeline(generator)
	}
	return s
}

func (s *Service) NarrativeEnabled() bool {
	return s.pipeline != nil
}

// Analyze reads a CSV stream and analyzes it. Unreadable input is reported in
// Result.Error rather than as an error; the returned error is reserved for
// generator failures.
func (s *Service) Analyze(ctx context.Context, r io.Reader, opts Options) (domain.Result, error) {
	id := uuid.NewString()

	table, err := dataset.Parse(r)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("analysis_id", id).Msg("failed to read dataset")
		return domain.Result{ID: id, Error: ReadErrorPrefix + err.Error()}, nil
	}

	return s.analyzeTable(ctx, id, table, opts)
}

// AnalyzePeriods analyzes manually entered periods.
func (s *Service) AnalyzePeriods(ctx context.Context, periods []domain.Period, opts Options) (domain.Result, error) {
	table, err := dataset.FromPeriods(periods)
	if err != nil {
		return domain.Result{}, err
	}
	return s.analyzeTable(ctx, uuid.NewString(), table, opts)
}

// AnalyzeTable analyzes an already loaded table.
func (s *Service) AnalyzeTable(ctx context.Context, table *domain.Table, opts Options) (domain.Result, error) {
	return s.analyzeTable(ctx, uuid.NewString(), table, opts)
}

func (s *Service) analyzeTable(ctx context.Context, id string, table *domain.Table, opts Options) (domain.Result, error) {
	logger := zerolog.Ctx(ctx).With().Str("analysis_id", id).Logger()

	if opts.Mode == domain.ModeNarrative && s.pipeline == nil {
		return domain.Result{}, ErrNarrativeUnavailable
	}

	m := metrics.Extract(table)
	assembled, err := s.assembler.Assemble(m)
	if err != nil {
		return domain.Result{}, err
	}

	result := domain.Result{
		ID:      id,
		Table:   metrics.WithProfit(table),
		Metrics: &m,
		Report:  assembled.Report,
		Source:  domain.ReportSourceTemplate,
	}

	if opts.Mode == domain.ModeNarrative {
		csvText, err := dataset.EncodeString(table)
		if err != nil {
			return domain.Result{}, fmt.Errorf("failed to serialize dataset: %w", err)
		}

		narrative, err := s.pipeline.Run(logger.WithContext(ctx), csvText)
		if err != nil {
			return domain.Result{}, err
		}
		result.Report = report.CleanMarkdown(narrative)
		result.Source = domain.ReportSourceNarrative
	}

	summary, err := metrics.Summarize(table)
	if err != nil {
		logger.Debug().Err(err).Msg("summary cards unavailable")
		result.SummaryError = err.Error()
	} else {
		result.Summary = &summary
	}

	if chartSet, err := charts.Build(table); err == nil {
		result.Charts = &chartSet
	} else {
		logger.Debug().Err(err).Msg("charts unavailable")
	}

	logger.Info().
		Int("rows", m.TotalRows).
		Str("source", string(result.Source)).
		Msg("analysis completed")

	return result, nil
}
