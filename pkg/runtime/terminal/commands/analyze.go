package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/finreport/pkg/models/domain"
	"github.com/de-tools/finreport/pkg/runtime/terminal/export"
	"github.com/de-tools/finreport/pkg/services/analysis"
	"github.com/de-tools/finreport/pkg/services/llm"
	"github.com/de-tools/finreport/pkg/services/report"
)

type AnalyzeCmd struct {
	env       *Environment
	newOutput func(currency string) *export.Reporter
	file      string
	narrative bool
	format    string
	currency  string
}

func NewAnalyzeCmd(env *Environment, newOutput func(currency string) *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{env: env, newOutput: newOutput}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute metrics and a report for a quarterly CSV file",
		RunE:  ac.run,
	}

	cmd.Flags().StringVarP(&ac.file, "file", "f", "", "CSV file with Quarter, Revenue and Expenses columns (- for stdin)")
	cmd.Flags().BoolVar(&ac.narrative, "narrative", false, "Write the report with the configured text generator")
	cmd.Flags().StringVar(&ac.format, "format", string(export.FormatMarkdown), "Output format: markdown, table, json or html")
	cmd.Flags().StringVar(&ac.currency, "currency", "", "Currency symbol, overrides the settings")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := ac.env.Context(cmd.Context())

	format, err := export.ParseFormat(ac.format)
	if err != nil {
		return err
	}

	settings, err := ac.env.Settings()
	if err != nil {
		return err
	}
	currency := settings.Report.Currency
	if ac.currency != "" {
		currency = ac.currency
	}

	opts := analysis.Options{Mode: domain.ModeTemplate}
	var generator llm.TextGenerator
	if ac.narrative {
		opts.Mode = domain.ModeNarrative
		generator, err = ac.env.Generator(ctx, settings)
		if err != nil {
			return fmt.Errorf("failed to create text generator: %w", err)
		}
	}

	input, err := ac.env.Open(ac.file)
	if err != nil {
		return err
	}
	defer input.Close()

	service := analysis.NewService(report.NewAssembler(report.Options{Currency: currency}), generator)
	result, err := service.Analyze(ctx, input, opts)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	if result.Failed() {
		return errors.New(result.Error)
	}

	return ac.newOutput(currency).HandleResult(result, format)
}
