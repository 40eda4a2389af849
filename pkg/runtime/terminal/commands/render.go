package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/finreport/pkg/runtime/terminal/export"
	"github.com/de-tools/finreport/pkg/services/report"
)

type RenderCmd struct {
	env         *Environment
	newOutput   func(currency string) *export.Reporter
	metricsPath string
	format      string
	currency    string
}

func NewRenderCmd(env *Environment, newOutput func(currency string) *export.Reporter) *cobra.Command {
	rc := &RenderCmd{env: env, newOutput: newOutput}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the report for a JSON metrics mapping",
		RunE:  rc.run,
	}

	cmd.Flags().StringVarP(&rc.metricsPath, "metrics", "m", "", "JSON file with the metrics mapping (- for stdin)")
	cmd.Flags().StringVar(&rc.format, "format", string(export.FormatMarkdown), "Output format: markdown, table, json or html")
	cmd.Flags().StringVar(&rc.currency, "currency", "", "Currency symbol, overrides the settings")

	_ = cmd.MarkFlagRequired("metrics")

	return cmd
}

func (rc *RenderCmd) run(_ *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(rc.format)
	if err != nil {
		return err
	}

	settings, err := rc.env.Settings()
	if err != nil {
		return err
	}
	currency := settings.Report.Currency
	if rc.currency != "" {
		currency = rc.currency
	}

	input, err := rc.env.Open(rc.metricsPath)
	if err != nil {
		return err
	}
	defer input.Close()

	var values map[string]any
	if err := json.NewDecoder(input).Decode(&values); err != nil {
		return fmt.Errorf("failed to parse metrics mapping: %w", err)
	}

	assembled, err := report.NewAssembler(report.Options{Currency: currency}).AssembleMap(values)
	if err != nil {
		return err
	}

	return rc.newOutput(currency).HandleAssembled(assembled, format)
}
