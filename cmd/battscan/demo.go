package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/battscan/battscan/pkg/analyzer"
	"github.com/battscan/battscan/pkg/mock"
)

var demoJSON = false

// NewDemoCommand runs the analyzer over synthetic diagnostic data.
func NewDemoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "demo",
		GroupID: gBasic,
		Short:   "Analyze a synthetic diagnostic snapshot",
		Long: `Generate a realistic synthetic diagnostic snapshot (a three-year-old pack
at 71% state of health) and print its health report. Useful for trying
battscan without real telemetry.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := analyzer.New().Analyze(mock.DiagnosticData(time.Now()))
			if err != nil {
				return err
			}

			if demoJSON {
				return printReportJSON(cmd, report)
			}
			printReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&demoJSON, "json", false, "Print the report as JSON.")

	return cmd
}
