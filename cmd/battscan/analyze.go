package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/battscan/battscan/pkg/analyzer"
	"github.com/battscan/battscan/pkg/client"
	"github.com/battscan/battscan/pkg/types"
)

var (
	analyzeJSON   = false
	analyzeRemote = false
)

// NewAnalyzeCommand analyzes a diagnostic snapshot from a file or stdin.
func NewAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "analyze [file]",
		GroupID: gBasic,
		Short:   "Analyze a diagnostic snapshot and print a health report",
		Long: `Analyze one VehicleDiagnosticData JSON snapshot and print its battery
health report. Reads from the given file, or stdin when the file is "-" or
omitted. With --remote, the snapshot is sent to a running battscan daemon
instead of being analyzed in-process.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readDiagnosticData(args)
			if err != nil {
				return err
			}

			var report *types.BatteryHealthReport
			if analyzeRemote {
				report, err = client.NewClient(unixSocketPath).Analyze(data)
			} else {
				report, err = analyzer.New().Analyze(data)
			}
			if err != nil {
				return err
			}

			if analyzeJSON {
				return printReportJSON(cmd, report)
			}
			printReport(cmd, report)
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&analyzeJSON, "json", false, "Print the report as JSON.")
	f.BoolVar(&analyzeRemote, "remote", false, "Send the snapshot to a running daemon.")
	f.StringVar(&unixSocketPath, "socket", unixSocketPath, "Unix socket of the daemon (with --remote).")

	return cmd
}

func readDiagnosticData(args []string) (*types.VehicleDiagnosticData, error) {
	var r io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to open snapshot: %w", err)
		}
		defer func() { _ = file.Close() }()
		r = file
	}

	data := &types.VehicleDiagnosticData{}
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return nil, fmt.Errorf("failed to parse diagnostic data: %w", err)
	}
	return data, nil
}
