package main

import (
	"encoding/json"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/battscan/battscan/pkg/types"
)

// healthCondition maps SoH to the industry reading of it.
func healthCondition(soh float64) string {
	switch {
	case soh > 90:
		return color.New(color.Bold, color.FgGreen).Sprint("Excellent")
	case soh > 80:
		return color.New(color.FgGreen).Sprint("Good")
	case soh > 70:
		return color.New(color.FgYellow).Sprint("Fair")
	default:
		return color.New(color.Bold, color.FgRed).Sprint("Poor")
	}
}

func printReport(cmd *cobra.Command, report *types.BatteryHealthReport) {
	cmd.Println(bold("Battery health report"))
	cmd.Printf("  Vehicle: %s\n", bold("%s", report.VehicleID))
	cmd.Printf("  Analyzed at: %s\n", report.AnalysisTimestamp.Format("2006-01-02 15:04:05"))
	cmd.Println()

	cmd.Printf("  State of health: %s (%s)\n", bold("%.1f%%", report.StateOfHealthPercent), healthCondition(report.StateOfHealthPercent))
	cmd.Printf("  Charge cycles: %s\n", bold("%d", report.ChargeCycleCount))
	cmd.Printf("  Degradation rate: %s per year\n", bold("%.1f%%", report.DegradationRatePerYear))
	cmd.Printf("  Estimated remaining capacity: %s\n", bold("%.2f kWh", report.EstimatedRemainingCapacityKWh))
	cmd.Printf("  Confidence: %.1f%%\n", report.ConfidenceScore)
	cmd.Println()

	if len(report.Anomalies) == 0 {
		cmd.Println("  " + okText("No anomalies detected"))
		return
	}

	cmd.Println("  " + warnText("Anomalies detected:"))
	for _, anomaly := range report.Anomalies {
		cmd.Printf("    • %s\n", anomaly)
	}
}

func printReportJSON(cmd *cobra.Command, report *types.BatteryHealthReport) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func okText(s string) string {
	return color.New(color.Bold, color.FgGreen).Sprint("✔ " + s)
}

func warnText(s string) string {
	return color.New(color.Bold, color.FgRed).Sprint("⚠ " + s)
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
