package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/battscan/battscan/pkg/client"
	"github.com/battscan/battscan/pkg/config"
	"github.com/battscan/battscan/pkg/utils/ptr"
)

var (
	thVoltageImbalance *float64
	thCellOverheat     *float64
	thHighResistance   *float64
	thDegradation      *float64
	thMinCycles        *int
)

// NewThresholdsCommand inspects or updates a running daemon's thresholds.
func NewThresholdsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "thresholds",
		GroupID: gAdvanced,
		Short:   "Show the analysis thresholds of a running daemon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			th, err := client.NewClient(unixSocketPath).GetThresholds()
			if err != nil {
				return err
			}

			cmd.Println(bold("Analysis thresholds:"))
			cmd.Printf("  Voltage imbalance: %s\n", bold("%.3f V", th.VoltageImbalanceVolts))
			cmd.Printf("  Cell overheat: %s\n", bold("%.1f °C", th.CellOverheatCelsius))
			cmd.Printf("  High internal resistance: %s\n", bold("%.2f mΩ", th.HighResistanceMilliohms))
			cmd.Printf("  Accelerated degradation: %s per year\n", bold("%.1f%%", th.AcceleratedDegradationPerYear))
			cmd.Printf("  Minimum cycles for full confidence: %s\n", bold("%d", th.MinCyclesForAnalysis))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&unixSocketPath, "socket", unixSocketPath, "Unix socket of the daemon.")
	cmd.AddCommand(newThresholdsSetCommand())

	return cmd
}

func newThresholdsSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update analysis thresholds on a running daemon",
		Long:  `Update one or more analysis thresholds. Flags that are not given keep their current value.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw := config.RawFileConfig{}
			if cmd.Flags().Changed("voltage-imbalance") {
				raw.VoltageImbalanceVolts = thVoltageImbalance
			}
			if cmd.Flags().Changed("cell-overheat") {
				raw.CellOverheatCelsius = thCellOverheat
			}
			if cmd.Flags().Changed("high-resistance") {
				raw.HighResistanceMilliohms = thHighResistance
			}
			if cmd.Flags().Changed("accelerated-degradation") {
				raw.AcceleratedDegradationPerYear = thDegradation
			}
			if cmd.Flags().Changed("min-cycles") {
				raw.MinCyclesForAnalysis = thMinCycles
			}

			ret, err := client.NewClient(unixSocketPath).SetThresholds(raw)
			if err != nil {
				return err
			}
			if ret != "" {
				logrus.Infof("daemon responded: %s", ret)
			}
			logrus.Info("successfully updated thresholds")
			return nil
		},
	}

	thVoltageImbalance = ptr.To(0.0)
	thCellOverheat = ptr.To(0.0)
	thHighResistance = ptr.To(0.0)
	thDegradation = ptr.To(0.0)
	thMinCycles = ptr.To(0)

	f := cmd.Flags()
	f.Float64Var(thVoltageImbalance, "voltage-imbalance", 0, "Cell voltage imbalance threshold (V).")
	f.Float64Var(thCellOverheat, "cell-overheat", 0, "Cell overheat threshold (°C).")
	f.Float64Var(thHighResistance, "high-resistance", 0, "High internal resistance threshold (mΩ).")
	f.Float64Var(thDegradation, "accelerated-degradation", 0, "Accelerated degradation threshold (%/year).")
	f.IntVar(thMinCycles, "min-cycles", 0, "Minimum charge cycles for full confidence.")

	return cmd
}
