package config

import (
	"github.com/sirupsen/logrus"

	"github.com/battscan/battscan/pkg/analyzer"
)

// Config is the deployment-tunable analysis configuration. The defaults
// reproduce the stock industry thresholds, so a deployment without a config
// file behaves exactly like a freshly constructed analyzer.
type Config interface {
	VoltageImbalanceVolts() float64
	CellOverheatCelsius() float64
	HighResistanceMilliohms() float64
	AcceleratedDegradationPerYear() float64
	MinCyclesForAnalysis() int

	SetVoltageImbalanceVolts(float64)
	SetCellOverheatCelsius(float64)
	SetHighResistanceMilliohms(float64)
	SetAcceleratedDegradationPerYear(float64)
	SetMinCyclesForAnalysis(int)

	// Thresholds collects the current values for handing to an analyzer.
	Thresholds() analyzer.Thresholds

	// LogrusFields returns the config as structured log fields.
	LogrusFields() logrus.Fields

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
