package analyzer

import (
	"fmt"

	"github.com/battscan/battscan/pkg/types"
)

// detectAnomalies flags conditions that indicate degradation or safety
// issues: cell voltage imbalance, overheating, high internal resistance, and
// accelerated degradation. Findings keep that order. Without cell data the
// remaining checks cannot run and the single no-cell-data finding is
// returned on its own.
func (a *Analyzer) detectAnomalies(data *types.VehicleDiagnosticData, degradationRate float64) []string {
	anomalies := []string{}

	if len(data.Cells) == 0 {
		return append(anomalies, "No cell data available for analysis")
	}

	if len(data.Cells) > 1 {
		minV, maxV := data.Cells[0].Voltage, data.Cells[0].Voltage
		for _, cell := range data.Cells[1:] {
			if cell.Voltage < minV {
				minV = cell.Voltage
			}
			if cell.Voltage > maxV {
				maxV = cell.Voltage
			}
		}
		if spread := maxV - minV; spread > a.Thresholds.VoltageImbalanceVolts {
			anomalies = append(anomalies, fmt.Sprintf("Cell voltage imbalance detected: %.3fV range", spread))
		}
	}

	if maxTemp, ok := hottestOffender(data.Cells, a.Thresholds.CellOverheatCelsius); ok {
		anomalies = append(anomalies, fmt.Sprintf("Cell overheating detected: %.1f°C (threshold: %.1f°C)", maxTemp, a.Thresholds.CellOverheatCelsius))
	}

	if maxRes, ok := highestResistance(data.Cells, a.Thresholds.HighResistanceMilliohms); ok {
		anomalies = append(anomalies, fmt.Sprintf("High internal resistance detected: %.2fmΩ", maxRes))
	}

	if degradationRate > a.Thresholds.AcceleratedDegradationPerYear {
		anomalies = append(anomalies, fmt.Sprintf("Accelerated degradation detected: %.1f%% per year", degradationRate))
	}

	return anomalies
}

// hottestOffender returns the maximum temperature among cells above the
// limit, and whether any cell exceeded it.
func hottestOffender(cells []types.BatteryCell, limit float64) (float64, bool) {
	max, found := 0.0, false
	for _, cell := range cells {
		if cell.Temperature > limit && (!found || cell.Temperature > max) {
			max, found = cell.Temperature, true
		}
	}
	return max, found
}

// highestResistance returns the maximum internal resistance among cells
// above the limit, and whether any cell exceeded it.
func highestResistance(cells []types.BatteryCell, limit float64) (float64, bool) {
	max, found := 0.0, false
	for _, cell := range cells {
		if cell.InternalResistance > limit && (!found || cell.InternalResistance > max) {
			max, found = cell.InternalResistance, true
		}
	}
	return max, found
}
