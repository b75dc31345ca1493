package analyzer

import (
	"math"
	"sort"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/battscan/battscan/pkg/types"
)

// Thresholds holds the limits used by anomaly detection and the confidence
// heuristic. The defaults follow common industry figures; deployments may
// tune them without touching the analysis logic.
type Thresholds struct {
	// VoltageImbalanceVolts is the maximum allowed spread between the highest
	// and lowest cell voltage. 50 mV between cells.
	VoltageImbalanceVolts float64 `json:"voltageImbalanceVolts"`
	// CellOverheatCelsius is the per-cell temperature limit.
	CellOverheatCelsius float64 `json:"cellOverheatCelsius"`
	// HighResistanceMilliohms is the per-cell internal resistance limit.
	HighResistanceMilliohms float64 `json:"highResistanceMilliohms"`
	// AcceleratedDegradationPerYear is the capacity-loss rate (%/year) above
	// which degradation is flagged.
	AcceleratedDegradationPerYear float64 `json:"acceleratedDegradationPerYear"`
	// MinCyclesForAnalysis is the minimum charge-cycle count for a reliable
	// analysis; fewer cycles lower the confidence score.
	MinCyclesForAnalysis int `json:"minCyclesForAnalysis"`
}

// DefaultThresholds returns the industry-derived defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		VoltageImbalanceVolts:         0.05,
		CellOverheatCelsius:           45.0,
		HighResistanceMilliohms:       5.0,
		AcceleratedDegradationPerYear: 8.0,
		MinCyclesForAnalysis:          10,
	}
}

// Analyzer turns one diagnostic snapshot into one health report. It keeps no
// state between calls; concurrent use on read-only snapshots is fine.
type Analyzer struct {
	Thresholds Thresholds

	// Logger receives data-quality warnings. Defaults to the logrus standard
	// logger; replace it to keep the computation free of global state.
	Logger logrus.FieldLogger

	// Now is the clock used for age and degradation math and for the report
	// timestamp. Inject a fixed clock for reproducible output.
	Now func() time.Time
}

// New returns an Analyzer with default thresholds, the standard logger, and
// the wall clock.
func New() *Analyzer {
	return &Analyzer{
		Thresholds: DefaultThresholds(),
		Logger:     logrus.StandardLogger(),
		Now:        time.Now,
	}
}

func (a *Analyzer) clock() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *Analyzer) logger() logrus.FieldLogger {
	if a.Logger != nil {
		return a.Logger
	}
	return logrus.StandardLogger()
}

// Analyze computes a full health report from one snapshot. It fails only on
// structurally missing fields; degraded measurement data lowers the report's
// numbers (SoH, confidence) instead of failing the call.
func (a *Analyzer) Analyze(data *types.VehicleDiagnosticData) (*types.BatteryHealthReport, error) {
	if data == nil {
		return nil, pkgerrors.New("diagnostic data is nil")
	}
	if data.ManufacturingDate.IsZero() {
		// Age-dependent calculations have no sound fallback without it.
		return nil, pkgerrors.Errorf("diagnostic data for vehicle %q has no manufacturing date", data.VehicleID)
	}

	a.logger().WithFields(logrus.Fields{
		"vehicle": data.VehicleID,
	}).Debug("analyzing battery health")

	now := a.clock()

	soh := a.stateOfHealth(data)
	degradation := a.degradationRate(data, soh, now)

	return &types.BatteryHealthReport{
		VehicleID:                     data.VehicleID,
		AnalysisTimestamp:             now,
		StateOfHealthPercent:          soh,
		ChargeCycleCount:              countChargeCycles(data.ChargeHistory),
		Anomalies:                     a.detectAnomalies(data, degradation),
		DegradationRatePerYear:        degradation,
		EstimatedRemainingCapacityKWh: data.CurrentCapacityKWh,
		ConfidenceScore:               a.confidenceScore(data, now),
	}, nil
}

// stateOfHealth is the ratio of current usable capacity to nameplate
// capacity, as a percentage rounded to one decimal.
//
// Industry reading: >90% excellent, 80-90% good, 70-80% fair, <70% poor.
func (a *Analyzer) stateOfHealth(data *types.VehicleDiagnosticData) float64 {
	if data.TotalCapacityKWh <= 0 {
		a.logger().WithFields(logrus.Fields{
			"vehicle": data.VehicleID,
		}).Warn("invalid total capacity, reporting SoH as 0")
		return 0.0
	}

	soh := data.CurrentCapacityKWh / data.TotalCapacityKWh * 100

	// Current capacity can read above nameplate due to measurement variance.
	return math.Min(100.0, math.Round(soh*10)/10)
}

// countChargeCycles accumulates discharge depth as fractional cycles, so two
// 50% discharges count as one full cycle. Charge events do not contribute.
// The accumulated total truncates toward zero.
func countChargeCycles(history []types.ChargeEvent) int {
	if len(history) == 0 {
		return 0
	}

	events := make([]types.ChargeEvent, len(history))
	copy(events, history)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	totalCycles := 0.0
	for _, ev := range events {
		if ev.EventType == types.EventDischarge {
			totalCycles += (ev.StartSOC - ev.EndSOC) / 100.0
		}
	}

	return int(totalCycles)
}

// degradationRate estimates annual capacity loss (%/year) from vehicle age
// and SoH. Typical EV batteries lose 2-8% per year.
func (a *Analyzer) degradationRate(data *types.VehicleDiagnosticData, soh float64, now time.Time) float64 {
	ageYears := vehicleAgeYears(data.ManufacturingDate, now)

	// Less than ~36 days of service is too little elapsed time for a
	// meaningful rate.
	if ageYears < 0.1 {
		return 0.0
	}

	return (100.0 - soh) / ageYears
}

// confidenceScore rates how trustworthy the report is (0-100) based on data
// completeness and vehicle maturity. Penalties are additive and independent.
func (a *Analyzer) confidenceScore(data *types.VehicleDiagnosticData, now time.Time) float64 {
	confidence := 100.0

	if countChargeCycles(data.ChargeHistory) < a.Thresholds.MinCyclesForAnalysis {
		confidence -= 30.0
	}

	if len(data.Cells) == 0 {
		confidence -= 40.0
	} else if len(data.Cells) < 4 { // minimal cell monitoring
		confidence -= 20.0
	}

	if vehicleAgeYears(data.ManufacturingDate, now) < 0.5 {
		confidence -= 25.0
	}

	return math.Max(0.0, math.Min(100.0, confidence))
}

func vehicleAgeYears(manufactured, now time.Time) float64 {
	return now.Sub(manufactured).Hours() / 24 / 365.25
}
