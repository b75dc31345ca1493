package analyzer

import (
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/battscan/battscan/pkg/types"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func newTestAnalyzer() *Analyzer {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	a := New()
	a.Logger = logger
	a.Now = func() time.Time { return testNow }
	return a
}

func yearsAgo(years float64) time.Time {
	return testNow.Add(-time.Duration(years * 365.25 * 24 * float64(time.Hour)))
}

func discharge(ts time.Time, startSOC, endSOC float64) types.ChargeEvent {
	return types.ChargeEvent{Timestamp: ts, EventType: types.EventDischarge, StartSOC: startSOC, EndSOC: endSOC}
}

func charge(ts time.Time, startSOC, endSOC float64) types.ChargeEvent {
	return types.ChargeEvent{Timestamp: ts, EventType: types.EventCharge, StartSOC: startSOC, EndSOC: endSOC}
}

func TestStateOfHealth(t *testing.T) {
	tests := []struct {
		name    string
		total   float64
		current float64
		want    float64
	}{
		{
			name:    "zero total capacity is the invalid sentinel",
			total:   0,
			current: 50,
			want:    0.0,
		},
		{
			name:    "negative total capacity is the invalid sentinel",
			total:   -1,
			current: 50,
			want:    0.0,
		},
		{
			name:    "nominal degradation",
			total:   75.0,
			current: 53.25,
			want:    71.0,
		},
		{
			name:    "rounded to one decimal",
			total:   75.0,
			current: 50.0,
			want:    66.7,
		},
		{
			name:    "measurement noise above nameplate is clamped",
			total:   75.0,
			current: 76.5,
			want:    100.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnalyzer()
			data := &types.VehicleDiagnosticData{
				TotalCapacityKWh:   tt.total,
				CurrentCapacityKWh: tt.current,
			}
			if got := a.stateOfHealth(data); got != tt.want {
				t.Errorf("stateOfHealth() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountChargeCycles(t *testing.T) {
	base := testNow.Add(-24 * time.Hour * 100)

	tests := []struct {
		name    string
		history []types.ChargeEvent
		want    int
	}{
		{
			name:    "empty history",
			history: nil,
			want:    0,
		},
		{
			name: "charge events do not count",
			history: []types.ChargeEvent{
				charge(base, 20, 80),
				charge(base.Add(time.Hour), 30, 90),
			},
			want: 0,
		},
		{
			name: "single full discharge",
			history: []types.ChargeEvent{
				discharge(base, 100, 0),
			},
			want: 1,
		},
		{
			name: "two half discharges accumulate to one cycle",
			history: []types.ChargeEvent{
				discharge(base, 80, 30),
				charge(base.Add(time.Hour), 30, 80),
				discharge(base.Add(2*time.Hour), 80, 30),
			},
			want: 1,
		},
		{
			name: "fractional remainder truncates toward zero",
			history: []types.ChargeEvent{
				discharge(base, 90, 20),                // 0.7
				discharge(base.Add(time.Hour), 90, 20), // 1.4
			},
			want: 1,
		},
		{
			name: "unsorted input is sorted before counting",
			history: []types.ChargeEvent{
				discharge(base.Add(3*time.Hour), 60, 10),
				discharge(base, 100, 50),
			},
			want: 1,
		},
		{
			name: "inverted discharge polarity reduces the total",
			history: []types.ChargeEvent{
				discharge(base, 100, 0),                // +1.0
				discharge(base.Add(time.Hour), 20, 60), // -0.4
			},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countChargeCycles(tt.history); got != tt.want {
				t.Errorf("countChargeCycles() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountChargeCyclesDoesNotMutateInput(t *testing.T) {
	base := testNow.Add(-24 * time.Hour)
	history := []types.ChargeEvent{
		discharge(base.Add(time.Hour), 60, 10),
		discharge(base, 100, 50),
	}

	countChargeCycles(history)

	if !history[0].Timestamp.Equal(base.Add(time.Hour)) {
		t.Errorf("input history was reordered")
	}
}

func TestDegradationRate(t *testing.T) {
	tests := []struct {
		name         string
		manufactured time.Time
		soh          float64
		want         float64
	}{
		{
			name:         "too new for a meaningful rate",
			manufactured: yearsAgo(0.05),
			soh:          80.0,
			want:         0.0,
		},
		{
			name:         "three year old pack at 71 percent",
			manufactured: yearsAgo(3),
			soh:          71.0,
			want:         29.0 / 3.0,
		},
		{
			name:         "healthy pack has zero rate",
			manufactured: yearsAgo(2),
			soh:          100.0,
			want:         0.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnalyzer()
			data := &types.VehicleDiagnosticData{ManufacturingDate: tt.manufactured}
			got := a.degradationRate(data, tt.soh, testNow)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("degradationRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfidenceScore(t *testing.T) {
	base := testNow.Add(-24 * time.Hour * 200)

	fullHistory := make([]types.ChargeEvent, 0, 12)
	for i := 0; i < 12; i++ {
		fullHistory = append(fullHistory, discharge(base.Add(time.Duration(i)*time.Hour), 100, 0))
	}

	fourCells := []types.BatteryCell{
		{ID: "c1", Voltage: 3.9}, {ID: "c2", Voltage: 3.9},
		{ID: "c3", Voltage: 3.9}, {ID: "c4", Voltage: 3.9},
	}

	tests := []struct {
		name string
		data *types.VehicleDiagnosticData
		want float64
	}{
		{
			name: "complete data keeps full confidence",
			data: &types.VehicleDiagnosticData{
				Cells:             fourCells,
				ChargeHistory:     fullHistory,
				ManufacturingDate: yearsAgo(2),
			},
			want: 100.0,
		},
		{
			name: "few cycles",
			data: &types.VehicleDiagnosticData{
				Cells:             fourCells,
				ManufacturingDate: yearsAgo(2),
			},
			want: 70.0,
		},
		{
			name: "missing cell data",
			data: &types.VehicleDiagnosticData{
				ChargeHistory:     fullHistory,
				ManufacturingDate: yearsAgo(2),
			},
			want: 60.0,
		},
		{
			name: "sparse cell monitoring",
			data: &types.VehicleDiagnosticData{
				Cells:             fourCells[:2],
				ChargeHistory:     fullHistory,
				ManufacturingDate: yearsAgo(2),
			},
			want: 80.0,
		},
		{
			name: "new vehicle with no cycles and no cells",
			data: &types.VehicleDiagnosticData{
				ManufacturingDate: yearsAgo(0.2),
			},
			want: 5.0, // 100 - 30 - 40 - 25
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnalyzer()
			if got := a.confidenceScore(tt.data, testNow); got != tt.want {
				t.Errorf("confidenceScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalyzeRequiresManufacturingDate(t *testing.T) {
	a := newTestAnalyzer()
	_, err := a.Analyze(&types.VehicleDiagnosticData{VehicleID: "VIN123"})
	if err == nil {
		t.Fatal("expected an error for missing manufacturing date")
	}
	if !strings.Contains(err.Error(), "manufacturing date") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAnalyzeNilData(t *testing.T) {
	a := newTestAnalyzer()
	if _, err := a.Analyze(nil); err == nil {
		t.Fatal("expected an error for nil data")
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	a := newTestAnalyzer()

	base := yearsAgo(3)
	history := make([]types.ChargeEvent, 0, 40)
	for i := 0; i < 20; i++ {
		ts := base.Add(time.Duration(i) * 24 * time.Hour)
		history = append(history,
			discharge(ts, 80, 30),
			charge(ts.Add(12*time.Hour), 30, 80),
		)
	}

	report, err := a.Analyze(&types.VehicleDiagnosticData{
		VehicleID:          "TSLA_5YJ3E1EA8KF123456",
		Timestamp:          testNow,
		BatteryPackVoltage: 350.4,
		TotalCapacityKWh:   75.0,
		CurrentCapacityKWh: 53.25,
		Cells: []types.BatteryCell{
			{ID: "cell_001", Voltage: 3.92, Temperature: 32.5, InternalResistance: 2.1},
			{ID: "cell_002", Voltage: 3.91, Temperature: 33.1, InternalResistance: 2.3},
			{ID: "cell_003", Voltage: 3.93, Temperature: 32.8, InternalResistance: 2.0},
			{ID: "cell_004", Voltage: 3.89, Temperature: 34.2, InternalResistance: 2.4},
		},
		ChargeHistory:     history,
		OdometerMiles:     87500,
		ManufacturingDate: base,
	})
	if err != nil {
		t.Fatalf("Analyze() failed: %v", err)
	}

	if report.VehicleID != "TSLA_5YJ3E1EA8KF123456" {
		t.Errorf("VehicleID = %q", report.VehicleID)
	}
	if !report.AnalysisTimestamp.Equal(testNow) {
		t.Errorf("AnalysisTimestamp = %v, want injected clock %v", report.AnalysisTimestamp, testNow)
	}
	if report.StateOfHealthPercent != 71.0 {
		t.Errorf("StateOfHealthPercent = %v, want 71.0", report.StateOfHealthPercent)
	}
	if report.ChargeCycleCount != 10 { // 20 half discharges
		t.Errorf("ChargeCycleCount = %v, want 10", report.ChargeCycleCount)
	}
	if report.EstimatedRemainingCapacityKWh != 53.25 {
		t.Errorf("EstimatedRemainingCapacityKWh = %v, want 53.25", report.EstimatedRemainingCapacityKWh)
	}
	if report.ConfidenceScore != 100.0 {
		t.Errorf("ConfidenceScore = %v, want 100.0", report.ConfidenceScore)
	}

	// 29 points lost over 3 years is above the 8 %/year threshold.
	if got, want := report.DegradationRatePerYear, 29.0/3.0; math.Abs(got-want) > 0.01 {
		t.Errorf("DegradationRatePerYear = %v, want %v", got, want)
	}
	if len(report.Anomalies) != 1 || !strings.Contains(report.Anomalies[0], "Accelerated degradation") {
		t.Errorf("Anomalies = %v, want a single accelerated degradation finding", report.Anomalies)
	}
}

func TestReportBounds(t *testing.T) {
	tests := []struct {
		name string
		data *types.VehicleDiagnosticData
	}{
		{
			name: "invalid capacity",
			data: &types.VehicleDiagnosticData{
				TotalCapacityKWh:  0,
				ManufacturingDate: yearsAgo(5),
			},
		},
		{
			name: "over-nameplate capacity",
			data: &types.VehicleDiagnosticData{
				TotalCapacityKWh:   70,
				CurrentCapacityKWh: 80,
				ManufacturingDate:  yearsAgo(0.01),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnalyzer()
			report, err := a.Analyze(tt.data)
			if err != nil {
				t.Fatalf("Analyze() failed: %v", err)
			}
			if report.StateOfHealthPercent < 0 || report.StateOfHealthPercent > 100 {
				t.Errorf("StateOfHealthPercent out of bounds: %v", report.StateOfHealthPercent)
			}
			if report.ConfidenceScore < 0 || report.ConfidenceScore > 100 {
				t.Errorf("ConfidenceScore out of bounds: %v", report.ConfidenceScore)
			}
		})
	}
}
