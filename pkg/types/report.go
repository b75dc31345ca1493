package types

import "time"

// BatteryHealthReport holds the results of one analysis run. A report is
// created fresh per call and never mutated after construction; it is shared
// between the analyzer, the daemon, and client packages.
type BatteryHealthReport struct {
	VehicleID                     string    `json:"vehicle_id"`
	AnalysisTimestamp             time.Time `json:"analysis_timestamp"`
	StateOfHealthPercent          float64   `json:"state_of_health_percent"`
	ChargeCycleCount              int       `json:"charge_cycle_count"`
	Anomalies                     []string  `json:"anomalies"`
	DegradationRatePerYear        float64   `json:"degradation_rate_per_year"`
	EstimatedRemainingCapacityKWh float64   `json:"estimated_remaining_capacity_kwh"`
	ConfidenceScore               float64   `json:"confidence_score"`
}
