package types

import "time"

// EventKind tells whether a ChargeEvent added or removed energy.
type EventKind string

const (
	EventCharge    EventKind = "charge"
	EventDischarge EventKind = "discharge"
)

// BatteryCell is one measurement sample of a single cell. It is created by
// the data source and never mutated afterwards.
type BatteryCell struct {
	ID                 string  `json:"id"`
	Voltage            float64 `json:"voltage"`             // volts
	Temperature        float64 `json:"temperature"`         // °C
	InternalResistance float64 `json:"internal_resistance"` // milliohms
}

// ChargeEvent is one charge or discharge of the pack. The source does not
// guarantee ordering; consumers sort by Timestamp before use.
type ChargeEvent struct {
	Timestamp         time.Time `json:"timestamp"`
	EventType         EventKind `json:"event_type"`
	StartSOC          float64   `json:"start_soc"`          // percent, 0-100
	EndSOC            float64   `json:"end_soc"`            // percent, 0-100
	EnergyTransferred float64   `json:"energy_transferred"` // kWh
}

// VehicleDiagnosticData is one point-in-time snapshot of a vehicle's battery
// diagnostics. It is the sole input to the analyzer and is treated as
// read-only for the duration of an analysis.
//
// TotalCapacityKWh may be zero only to signal invalid/missing capacity data.
type VehicleDiagnosticData struct {
	VehicleID          string        `json:"vehicle_id"`
	Timestamp          time.Time     `json:"timestamp"`
	BatteryPackVoltage float64       `json:"battery_pack_voltage"`
	TotalCapacityKWh   float64       `json:"total_capacity_kwh"`
	CurrentCapacityKWh float64       `json:"current_capacity_kwh"`
	Cells              []BatteryCell `json:"cells"`
	ChargeHistory      []ChargeEvent `json:"charge_history"`
	OdometerMiles      int           `json:"odometer_miles"`
	ManufacturingDate  time.Time     `json:"manufacturing_date"`
}
