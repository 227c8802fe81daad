package weather

// Sample is one normalized observation at one instant.
//
// Timestamp is the upstream RFC3339 string, kept verbatim and never mutated
// after creation. Optional quantities are nil when the station did not report
// them and they could not be derived.
type Sample struct {
	Timestamp    string
	TemperatureC *float64
	DewpointC    *float64
	HumidityPct  *float64 // relative humidity, 0..100
	PressurePa   *float64
}

// Row is the display-ready projection of a Sample. Absent source quantities
// stay null in JSON and empty in CSV, never a placeholder number.
type Row struct {
	TimestampLocal string   `json:"timestamp_local"`
	Station        string   `json:"station,omitempty"`
	TemperatureF   *float64 `json:"temperature_F"`
	DryBulbF       *float64 `json:"dry_bulb_F"`
	WetBulbF       *float64 `json:"wet_bulb_F"`
	HumidityPct    *float64 `json:"humidity_percent"`
	PressureInHg   *float64 `json:"pressure_inHg"`
}
