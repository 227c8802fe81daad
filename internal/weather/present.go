package weather

import (
	"math"
	"strconv"
	"time"
)

// Timestamp display formats for the configured local zone.
const (
	currentTimeFormat = "2006-01-02 15:04 MST"
	historyTimeFormat = "2006-01-02 15:04"
)

// CSVHeader matches the column order produced by Row.Record.
var CSVHeader = []string{"timestamp_local", "temperature_F", "dry_bulb_F", "wet_bulb_F", "humidity_percent", "pressure_inHg"}

// CurrentRow projects the newest sample for the current-conditions view.
func CurrentRow(s Sample, station string, zone *time.Location) Row {
	row := toRow(s, zone, currentTimeFormat)
	row.Station = station
	return row
}

// HistoryRow projects a sample for the history views.
func HistoryRow(s Sample, zone *time.Location) Row {
	return toRow(s, zone, historyTimeFormat)
}

// toRow derives the display quantities. Wet bulb is computed only when both
// temperature and humidity are present; any absent source quantity stays
// absent in the row.
func toRow(s Sample, zone *time.Location, format string) Row {
	row := Row{
		TemperatureF: round1(CToF(s.TemperatureC)),
		WetBulbF:     round1(CToF(WetBulbStull(s.TemperatureC, s.HumidityPct))),
		HumidityPct:  round0(s.HumidityPct),
		PressureInHg: round2(PaToInHg(s.PressurePa)),
	}
	row.DryBulbF = row.TemperatureF
	if ts, err := time.Parse(time.RFC3339, s.Timestamp); err == nil {
		row.TimestampLocal = ts.In(zone).Format(format)
	}
	return row
}

// Record renders the row as a CSV record in CSVHeader order; absent values
// become empty fields.
func (r Row) Record() []string {
	return []string{
		r.TimestampLocal,
		formatFloat(r.TemperatureF, 1),
		formatFloat(r.DryBulbF, 1),
		formatFloat(r.WetBulbF, 1),
		formatFloat(r.HumidityPct, 0),
		formatFloat(r.PressureInHg, 2),
	}
}

func formatFloat(v *float64, prec int) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', prec, 64)
}

func round0(v *float64) *float64 { return roundTo(v, 1) }
func round1(v *float64) *float64 { return roundTo(v, 10) }
func round2(v *float64) *float64 { return roundTo(v, 100) }

func roundTo(v *float64, scale float64) *float64 {
	if v == nil {
		return nil
	}
	r := math.Round(*v*scale) / scale
	return &r
}
