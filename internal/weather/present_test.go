package weather

import (
	"math"
	"testing"
	"time"
)

func TestCurrentRowSaturated(t *testing.T) {
	s := Sample{
		Timestamp:    "2025-09-05T14:08:00+00:00",
		TemperatureC: fp(0),
		HumidityPct:  fp(100),
		PressurePa:   fp(101325),
	}

	row := CurrentRow(s, "KMPR", time.UTC)

	if row.Station != "KMPR" {
		t.Fatalf("expected station KMPR, got %q", row.Station)
	}
	if row.TimestampLocal != "2025-09-05 14:08 UTC" {
		t.Fatalf("unexpected local timestamp %q", row.TimestampLocal)
	}
	if row.TemperatureF == nil || *row.TemperatureF != 32.0 {
		t.Fatalf("expected 32.0°F, got %v", row.TemperatureF)
	}
	if row.DryBulbF == nil || *row.DryBulbF != 32.0 {
		t.Fatalf("expected dry bulb 32.0°F, got %v", row.DryBulbF)
	}
	if row.WetBulbF == nil || math.Abs(*row.WetBulbF-32.0) > 0.5 {
		t.Fatalf("expected wet bulb near dry bulb for saturated air, got %v", row.WetBulbF)
	}
	if row.HumidityPct == nil || *row.HumidityPct != 100 {
		t.Fatalf("expected 100%%, got %v", row.HumidityPct)
	}
	if row.PressureInHg == nil || *row.PressureInHg != 29.92 {
		t.Fatalf("expected 29.92 inHg, got %v", row.PressureInHg)
	}
}

func TestHistoryRowAbsentPropagation(t *testing.T) {
	s := Sample{
		Timestamp:    "2025-09-05T14:08:00Z",
		TemperatureC: fp(21.5),
	}

	row := HistoryRow(s, time.UTC)

	if row.TimestampLocal != "2025-09-05 14:08" {
		t.Fatalf("unexpected local timestamp %q", row.TimestampLocal)
	}
	if row.Station != "" {
		t.Fatalf("history rows carry no station, got %q", row.Station)
	}
	if row.TemperatureF == nil || *row.TemperatureF != 70.7 {
		t.Fatalf("expected 70.7°F, got %v", row.TemperatureF)
	}
	if row.WetBulbF != nil {
		t.Fatal("wet bulb requires humidity; expected absent")
	}
	if row.HumidityPct != nil || row.PressureInHg != nil {
		t.Fatal("absent source quantities must stay absent")
	}
}

func TestRowRecordKeepsColumnCount(t *testing.T) {
	row := HistoryRow(Sample{
		Timestamp:    "2025-09-05T14:08:00Z",
		TemperatureC: fp(10),
	}, time.UTC)

	rec := row.Record()
	if len(rec) != len(CSVHeader) {
		t.Fatalf("expected %d fields, got %d", len(CSVHeader), len(rec))
	}
	if rec[1] != "50.0" {
		t.Fatalf("expected temperature field 50.0, got %q", rec[1])
	}
	if rec[3] != "" {
		t.Fatalf("absent wet bulb must render as an empty field, got %q", rec[3])
	}
	if rec[4] != "" || rec[5] != "" {
		t.Fatalf("absent humidity/pressure must render as empty fields, got %q %q", rec[4], rec[5])
	}
}

func TestRowUnparsableTimestamp(t *testing.T) {
	row := HistoryRow(Sample{Timestamp: "not-a-timestamp"}, time.UTC)
	if row.TimestampLocal != "" {
		t.Fatalf("expected empty local timestamp, got %q", row.TimestampLocal)
	}
}
