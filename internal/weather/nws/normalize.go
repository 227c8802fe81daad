package nws

import "github.com/mcphersonwx/station-weather/internal/weather"

// Normalize maps one observation feature into a Sample.
//
// The timestamp string is carried verbatim. Relative humidity is filled in
// from temperature and dew point when the station did not report it, so it is
// never left for later recomputation. Pressure prefers the barometric reading
// and falls back to sea-level pressure.
func Normalize(f Feature) weather.Sample {
	p := f.Properties

	sample := weather.Sample{
		Timestamp:    p.Timestamp,
		TemperatureC: p.Temperature.Value,
		DewpointC:    p.Dewpoint.Value,
		HumidityPct:  p.RelativeHumidity.Value,
		PressurePa:   p.BarometricPressure.Value,
	}
	if sample.PressurePa == nil {
		sample.PressurePa = p.SeaLevelPressure.Value
	}
	if sample.HumidityPct == nil {
		sample.HumidityPct = weather.RelativeHumidity(sample.TemperatureC, sample.DewpointC)
	}
	return sample
}
