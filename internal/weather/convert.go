package weather

import (
	"cmp"
	"math"
)

// Magnus approximation constants.
const (
	magnusA = 17.625
	magnusB = 243.04
)

// CToF converts Celsius to Fahrenheit. Absence propagates.
func CToF(c *float64) *float64 {
	if c == nil {
		return nil
	}
	f := *c*9/5 + 32
	return &f
}

// PaToInHg converts Pascals to inches of mercury. Absence propagates.
func PaToInHg(pa *float64) *float64 {
	if pa == nil {
		return nil
	}
	v := *pa / 3386.389
	return &v
}

// Clamp restricts v to the interval [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(hi, v))
}

// RelativeHumidity computes RH% from temperature and dew point (both in °C)
// via the Magnus approximation. The result is clamped to [0, 100].
func RelativeHumidity(tempC, dewpointC *float64) *float64 {
	if tempC == nil || dewpointC == nil {
		return nil
	}
	es := math.Exp(magnusA * *tempC / (magnusB + *tempC))
	e := math.Exp(magnusA * *dewpointC / (magnusB + *dewpointC))
	rh := Clamp(100*(e/es), 0, 100)
	return &rh
}

// WetBulbStull approximates wet-bulb temperature (°C) from temperature (°C)
// and relative humidity (%) using Stull (2011). The approximation holds for
// roughly -20..50°C and 5..99% RH, so RH is clamped into [5, 99] before the
// formula is applied. This is an empirical fit, not a psychrometric solve.
func WetBulbStull(tempC, rhPct *float64) *float64 {
	if tempC == nil || rhPct == nil {
		return nil
	}
	t := *tempC
	rh := Clamp(*rhPct, 5, 99)
	tw := t*math.Atan(0.151977*math.Sqrt(rh+8.313659)) +
		math.Atan(t+rh) -
		math.Atan(rh-1.676331) +
		0.00391838*math.Pow(rh, 1.5)*math.Atan(0.023101*rh) -
		4.686035
	return &tw
}
