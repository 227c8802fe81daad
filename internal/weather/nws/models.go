package nws

import "encoding/json"

// observationCollection is the paginated GeoJSON feature collection returned
// by the station observations endpoint.
type observationCollection struct {
	Features []Feature `json:"features"`
	Links    []link    `json:"links"`
}

type link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// Feature is a single observation feature. Only the properties this service
// consumes are mapped; the rest of the payload is ignored.
type Feature struct {
	Properties Properties `json:"properties"`
}

// Properties is the observation property bag.
type Properties struct {
	Timestamp          string        `json:"timestamp"`
	Temperature        QuantityValue `json:"temperature"`
	Dewpoint           QuantityValue `json:"dewpoint"`
	RelativeHumidity   QuantityValue `json:"relativeHumidity"`
	BarometricPressure QuantityValue `json:"barometricPressure"`
	SeaLevelPressure   QuantityValue `json:"seaLevelPressure"`
}

// QuantityValue is the NWS quantitative-value wrapper. Value is nil when the
// station did not report the quantity.
type QuantityValue struct {
	Value *float64 `json:"value"`
}

// UnmarshalJSON degrades a malformed quantity to an absent value instead of
// failing the surrounding observation.
func (q *QuantityValue) UnmarshalJSON(data []byte) error {
	var raw struct {
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		q.Value = nil
		return nil
	}
	q.Value = raw.Value
	return nil
}
