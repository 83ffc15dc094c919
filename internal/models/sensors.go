package models

// Reading is a single temperature sensor sample in degrees Celsius
type Reading struct {
	Current  float64 `json:"current"`
	High     float64 `json:"high"`
	Critical float64 `json:"critical"`
}

// SensorReading pairs a sensor key with its reading
type SensorReading struct {
	Sensor string
	Reading
}

// Temperatures keeps sensors in enumeration order and encodes to a JSON
// object keyed by sensor name.
type Temperatures []SensorReading

func (ts Temperatures) MarshalJSON() ([]byte, error) {
	keys := make([]string, len(ts))
	values := make([]any, len(ts))
	for i, t := range ts {
		keys[i] = t.Sensor
		values[i] = t.Reading
	}
	return marshalOrdered(keys, values)
}
