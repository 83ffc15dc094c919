package models

// Battery represents charge state of the host battery
type Battery struct {
	Percent     float64 `json:"percent"`
	PowerSource string  `json:"power_source"`
	TimeLeft    string  `json:"time_left,omitempty"`
}

const (
	PowerSourceAC      = "AC"
	PowerSourceBattery = "Battery"
)
