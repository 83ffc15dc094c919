package models

// GPU represents one graphics adapter. Metrics the driver does not expose
// are left nil or empty.
type GPU struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	Driver             string   `json:"driver,omitempty"`
	LoadPercent        *float64 `json:"load_percent,omitempty"`
	MemoryUsed         string   `json:"memory_used,omitempty"`
	MemoryTotal        string   `json:"memory_total,omitempty"`
	TemperatureCelsius *float64 `json:"temperature_celsius,omitempty"`
}
