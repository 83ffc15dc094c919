package models

// CPU represents core counts, utilization and clock speed
type CPU struct {
	PhysicalCores       int       `json:"physical_cores"`
	LogicalCores        int       `json:"logical_cores"`
	UsagePercent        float64   `json:"usage_percent"`
	CurrentFrequencyMHz float64   `json:"current_frequency_mhz"`
	PerCorePercent      []float64 `json:"per_core_percent,omitempty"`
}
