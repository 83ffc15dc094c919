package models

// Memory represents virtual memory usage with human-readable sizes
type Memory struct {
	Total        string  `json:"total"`
	Available    string  `json:"available"`
	Used         string  `json:"used"`
	UsagePercent float64 `json:"usage_percent"`
}
